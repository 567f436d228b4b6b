package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/llm"
	"github.com/sevigo/code-reviewer/internal/report"
	"github.com/sevigo/code-reviewer/internal/wire"
)

var (
	reviewFormat      string
	reviewConcurrency int
	reviewTimeout     time.Duration
	verbose           bool
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgWhite)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

var reviewCmd = &cobra.Command{
	Use:   "review [file...]",
	Short: "Review code snippets with the configured model",
	Long: `Review one or more code snippets.

Each snippet is checked for syntax errors first. Broken code gets a suggested
correction without calling the model; valid code is sent to the model, which
answers with issues, suggestions and a fixed version.

With no file arguments, or with "-", the snippet is read from stdin.

Examples:
  reviewer-cli review main.py
  reviewer-cli review --format json a.py b.py
  cat snippet.py | reviewer-cli review --provider gemini`,
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&reviewFormat, "format", "f", string(report.FormatText), "output format: text, markdown, json or yaml")
	reviewCmd.Flags().IntVarP(&reviewConcurrency, "concurrency", "c", 2, "number of snippets reviewed in parallel")
	reviewCmd.Flags().DurationVar(&reviewTimeout, "timeout", 10*time.Minute, "maximum time for the whole run")
	reviewCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print timing information")
	rootCmd.AddCommand(reviewCmd)
}

// reviewResult is the outcome for one source, in input order.
type reviewResult struct {
	Source     source
	Submission *core.Submission
	Err        error
}

func runReview(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reviewFormat)
	if err != nil {
		return err
	}
	if reviewConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	sources, err := readSources(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), reviewTimeout)
	defer cancel()

	reviewer, cleanup, err := wire.InitializeReviewer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize reviewer: %w\n\nTip: check that the LLM service is reachable", err)
	}
	defer cleanup()

	if verbose {
		dimColor.Fprintf(os.Stderr, "Reviewing %d snippet(s) with %s (%s)\n", len(sources), cfg.AI.LLMProvider, cfg.AI.ModelName())
	}

	start := time.Now()
	results := reviewAll(ctx, reviewer, sources, reviewConcurrency)
	if verbose {
		dimColor.Fprintf(os.Stderr, "Total time: %s\n", time.Since(start).Round(time.Millisecond))
	}

	return printResults(cmd.OutOrStdout(), results, format)
}

// reviewAll reviews every source with at most limit requests in flight.
// Failures are recorded per source and never cancel the other reviews.
func reviewAll(ctx context.Context, reviewer core.Reviewer, sources []source, limit int) []reviewResult {
	results := make([]reviewResult, len(sources))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, src := range sources {
		g.Go(func() error {
			sub, err := reviewer.Review(ctx, src.Code)
			results[i] = reviewResult{Source: src, Submission: sub, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// printResults writes every result and returns an error when any review failed.
func printResults(w io.Writer, results []reviewResult, format report.Format) error {
	var failed int
	for i, res := range results {
		if len(results) > 1 && format != report.FormatJSON && format != report.FormatYAML {
			if i > 0 {
				fmt.Fprintln(w)
			}
			titleColor.Fprintf(w, "==> %s <==\n", res.Source.Name)
		}

		if res.Err != nil {
			failed++
			printReviewError(w, res.Source.Name, res.Err)
			continue
		}

		if format == report.FormatText {
			printSubmission(w, res.Submission)
			continue
		}
		if err := report.Write(w, res.Submission, format); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", res.Source.Name, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d review(s) failed", failed, len(results))
	}
	return nil
}

func printReviewError(w io.Writer, name string, err error) {
	switch {
	case errors.Is(err, core.ErrEmptySource):
		warnColor.Fprintf(w, "%s: Please enter some code before submitting.\n", name)
	case errors.Is(err, core.ErrGenerationFailed), errors.Is(err, core.ErrEmptyResponse):
		errorColor.Fprintf(w, "%s: Error during model inference. Please try again.\n", name)
		dimColor.Fprintf(w, "   %v\n", err)
	default:
		errorColor.Fprintf(w, "%s: %v\n", name, err)
	}
}

// printSubmission writes the colored text report for one submission.
func printSubmission(w io.Writer, sub *core.Submission) {
	separator := strings.Repeat("=", 60)

	if sub.Failed() {
		errorColor.Fprintf(w, "%s: %s\n\n", report.TitleSyntaxError, sub.SyntaxError.Message)
		warnColor.Fprintf(w, "%s:\n", report.TitleCorrection)
		dimColor.Fprintln(w, separator)
		infoColor.Fprintln(w, strings.TrimRight(sub.Correction, "\n"))
		dimColor.Fprintln(w, separator)
		return
	}
	if sub.Review == nil {
		return
	}

	successColor.Fprintln(w, "Code Review Complete!")
	printSection(w, report.TitleIssues, sub.Review.Issues)
	printSection(w, report.TitleSuggestions, sub.Review.Suggestions)

	fmt.Fprintln(w)
	boldColor.Fprintf(w, "%s:\n", report.TitleFixedCode)
	dimColor.Fprintln(w, separator)
	infoColor.Fprintln(w, strings.TrimRight(llm.StripCodeFence(sub.Review.FixedCode), "\n"))
	dimColor.Fprintln(w, separator)
}

func printSection(w io.Writer, title, body string) {
	fmt.Fprintln(w)
	boldColor.Fprintf(w, "%s:\n", title)
	infoColor.Fprintln(w, strings.TrimRight(body, "\n"))
}
