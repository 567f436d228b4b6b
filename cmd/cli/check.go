package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/corrector"
	"github.com/sevigo/code-reviewer/internal/report"
	"github.com/sevigo/code-reviewer/internal/syntax"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check snippets for syntax errors without calling a model",
	Long: `Check one or more snippets for syntax errors.

Broken snippets are reported with the suggested correction. No model is
contacted, so the command works offline. It exits non-zero when any snippet
fails the check.`,
	RunE: runCheck,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	sources, err := readSources(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return checkSources(cmd.Context(), cmd.OutOrStdout(), syntax.NewValidator(), corrector.Default(), sources)
}

func checkSources(ctx context.Context, w io.Writer, validator core.SyntaxValidator, fixer core.ErrorCorrector, sources []source) error {
	var invalid int
	for _, src := range sources {
		if strings.TrimSpace(src.Code) == "" {
			warnColor.Fprintf(w, "%s: empty\n", src.Name)
			continue
		}

		syntaxErr, err := validator.Validate(ctx, src.Code)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", src.Name, err)
		}
		if syntaxErr == nil {
			successColor.Fprintf(w, "%s: ok\n", src.Name)
			continue
		}

		invalid++
		errorColor.Fprintf(w, "%s: %s: %s\n", src.Name, report.TitleSyntaxError, syntaxErr.Message)
		warnColor.Fprintf(w, "%s:\n", report.TitleCorrection)
		infoColor.Fprintln(w, strings.TrimRight(fixer.Correct(src.Code, syntaxErr), "\n"))
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d snippet(s) have syntax errors", invalid, len(sources))
	}
	return nil
}
