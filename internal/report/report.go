// Package report renders review submissions for terminals and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/llm"
)

// Format selects how a submission is written.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Section titles shared by every human-readable surface.
const (
	TitleIssues      = "Issues"
	TitleSuggestions = "Suggestions"
	TitleFixedCode   = "Suggested Fix"
	TitleSyntaxError = "Syntax Error"
	TitleCorrection  = "Suggested Correction for Syntax Error"
)

const wordWrap = 100

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Write renders sub to w in the given format.
func Write(w io.Writer, sub *core.Submission, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sub)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sub); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		out, err := RenderMarkdown(Markdown(sub))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatText, "":
		_, err := io.WriteString(w, Text(sub))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text renders sub as plain labeled sections.
func Text(sub *core.Submission) string {
	var sb strings.Builder
	if sub.Failed() {
		writeTextSection(&sb, TitleSyntaxError, sub.SyntaxError.Message)
		writeTextSection(&sb, TitleCorrection, sub.Correction)
		return sb.String()
	}
	if sub.Review != nil {
		writeTextSection(&sb, TitleIssues, sub.Review.Issues)
		writeTextSection(&sb, TitleSuggestions, sub.Review.Suggestions)
		writeTextSection(&sb, TitleFixedCode, llm.StripCodeFence(sub.Review.FixedCode))
	}
	return sb.String()
}

func writeTextSection(sb *strings.Builder, title, body string) {
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(title + ":\n")
	sb.WriteString(strings.TrimRight(body, "\n"))
	sb.WriteString("\n")
}

// Markdown renders sub as a markdown document. Code sections are fenced with
// the submission language.
func Markdown(sub *core.Submission) string {
	var sb strings.Builder
	lang := sub.Language
	if sub.Failed() {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", TitleSyntaxError, sub.SyntaxError.Message)
		fmt.Fprintf(&sb, "## %s\n\n```%s\n%s\n```\n", TitleCorrection, lang, sub.Correction)
		return sb.String()
	}
	if sub.Review == nil {
		return ""
	}
	fmt.Fprintf(&sb, "## %s\n\n%s\n\n", TitleIssues, sub.Review.Issues)
	fmt.Fprintf(&sb, "## %s\n\n%s\n\n", TitleSuggestions, sub.Review.Suggestions)
	fixed := sub.Review.FixedCode
	if fixed == llm.NoFixedCodePlaceholder {
		fmt.Fprintf(&sb, "## %s\n\n%s\n", TitleFixedCode, fixed)
	} else {
		fmt.Fprintf(&sb, "## %s\n\n```%s\n%s\n```\n", TitleFixedCode, lang, llm.StripCodeFence(fixed))
	}
	return sb.String()
}

// RenderMarkdown renders markdown for a terminal with glamour.
func RenderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
