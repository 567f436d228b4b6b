package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/report"
	"github.com/sevigo/code-reviewer/internal/wire"
)

func initializeReviewerCmd(ctx context.Context, cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		reviewer, cleanup, err := wire.InitializeReviewer(ctx, cfg)
		return reviewerInitializedMsg{reviewer: reviewer, cleanup: cleanup, err: err}
	}
}

func reviewCmd(ctx context.Context, reviewer core.Reviewer, code string) tea.Cmd {
	return func() tea.Msg {
		sub, err := reviewer.Review(ctx, code)
		return reviewDoneMsg{submission: sub, err: err}
	}
}

func checkCmd(ctx context.Context, validator core.SyntaxValidator, fixer core.ErrorCorrector, code string) tea.Cmd {
	return func() tea.Msg {
		syntaxErr, err := validator.Validate(ctx, code)
		if err != nil || syntaxErr == nil {
			return checkDoneMsg{err: err}
		}
		return checkDoneMsg{syntaxErr: syntaxErr, correction: fixer.Correct(code, syntaxErr)}
	}
}

// renderCmd renders markdown off the update loop, since glamour can be slow on
// long reviews.
func renderCmd(md string) tea.Cmd {
	return func() tea.Msg {
		out, err := report.RenderMarkdown(md)
		return renderedMsg{content: out, err: err}
	}
}
