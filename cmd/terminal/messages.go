package main

import (
	"github.com/sevigo/code-reviewer/internal/core"
)

// Indicates that the reviewer has been initialized.
type reviewerInitializedMsg struct {
	reviewer core.Reviewer
	cleanup  func()
	err      error
}

// Carries the outcome of a model review.
type reviewDoneMsg struct {
	submission *core.Submission
	err        error
}

// Carries the outcome of an offline syntax check.
type checkDoneMsg struct {
	syntaxErr  *core.SyntaxError
	correction string
	err        error
}

// Carries terminal-rendered markdown for the results pane.
type renderedMsg struct {
	content string
	err     error
}
