// Package core defines the essential interfaces and data structures that form the
// backbone of the application. The review pipeline depends only on these
// contracts, so parsers, correctors and model clients can be swapped freely.
package core

import (
	"context"
	"errors"
)

var (
	// ErrEmptySource is returned when a submission contains no code.
	ErrEmptySource = errors.New("no code submitted")
	// ErrGenerationFailed wraps any error raised by the response generator.
	ErrGenerationFailed = errors.New("response generation failed")
	// ErrEmptyResponse is returned when the generator succeeded but produced no text.
	ErrEmptyResponse = errors.New("response generator returned no output")
)

// ResponseGenerator turns a rendered prompt into raw model output.
//
//go:generate mockgen -destination=../../mocks/mock_response_generator.go -package=mocks . ResponseGenerator
type ResponseGenerator interface {
	// Generate sends the prompt to the model and returns its free-text reply.
	// Implementations must report failures distinctly from an empty reply.
	Generate(ctx context.Context, prompt string) (string, error)
}

// SyntaxValidator checks that source text parses as a complete program.
type SyntaxValidator interface {
	// Validate returns a nil *SyntaxError when the source parses, otherwise a
	// description of the first syntax error found. The error return is reserved
	// for failures of the check itself, such as cancellation.
	Validate(ctx context.Context, source string) (*SyntaxError, error)
	// Language names the grammar the validator checks against.
	Language() string
}

// ErrorCorrector produces a best-effort annotated version of invalid source.
type ErrorCorrector interface {
	Correct(source string, syntaxErr *SyntaxError) string
}

// Reviewer runs the full validate / correct / generate / parse pipeline for
// one submission.
type Reviewer interface {
	Review(ctx context.Context, source string) (*Submission, error)
}
