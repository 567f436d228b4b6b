package core

import (
	"fmt"
	"time"
)

// SyntaxError describes why a submitted snippet failed to parse.
type SyntaxError struct {
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"` // 1-based, 0 when unknown
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
	}
	return "syntax error: " + e.Message
}

// ParsedReview is the model's reply split into its three labeled sections.
type ParsedReview struct {
	Issues      string `json:"issues" yaml:"issues"`
	Suggestions string `json:"suggestions" yaml:"suggestions"`
	FixedCode   string `json:"fixed_code" yaml:"fixed_code"`
}

// Submission is the outcome of reviewing a single snippet. Either SyntaxError
// (with Correction) or Review is populated.
type Submission struct {
	ID          string        `json:"id" yaml:"id"`
	Language    string        `json:"language" yaml:"language"`
	Source      string        `json:"-" yaml:"-"`
	SyntaxError *SyntaxError  `json:"syntax_error,omitempty" yaml:"syntax_error,omitempty"`
	Correction  string        `json:"correction,omitempty" yaml:"correction,omitempty"`
	Review      *ParsedReview `json:"review,omitempty" yaml:"review,omitempty"`
	RawResponse string        `json:"-" yaml:"-"`
	Duration    time.Duration `json:"-" yaml:"-"`
}

// Failed reports whether the snippet was rejected by the syntax check.
func (s *Submission) Failed() bool {
	return s.SyntaxError != nil
}

// ReviewPromptData is a type-safe struct for rendering code review prompts.
type ReviewPromptData struct {
	Language string
	Code     string
}
