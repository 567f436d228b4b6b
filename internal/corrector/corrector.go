// Package corrector annotates source that failed the syntax check with hints
// about the likely problem. It never attempts a real repair.
package corrector

import (
	"strings"

	"github.com/sevigo/code-reviewer/internal/core"
)

const (
	missingCloserNote = "# Added missing closing bracket or parenthesis"
	missingBlockNote  = " # Added missing indentation or code block"
	blankLineNote     = "# Check for missing code here"
)

// endOfInputPhrases are the interpreter messages that mean the parser ran out
// of input with an open bracket or block.
var endOfInputPhrases = []string{
	"unexpected EOF",
	"was never closed",
}

// Rule pairs a predicate on the syntax error with a transform of the source.
type Rule struct {
	Name  string
	Match func(syntaxErr *core.SyntaxError) bool
	Apply func(source string) string
}

// Corrector evaluates its rules top to bottom; the first matching rule wins.
type Corrector struct {
	rules []Rule
}

// New creates a corrector with the given rules in evaluation order.
func New(rules ...Rule) *Corrector {
	return &Corrector{rules: rules}
}

// Default returns the corrector with the built-in rule set.
func Default() *Corrector {
	return New(DefaultRules()...)
}

// DefaultRules returns the built-in rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  "missing-closer",
			Match: messageContainsAny(endOfInputPhrases...),
			Apply: appendMissingCloser,
		},
		{
			Name:  "block-hints",
			Match: messageContainsAny("invalid syntax", "expected an indented block"),
			Apply: annotateBlocks,
		},
	}
}

// Correct returns a best-effort annotated copy of source. When no rule
// matches, source is returned unchanged.
func (c *Corrector) Correct(source string, syntaxErr *core.SyntaxError) string {
	if syntaxErr == nil {
		return source
	}
	for _, r := range c.rules {
		if r.Match != nil && r.Apply != nil && r.Match(syntaxErr) {
			return r.Apply(source)
		}
	}
	return source
}

// Rules returns the rule names in evaluation order.
func (c *Corrector) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name)
	}
	return names
}

func messageContainsAny(phrases ...string) func(*core.SyntaxError) bool {
	return func(syntaxErr *core.SyntaxError) bool {
		for _, p := range phrases {
			if strings.Contains(syntaxErr.Message, p) {
				return true
			}
		}
		return false
	}
}

func appendMissingCloser(source string) string {
	return source + "\n" + missingCloserNote
}

// annotateBlocks flags block-opening lines and blank lines.
func annotateBlocks(source string) string {
	lines := splitLines(source)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasSuffix(trimmed, ":"):
			lines[i] = line + missingBlockNote
		case trimmed == "":
			lines[i] = blankLineNote
		}
	}
	return strings.Join(lines, "\n")
}

// splitLines splits on \n, \r\n and \r without producing a trailing empty
// element for a final line break.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
