// Package syntax checks submitted snippets against a real language grammar
// before any model is involved.
package syntax

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/sevigo/code-reviewer/internal/core"
)

const (
	// LanguagePython is the only grammar currently wired in.
	LanguagePython = "python"

	msgUnexpectedEOF = "unexpected EOF while parsing"
	msgInvalidSyntax = "invalid syntax"
	sourceName       = "<string>"
)

// Validator implements core.SyntaxValidator using the tree-sitter Python grammar.
// A parser is created per call since tree-sitter parsers must not be shared
// between goroutines.
type Validator struct {
	language *sitter.Language
}

// NewValidator creates a Python syntax validator.
func NewValidator() *Validator {
	return &Validator{language: python.GetLanguage()}
}

// Language returns "python".
func (v *Validator) Language() string {
	return LanguagePython
}

// Validate parses source as a complete module. It returns nil, nil when the
// source is syntactically valid.
func (v *Validator) Validate(ctx context.Context, source string) (*core.SyntaxError, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(v.language)

	content := []byte(source)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		// The grammar is error tolerant; some programs the interpreter
		// rejects still produce a clean tree.
		return checkStructure(root, content), nil
	}

	node := firstErrorNode(root)
	if node == nil {
		return errorAt(msgInvalidSyntax, 0, 0), nil
	}

	start := node.StartPoint()
	msg := msgInvalidSyntax
	if endsInOpenConstruct(node, source) {
		msg = msgUnexpectedEOF
	}
	return errorAt(msg, int(start.Row), int(start.Column)), nil
}

// errorAt builds a SyntaxError from a zero-based tree-sitter position.
func errorAt(msg string, row, column int) *core.SyntaxError {
	line := row + 1
	return &core.SyntaxError{
		Message: fmt.Sprintf("%s (%s, line %d)", msg, sourceName, line),
		Line:    line,
		Column:  column + 1,
	}
}

// firstErrorNode walks the tree in document order and returns the first
// ERROR or MISSING node.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// endsInOpenConstruct reports whether the error is the parser running out of
// input: a MISSING closing bracket, or an ERROR node at the end of the input
// that leaves a bracket open or stops right after a clause colon.
func endsInOpenConstruct(n *sitter.Node, source string) bool {
	if !reachesEnd(n, source) {
		return false
	}
	if n.IsMissing() {
		return isCloser(n.Type())
	}

	depth := 0
	last := ""
	walkLeaves(n, func(leaf *sitter.Node) {
		if leaf.IsMissing() {
			return
		}
		switch {
		case isOpener(leaf.Type()):
			depth++
		case isCloser(leaf.Type()):
			depth--
		}
		last = leaf.Type()
	})
	return depth > 0 || last == ":"
}

func walkLeaves(n *sitter.Node, fn func(*sitter.Node)) {
	count := int(n.ChildCount())
	if count == 0 {
		fn(n)
		return
	}
	for i := 0; i < count; i++ {
		walkLeaves(n.Child(i), fn)
	}
}

func isOpener(t string) bool { return t == "(" || t == "[" || t == "{" }

func isCloser(t string) bool { return t == ")" || t == "]" || t == "}" }

// reachesEnd reports whether the node runs into the end of the input.
func reachesEnd(n *sitter.Node, source string) bool {
	end := len(strings.TrimRight(source, " \t\r\n"))
	return int(n.EndByte()) >= end
}
