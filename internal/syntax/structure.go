package syntax

import (
	"bytes"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sevigo/code-reviewer/internal/core"
)

const (
	msgExpectedBlock    = "expected an indented block"
	msgUnexpectedIndent = "unexpected indent"
	msgReturnOutside    = "'return' outside function"
	msgYieldOutside     = "'yield' outside function"
	msgBreakOutside     = "'break' outside loop"
	msgContinueOutside  = "'continue' not properly in loop"
)

// compoundClauses are the statements whose header ends in a colon followed by
// a suite.
var compoundClauses = map[string]bool{
	"function_definition": true,
	"class_definition":    true,
	"if_statement":        true,
	"elif_clause":         true,
	"else_clause":         true,
	"for_statement":       true,
	"while_statement":     true,
	"try_statement":       true,
	"except_clause":       true,
	"except_group_clause": true,
	"finally_clause":      true,
	"with_statement":      true,
	"match_statement":     true,
	"case_clause":         true,
}

// scope tracks the enclosing constructs that make return, yield, break and
// continue legal.
type scope struct {
	function bool
	loop     bool
}

// checkStructure finds errors the interpreter reports for trees that
// tree-sitter parses cleanly: empty suites, stray indentation, Python 2
// statements and control flow outside its enclosing construct.
func checkStructure(root *sitter.Node, content []byte) *core.SyntaxError {
	if syntaxErr := checkModuleIndent(root); syntaxErr != nil {
		return syntaxErr
	}
	return checkNode(root, content, scope{})
}

// checkModuleIndent flags a top-level statement that starts its line indented.
// Statements after a semicolon share a line with their predecessor and are
// not indented in that sense.
func checkModuleIndent(root *sitter.Node) *core.SyntaxError {
	prevEndRow := -1
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		start := child.StartPoint()
		if start.Column > 0 && int(start.Row) > prevEndRow {
			return errorAt(msgUnexpectedIndent, int(start.Row), int(start.Column))
		}
		prevEndRow = int(child.EndPoint().Row)
	}
	return nil
}

func checkNode(n *sitter.Node, content []byte, s scope) *core.SyntaxError {
	start := n.StartPoint()

	switch n.Type() {
	case "block":
		if isEmptyBlock(n) {
			return emptySuiteError(blockHeader(n), colonRow(n), content)
		}
	case "print_statement", "exec_statement":
		return errorAt(msgInvalidSyntax, int(start.Row), int(start.Column))
	case "return_statement":
		if !s.function {
			return errorAt(msgReturnOutside, int(start.Row), int(start.Column))
		}
	case "yield":
		if n.IsNamed() && !s.function {
			return errorAt(msgYieldOutside, int(start.Row), int(start.Column))
		}
	case "break_statement":
		if !s.loop {
			return errorAt(msgBreakOutside, int(start.Row), int(start.Column))
		}
	case "continue_statement":
		if !s.loop {
			return errorAt(msgContinueOutside, int(start.Row), int(start.Column))
		}
	case "function_definition", "lambda":
		s = scope{function: true}
	case "class_definition":
		s = scope{}
	case "for_statement", "while_statement":
		s.loop = true
	}

	if compoundClauses[n.Type()] && endsWithColon(n) {
		return emptySuiteError(n, int(n.EndPoint().Row), content)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if syntaxErr := checkNode(n.Child(i), content, s); syntaxErr != nil {
			return syntaxErr
		}
	}
	return nil
}

// isEmptyBlock reports whether a suite holds no statement. An empty suite is
// parsed as a block made only of the newline after the colon.
func isEmptyBlock(n *sitter.Node) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() != "comment" {
			return false
		}
	}
	return true
}

// blockHeader returns the clause that owns a block.
func blockHeader(block *sitter.Node) *sitter.Node {
	if parent := block.Parent(); parent != nil {
		return parent
	}
	return block
}

// colonRow returns the row of the colon that opens a block.
func colonRow(block *sitter.Node) int {
	prev := block.PrevSibling()
	for prev != nil && prev.Type() == "comment" {
		prev = prev.PrevSibling()
	}
	if prev != nil && prev.Type() == ":" {
		return int(prev.EndPoint().Row)
	}
	return int(block.StartPoint().Row)
}

func endsWithColon(n *sitter.Node) bool {
	count := int(n.ChildCount())
	return count > 0 && n.Child(count-1).Type() == ":"
}

// emptySuiteError reports a clause without a body. When only blank lines and
// comments follow the colon, the interpreter hits the end of input first.
func emptySuiteError(header *sitter.Node, colonRow int, content []byte) *core.SyntaxError {
	row, col, ok := nextCodeLine(content, colonRow+1)
	if !ok {
		start := header.StartPoint()
		return errorAt(msgUnexpectedEOF, int(start.Row), int(start.Column))
	}
	return errorAt(msgExpectedBlock, row, col)
}

// nextCodeLine finds the first line at or after fromRow that holds code,
// skipping blank and comment-only lines. Row and column are zero-based.
func nextCodeLine(content []byte, fromRow int) (row, col int, ok bool) {
	lines := bytes.Split(content, []byte("\n"))
	for row = fromRow; row < len(lines); row++ {
		trimmed := bytes.TrimLeft(lines[row], " \t\r\f")
		if len(trimmed) > 0 && trimmed[0] != '#' {
			return row, len(lines[row]) - len(trimmed), true
		}
	}
	return 0, 0, false
}
