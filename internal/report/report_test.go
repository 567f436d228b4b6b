package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/llm"
)

func reviewed() *core.Submission {
	return &core.Submission{
		ID:       "abc",
		Language: "python",
		Source:   "x=1",
		Review: &core.ParsedReview{
			Issues:      "- spacing",
			Suggestions: "- follow PEP 8",
			FixedCode:   "```python\nx = 1\n```",
		},
	}
}

func rejected() *core.Submission {
	return &core.Submission{
		ID:          "def",
		Language:    "python",
		Source:      "print(1",
		SyntaxError: &core.SyntaxError{Message: "unexpected EOF while parsing (<string>, line 1)", Line: 1, Column: 8},
		Correction:  "print(1\n# Added missing closing bracket or parenthesis",
	}
}

func TestText(t *testing.T) {
	want := "Issues:\n- spacing\n\nSuggestions:\n- follow PEP 8\n\nSuggested Fix:\nx = 1\n"
	assert.Equal(t, want, Text(reviewed()))

	got := Text(rejected())
	assert.True(t, strings.HasPrefix(got, "Syntax Error:\nunexpected EOF"))
	assert.Contains(t, got, "Suggested Correction for Syntax Error:\nprint(1\n# Added missing closing bracket")
}

func TestMarkdown(t *testing.T) {
	got := Markdown(reviewed())
	assert.Contains(t, got, "## Issues\n\n- spacing")
	assert.Contains(t, got, "## Suggested Fix\n\n```python\nx = 1\n```")

	noFix := reviewed()
	noFix.Review.FixedCode = llm.NoFixedCodePlaceholder
	assert.Contains(t, Markdown(noFix), "## Suggested Fix\n\n"+llm.NoFixedCodePlaceholder+"\n")
	assert.NotContains(t, Markdown(noFix), "```")

	assert.Contains(t, Markdown(rejected()), "```python\nprint(1\n# Added missing")
	assert.Empty(t, Markdown(&core.Submission{}))
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rejected(), FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "def", got["id"])
	assert.NotContains(t, got, "review")
	syntaxErr, ok := got["syntax_error"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, syntaxErr["line"])
	assert.NotContains(t, buf.String(), "\"Source\"", "source is not echoed")
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, reviewed(), FormatYAML))

	var got struct {
		ID     string            `yaml:"id"`
		Review core.ParsedReview `yaml:"review"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "- spacing", got.Review.Issues)
	assert.NotContains(t, buf.String(), "syntax_error")
}

func TestWrite_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, reviewed(), FormatMarkdown))
	assert.Contains(t, buf.String(), "spacing")
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, reviewed(), "html"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
