package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/corrector"
	"github.com/sevigo/code-reviewer/internal/syntax"
)

type fakeReviewer struct {
	sub *core.Submission
	err error
	got string
}

func (f *fakeReviewer) Review(_ context.Context, src string) (*core.Submission, error) {
	f.got = src
	return f.sub, f.err
}

func newTestModel(t *testing.T, rev core.Reviewer) *model {
	t.Helper()
	cfg := &config.Config{AI: config.AIConfig{LLMProvider: "ollama", GeneratorModel: "gemma3", Language: "Python"}}
	m := initialModel(context.Background(), cfg, ThemeCyan, syntax.NewValidator(), corrector.Default())
	_, _ = m.Update(reviewerInitializedMsg{reviewer: rev, cleanup: func() {}})
	return m
}

func TestModel_InitFailureKeepsCheckAvailable(t *testing.T) {
	cfg := &config.Config{AI: config.AIConfig{LLMProvider: "gemini", Language: "Python"}}
	m := initialModel(context.Background(), cfg, ThemeCyan, syntax.NewValidator(), corrector.Default())
	_, _ = m.Update(reviewerInitializedMsg{err: errors.New("no key")})

	assert.False(t, m.busy)
	assert.Contains(t, m.status, "Reviewer unavailable: no key")

	m.editor.SetValue("x = 1")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "Reviewer is not available.")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.NotNil(t, cmd)
	assert.True(t, m.busy)
}

func TestModel_ReviewRoundTrip(t *testing.T) {
	rev := &fakeReviewer{sub: &core.Submission{
		Language: "python",
		Review:   &core.ParsedReview{Issues: "unused import", Suggestions: "remove it", FixedCode: "x = 1"},
	}}
	m := newTestModel(t, rev)
	m.editor.SetValue("import os\nx = 1")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	// A second submit while busy is ignored.
	_, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, again)

	msg := reviewCmd(context.Background(), rev, m.editor.Value())()
	assert.Equal(t, "import os\nx = 1", rev.got)

	_, next := m.Update(msg)
	assert.NotNil(t, next)
	assert.False(t, m.busy)
	assert.Contains(t, m.status, msgReviewComplete)
	assert.Contains(t, m.markdown, "## Issues\n\nunused import")
	assert.Contains(t, m.markdown, "```python\nx = 1\n```")

	_, _ = m.Update(renderedMsg{content: "RENDERED"})
	assert.Contains(t, m.results.View(), "RENDERED")
}

func TestModel_ReviewErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Empty", err: core.ErrEmptySource, want: msgEmptySource},
		{name: "Generation", err: core.ErrGenerationFailed, want: msgGenerationError},
		{name: "Empty reply", err: core.ErrEmptyResponse, want: msgGenerationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &fakeReviewer{})
			m.busy = true
			_, cmd := m.Update(reviewDoneMsg{err: tt.err})
			assert.Nil(t, cmd)
			assert.False(t, m.busy)
			assert.Contains(t, m.status, tt.want)
		})
	}
}

func TestModel_EmptyEditorIsNotSubmitted(t *testing.T) {
	rev := &fakeReviewer{}
	m := newTestModel(t, rev)
	m.editor.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Contains(t, m.status, msgEmptySource)
	assert.Empty(t, rev.got)
}

func TestModel_CheckShowsCorrection(t *testing.T) {
	m := newTestModel(t, &fakeReviewer{})
	m.editor.SetValue(`print("hello"`)

	msg := checkCmd(context.Background(), m.validator, m.fixer, m.editor.Value())()
	done, ok := msg.(checkDoneMsg)
	require.True(t, ok)
	require.NotNil(t, done.syntaxErr)

	_, cmd := m.Update(done)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.status, "Syntax Error: unexpected EOF while parsing")
	assert.Contains(t, m.markdown, "## Suggested Correction for Syntax Error")
	assert.Contains(t, m.markdown, "# Added missing closing bracket or parenthesis")
}

func TestModel_CheckValidCode(t *testing.T) {
	m := newTestModel(t, &fakeReviewer{})
	m.markdown = "old"

	_, cmd := m.Update(checkCmd(context.Background(), m.validator, m.fixer, "x = 1\n")())
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, msgSyntaxOK)
	assert.Empty(t, m.markdown)
}

func TestModel_FocusAndClear(t *testing.T) {
	m := newTestModel(t, &fakeReviewer{})
	m.editor.SetValue("x = 1")
	m.markdown = "something"

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneResults, m.focus)
	assert.False(t, m.editor.Focused())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneEditor, m.focus)
	assert.True(t, m.editor.Focused())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.editor.Value())
	assert.Empty(t, m.markdown)
}

func TestModel_ResizeAndView(t *testing.T) {
	m := newTestModel(t, &fakeReviewer{})
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 114, m.results.Width)
	view := m.View()
	assert.Contains(t, view, "Python Code Reviewer")
	assert.Contains(t, view, "ctrl+s")
}
