package llm

import (
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-reviewer/internal/core"
)

func TestPromptManager_Render(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	code := "def add(a, b):\n    return a + b  # {{ not a template }}"
	data := core.ReviewPromptData{Language: "Python", Code: code}

	for _, provider := range []ModelProvider{DefaultProvider, "gemini", "ollama"} {
		t.Run(string(provider), func(t *testing.T) {
			got, err := pm.Render(CodeReviewPrompt, provider, data)
			require.NoError(t, err)
			assert.Contains(t, got, code, "source must be embedded verbatim")
			assert.Contains(t, got, "Python code reviewer")
		})
	}
}

func TestPromptManager_TemplatesUseParserMarkers(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	providers := pm.Providers(CodeReviewPrompt)
	require.Contains(t, providers, DefaultProvider)

	for _, provider := range providers {
		got, err := pm.Render(CodeReviewPrompt, provider, core.ReviewPromptData{Language: "Python", Code: "pass"})
		require.NoError(t, err)

		for _, marker := range []string{IssuesMarker, SuggestionsMarker, FixedCodeMarker} {
			assert.Contains(t, got, marker, "provider %s", provider)
		}
		assert.Contains(t, strings.ToLower(got), approvalPhrase, "provider %s", provider)
		assert.Less(t, strings.Index(got, IssuesMarker), strings.Index(got, SuggestionsMarker))
		assert.Less(t, strings.Index(got, SuggestionsMarker), strings.Index(got, FixedCodeMarker))
	}
}

func TestPromptManager_Get(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	gemini, err := pm.Get(CodeReviewPrompt, "gemini")
	require.NoError(t, err)
	assert.Equal(t, "code_review_gemini", gemini.Name())

	fallback, err := pm.Get(CodeReviewPrompt, "unknown-provider")
	require.NoError(t, err)
	assert.Equal(t, "code_review_default", fallback.Name())

	_, err = pm.Get("missing_key", DefaultProvider)
	assert.Error(t, err)
}

func TestPromptManager_RegisterRejectsBrokenTemplate(t *testing.T) {
	pm := &PromptManager{prompts: make(map[PromptKey]map[ModelProvider]*template.Template)}

	err := pm.register(CodeReviewPrompt, DefaultProvider, "Code: {{.Code")
	require.Error(t, err)
	assert.Empty(t, pm.Providers(CodeReviewPrompt))

	require.NoError(t, pm.register(CodeReviewPrompt, "custom", "Review {{.Code}}"))
	got, err := pm.Render(CodeReviewPrompt, "custom", core.ReviewPromptData{Code: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Review x", got)

	_, err = pm.Render(CodeReviewPrompt, "other", core.ReviewPromptData{Code: "x"})
	assert.Error(t, err, "no default registered")
}
