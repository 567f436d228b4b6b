package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-reviewer/internal/llm"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("REVIEWER_AI_LANGUAGE", "")
	return dir
}

func TestRenderReviewPrompt_Language(t *testing.T) {
	t.Run("Default language", func(t *testing.T) {
		isolateConfig(t)

		var buf bytes.Buffer
		require.NoError(t, renderReviewPrompt(&buf, viper.New(), llm.DefaultProvider, "x = 1\n"))
		assert.Contains(t, buf.String(), "You are an expert Python code reviewer")
		assert.Contains(t, buf.String(), "x = 1")
	})

	t.Run("Environment variable", func(t *testing.T) {
		isolateConfig(t)
		t.Setenv("REVIEWER_AI_LANGUAGE", "Cython")

		var buf bytes.Buffer
		require.NoError(t, renderReviewPrompt(&buf, viper.New(), llm.DefaultProvider, "x = 1\n"))
		assert.Contains(t, buf.String(), "You are an expert Cython code reviewer")
	})

	t.Run("Config file", func(t *testing.T) {
		dir := isolateConfig(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ai:\n  language: MicroPython\n"), 0o600))

		var buf bytes.Buffer
		require.NoError(t, renderReviewPrompt(&buf, viper.New(), llm.DefaultProvider, "x = 1\n"))
		assert.Contains(t, buf.String(), "You are an expert MicroPython code reviewer")
	})

	t.Run("Flag wins over environment", func(t *testing.T) {
		isolateConfig(t)
		t.Setenv("REVIEWER_AI_LANGUAGE", "Cython")

		v := viper.New()
		v.Set("ai.language", "Jython")
		var buf bytes.Buffer
		require.NoError(t, renderReviewPrompt(&buf, v, llm.DefaultProvider, "x = 1\n"))
		assert.Contains(t, buf.String(), "You are an expert Jython code reviewer")
	})
}
