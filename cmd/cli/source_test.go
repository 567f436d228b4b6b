package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")
	require.NoError(t, os.WriteFile(a, []byte("x = 1\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("y = 2\n"), 0o600))

	t.Run("Files in order", func(t *testing.T) {
		got, err := readSources([]string{b, a}, strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, []source{{Name: b, Code: "y = 2\n"}, {Name: a, Code: "x = 1\n"}}, got)
	})

	t.Run("Stdin by default", func(t *testing.T) {
		got, err := readSources(nil, strings.NewReader("print(1)"))
		require.NoError(t, err)
		assert.Equal(t, []source{{Name: "-", Code: "print(1)"}}, got)
	})

	t.Run("Stdin mixed with files", func(t *testing.T) {
		got, err := readSources([]string{a, "-"}, strings.NewReader("z = 3"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "z = 3", got[1].Code)
	})

	t.Run("Stdin twice", func(t *testing.T) {
		_, err := readSources([]string{"-", "-"}, strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := readSources([]string{filepath.Join(dir, "nope.py")}, strings.NewReader(""))
		assert.ErrorContains(t, err, "nope.py")
	})
}
