package canned_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/producer/canned"
)

func TestDefaultTable(t *testing.T) {
	table, err := canned.DefaultTable()
	require.NoError(t, err)
	require.Len(t, table.Routes, 2)
	require.Equal(t, "greeting", table.Fallback.Name)

	for _, route := range append(table.Routes, table.Fallback) {
		require.NotEmpty(t, route.Fragments(), route.Name)
		require.Equal(t,
			strings.Join(strings.Fields(route.Response), " "),
			strings.Join(route.Fragments(), ""),
			route.Name)
	}
}

func TestTable_Select(t *testing.T) {
	table, err := canned.DefaultTable()
	require.NoError(t, err)

	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "python keyword", message: "Write some python please", expected: "code"},
		{name: "python keyword is case-insensitive", message: "PYTHON scraper", expected: "code"},
		{name: "japanese code keyword", message: "コードを書いて", expected: "code"},
		{name: "analysis keyword", message: "売上を分析して", expected: "analytics"},
		{name: "data keyword", message: "このデータを見て", expected: "analytics"},
		{name: "code route wins over analytics", message: "Pythonでデータ分析", expected: "code"},
		{name: "no keyword", message: "hello", expected: "greeting"},
		{name: "empty message", message: "", expected: "greeting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, table.Select(tt.message).Name)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("should lowercase keywords and precompute fragments", func(t *testing.T) {
		table, err := canned.Parse([]byte(`
routes:
  - name: shout
    keywords: ["HELLO"]
    response: "hi   there"
fallback:
  name: default
  response: "ok"
`))
		require.NoError(t, err)
		require.Equal(t, []string{"hello"}, table.Routes[0].Keywords)
		require.Equal(t, []string{"hi ", "there"}, table.Routes[0].Fragments())
		require.Equal(t, "shout", table.Select("well Hello").Name)
		require.Equal(t, []string{"ok"}, table.Fallback.Fragments())
	})

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "invalid yaml", data: "routes: [", wantErr: "failed to parse"},
		{name: "missing fallback", data: "routes: []", wantErr: "no fallback"},
		{
			name:    "route without name",
			data:    "routes:\n  - keywords: [a]\n    response: x\nfallback:\n  response: y\n",
			wantErr: "has no name",
		},
		{
			name:    "route without keywords",
			data:    "routes:\n  - name: a\n    response: x\nfallback:\n  response: y\n",
			wantErr: "has no keywords",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := canned.Parse([]byte(tt.data))
			require.Error(t, err)
			require.Nil(t, table)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("should use built-in table when no file is configured", func(t *testing.T) {
		table, err := canned.Load(&canned.Config{})
		require.NoError(t, err)
		require.Equal(t, "greeting", table.Fallback.Name)
	})

	t.Run("should read override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "responses.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fallback:\n  name: custom\n  response: custom reply\n"), 0o600))

		table, err := canned.Load(&canned.Config{ResponsesFile: path})
		require.NoError(t, err)
		require.Equal(t, "custom", table.Fallback.Name)
		require.Empty(t, table.Routes)
	})

	t.Run("should fail on missing file", func(t *testing.T) {
		_, err := canned.Load(&canned.Config{ResponsesFile: filepath.Join(t.TempDir(), "missing.yaml")})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read response table")
	})
}
