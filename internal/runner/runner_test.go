package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(env map[string]string) (*GitHubActions, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &GitHubActions{
		Env:    func(key string) string { return env[key] },
		Stdout: out,
	}, out
}

func TestGitHubActions_GetInput(t *testing.T) {
	gha, _ := newTestRunner(map[string]string{
		"INPUT_ISSUE_KEY": " PROJ-1 ",
		"INPUT_MY_INPUT":  "value",
	})

	assert.Equal(t, "PROJ-1", gha.GetInput("issue_key"), "should uppercase and trim")
	assert.Equal(t, "value", gha.GetInput("my_input"))
	assert.Equal(t, "", gha.GetInput("missing"))
}

func TestGitHubActions_RequireInput(t *testing.T) {
	gha, _ := newTestRunner(map[string]string{"INPUT_OPERATION": "get_issue"})

	value, err := gha.RequireInput("operation")
	require.NoError(t, err)
	assert.Equal(t, "get_issue", value)

	_, err = gha.RequireInput("summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Input required and not supplied: summary")
}

func TestGitHubActions_SetOutput(t *testing.T) {
	t.Run("writes to GITHUB_OUTPUT file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output")
		gha, out := newTestRunner(map[string]string{"GITHUB_OUTPUT": path})

		gha.SetOutput("status", "success")
		gha.SetOutput("response", "{\n  \"key\": \"PROJ-1\"\n}")

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		content := string(raw)
		assert.Contains(t, content, "status<<")
		assert.Contains(t, content, "\nsuccess\n")
		assert.Contains(t, content, "{\n  \"key\": \"PROJ-1\"\n}")
		assert.Empty(t, out.String(), "no fallback command expected")
	})

	t.Run("falls back to workflow command", func(t *testing.T) {
		gha, out := newTestRunner(map[string]string{})

		gha.SetOutput("issue_key", "PROJ-1")

		assert.Equal(t, "::set-output name=issue_key::PROJ-1\n", out.String())
	})

	t.Run("escapes newlines in fallback", func(t *testing.T) {
		gha, out := newTestRunner(map[string]string{})

		gha.SetOutput("response", "line1\nline2")

		assert.Contains(t, out.String(), "line1%0Aline2")
		assert.False(t, strings.Contains(strings.TrimSuffix(out.String(), "\n"), "\nline2"))
	})
}

func TestGitHubActions_SetFailed(t *testing.T) {
	gha, out := newTestRunner(map[string]string{})

	assert.False(t, gha.Failed())
	gha.SetFailed("Jira API error (status 400): bad request")
	assert.True(t, gha.Failed())
	assert.Equal(t, "::error::Jira API error (status 400): bad request\n", out.String())
}

func TestGitHubActions_Debug(t *testing.T) {
	gha, out := newTestRunner(map[string]string{})

	gha.Debug("dispatching get_issue")

	assert.Equal(t, "::debug::dispatching get_issue\n", out.String())
	assert.False(t, gha.Failed())
}
