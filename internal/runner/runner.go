// Package runner binds the action to the CI runner: named string inputs in,
// named string outputs and a pass/fail verdict out. The only implementation
// speaks the GitHub Actions environment protocol.
package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Runner is the narrow interface the action uses to talk to the CI runner.
type Runner interface {
	GetInput(name string) string
	RequireInput(name string) (string, error)
	SetOutput(name, value string)
	SetFailed(message string)
	Debug(message string)
	Failed() bool
}

// GitHubActions implements Runner over the GitHub Actions conventions:
// inputs are INPUT_* environment variables, outputs append to the file named
// by GITHUB_OUTPUT, and diagnostics use workflow commands on stdout.
type GitHubActions struct {
	Env    func(string) string
	Stdout io.Writer

	failed bool
}

// NewGitHubActions creates a runner bound to the real process environment.
func NewGitHubActions() *GitHubActions {
	return &GitHubActions{
		Env:    os.Getenv,
		Stdout: os.Stdout,
	}
}

// GetInput returns the value of a named input, or "" when it is absent.
func (g *GitHubActions) GetInput(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(g.Env(key))
}

// RequireInput returns the value of a named input, failing when it is absent.
func (g *GitHubActions) RequireInput(name string) (string, error) {
	value := g.GetInput(name)
	if value == "" {
		return "", fmt.Errorf("Input required and not supplied: %s", name)
	}
	return value, nil
}

// SetOutput publishes a named output value for later workflow steps.
func (g *GitHubActions) SetOutput(name, value string) {
	if path := g.Env("GITHUB_OUTPUT"); path != "" {
		if err := appendOutput(path, name, value); err == nil {
			return
		}
	}
	// Legacy fallback for runners without an output file.
	fmt.Fprintf(g.Stdout, "::set-output name=%s::%s\n", name, escapeData(value))
}

// SetFailed records the run as failed and surfaces the message as an error
// annotation.
func (g *GitHubActions) SetFailed(message string) {
	g.failed = true
	fmt.Fprintf(g.Stdout, "::error::%s\n", escapeData(message))
}

// Debug emits a debug-level workflow command, visible when step debugging is
// enabled on the runner.
func (g *GitHubActions) Debug(message string) {
	fmt.Fprintf(g.Stdout, "::debug::%s\n", escapeData(message))
}

// Failed reports whether SetFailed was called during this run.
func (g *GitHubActions) Failed() bool {
	return g.failed
}

func appendOutput(path, name, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Heredoc form so multiline values (JSON payloads) survive intact.
	delimiter := fmt.Sprintf("ghadelimiter_%d", time.Now().UnixNano())
	for strings.Contains(value, delimiter) || strings.Contains(name, delimiter) {
		delimiter += "_"
	}
	_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	return err
}

// escapeData encodes characters that would terminate a workflow command.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
