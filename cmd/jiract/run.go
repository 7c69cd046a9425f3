package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jiract/internal/config"
	"jiract/internal/jira"
	"jiract/internal/notify"
	"jiract/internal/runner"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runDryRun bool

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the configured Jira operation",
		Long: `Reads the operation name and its parameters from the CI runner inputs,
performs exactly one call sequence against the Jira API, and publishes
the result as runner outputs. Any failure sets status=error and marks
the whole run failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gha := runner.NewGitHubActions()
			runAction(cmd.Context(), gha, cmd.OutOrStdout())
			if gha.Failed() {
				exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the request instead of calling the Jira API")
	return cmd
}

var runCmd = NewRunCmd()

func init() {
	rootCmd.AddCommand(runCmd)
}

// runAction performs one operation and reports entirely through the runner.
// Every error ends up here: status=error plus SetFailed, and none of the
// other outputs are emitted.
func runAction(ctx context.Context, r runner.Runner, out io.Writer) {
	operation := r.GetInput("operation")

	notifier := notify.NewNotifier(func(format string, args ...interface{}) {
		r.Debug(fmt.Sprintf(format, args...))
	})

	result, err := executeOperation(ctx, r, out)
	if err != nil {
		r.SetOutput("status", "error")
		r.SetFailed(err.Error())
		notifier.RunCompleted(ctx, operation, "", "error")
		return
	}

	response, err := json.Marshal(result.Data)
	if err != nil {
		r.SetOutput("status", "error")
		r.SetFailed(fmt.Sprintf("failed to serialize response: %v", err))
		notifier.RunCompleted(ctx, operation, result.IssueKey, "error")
		return
	}

	r.SetOutput("status", "success")
	if result.IssueKey != "" {
		r.SetOutput("issue_key", result.IssueKey)
	}
	if result.IssueID != "" {
		r.SetOutput("issue_id", result.IssueID)
	}
	r.SetOutput("response", string(response))
	notifier.RunCompleted(ctx, operation, result.IssueKey, "success")
}

func executeOperation(ctx context.Context, r runner.Runner, out io.Writer) (*jira.Result, error) {
	operation, err := r.RequireInput("operation")
	if err != nil {
		return nil, err
	}

	baseURL := resolveSetting(r, "jira_base_url", "jira.base_url")
	userEmail := resolveSetting(r, "jira_user_email", "jira.user_email")
	apiToken := resolveSetting(r, "jira_api_token", "jira.api_token")
	if err := config.ValidateConnection(baseURL, userEmail, apiToken); err != nil {
		return nil, err
	}

	client := jira.NewClient(baseURL, userEmail, apiToken)
	if runDryRun {
		client.HTTPClient = &http.Client{Transport: &dryRunTransport{out: out}}
	}

	r.Debug(fmt.Sprintf("dispatching %s against %s", operation, client.BaseURL))
	return jira.Dispatch(ctx, client, operation, r)
}

// resolveSetting prefers the runner input and falls back to viper (env vars,
// .env, config file).
func resolveSetting(r runner.Runner, input, key string) string {
	if v := r.GetInput(input); v != "" {
		return v
	}
	return viper.GetString(key)
}

// dryRunTransport prints each request instead of sending it and answers with
// an empty success body.
type dryRunTransport struct {
	out io.Writer
}

func (t *dryRunTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	fmt.Fprintf(t.out, "[dry-run] %s %s\n", req.Method, req.URL.String())
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body.Close()
		if len(body) > 0 {
			fmt.Fprintf(t.out, "[dry-run] body: %s\n", body)
		}
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}
