package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

// Notifier posts run-completion messages to Slack. It is a no-op unless
// notifications.slack.enabled is set and SLACK_BOT_USER_TOKEN is present.
type Notifier struct {
	client    *slack.Client
	channelID string
	logger    func(string, ...interface{})
}

// NewNotifier creates a Notifier from viper configuration and the process
// environment.
func NewNotifier(logger func(string, ...interface{})) *Notifier {
	n := &Notifier{logger: logger}

	if !viper.GetBool("notifications.slack.enabled") {
		return n
	}

	botToken := os.Getenv("SLACK_BOT_USER_TOKEN")
	if botToken == "" {
		if n.logger != nil {
			n.logger("Warning: SLACK_BOT_USER_TOKEN not set, slack notifications disabled")
		}
		return n
	}

	n.client = slack.New(botToken)
	n.channelID = viper.GetString("notifications.slack.channel")
	return n
}

// postMessage is an indirection point for tests.
var postMessage = func(ctx context.Context, api *slack.Client, channel string, opts ...slack.MsgOption) error {
	_, _, err := api.PostMessageContext(ctx, channel, opts...)
	return err
}

// RunCompleted announces the outcome of an operation run. Notification
// failures are logged and otherwise swallowed; they never fail the run.
func (n *Notifier) RunCompleted(ctx context.Context, operation, issueKey, status string) {
	if n.client == nil {
		return
	}

	msg := runMessage(operation, issueKey, status)
	if err := postMessage(ctx, n.client, n.channelID, slack.MsgOptionText(msg, false)); err != nil {
		if n.logger != nil {
			n.logger("slack notification failed: %v", err)
		}
	}
}

func runMessage(operation, issueKey, status string) string {
	if issueKey != "" {
		return fmt.Sprintf("jiract %s on %s finished with status %s", operation, issueKey, status)
	}
	return fmt.Sprintf("jiract %s finished with status %s", operation, status)
}
