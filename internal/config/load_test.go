package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()

		Load("")

		assert.False(t, viper.GetBool("verbose"))
		assert.Equal(t, "#general", viper.GetString("notifications.slack.channel"))
		assert.False(t, viper.GetBool("notifications.slack.enabled"))
	})

	t.Run("Load From Prefixed Env", func(t *testing.T) {
		viper.Reset()
		t.Setenv("JIRACT_JIRA_BASE_URL", "https://prefixed.atlassian.net")

		Load("")

		assert.Equal(t, "https://prefixed.atlassian.net", viper.GetString("jira.base_url"))
	})

	t.Run("Bare JIRA Env Fallback", func(t *testing.T) {
		viper.Reset()
		t.Setenv("JIRA_BASE_URL", "https://bare.atlassian.net")
		t.Setenv("JIRA_USER_EMAIL", "ci@example.com")
		t.Setenv("JIRA_API_TOKEN", "secret")

		Load("")

		assert.Equal(t, "https://bare.atlassian.net", viper.GetString("jira.base_url"))
		assert.Equal(t, "ci@example.com", viper.GetString("jira.user_email"))
		assert.Equal(t, "secret", viper.GetString("jira.api_token"))
	})

	t.Run("Slack Enabled When Token Present", func(t *testing.T) {
		viper.Reset()
		t.Setenv("SLACK_BOT_USER_TOKEN", "xoxb-test")

		Load("")

		assert.True(t, viper.GetBool("notifications.slack.enabled"))
	})
}
