package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
// Connection settings supplied as action inputs always win; the values here
// only fill in whatever the inputs leave blank.
func Load(cfgFile string) {
	// explicit .env loading
	if err := godotenv.Load(); err != nil {
		// ignore if .env is missing
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("JIRACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Bare JIRA_* variables are the common convention in CI secrets; honor
	// them when the prefixed form is not set.
	if os.Getenv("JIRACT_JIRA_BASE_URL") == "" && os.Getenv("JIRA_BASE_URL") != "" {
		viper.SetDefault("jira.base_url", os.Getenv("JIRA_BASE_URL"))
	}
	if os.Getenv("JIRACT_JIRA_USER_EMAIL") == "" && os.Getenv("JIRA_USER_EMAIL") != "" {
		viper.SetDefault("jira.user_email", os.Getenv("JIRA_USER_EMAIL"))
	}
	if os.Getenv("JIRACT_JIRA_API_TOKEN") == "" && os.Getenv("JIRA_API_TOKEN") != "" {
		viper.SetDefault("jira.api_token", os.Getenv("JIRA_API_TOKEN"))
	}

	viper.SetDefault("verbose", false)

	// Notification defaults
	slackEnabled := false
	if os.Getenv("SLACK_BOT_USER_TOKEN") != "" {
		slackEnabled = true
	}
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#general")

	// If a config file is found, read it in; a missing file is fine.
	_ = viper.ReadInConfig()
}
