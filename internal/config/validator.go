package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateConnection validates the resolved Jira connection settings and
// returns an error listing every problem found.
func ValidateConnection(baseURL, userEmail, apiToken string) error {
	var errors []string

	if baseURL == "" {
		errors = append(errors, "jira_base_url is required")
	} else {
		u, err := url.Parse(baseURL)
		if err != nil {
			errors = append(errors, fmt.Sprintf("jira_base_url is not a valid URL: %v", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("jira_base_url must use http or https, got: %q", baseURL))
		}
	}

	if userEmail == "" {
		errors = append(errors, "jira_user_email is required")
	}
	if apiToken == "" {
		errors = append(errors, "jira_api_token is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
