package errors

import (
	"encoding/json"
	"fmt"
)

// JiraError represents a rejection from the Jira API: any response whose
// status code falls outside the 2xx range.
type JiraError struct {
	StatusCode int
	Body       interface{}
}

// Error implements the error interface.
func (e *JiraError) Error() string {
	return fmt.Sprintf("Jira API error (status %d): %s", e.StatusCode, serializeBody(e.Body))
}

// NewJiraError creates a new JiraError carrying the full response body.
func NewJiraError(statusCode int, body interface{}) *JiraError {
	return &JiraError{
		StatusCode: statusCode,
		Body:       body,
	}
}

// Succeeded reports whether an HTTP status code counts as success.
func Succeeded(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func serializeBody(body interface{}) string {
	if body == nil {
		return ""
	}
	if s, ok := body.(string); ok {
		return s
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("%v", body)
	}
	return string(raw)
}
