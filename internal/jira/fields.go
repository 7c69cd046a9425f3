package jira

import (
	"encoding/json"
	"fmt"
)

// mergeFieldsJSON parses raw as a JSON object and shallow-merges its keys
// into fields. An empty raw is a no-op; anything unparseable fails before a
// network call is ever attempted.
func mergeFieldsJSON(fields map[string]interface{}, raw string) error {
	if raw == "" {
		return nil
	}

	var extra map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return fmt.Errorf("Invalid fields_json: %v", err)
	}

	for k, v := range extra {
		fields[k] = v
	}
	return nil
}
