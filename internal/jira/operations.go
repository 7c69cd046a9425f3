package jira

import (
	"context"
	"fmt"

	jierrors "jiract/internal/errors"
)

// Operation names accepted by Dispatch.
const (
	OpCreateIssue     = "create_issue"
	OpUpdateIssue     = "update_issue"
	OpTransitionIssue = "transition_issue"
	OpAddComment      = "add_comment"
	OpGetIssue        = "get_issue"
	OpGetProject      = "get_project"
	OpCreateVersion   = "create_version"
)

// Inputs supplies named string inputs to an operation pipeline. GetInput
// returns the empty string for an absent input; RequireInput fails instead.
type Inputs interface {
	GetInput(name string) string
	RequireInput(name string) (string, error)
}

// Result is the uniform outcome of a single operation. IssueKey and IssueID
// are empty for operations that are not issue-scoped.
type Result struct {
	IssueKey string
	IssueID  string
	Data     interface{}
}

// Dispatch runs exactly one operation pipeline against the Jira API. An
// unrecognized operation name fails before any network call is made.
func Dispatch(ctx context.Context, client *Client, operation string, in Inputs) (*Result, error) {
	switch operation {
	case OpCreateIssue:
		return createIssue(ctx, client, in)
	case OpUpdateIssue:
		return updateIssue(ctx, client, in)
	case OpTransitionIssue:
		return transitionIssue(ctx, client, in)
	case OpAddComment:
		return addComment(ctx, client, in)
	case OpGetIssue:
		return getIssue(ctx, client, in)
	case OpGetProject:
		return getProject(ctx, client, in)
	case OpCreateVersion:
		return createVersion(ctx, client, in)
	default:
		return nil, fmt.Errorf("Unsupported operation: %s", operation)
	}
}

func createIssue(ctx context.Context, client *Client, in Inputs) (*Result, error) {
	projectKey, err := in.RequireInput("project_key")
	if err != nil {
		return nil, err
	}
	issueType, err := in.RequireInput("issue_type")
	if err != nil {
		return nil, err
	}
	summary, err := in.RequireInput("summary")
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"project":   map[string]interface{}{"key": projectKey},
		"issuetype": map[string]interface{}{"name": issueType},
		"summary":   summary,
	}
	if description := in.GetInput("description"); description != "" {
		fields["description"] = description
	}
	// Extra fields land on top of the base three, so fields_json wins on
	// key collisions.
	if err := mergeFieldsJSON(fields, in.GetInput("fields_json")); err != nil {
		return nil, err
	}

	resp, err := client.PostJSON(ctx, "/rest/api/3/issue", map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, err
	}
	body, err := checkResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Result{
		IssueKey: stringField(body, "key"),
		IssueID:  stringField(body, "id"),
		Data:     body,
	}, nil
}

func updateIssue(ctx context.Context, client *Client, in Inputs) (*Result, error) {
	issueKey, err := in.RequireInput("issue_key")
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if description := in.GetInput("description"); description != "" {
		fields["description"] = description
	}
	if err := mergeFieldsJSON(fields, in.GetInput("fields_json")); err != nil {
		return nil, err
	}

	path := "/rest/api/3/issue/" + issueKey
	resp, err := client.PutJSON(ctx, path, map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, err
	}
	// The PUT response body is discarded after the status check; the
	// re-fetch below supplies the returned id and data.
	if _, err := checkResponse(resp); err != nil {
		return nil, err
	}

	return fetchIssueResult(ctx, client, issueKey)
}

func transitionIssue(ctx context.Context, client *Client, in Inputs) (*Result, error) {
	issueKey, err := in.RequireInput("issue_key")
	if err != nil {
		return nil, err
	}
	transitionID, err := in.RequireInput("transition_id")
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"transition": map[string]interface{}{"id": transitionID},
	}
	resp, err := client.PostJSON(ctx, "/rest/api/3/issue/"+issueKey+"/transitions", payload)
	if err != nil {
		return nil, err
	}
	if _, err := checkResponse(resp); err != nil {
		return nil, err
	}

	return fetchIssueResult(ctx, client, issueKey)
}

func addComment(ctx context.Context, client *Client, in Inputs) (*Result, error) {
	issueKey, err := in.RequireInput("issue_key")
	if err != nil {
		return nil, err
	}
	comment, err := in.RequireInput("comment")
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"body": commentDocument(comment),
	}
	resp, err := client.PostJSON(ctx, "/rest/api/3/issue/"+issueKey+"/comment", payload)
	if err != nil {
		return nil, err
	}
	body, err := checkResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Result{IssueKey: issueKey, Data: body}, nil
}

func getIssue(ctx context.Context, client *Client, in Inputs) (*Result, error) {
	issueKey, err := in.RequireInput("issue_key")
	if err != nil {
		return nil, err
	}
	return fetchIssueResult(ctx, client, issueKey)
}

func getProject(ctx context.Context, client *Client, in Inputs) (*Result, error) {
	projectKey, err := in.RequireInput("project_key")
	if err != nil {
		return nil, err
	}

	resp, err := client.GetJSON(ctx, "/rest/api/3/project/"+projectKey)
	if err != nil {
		return nil, err
	}
	body, err := checkResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Result{Data: body}, nil
}

func createVersion(ctx context.Context, client *Client, in Inputs) (*Result, error) {
	projectID, err := in.RequireInput("project_id")
	if err != nil {
		return nil, err
	}
	name, err := in.RequireInput("version_name")
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"name":      name,
		"projectId": projectID,
		// archived/released are always sent; an absent input reads the
		// same as an explicit "false".
		"archived": in.GetInput("version_archived") == "true",
		"released": in.GetInput("version_released") == "true",
	}
	if v := in.GetInput("version_description"); v != "" {
		payload["description"] = v
	}
	if v := in.GetInput("version_start_date"); v != "" {
		payload["startDate"] = v
	}
	if v := in.GetInput("version_release_date"); v != "" {
		payload["releaseDate"] = v
	}

	resp, err := client.PostJSON(ctx, "/rest/api/3/version", payload)
	if err != nil {
		return nil, err
	}
	body, err := checkResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Result{Data: body}, nil
}

// fetchIssueResult GETs an issue and shapes it into a Result keyed by the
// caller-supplied issue key.
func fetchIssueResult(ctx context.Context, client *Client, issueKey string) (*Result, error) {
	resp, err := client.GetJSON(ctx, "/rest/api/3/issue/"+issueKey)
	if err != nil {
		return nil, err
	}
	body, err := checkResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Result{
		IssueKey: issueKey,
		IssueID:  stringField(body, "id"),
		Data:     body,
	}, nil
}

// commentDocument wraps plain text in the ADF (Atlassian Document Format)
// shape the v3 comment endpoint requires.
func commentDocument(text string) map[string]interface{} {
	return map[string]interface{}{
		"type":    "doc",
		"version": 1,
		"content": []map[string]interface{}{
			{
				"type": "paragraph",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": text,
					},
				},
			},
		},
	}
}

func checkResponse(resp *Response) (interface{}, error) {
	if !jierrors.Succeeded(resp.StatusCode) {
		return nil, jierrors.NewJiraError(resp.StatusCode, resp.Body)
	}
	return resp.Body, nil
}

func stringField(body interface{}, key string) string {
	m, ok := body.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
