// Package infrastructure contains the HTTP implementation of the Jira
// REST API port defined in the domain package.
package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/marcelFriedl737/Jira-MCP-Server/internal/domain"
)

// JiraClient handles Jira Cloud v3 API interactions. It implements the
// domain.JiraAPI interface and performs one REST call per method.
type JiraClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewJiraClient creates a new Jira API client.
// The baseURL should be the root URL of the Jira Cloud instance
// (e.g., "https://example.atlassian.net"). The httpClient is expected to
// carry authentication, see domain.NewAuthenticatedClient.
func NewJiraClient(baseURL string, httpClient *http.Client) *JiraClient {
	return &JiraClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BrowseURL returns the user-facing URL for an issue key.
func (c *JiraClient) BrowseURL(issueKey string) string {
	return fmt.Sprintf("%s/browse/%s", c.baseURL, issueKey)
}

// do executes an HTTP request with common JSON headers applied.
func (c *JiraClient) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// apiError drains the response body into an HTTPError carrying the failed
// status. The body text is preserved verbatim so Jira's own error messages
// reach the caller.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return domain.NewHTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(body)))
}

// ListIssueTypes retrieves all issue types visible to the authenticated user.
func (c *JiraClient) ListIssueTypes(ctx context.Context) ([]domain.IssueType, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/issuetype", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var issueTypes []domain.IssueType
	if err := json.NewDecoder(resp.Body).Decode(&issueTypes); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return issueTypes, nil
}

// ListLinkTypes retrieves all issue link types as raw JSON objects.
func (c *JiraClient) ListLinkTypes(ctx context.Context) ([]map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/issueLinkType", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	// The endpoint wraps the list in an issueLinkTypes envelope.
	var result struct {
		IssueLinkTypes []map[string]interface{} `json:"issueLinkTypes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.IssueLinkTypes, nil
}

// ListFields retrieves all fields, system and custom, as raw JSON objects.
func (c *JiraClient) ListFields(ctx context.Context) ([]map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/field", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var fields []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return fields, nil
}

// FindUsers searches users matching the query. Inactive accounts are
// filtered out, and at most maxResults users are returned.
func (c *JiraClient) FindUsers(ctx context.Context, query string, maxResults int) ([]domain.User, error) {
	params := url.Values{}
	params.Set("query", query)
	if maxResults > 0 {
		params.Set("maxResults", strconv.Itoa(maxResults))
	}

	endpoint := fmt.Sprintf("%s/rest/api/3/user/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var users []domain.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// The search endpoint has no active-only parameter, so filter here.
	active := make([]domain.User, 0, len(users))
	for _, user := range users {
		if user.Active {
			active = append(active, user)
		}
	}
	if maxResults > 0 && len(active) > maxResults {
		active = active[:maxResults]
	}

	return active, nil
}

// SearchIssues performs a JQL search with the given field projection and
// result cap. Issues come back as raw JSON objects.
func (c *JiraClient) SearchIssues(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResults, error) {
	params := url.Values{}
	params.Set("jql", opts.JQL)
	if opts.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(opts.MaxResults))
	}
	if len(opts.Fields) > 0 {
		params.Set("fields", strings.Join(opts.Fields, ","))
	}

	endpoint := fmt.Sprintf("%s/rest/api/3/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var results domain.SearchResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &results, nil
}

// GetIssue retrieves a single issue by its key (e.g., "TEST-123") as a
// raw JSON object.
func (c *JiraClient) GetIssue(ctx context.Context, issueKey string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s", c.baseURL, issueKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var issue map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return issue, nil
}

// CreateIssue creates a new issue and returns its assigned identifiers.
func (c *JiraClient) CreateIssue(ctx context.Context, issue *domain.IssueCreate) (*domain.CreatedIssue, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue", c.baseURL)

	body, err := json.Marshal(issue)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issue: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var created domain.CreatedIssue
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &created, nil
}

// UpdateIssue applies the given field values to an existing issue.
func (c *JiraClient) UpdateIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s", c.baseURL, issueKey)

	body, err := json.Marshal(domain.IssueUpdate{Fields: fields})
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// DeleteIssue deletes an issue by its key.
func (c *JiraClient) DeleteIssue(ctx context.Context, issueKey string) error {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s", c.baseURL, issueKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// ListTransitions retrieves the workflow transitions currently available
// to an issue.
func (c *JiraClient) ListTransitions(ctx context.Context, issueKey string) ([]domain.Transition, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s/transitions", c.baseURL, issueKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result struct {
		Transitions []domain.Transition `json:"transitions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Transitions, nil
}

// TransitionIssue moves an issue through the workflow transition with the
// given ID.
func (c *JiraClient) TransitionIssue(ctx context.Context, issueKey, transitionID string) error {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s/transitions", c.baseURL, issueKey)

	body, err := json.Marshal(domain.IssueTransition{
		Transition: domain.TransitionRef{ID: transitionID},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal transition: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// LinkIssues creates a link between two issues.
func (c *JiraClient) LinkIssues(ctx context.Context, link *domain.IssueLinkCreate) error {
	endpoint := fmt.Sprintf("%s/rest/api/3/issueLink", c.baseURL)

	body, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal issue link: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// AddComment appends a comment to an issue.
func (c *JiraClient) AddComment(ctx context.Context, issueKey string, comment *domain.CommentCreate) error {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s/comment", c.baseURL, issueKey)

	body, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}
