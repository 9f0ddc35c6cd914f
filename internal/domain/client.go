package domain

import (
	"context"
)

// SearchOptions bounds a JQL search: which fields to project into the
// results and how many issues to return at most.
type SearchOptions struct {
	JQL        string
	MaxResults int
	Fields     []string
}

// JiraAPI defines the Jira REST operations the tool workflows depend on.
// The infrastructure package provides the HTTP implementation; tests
// substitute fakes to observe which calls a workflow makes.
type JiraAPI interface {
	// ListIssueTypes returns all issue types visible to the user.
	ListIssueTypes(ctx context.Context) ([]IssueType, error)

	// ListLinkTypes returns all issue link types as raw JSON objects.
	ListLinkTypes(ctx context.Context) ([]map[string]interface{}, error)

	// ListFields returns all fields as raw JSON objects.
	ListFields(ctx context.Context) ([]map[string]interface{}, error)

	// FindUsers searches users matching the query. Only active users are
	// returned, capped at maxResults.
	FindUsers(ctx context.Context, query string, maxResults int) ([]User, error)

	// SearchIssues runs a JQL search and returns the raw result envelope.
	SearchIssues(ctx context.Context, opts SearchOptions) (*SearchResults, error)

	// GetIssue fetches a single issue as a raw JSON object.
	GetIssue(ctx context.Context, issueKey string) (map[string]interface{}, error)

	// CreateIssue submits a new issue and returns its identifiers.
	CreateIssue(ctx context.Context, issue *IssueCreate) (*CreatedIssue, error)

	// UpdateIssue applies the given field values to an existing issue.
	UpdateIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error

	// DeleteIssue removes an issue.
	DeleteIssue(ctx context.Context, issueKey string) error

	// ListTransitions returns the workflow transitions available to the
	// issue in its current state.
	ListTransitions(ctx context.Context, issueKey string) ([]Transition, error)

	// TransitionIssue moves an issue through the transition with the
	// given ID.
	TransitionIssue(ctx context.Context, issueKey, transitionID string) error

	// LinkIssues creates a link between two issues.
	LinkIssues(ctx context.Context, link *IssueLinkCreate) error

	// AddComment appends a comment to an issue.
	AddComment(ctx context.Context, issueKey string, comment *CommentCreate) error

	// BrowseURL returns the user-facing URL for an issue key.
	BrowseURL(issueKey string) string
}
