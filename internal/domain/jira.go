package domain

import (
	"encoding/json"
	"fmt"
)

// FlexibleID handles Jira identifiers that arrive as either JSON strings
// or JSON numbers. Jira Cloud normally returns string IDs but numeric IDs
// show up in some payloads, so both forms decode into a string.
type FlexibleID string

// UnmarshalJSON implements custom unmarshaling for FlexibleID.
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleID(n.String())
		return nil
	}

	return fmt.Errorf("id must be a string or number")
}

// String returns the string representation of the ID.
func (f FlexibleID) String() string {
	return string(f)
}

// IssueType describes an issue type as returned by the issue type listing.
// Only the fields exposed to callers are decoded.
type IssueType struct {
	ID          FlexibleID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Subtask     bool       `json:"subtask"`
}

// User is a Jira user as returned by the user search endpoint.
type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	Active       bool   `json:"active"`
}

// Transition is one workflow transition available to an issue in its
// current state.
type Transition struct {
	ID   FlexibleID `json:"id"`
	Name string     `json:"name"`
}

// SearchResults is the envelope returned by the JQL search endpoint.
// Issues are kept as raw JSON objects so callers see exactly what Jira
// returned for the requested fields.
type SearchResults struct {
	StartAt    int                      `json:"startAt"`
	MaxResults int                      `json:"maxResults"`
	Total      int                      `json:"total"`
	Issues     []map[string]interface{} `json:"issues"`
}

// CreatedIssue is the response body from a successful issue creation.
type CreatedIssue struct {
	ID   FlexibleID `json:"id"`
	Key  string     `json:"key"`
	Self string     `json:"self"`
}

// ProjectRef references a project by key in request payloads.
type ProjectRef struct {
	Key string `json:"key"`
}

// IssueTypeRef references an issue type by name in request payloads.
type IssueTypeRef struct {
	Name string `json:"name"`
}

// UserRef references a user by account ID in request payloads.
type UserRef struct {
	AccountID string `json:"accountId"`
}

// ComponentRef references a project component by name.
type ComponentRef struct {
	Name string `json:"name"`
}

// PriorityRef references a priority by name.
type PriorityRef struct {
	Name string `json:"name"`
}

// IssueRef references an issue by key. Used for subtask parents and for
// the two sides of an issue link.
type IssueRef struct {
	Key string `json:"key"`
}

// LinkTypeRef references an issue link type by name.
type LinkTypeRef struct {
	Name string `json:"name"`
}

// IssueCreate is the request body for creating an issue.
type IssueCreate struct {
	Fields IssueCreateFields `json:"fields"`
}

// IssueCreateFields holds the writable fields of a new issue. Optional
// fields are omitted from the payload entirely when not supplied.
type IssueCreateFields struct {
	Project     ProjectRef     `json:"project"`
	Summary     string         `json:"summary"`
	IssueType   IssueTypeRef   `json:"issuetype"`
	Description *ADFDocument   `json:"description,omitempty"`
	Assignee    *UserRef       `json:"assignee,omitempty"`
	Labels      []string       `json:"labels,omitempty"`
	Components  []ComponentRef `json:"components,omitempty"`
	Priority    *PriorityRef   `json:"priority,omitempty"`
	Parent      *IssueRef      `json:"parent,omitempty"`
}

// IssueUpdate is the request body for updating issue fields.
type IssueUpdate struct {
	Fields map[string]interface{} `json:"fields"`
}

// IssueTransition is the request body for moving an issue through a
// workflow transition.
type IssueTransition struct {
	Transition TransitionRef `json:"transition"`
}

// TransitionRef references a transition by ID.
type TransitionRef struct {
	ID string `json:"id"`
}

// IssueLinkCreate is the request body for linking two issues.
type IssueLinkCreate struct {
	Type         LinkTypeRef `json:"type"`
	InwardIssue  IssueRef    `json:"inwardIssue"`
	OutwardIssue IssueRef    `json:"outwardIssue"`
}

// CommentCreate is the request body for adding a comment to an issue.
// Jira Cloud v3 requires comment bodies in Atlassian Document Format.
type CommentCreate struct {
	Body *ADFDocument `json:"body"`
}
