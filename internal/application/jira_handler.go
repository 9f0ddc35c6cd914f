package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/marcelFriedl737/Jira-MCP-Server/internal/domain"
)

// searchFields is the fixed projection requested for issue listings.
var searchFields = []string{"summary", "description", "status", "priority", "assignee", "issuetype", "parent", "subtasks"}

// maxSearchResults caps how many issues a single listing returns.
const maxSearchResults = 100

// JiraDefaults carries the configured fallbacks substituted when a tool
// call omits the matching argument. The assignee is an account ID and is
// used verbatim, without a user lookup.
type JiraDefaults struct {
	ProjectKey string
	Assignee   string
}

// JiraHandler implements the tool workflows. Each method narrows the raw
// arguments, performs the downstream Jira calls and shapes the success
// payload for one tool; the uniform error envelope is applied by the
// server's guard wrapper, so methods just return errors.
type JiraHandler struct {
	client   domain.JiraAPI
	mapper   domain.ResponseMapper
	defaults JiraDefaults
}

// NewJiraHandler creates a handler for the Jira tool catalog.
func NewJiraHandler(client domain.JiraAPI, mapper domain.ResponseMapper, defaults JiraDefaults) *JiraHandler {
	return &JiraHandler{
		client:   client,
		mapper:   mapper,
		defaults: defaults,
	}
}

// registrations pairs every catalog tool with its workflow method.
func (h *JiraHandler) registrations() []toolRegistration {
	return []toolRegistration{
		{newListIssueTypesTool(), h.listIssueTypes},
		{newListLinkTypesTool(), h.listLinkTypes},
		{newListFieldsTool(), h.listFields},
		{newGetUserTool(), h.getUser},
		{newGetIssuesTool(), h.getIssues},
		{newGetIssueTool(), h.getIssue},
		{newCreateIssueTool(), h.createIssue},
		{newUpdateIssueTool(), h.updateIssue},
		{newDeleteIssueTool(), h.deleteIssue},
		{newCreateIssueLinkTool(), h.createIssueLink},
		{newAddCommentTool(), h.addComment},
	}
}

// textResult renders a payload through the response mapper into the
// single text content element every successful call carries.
func (h *JiraHandler) textResult(payload interface{}) (*mcp.CallToolResult, error) {
	text, err := h.mapper.MapToText(payload)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// listIssueTypes handles the list_issue_types tool call.
func (h *JiraHandler) listIssueTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueTypes, err := h.client.ListIssueTypes(ctx)
	if err != nil {
		return nil, err
	}

	return h.textResult(issueTypes)
}

// listLinkTypes handles the list_link_types tool call.
func (h *JiraHandler) listLinkTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	linkTypes, err := h.client.ListLinkTypes(ctx)
	if err != nil {
		return nil, err
	}

	return h.textResult(linkTypes)
}

// listFields handles the list_fields tool call.
func (h *JiraHandler) listFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fields, err := h.client.ListFields(ctx)
	if err != nil {
		return nil, err
	}

	return h.textResult(fields)
}

// getUser handles the get_user tool call.
func (h *JiraHandler) getUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseGetUserArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	users, err := h.client.FindUsers(ctx, params.Email, 1)
	if err != nil {
		return nil, err
	}

	// The lookup succeeded but found nobody. That is reported through an
	// error-flagged envelope with a plain sentence, not a failure.
	if len(users) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("No user found with email: %s", params.Email)), nil
	}

	user := users[0]
	return h.textResult(map[string]interface{}{
		"accountId":    user.AccountID,
		"displayName":  user.DisplayName,
		"emailAddress": user.EmailAddress,
	})
}

// getIssues handles the get_issues tool call.
func (h *JiraHandler) getIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseGetIssuesArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	results, err := h.client.SearchIssues(ctx, domain.SearchOptions{
		JQL:        projectQuery(params.ProjectKey, params.JQL),
		MaxResults: maxSearchResults,
		Fields:     searchFields,
	})
	if err != nil {
		return nil, err
	}

	return h.textResult(results.Issues)
}

// projectQuery scopes a search to one project, conjoining any extra JQL
// filter the caller supplied.
func projectQuery(projectKey, jql string) string {
	query := fmt.Sprintf("project = %s", projectKey)
	if jql != "" {
		query = fmt.Sprintf("%s AND %s", query, jql)
	}
	return query
}

// getIssue handles the get_issue tool call.
func (h *JiraHandler) getIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseGetIssueArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	issue, err := h.client.GetIssue(ctx, params.IssueKey)
	if err != nil {
		return nil, err
	}

	return h.textResult(issue)
}

// createIssue handles the create_issue tool call.
func (h *JiraHandler) createIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseCreateIssueArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	projectKey := params.ProjectKey
	if projectKey == "" {
		// Unreachable through the validator, which requires projectKey.
		// Kept so the workflow stays safe for callers that bypass it.
		projectKey = h.defaults.ProjectKey
	}

	assignee := params.Assignee
	if assignee == "" {
		assignee = h.defaults.Assignee
	}

	fields := domain.IssueCreateFields{
		Project:   domain.ProjectRef{Key: projectKey},
		Summary:   params.Summary,
		IssueType: domain.IssueTypeRef{Name: params.IssueType},
		Labels:    params.Labels,
	}

	if params.Description != "" {
		fields.Description = domain.ConvertTextToADF(params.Description)
	}
	if assignee != "" {
		fields.Assignee = &domain.UserRef{AccountID: assignee}
	}
	for _, name := range params.Components {
		fields.Components = append(fields.Components, domain.ComponentRef{Name: name})
	}
	if params.Priority != "" {
		fields.Priority = &domain.PriorityRef{Name: params.Priority}
	}
	if params.Parent != "" {
		fields.Parent = &domain.IssueRef{Key: params.Parent}
	}

	created, err := h.client.CreateIssue(ctx, &domain.IssueCreate{Fields: fields})
	if err != nil {
		return nil, err
	}

	return h.textResult(map[string]interface{}{
		"id":  created.ID,
		"key": created.Key,
		"url": h.client.BrowseURL(created.Key),
	})
}

// updateIssue handles the update_issue tool call. The downstream calls
// run in a fixed order: user search, transition listing, transition,
// field update.
func (h *JiraHandler) updateIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseUpdateIssueArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if params.Summary != "" {
		fields["summary"] = params.Summary
	}
	if params.Priority != "" {
		fields["priority"] = domain.PriorityRef{Name: params.Priority}
	}
	if params.Description != "" {
		fields["description"] = domain.ConvertTextToADF(params.Description)
	}

	// The assignee is resolved to an account ID through a user search
	// before anything is written.
	if params.Assignee != "" {
		assignee, err := h.resolveAssignee(ctx, params.Assignee)
		if err != nil {
			return nil, err
		}
		fields["assignee"] = assignee
	}

	// A status change rides on a workflow transition, matched by name
	// ignoring case. An issue without a matching transition keeps its
	// current status; that is not an error.
	if params.Status != "" {
		if err := h.transitionByName(ctx, params.IssueKey, params.Status); err != nil {
			return nil, err
		}
	}

	if len(fields) > 0 {
		if err := h.client.UpdateIssue(ctx, params.IssueKey, fields); err != nil {
			return nil, err
		}
	}

	return h.textResult(map[string]interface{}{
		"message": fmt.Sprintf("Issue %s updated successfully", params.IssueKey),
		"issue": map[string]interface{}{
			"key": params.IssueKey,
			"url": h.client.BrowseURL(params.IssueKey),
		},
	})
}

// resolveAssignee finds the account ID behind an assignee query, taking
// the first active match.
func (h *JiraHandler) resolveAssignee(ctx context.Context, query string) (domain.UserRef, error) {
	users, err := h.client.FindUsers(ctx, query, 1)
	if err != nil {
		return domain.UserRef{}, err
	}
	if len(users) == 0 {
		return domain.UserRef{}, fmt.Errorf("no user found matching %q", query)
	}
	return domain.UserRef{AccountID: users[0].AccountID}, nil
}

// transitionByName applies the transition whose name equals the target
// status, ignoring case. Without a match the issue is left as it is.
func (h *JiraHandler) transitionByName(ctx context.Context, issueKey, status string) error {
	transitions, err := h.client.ListTransitions(ctx, issueKey)
	if err != nil {
		return err
	}

	for _, transition := range transitions {
		if strings.EqualFold(transition.Name, status) {
			return h.client.TransitionIssue(ctx, issueKey, transition.ID.String())
		}
	}

	return nil
}

// deleteIssue handles the delete_issue tool call.
func (h *JiraHandler) deleteIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseDeleteIssueArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	if err := h.client.DeleteIssue(ctx, params.IssueKey); err != nil {
		return nil, err
	}

	return h.textResult(map[string]interface{}{
		"message":  fmt.Sprintf("Issue %s deleted successfully", params.IssueKey),
		"issueKey": params.IssueKey,
	})
}

// createIssueLink handles the create_issue_link tool call.
func (h *JiraHandler) createIssueLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseCreateIssueLinkArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	link := &domain.IssueLinkCreate{
		Type:         domain.LinkTypeRef{Name: params.LinkType},
		InwardIssue:  domain.IssueRef{Key: params.InwardIssueKey},
		OutwardIssue: domain.IssueRef{Key: params.OutwardIssueKey},
	}
	if err := h.client.LinkIssues(ctx, link); err != nil {
		return nil, err
	}

	return h.textResult(map[string]interface{}{
		"message":         "Issue link created successfully",
		"inwardIssueKey":  params.InwardIssueKey,
		"outwardIssueKey": params.OutwardIssueKey,
		"linkType":        params.LinkType,
	})
}

// addComment handles the add_comment tool call.
func (h *JiraHandler) addComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := parseAddCommentArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	comment := &domain.CommentCreate{Body: domain.ConvertTextToADF(params.Body)}
	if err := h.client.AddComment(ctx, params.IssueKey, comment); err != nil {
		return nil, err
	}

	return h.textResult(map[string]interface{}{
		"message": fmt.Sprintf("Comment added to issue %s successfully", params.IssueKey),
		"issue": map[string]interface{}{
			"key": params.IssueKey,
			"url": h.client.BrowseURL(params.IssueKey),
		},
	})
}
