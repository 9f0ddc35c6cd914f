// Package application wires the Jira tool workflows to the MCP server:
// the tool catalog, argument validation, the per-tool workflows and the
// response envelope they all share.
package application

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names exposed in the catalog.
const (
	ToolListIssueTypes  = "list_issue_types"
	ToolListLinkTypes   = "list_link_types"
	ToolListFields      = "list_fields"
	ToolGetUser         = "get_user"
	ToolGetIssues       = "get_issues"
	ToolGetIssue        = "get_issue"
	ToolCreateIssue     = "create_issue"
	ToolUpdateIssue     = "update_issue"
	ToolDeleteIssue     = "delete_issue"
	ToolCreateIssueLink = "create_issue_link"
	ToolAddComment      = "add_comment"
)

func newListIssueTypesTool() mcp.Tool {
	return mcp.NewTool(ToolListIssueTypes,
		mcp.WithDescription("List all issue types available in the Jira instance, including whether each is a subtask type"),
	)
}

func newListLinkTypesTool() mcp.Tool {
	return mcp.NewTool(ToolListLinkTypes,
		mcp.WithDescription("List all issue link types (e.g. Blocks, Duplicate, Relates) available in the Jira instance"),
	)
}

func newListFieldsTool() mcp.Tool {
	return mcp.NewTool(ToolListFields,
		mcp.WithDescription("List all issue fields, system and custom, known to the Jira instance"),
	)
}

func newGetUserTool() mcp.Tool {
	return mcp.NewTool(ToolGetUser,
		mcp.WithDescription("Look up a Jira user by email address and return their account ID"),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address of the user to look up"),
		),
	)
}

func newGetIssuesTool() mcp.Tool {
	return mcp.NewTool(ToolGetIssues,
		mcp.WithDescription("Fetch issues of a project, optionally narrowed by an extra JQL filter"),
		mcp.WithString("projectKey",
			mcp.Required(),
			mcp.Description("Project key to fetch issues from (e.g. 'PROJ')"),
		),
		mcp.WithString("jql",
			mcp.Description("Additional JQL filter combined with the project clause via AND (e.g. 'status = Done')"),
		),
	)
}

func newGetIssueTool() mcp.Tool {
	return mcp.NewTool(ToolGetIssue,
		mcp.WithDescription("Fetch a single issue by its key with all fields"),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("Key of the issue to fetch (e.g. 'PROJ-123')"),
		),
	)
}

func newCreateIssueTool() mcp.Tool {
	return mcp.NewTool(ToolCreateIssue,
		mcp.WithDescription("Create a new Jira issue. Plain-text descriptions are converted to Jira's rich document format, including bullet lists, numbered lists and headings"),
		mcp.WithString("projectKey",
			mcp.Required(),
			mcp.Description("Key of the project to create the issue in"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("One-line summary of the issue"),
		),
		mcp.WithString("issueType",
			mcp.Required(),
			mcp.Description("Name of the issue type (e.g. 'Task', 'Bug', 'Story')"),
		),
		mcp.WithString("description",
			mcp.Description("Plain-text description; lines starting with '- ' or '1. ' become lists, lines ending with ':' before a blank line become headings"),
		),
		mcp.WithString("assignee",
			mcp.Description("Account ID of the user to assign; defaults to the configured default assignee"),
		),
		mcp.WithArray("labels",
			mcp.Description("Labels to apply to the issue"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
		mcp.WithArray("components",
			mcp.Description("Names of project components to associate with the issue"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
		mcp.WithString("priority",
			mcp.Description("Name of the priority (e.g. 'High', 'Medium', 'Low')"),
		),
		mcp.WithString("parent",
			mcp.Description("Key of the parent issue; creates the new issue as its subtask"),
		),
	)
}

func newUpdateIssueTool() mcp.Tool {
	return mcp.NewTool(ToolUpdateIssue,
		mcp.WithDescription("Update fields of an existing issue. The assignee is resolved by user search, and a status change is applied via the matching workflow transition when one exists"),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("Key of the issue to update (e.g. 'PROJ-123')"),
		),
		mcp.WithString("summary",
			mcp.Description("New one-line summary"),
		),
		mcp.WithString("description",
			mcp.Description("New plain-text description, converted to Jira's rich document format"),
		),
		mcp.WithString("assignee",
			mcp.Description("Name or email of the new assignee; the first matching user is used"),
		),
		mcp.WithString("status",
			mcp.Description("Target status name; matched case-insensitively against the issue's available transitions"),
		),
		mcp.WithString("priority",
			mcp.Description("Name of the new priority"),
		),
	)
}

func newDeleteIssueTool() mcp.Tool {
	return mcp.NewTool(ToolDeleteIssue,
		mcp.WithDescription("Delete an issue by its key"),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("Key of the issue to delete (e.g. 'PROJ-123')"),
		),
	)
}

func newCreateIssueLinkTool() mcp.Tool {
	return mcp.NewTool(ToolCreateIssueLink,
		mcp.WithDescription("Create a link of the given type between two issues"),
		mcp.WithString("inwardIssueKey",
			mcp.Required(),
			mcp.Description("Key of the inward issue (e.g. the one that is blocked)"),
		),
		mcp.WithString("outwardIssueKey",
			mcp.Required(),
			mcp.Description("Key of the outward issue (e.g. the one that blocks)"),
		),
		mcp.WithString("linkType",
			mcp.Required(),
			mcp.Description("Name of the link type (e.g. 'Blocks', 'Relates')"),
		),
	)
}

func newAddCommentTool() mcp.Tool {
	return mcp.NewTool(ToolAddComment,
		mcp.WithDescription("Add a comment to an issue. The plain-text body is converted to Jira's rich document format"),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("Key of the issue to comment on (e.g. 'PROJ-123')"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain-text comment body"),
		),
	)
}
