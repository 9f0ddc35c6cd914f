package application

import (
	"fmt"

	"github.com/marcelFriedl737/Jira-MCP-Server/internal/domain"
)

// getStringParam extracts a string parameter from the arguments map.
// A required parameter must be present and a non-empty string; an empty
// string counts as missing. Optional parameters default to "".
func getStringParam(args map[string]interface{}, name string, required bool) (string, error) {
	value, exists := args[name]
	if !exists {
		if required {
			return "", &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return "", nil
	}

	strValue, ok := value.(string)
	if !ok {
		return "", &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a string", name),
		}
	}

	if required && strValue == "" {
		return "", &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("missing required parameter: %s", name),
		}
	}

	return strValue, nil
}

// getStringSliceParam extracts an optional array-of-strings parameter.
// A missing parameter yields nil without error.
func getStringSliceParam(args map[string]interface{}, name string) ([]string, error) {
	value, exists := args[name]
	if !exists {
		return nil, nil
	}

	items, ok := value.([]interface{})
	if !ok {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be an array of strings", name),
		}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		strValue, ok := item.(string)
		if !ok {
			return nil, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("parameter %s must be an array of strings", name),
			}
		}
		result = append(result, strValue)
	}

	return result, nil
}

// Typed argument records, one per tool. Each parse function narrows the
// untyped argument bag into its record or fails with an invalid-params
// error before any network call is made.

type getUserArgs struct {
	Email string
}

func parseGetUserArgs(args map[string]interface{}) (*getUserArgs, error) {
	email, err := getStringParam(args, "email", true)
	if err != nil {
		return nil, err
	}

	return &getUserArgs{Email: email}, nil
}

type getIssuesArgs struct {
	ProjectKey string
	JQL        string
}

func parseGetIssuesArgs(args map[string]interface{}) (*getIssuesArgs, error) {
	projectKey, err := getStringParam(args, "projectKey", true)
	if err != nil {
		return nil, err
	}

	jql, err := getStringParam(args, "jql", false)
	if err != nil {
		return nil, err
	}

	return &getIssuesArgs{ProjectKey: projectKey, JQL: jql}, nil
}

type getIssueArgs struct {
	IssueKey string
}

func parseGetIssueArgs(args map[string]interface{}) (*getIssueArgs, error) {
	issueKey, err := getStringParam(args, "issueKey", true)
	if err != nil {
		return nil, err
	}

	return &getIssueArgs{IssueKey: issueKey}, nil
}

type createIssueArgs struct {
	ProjectKey  string
	Summary     string
	IssueType   string
	Description string
	Assignee    string
	Labels      []string
	Components  []string
	Priority    string
	Parent      string
}

func parseCreateIssueArgs(args map[string]interface{}) (*createIssueArgs, error) {
	projectKey, err := getStringParam(args, "projectKey", true)
	if err != nil {
		return nil, err
	}

	summary, err := getStringParam(args, "summary", true)
	if err != nil {
		return nil, err
	}

	issueType, err := getStringParam(args, "issueType", true)
	if err != nil {
		return nil, err
	}

	description, err := getStringParam(args, "description", false)
	if err != nil {
		return nil, err
	}

	assignee, err := getStringParam(args, "assignee", false)
	if err != nil {
		return nil, err
	}

	labels, err := getStringSliceParam(args, "labels")
	if err != nil {
		return nil, err
	}

	components, err := getStringSliceParam(args, "components")
	if err != nil {
		return nil, err
	}

	priority, err := getStringParam(args, "priority", false)
	if err != nil {
		return nil, err
	}

	parent, err := getStringParam(args, "parent", false)
	if err != nil {
		return nil, err
	}

	return &createIssueArgs{
		ProjectKey:  projectKey,
		Summary:     summary,
		IssueType:   issueType,
		Description: description,
		Assignee:    assignee,
		Labels:      labels,
		Components:  components,
		Priority:    priority,
		Parent:      parent,
	}, nil
}

type updateIssueArgs struct {
	IssueKey    string
	Summary     string
	Description string
	Assignee    string
	Status      string
	Priority    string
}

func parseUpdateIssueArgs(args map[string]interface{}) (*updateIssueArgs, error) {
	issueKey, err := getStringParam(args, "issueKey", true)
	if err != nil {
		return nil, err
	}

	summary, err := getStringParam(args, "summary", false)
	if err != nil {
		return nil, err
	}

	description, err := getStringParam(args, "description", false)
	if err != nil {
		return nil, err
	}

	assignee, err := getStringParam(args, "assignee", false)
	if err != nil {
		return nil, err
	}

	status, err := getStringParam(args, "status", false)
	if err != nil {
		return nil, err
	}

	priority, err := getStringParam(args, "priority", false)
	if err != nil {
		return nil, err
	}

	return &updateIssueArgs{
		IssueKey:    issueKey,
		Summary:     summary,
		Description: description,
		Assignee:    assignee,
		Status:      status,
		Priority:    priority,
	}, nil
}

type deleteIssueArgs struct {
	IssueKey string
}

func parseDeleteIssueArgs(args map[string]interface{}) (*deleteIssueArgs, error) {
	issueKey, err := getStringParam(args, "issueKey", true)
	if err != nil {
		return nil, err
	}

	return &deleteIssueArgs{IssueKey: issueKey}, nil
}

type createIssueLinkArgs struct {
	InwardIssueKey  string
	OutwardIssueKey string
	LinkType        string
}

func parseCreateIssueLinkArgs(args map[string]interface{}) (*createIssueLinkArgs, error) {
	inwardIssueKey, err := getStringParam(args, "inwardIssueKey", true)
	if err != nil {
		return nil, err
	}

	outwardIssueKey, err := getStringParam(args, "outwardIssueKey", true)
	if err != nil {
		return nil, err
	}

	linkType, err := getStringParam(args, "linkType", true)
	if err != nil {
		return nil, err
	}

	return &createIssueLinkArgs{
		InwardIssueKey:  inwardIssueKey,
		OutwardIssueKey: outwardIssueKey,
		LinkType:        linkType,
	}, nil
}

type addCommentArgs struct {
	IssueKey string
	Body     string
}

func parseAddCommentArgs(args map[string]interface{}) (*addCommentArgs, error) {
	issueKey, err := getStringParam(args, "issueKey", true)
	if err != nil {
		return nil, err
	}

	body, err := getStringParam(args, "body", true)
	if err != nil {
		return nil, err
	}

	return &addCommentArgs{IssueKey: issueKey, Body: body}, nil
}
