package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marcelFriedl737/Jira-MCP-Server/internal/domain"
	"github.com/marcelFriedl737/Jira-MCP-Server/internal/infrastructure"
)

// setupIntegrationServer fakes the Jira REST endpoints the workflows
// touch when exercised end to end through the real HTTP client.
func setupIntegrationServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/rest/api/3/issue/TEST-123" && r.Method == http.MethodGet:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"id": "10001",
				"key": "TEST-123",
				"fields": {
					"summary": "Test issue",
					"status": {"name": "To Do"}
				}
			}`))
		case r.URL.Path == "/rest/api/3/issue/NOTFOUND-999" && r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errorMessages":["Issue does not exist or you do not have permission to see it."]}`))
		case r.URL.Path == "/rest/api/3/search" && r.Method == http.MethodGet:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"startAt": 0,
				"maxResults": 100,
				"total": 2,
				"issues": [
					{"id": "10001", "key": "TEST-123", "fields": {"summary": "Test issue"}},
					{"id": "10002", "key": "TEST-124", "fields": {"summary": "Another issue"}}
				]
			}`))
		case r.URL.Path == "/rest/api/3/issue" && r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "10003", "key": "TEST-125", "self": "https://example.atlassian.net/rest/api/3/issue/10003"}`))
		case r.URL.Path == "/rest/api/3/user/search" && r.Method == http.MethodGet:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[
				{"accountId": "5b10ac8d82e05b22cc7d4ef5", "displayName": "Alice Adams", "emailAddress": "alice@example.com", "active": true}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errorMessages":["No such endpoint"]}`))
		}
	}))
}

// TestJiraHandler_Integration runs the workflows against the real HTTP
// client and the real response mapper to pin down the envelope shapes.
func TestJiraHandler_Integration(t *testing.T) {
	server := setupIntegrationServer()
	defer server.Close()

	client := infrastructure.NewJiraClient(server.URL, server.Client())
	handler := NewJiraHandler(client, domain.NewResponseMapper(), JiraDefaults{})

	t.Run("issue fetch produces a pretty-printed document", func(t *testing.T) {
		req := callRequest(ToolGetIssue, map[string]interface{}{"issueKey": "TEST-123"})
		result, err := handler.getIssue(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text := resultText(t, result)
		if !strings.HasPrefix(text, "{\n  ") {
			t.Errorf("expected indented JSON object, got %q", text[:min(20, len(text))])
		}

		var issue map[string]interface{}
		if err := json.Unmarshal([]byte(text), &issue); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		if issue["key"] != "TEST-123" {
			t.Errorf("expected issue key TEST-123, got %v", issue["key"])
		}
		if _, ok := issue["fields"]; !ok {
			t.Error("expected fields in issue response")
		}
	})

	t.Run("issue list flattens the search envelope", func(t *testing.T) {
		req := callRequest(ToolGetIssues, map[string]interface{}{"projectKey": "TEST"})
		result, err := handler.getIssues(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text := resultText(t, result)
		if !strings.HasPrefix(text, "[\n  ") {
			t.Errorf("expected indented JSON array, got %q", text[:min(20, len(text))])
		}

		// The response is the bare issue list, without the startAt,
		// maxResults and total bookkeeping of the search API.
		var issues []map[string]interface{}
		if err := json.Unmarshal([]byte(text), &issues); err != nil {
			t.Fatalf("response is not a JSON array: %v", err)
		}
		if len(issues) != 2 {
			t.Fatalf("expected 2 issues, got %d", len(issues))
		}
		if issues[0]["key"] != "TEST-123" || issues[1]["key"] != "TEST-124" {
			t.Errorf("unexpected issue keys: %v, %v", issues[0]["key"], issues[1]["key"])
		}
	})

	t.Run("issue creation reports the browse URL", func(t *testing.T) {
		req := callRequest(ToolCreateIssue, map[string]interface{}{
			"projectKey": "TEST",
			"summary":    "New test issue",
			"issueType":  "Task",
		})
		result, err := handler.createIssue(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var created map[string]interface{}
		if err := json.Unmarshal([]byte(resultText(t, result)), &created); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		if created["id"] != "10003" {
			t.Errorf("expected id 10003, got %v", created["id"])
		}
		if created["key"] != "TEST-125" {
			t.Errorf("expected key TEST-125, got %v", created["key"])
		}
		if created["url"] != server.URL+"/browse/TEST-125" {
			t.Errorf("expected browse URL, got %v", created["url"])
		}
	})

	t.Run("user lookup projects three fields", func(t *testing.T) {
		req := callRequest(ToolGetUser, map[string]interface{}{"email": "alice@example.com"})
		result, err := handler.getUser(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var user map[string]interface{}
		if err := json.Unmarshal([]byte(resultText(t, result)), &user); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		if len(user) != 3 {
			t.Errorf("expected 3 fields in user response, got %v", user)
		}
	})

	t.Run("missing issue surfaces the Jira error", func(t *testing.T) {
		req := callRequest(ToolGetIssue, map[string]interface{}{"issueKey": "NOTFOUND-999"})
		_, err := handler.getIssue(context.Background(), req)
		if err == nil {
			t.Fatal("expected error for missing issue, got nil")
		}

		mapped := domain.NewResponseMapper().MapError(err)
		if mapped.Code != domain.APIError {
			t.Errorf("expected error code %d, got %d", domain.APIError, mapped.Code)
		}
		if mapped.Message != "Resource not found" {
			t.Errorf("unexpected error message: %q", mapped.Message)
		}
		data, ok := mapped.Data.(map[string]interface{})
		if !ok {
			t.Fatalf("expected error data map, got %T", mapped.Data)
		}
		if data["statusCode"] != 404 {
			t.Errorf("expected status code 404 in error data, got %v", data["statusCode"])
		}
	})
}

// TestToolSchemas checks every catalog entry declares a usable input schema.
func TestToolSchemas(t *testing.T) {
	handler := NewJiraHandler(nil, domain.NewResponseMapper(), JiraDefaults{})

	for _, reg := range handler.registrations() {
		tool := reg.tool
		t.Run(tool.Name, func(t *testing.T) {
			if tool.InputSchema.Type != "object" {
				t.Errorf("expected schema type 'object', got %q", tool.InputSchema.Type)
			}

			// Every required argument must be declared as a property.
			for _, required := range tool.InputSchema.Required {
				if _, ok := tool.InputSchema.Properties[required]; !ok {
					t.Errorf("required argument %q has no property definition", required)
				}
			}

			// Every property carries a type and a description.
			for propName, propValue := range tool.InputSchema.Properties {
				propMap, ok := propValue.(map[string]interface{})
				if !ok {
					t.Errorf("property %q is not a map", propName)
					continue
				}
				if _, hasType := propMap["type"]; !hasType {
					t.Errorf("property %q missing type", propName)
				}
				if _, hasDesc := propMap["description"]; !hasDesc {
					t.Errorf("property %q missing description", propName)
				}
			}

			switch tool.Name {
			case ToolGetUser:
				if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "email" {
					t.Errorf("expected required field 'email', got %v", tool.InputSchema.Required)
				}
			case ToolGetIssues:
				if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "projectKey" {
					t.Errorf("expected required field 'projectKey', got %v", tool.InputSchema.Required)
				}
			case ToolGetIssue, ToolUpdateIssue, ToolDeleteIssue:
				if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "issueKey" {
					t.Errorf("expected required field 'issueKey', got %v", tool.InputSchema.Required)
				}
			case ToolCreateIssue:
				if len(tool.InputSchema.Required) != 3 {
					t.Errorf("expected 3 required fields, got %v", tool.InputSchema.Required)
				}
			case ToolCreateIssueLink:
				if len(tool.InputSchema.Required) != 3 {
					t.Errorf("expected 3 required fields, got %v", tool.InputSchema.Required)
				}
			case ToolAddComment:
				if len(tool.InputSchema.Required) != 2 {
					t.Errorf("expected 2 required fields, got %v", tool.InputSchema.Required)
				}
			case ToolListIssueTypes, ToolListLinkTypes, ToolListFields:
				if len(tool.InputSchema.Required) != 0 {
					t.Errorf("expected no required fields, got %v", tool.InputSchema.Required)
				}
			}
		})
	}
}

// TestCatalogCoverage ensures every tool constant is registered exactly once.
func TestCatalogCoverage(t *testing.T) {
	handler := NewJiraHandler(nil, domain.NewResponseMapper(), JiraDefaults{})

	expectedTools := []string{
		ToolListIssueTypes,
		ToolListLinkTypes,
		ToolListFields,
		ToolGetUser,
		ToolGetIssues,
		ToolGetIssue,
		ToolCreateIssue,
		ToolUpdateIssue,
		ToolDeleteIssue,
		ToolCreateIssueLink,
		ToolAddComment,
	}

	seen := make(map[string]int)
	for _, reg := range handler.registrations() {
		seen[reg.tool.Name]++
	}

	for _, name := range expectedTools {
		if seen[name] != 1 {
			t.Errorf("expected tool %q registered once, got %d", name, seen[name])
		}
	}
	if len(seen) != len(expectedTools) {
		t.Errorf("expected %d tools, got %d", len(expectedTools), len(seen))
	}
}

// min returns the minimum of two integers.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
