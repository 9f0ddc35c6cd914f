// Package domain contains the core types shared by the Jira MCP server:
// configuration, error codes, the Jira data model, and the text-to-ADF
// converter used for description and comment fields.
package domain

// JSON-RPC 2.0 standard error codes. Tool-call validation failures and
// unknown tool names surface with these codes at the protocol level.
const (
	// ParseError indicates invalid JSON was received by the server
	ParseError = -32700
	// InvalidRequest indicates the JSON sent is not a valid request object
	InvalidRequest = -32600
	// MethodNotFound indicates the method does not exist or is not available
	MethodNotFound = -32601
	// InvalidParams indicates invalid method parameters
	InvalidParams = -32602
	// InternalError indicates an internal JSON-RPC error
	InternalError = -32603
)

// Implementation-defined error codes for Jira API failures.
const (
	// ConfigurationError indicates invalid or missing configuration
	ConfigurationError = -32001
	// AuthenticationError indicates authentication with Jira failed
	AuthenticationError = -32002
	// APIError indicates a Jira API request failed
	APIError = -32003
	// NetworkError indicates a network-level failure
	NetworkError = -32004
	// RateLimitError indicates Jira rate limiting kicked in
	RateLimitError = -32005
)

// Error is a structured error with a JSON-RPC style code. Argument
// validators raise it with InvalidParams before any network call is made;
// the response mapper classifies downstream failures into the
// implementation-defined range.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
