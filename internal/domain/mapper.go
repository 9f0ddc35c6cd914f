package domain

// ResponseMapper shapes workflow results and failures for the tool-call
// boundary. Successful payloads become the pretty-printed JSON text placed
// in the response envelope; errors are classified into structured codes
// for logging and protocol-level surfacing.
type ResponseMapper interface {
	// MapToText serializes a workflow result into the JSON text returned
	// to the caller. Returns an error if serialization fails.
	MapToText(payload interface{}) (string, error)

	// MapError converts a failure into a structured Error. HTTP failures
	// from the Jira API are mapped by status code; structured errors pass
	// through unchanged; anything else becomes an internal error.
	MapError(err error) *Error
}
