// Package client talks to the workout backend.
//
// Client is the transport-agnostic contract used by the sync orchestrator and
// the catalog/access services. HTTPClient implements it against the backend's
// JSON API: a single URL that dispatches on the `action` query parameter.
//
// # Error Handling
//
// Every failed call returns a *SubmissionError, which matches
// ErrSubmissionFailed with errors.Is. Transport failures also match
// ErrUnavailable, and 401/403 responses match ErrUnauthorized. Calls are made
// exactly once; retrying is the caller's business.
package client
