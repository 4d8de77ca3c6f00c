// Package crawler drives a browser session through login, search, scroll,
// extract and pagination steps and returns whatever it managed to collect.
// Failures degrade locally; nothing escapes Run.
package crawler

import "fmt"

// AuthError represents a failed authentication sub-step. Authentication is
// abandoned at the first failed sub-step; the crawl itself continues.
type AuthError struct {
	Step  string
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s: %v", e.Step, e.Cause)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// AdvanceError represents a failed page transition. It stops pagination
// for the current location only.
type AdvanceError struct {
	Page  int
	Cause error
}

func (e *AdvanceError) Error() string {
	return fmt.Sprintf("page advance error: page %d: %v", e.Page, e.Cause)
}

func (e *AdvanceError) Unwrap() error {
	return e.Cause
}
