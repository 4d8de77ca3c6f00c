// Package browser abstracts the live browser session behind a small driver
// interface so the acquisition crawler can be exercised against a simulated
// page in tests.
package browser

import (
	"context"
	"fmt"
)

// ErrNotFound is returned by driver operations when the selector matches
// no element on the current page.
var ErrNotFound = fmt.Errorf("element not found")

// Driver is the surface the crawler needs from a browser. All operations
// act on the single live page owned by the session and block until they
// complete or the context deadline expires. Implementations must not retry.
type Driver interface {
	// Navigate loads the given URL in the live page.
	Navigate(ctx context.Context, url string) error
	// WaitReady blocks until the element matching sel is attached to the DOM.
	WaitReady(ctx context.Context, sel string) error
	// WaitVisible blocks until the element matching sel is visible.
	WaitVisible(ctx context.Context, sel string) error
	// Click clicks the first element matching sel.
	Click(ctx context.Context, sel string) error
	// ClickAt clicks the index-th element matching sel.
	ClickAt(ctx context.Context, sel string, index int) error
	// SendKeys types value into the first element matching sel.
	SendKeys(ctx context.Context, sel, value string) error
	// Text returns the visible text of the first element matching sel.
	Text(ctx context.Context, sel string) (string, error)
	// Attrs returns the named attribute of every element matching sel,
	// in DOM order. Elements without the attribute yield an empty string.
	Attrs(ctx context.Context, sel, attr string) ([]string, error)
	// Count returns the number of elements matching sel.
	Count(ctx context.Context, sel string) (int, error)
	// ScrollIntoView scrolls the index-th element matching sel into view.
	ScrollIntoView(ctx context.Context, sel string, index int) error
	// OuterHTML returns the outer HTML of the first element matching sel.
	OuterHTML(ctx context.Context, sel string) (string, error)
	// OuterHTMLAt returns the outer HTML of the index-th element matching sel.
	OuterHTMLAt(ctx context.Context, sel string, index int) (string, error)
}
