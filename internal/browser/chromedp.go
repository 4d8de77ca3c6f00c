package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chromedp/chromedp"
)

// Options configure the Chrome process backing a Session.
type Options struct {
	// Headless runs Chrome without a visible window.
	Headless bool
	// UserAgent overrides the browser user agent when non-empty.
	UserAgent string
	// ProfileDir points Chrome at an existing user profile when non-empty,
	// so a previously established login session is reused.
	ProfileDir string
}

// Session is the chromedp-backed Driver. It owns a single Chrome process
// and a single page for its whole lifetime; callers must not share it
// across goroutines.
type Session struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewSession launches Chrome and returns a Session bound to one page.
// Close must be called to shut the browser down.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("start-maximized", true),
	)
	if opts.UserAgent != "" {
		flags = append(flags, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ProfileDir != "" {
		flags = append(flags, chromedp.UserDataDir(opts.ProfileDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, flags...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so launch failures surface
	// here instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Session{
		ctx:         browserCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// Close shuts down the page and the Chrome process.
func (s *Session) Close() {
	s.cancelCtx()
	s.cancelAlloc()
}

// run executes actions against the session page, honoring the caller's
// deadline without adopting its cancellation cause chain.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := s.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

// Navigate implements Driver.
func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

// WaitReady implements Driver.
func (s *Session) WaitReady(ctx context.Context, sel string) error {
	return s.run(ctx, chromedp.WaitReady(sel, chromedp.ByQuery))
}

// WaitVisible implements Driver.
func (s *Session) WaitVisible(ctx context.Context, sel string) error {
	return s.run(ctx, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

// Click implements Driver.
func (s *Session) Click(ctx context.Context, sel string) error {
	return s.run(ctx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
}

// ClickAt implements Driver. The click is dispatched through JavaScript
// because chromedp selectors address only the first match.
func (s *Session) ClickAt(ctx context.Context, sel string, index int) error {
	var ok bool
	script := fmt.Sprintf(`(() => {
		const nodes = document.querySelectorAll(%s);
		if (%d >= nodes.length) { return false; }
		nodes[%d].click();
		return true;
	})()`, strconv.Quote(sel), index, index)
	if err := s.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SendKeys implements Driver.
func (s *Session) SendKeys(ctx context.Context, sel, value string) error {
	return s.run(ctx, chromedp.SendKeys(sel, value, chromedp.ByQuery))
}

// Text implements Driver.
func (s *Session) Text(ctx context.Context, sel string) (string, error) {
	var out string
	var found bool
	script := fmt.Sprintf(`(() => {
		const node = document.querySelector(%s);
		return node === null ? null : node.innerText;
	})()`, strconv.Quote(sel))
	if err := s.run(ctx, evaluateNullable(script, &out, &found)); err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return strings.TrimSpace(out), nil
}

// Attrs implements Driver.
func (s *Session) Attrs(ctx context.Context, sel, attr string) ([]string, error) {
	var out []string
	script := fmt.Sprintf(`Array.from(document.querySelectorAll(%s), n => n.getAttribute(%s) || "")`,
		strconv.Quote(sel), strconv.Quote(attr))
	if err := s.run(ctx, chromedp.Evaluate(script, &out)); err != nil {
		return nil, err
	}
	return out, nil
}

// Count implements Driver.
func (s *Session) Count(ctx context.Context, sel string) (int, error) {
	var n int
	script := fmt.Sprintf(`document.querySelectorAll(%s).length`, strconv.Quote(sel))
	if err := s.run(ctx, chromedp.Evaluate(script, &n)); err != nil {
		return 0, err
	}
	return n, nil
}

// ScrollIntoView implements Driver.
func (s *Session) ScrollIntoView(ctx context.Context, sel string, index int) error {
	var ok bool
	script := fmt.Sprintf(`(() => {
		const nodes = document.querySelectorAll(%s);
		if (%d >= nodes.length) { return false; }
		nodes[%d].scrollIntoView();
		return true;
	})()`, strconv.Quote(sel), index, index)
	if err := s.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// OuterHTML implements Driver.
func (s *Session) OuterHTML(ctx context.Context, sel string) (string, error) {
	var out string
	var found bool
	script := fmt.Sprintf(`(() => {
		const node = document.querySelector(%s);
		return node === null ? null : node.outerHTML;
	})()`, strconv.Quote(sel))
	if err := s.run(ctx, evaluateNullable(script, &out, &found)); err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return out, nil
}

// OuterHTMLAt implements Driver.
func (s *Session) OuterHTMLAt(ctx context.Context, sel string, index int) (string, error) {
	var out string
	var found bool
	script := fmt.Sprintf(`(() => {
		const nodes = document.querySelectorAll(%s);
		return %d >= nodes.length ? null : nodes[%d].outerHTML;
	})()`, strconv.Quote(sel), index, index)
	if err := s.run(ctx, evaluateNullable(script, &out, &found)); err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return out, nil
}

// evaluateNullable evaluates a script that returns either a string or null,
// recording whether a value was present.
func evaluateNullable(script string, out *string, found *bool) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var raw *string
		if err := chromedp.Evaluate(script, &raw).Do(ctx); err != nil {
			return err
		}
		if raw == nil {
			*found = false
			return nil
		}
		*found = true
		*out = *raw
		return nil
	})
}
