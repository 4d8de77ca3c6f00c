package crawler

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/amarchal/jobradar/internal/browser"
	"github.com/amarchal/jobradar/internal/corpus"
)

// Credentials are the sign-in credentials used once, before the first
// location's results are scraped.
type Credentials struct {
	Email    string
	Password string
}

// Search describes one crawl: a keyword searched across an ordered list
// of locations, visiting at most PageLimit result pages per location.
type Search struct {
	Keyword   string
	Locations []string
	PageLimit int
}

// Options tune the crawler. Zero values select defaults.
type Options struct {
	// Timeout bounds every wait on the page (element presence,
	// clickability, page transition). One value is shared by all waits.
	Timeout time.Duration
	// ScrollPasses is the number of scroll-into-view operations per page,
	// used to trigger lazy-loaded cards.
	ScrollPasses int
	// MinDelay and MaxDelay bound the randomized pacing delay between
	// browser actions.
	MinDelay time.Duration
	MaxDelay time.Duration
	// Sleep replaces time.Sleep in tests.
	Sleep func(time.Duration)
}

const (
	defaultTimeout      = 4 * time.Second
	defaultScrollPasses = 10
	defaultMinDelay     = 500 * time.Millisecond
	defaultMaxDelay     = 2 * time.Second
	advancePollInterval = 200 * time.Millisecond
)

// Crawler owns one browser session for the duration of a run and mutates
// it in place. It is strictly single-threaded: no two locations or pages
// are scraped concurrently.
type Crawler struct {
	drv          browser.Driver
	log          *zap.Logger
	timeout      time.Duration
	scrollPasses int
	minDelay     time.Duration
	maxDelay     time.Duration
	sleep        func(time.Duration)
}

// New returns a Crawler over the given driver.
func New(drv browser.Driver, log *zap.Logger, opts Options) *Crawler {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ScrollPasses <= 0 {
		opts.ScrollPasses = defaultScrollPasses
	}
	if opts.MinDelay <= 0 {
		opts.MinDelay = defaultMinDelay
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = defaultMaxDelay
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Crawler{
		drv:          drv,
		log:          log,
		timeout:      opts.Timeout,
		scrollPasses: opts.ScrollPasses,
		minDelay:     opts.MinDelay,
		maxDelay:     opts.MaxDelay,
		sleep:        opts.Sleep,
	}
}

// Run crawls every configured location in order and returns the full
// ordered record sequence: location order, then page order ascending,
// then card order. Run never fails; everything inside degrades to
// partial or null data. An invalid search is the one fatal case and
// yields no records.
func (c *Crawler) Run(ctx context.Context, creds Credentials, search Search) []corpus.Record {
	if search.Keyword == "" || len(search.Locations) == 0 || search.PageLimit < 1 {
		c.log.Error("invalid search configuration, nothing to crawl",
			zap.String("keyword", search.Keyword),
			zap.Int("locations", len(search.Locations)),
			zap.Int("page_limit", search.PageLimit))
		return nil
	}

	var all []corpus.Record
	for i, location := range search.Locations {
		url := BuildSearchURL(search.Keyword, location, "")
		c.log.Info("crawling location",
			zap.String("location", location),
			zap.String("url", url))
		records := c.runLocation(ctx, url, creds, i == 0, search.PageLimit)
		all = append(all, records...)
	}

	c.log.Info("crawl finished", zap.Int("records", len(all)))
	return all
}

// runLocation walks the per-location state machine. authenticate is true
// only for the first location of a run.
func (c *Crawler) runLocation(ctx context.Context, url string, creds Credentials, authenticate bool, pageLimit int) []corpus.Record {
	var records []corpus.Record
	page := 1
	lastPage := pageLimit

	st := stateNavigating
	for st != stateDone {
		c.log.Debug("crawler state", zap.Stringer("state", st), zap.Int("page", page))

		switch st {
		case stateNavigating:
			c.navigate(ctx, url)
			if authenticate {
				st = stateAuthenticating
			} else {
				st = stateDiscovering
			}

		case stateAuthenticating:
			if err := c.authenticateOnce(ctx, creds); err != nil {
				// Results may be incomplete from here on; the crawl
				// deliberately continues without signaling the caller.
				c.log.Warn("authentication failed, continuing unauthenticated", zap.Error(err))
			}
			st = stateDiscovering

		case stateDiscovering:
			maxPage := c.discoverMaxPage(ctx)
			if maxPage < lastPage {
				lastPage = maxPage
			}
			st = stateScrolling

		case stateScrolling:
			c.scrollPass(ctx, c.scrollPasses)
			st = stateExtracting

		case stateExtracting:
			records = append(records, c.extractPage(ctx)...)
			if page >= lastPage {
				st = stateDone
			} else {
				st = stateAdvancing
			}

		case stateAdvancing:
			if err := c.advancePage(ctx, page); err != nil {
				c.log.Warn("stopping pagination for location", zap.Error(err))
				st = stateDone
				break
			}
			page++
			st = stateScrolling
		}
	}

	return records
}

// navigate loads the search URL and waits for minimal DOM readiness. A
// timeout is soft: the crawl continues with whatever state the page is in.
func (c *Crawler) navigate(ctx context.Context, url string) {
	wctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.drv.Navigate(wctx, url); err != nil {
		c.log.Warn("navigation failed", zap.String("url", url), zap.Error(err))
		return
	}
	if err := c.drv.WaitReady(wctx, selBody); err != nil {
		c.log.Warn("page readiness wait timed out", zap.String("url", url), zap.Error(err))
	}
}

// authenticateOnce performs the three sign-in sub-steps: open the modal,
// fill credentials, submit. The first failed sub-step aborts only
// authentication.
func (c *Crawler) authenticateOnce(ctx context.Context, creds Credentials) error {
	wctx, cancel := context.WithTimeout(ctx, c.timeout)
	err := c.drv.Click(wctx, selSignInOpen)
	cancel()
	if err != nil {
		return &AuthError{Step: "open sign-in modal", Cause: err}
	}

	wctx, cancel = context.WithTimeout(ctx, c.timeout)
	err = c.drv.SendKeys(wctx, selSignInEmail, creds.Email)
	if err == nil {
		err = c.drv.SendKeys(wctx, selSignInPass, creds.Password)
	}
	cancel()
	if err != nil {
		return &AuthError{Step: "fill credentials", Cause: err}
	}

	wctx, cancel = context.WithTimeout(ctx, c.timeout)
	err = c.drv.Click(wctx, selSignInSubmit)
	cancel()
	if err != nil {
		return &AuthError{Step: "submit", Cause: err}
	}

	c.log.Info("signed in")
	return nil
}

// discoverMaxPage reads the pagination control and returns the highest
// page number it exposes, or 1 when the control is absent or unparsable.
func (c *Crawler) discoverMaxPage(ctx context.Context) int {
	wctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.drv.WaitVisible(wctx, selPagination); err != nil {
		c.log.Warn("pagination control not found, assuming single page", zap.Error(err))
		return 1
	}

	labels, err := c.drv.Attrs(wctx, selPageButton, "aria-label")
	if err != nil {
		c.log.Warn("failed to read page buttons, assuming single page", zap.Error(err))
		return 1
	}

	maxPage := 1
	for _, label := range labels {
		n, err := strconv.Atoi(strings.TrimPrefix(label, "Page "))
		if err != nil {
			continue
		}
		if n > maxPage {
			maxPage = n
		}
	}

	c.log.Info("discovered pagination", zap.Int("max_page", maxPage))
	return maxPage
}

// scrollPass performs n scroll-into-view operations on evenly spaced card
// indices to trigger lazy loading; the last pass always targets the final
// card. Errors end the pass early.
func (c *Crawler) scrollPass(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		wctx, cancel := context.WithTimeout(ctx, c.timeout)
		count, err := c.drv.Count(wctx, selLazyCard)
		cancel()
		if err != nil || count == 0 {
			if err != nil {
				c.log.Debug("scroll pass aborted", zap.Error(err))
			}
			return
		}

		index := count / (n - i)
		if i == n-1 || index >= count {
			index = count - 1
		}

		c.pause()
		wctx, cancel = context.WithTimeout(ctx, c.timeout)
		err = c.drv.ScrollIntoView(wctx, selLazyCard, index)
		cancel()
		if err != nil {
			c.log.Debug("scroll pass aborted", zap.Int("index", index), zap.Error(err))
			return
		}
	}
}

// advancePage clicks the control for page current+1, then blocks until
// the selection marker has moved off the previous page and at least one
// card is present on the new one.
func (c *Crawler) advancePage(ctx context.Context, current int) error {
	c.pause()

	wctx, cancel := context.WithTimeout(ctx, c.timeout)
	text, err := c.drv.Text(wctx, selSelectedPage)
	cancel()
	if err == nil {
		if n, perr := strconv.Atoi(strings.TrimSpace(text)); perr == nil {
			current = n
		}
	}
	target := current + 1

	sel := fmt.Sprintf(`li[data-test-pagination-page-btn="%d"] button`, target)
	wctx, cancel = context.WithTimeout(ctx, c.timeout)
	err = c.drv.Click(wctx, sel)
	cancel()
	if err != nil {
		return &AdvanceError{Page: target, Cause: err}
	}

	attempts := int(c.timeout / advancePollInterval)
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		wctx, cancel := context.WithTimeout(ctx, c.timeout)
		text, terr := c.drv.Text(wctx, selSelectedPage)
		count, cerr := c.drv.Count(wctx, selJobCard)
		cancel()

		if terr == nil && cerr == nil {
			if n, perr := strconv.Atoi(strings.TrimSpace(text)); perr == nil && n == target && count > 0 {
				c.log.Info("advanced to page", zap.Int("page", target))
				return nil
			}
		}
		c.sleep(advancePollInterval)
	}

	return &AdvanceError{Page: target, Cause: fmt.Errorf("page transition did not complete within %s", c.timeout)}
}

// pause sleeps for a randomized interval between browser actions. Pacing
// only; no ordering guarantee beyond happens-before the next action.
func (c *Crawler) pause() {
	delta := c.maxDelay - c.minDelay
	d := c.minDelay
	if delta > 0 {
		d += time.Duration(rand.Int63n(int64(delta)))
	}
	c.sleep(d)
}
