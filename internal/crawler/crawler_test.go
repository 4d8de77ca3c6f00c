package crawler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amarchal/jobradar/internal/browser"
	"github.com/amarchal/jobradar/internal/corpus"
)

// fakeCard is one job card on a simulated results page.
type fakeCard struct {
	title       string
	description string
}

// fakeSite simulates the search results for one location URL.
type fakeSite struct {
	// pageLabels are the aria-labels of the pagination buttons; nil means
	// the pagination control is absent.
	pageLabels []string
	// pages holds the cards of each result page, 1-based page N at index N-1.
	pages [][]fakeCard
	// failAdvanceTo makes the click on that page's button fail.
	failAdvanceTo int
}

// fakeDriver is a scripted browser.Driver for exercising the crawl loop
// without a live browser.
type fakeDriver struct {
	sites map[string]*fakeSite

	cur      *fakeSite
	page     int
	selected int

	authSteps  []string
	failAuthAt string
}

func newFakeDriver(sites map[string]*fakeSite) *fakeDriver {
	return &fakeDriver{sites: sites}
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	site, ok := d.sites[url]
	if !ok {
		return fmt.Errorf("unknown url %s", url)
	}
	d.cur = site
	d.page = 1
	d.selected = 0
	return nil
}

func (d *fakeDriver) WaitReady(ctx context.Context, sel string) error { return nil }

func (d *fakeDriver) WaitVisible(ctx context.Context, sel string) error {
	if sel == selPagination && d.cur.pageLabels == nil {
		return browser.ErrNotFound
	}
	return nil
}

func (d *fakeDriver) Click(ctx context.Context, sel string) error {
	switch sel {
	case selSignInOpen:
		if d.failAuthAt == "open" {
			return browser.ErrNotFound
		}
		d.authSteps = append(d.authSteps, "open")
		return nil
	case selSignInSubmit:
		if d.failAuthAt == "submit" {
			return browser.ErrNotFound
		}
		d.authSteps = append(d.authSteps, "submit")
		return nil
	}

	if rest, ok := strings.CutPrefix(sel, `li[data-test-pagination-page-btn="`); ok {
		num, _, _ := strings.Cut(rest, `"`)
		target, err := strconv.Atoi(num)
		if err != nil {
			return err
		}
		if target == d.cur.failAdvanceTo || target > len(d.cur.pages) {
			return browser.ErrNotFound
		}
		d.page = target
		d.selected = 0
		return nil
	}
	return browser.ErrNotFound
}

func (d *fakeDriver) ClickAt(ctx context.Context, sel string, index int) error {
	if sel == selJobCard {
		d.selected = index
	}
	return nil
}

func (d *fakeDriver) SendKeys(ctx context.Context, sel, value string) error {
	if d.failAuthAt == "fill" {
		return browser.ErrNotFound
	}
	d.authSteps = append(d.authSteps, "fill")
	return nil
}

func (d *fakeDriver) Text(ctx context.Context, sel string) (string, error) {
	if sel == selSelectedPage {
		return strconv.Itoa(d.page), nil
	}
	return "", browser.ErrNotFound
}

func (d *fakeDriver) Attrs(ctx context.Context, sel, attr string) ([]string, error) {
	return d.cur.pageLabels, nil
}

func (d *fakeDriver) Count(ctx context.Context, sel string) (int, error) {
	return len(d.cur.pages[d.page-1]), nil
}

func (d *fakeDriver) ScrollIntoView(ctx context.Context, sel string, index int) error {
	return nil
}

func (d *fakeDriver) OuterHTML(ctx context.Context, sel string) (string, error) {
	cards := d.cur.pages[d.page-1]
	if d.selected >= len(cards) {
		return "", browser.ErrNotFound
	}
	return fmt.Sprintf(`<div class="jobs-description__container"><div class="mt4">%s</div></div>`,
		cards[d.selected].description), nil
}

func (d *fakeDriver) OuterHTMLAt(ctx context.Context, sel string, index int) (string, error) {
	cards := d.cur.pages[d.page-1]
	if index >= len(cards) {
		return "", browser.ErrNotFound
	}
	return fmt.Sprintf(`<div class="job-card-container">
		<a class="job-card-container__link" href="https://example.com/%s">
			<span class="visually-hidden">%s</span>
		</a>
		<div class="artdeco-entity-lockup__subtitle">Co</div>
		<div class="artdeco-entity-lockup__caption">Somewhere</div>
	</div>`, cards[index].title, cards[index].title), nil
}

func newTestCrawler(drv browser.Driver) *Crawler {
	return New(drv, zap.NewNop(), Options{
		Timeout:  200 * time.Millisecond,
		MinDelay: time.Nanosecond,
		MaxDelay: time.Nanosecond,
		Sleep:    func(time.Duration) {},
	})
}

func pageOf(cards ...fakeCard) []fakeCard { return cards }

func titles(records []corpus.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title()
	}
	return out
}

func TestRun_PageBudgetAndOrdering(t *testing.T) {
	creds := Credentials{Email: "me@example.com", Password: "secret"}
	search := Search{Keyword: "Data Scientist", Locations: []string{"L1", "L2"}, PageLimit: 3}

	drv := newFakeDriver(map[string]*fakeSite{
		BuildSearchURL("Data Scientist", "L1", ""): {
			pageLabels: []string{"Page 1", "Page 2"},
			pages: [][]fakeCard{
				pageOf(fakeCard{title: "a1", description: "d"}, fakeCard{title: "a2", description: "d"}),
				pageOf(fakeCard{title: "b1", description: "d"}),
			},
		},
		BuildSearchURL("Data Scientist", "L2", ""): {
			pageLabels: []string{"Page 1", "Page 2", "Page 3"},
			pages: [][]fakeCard{
				pageOf(fakeCard{title: "c1", description: "d"}),
				pageOf(fakeCard{title: "d1", description: "d"}),
				pageOf(fakeCard{title: "e1", description: "d"}),
			},
		},
	})

	records := newTestCrawler(drv).Run(context.Background(), creds, search)

	// Location 1 has a discovered max of 2 (below the limit of 3),
	// location 2 exactly 3. Order is location, then page, then card.
	assert.Equal(t, []string{"a1", "a2", "b1", "c1", "d1", "e1"}, titles(records))
}

func TestRun_AuthenticatesOnceBeforeFirstLocation(t *testing.T) {
	search := Search{Keyword: "Eng", Locations: []string{"L1", "L2"}, PageLimit: 1}
	drv := newFakeDriver(map[string]*fakeSite{
		BuildSearchURL("Eng", "L1", ""): {pages: [][]fakeCard{pageOf(fakeCard{title: "x", description: "d"})}},
		BuildSearchURL("Eng", "L2", ""): {pages: [][]fakeCard{pageOf(fakeCard{title: "y", description: "d"})}},
	})

	newTestCrawler(drv).Run(context.Background(), Credentials{Email: "a@b.c", Password: "p"}, search)

	// Modal open, two credential fills, submit: exactly one full sequence.
	assert.Equal(t, []string{"open", "fill", "fill", "submit"}, drv.authSteps)
}

func TestRun_ContinuesUnauthenticated(t *testing.T) {
	search := Search{Keyword: "Eng", Locations: []string{"L1"}, PageLimit: 1}
	drv := newFakeDriver(map[string]*fakeSite{
		BuildSearchURL("Eng", "L1", ""): {pages: [][]fakeCard{pageOf(fakeCard{title: "x", description: "d"})}},
	})
	drv.failAuthAt = "fill"

	records := newTestCrawler(drv).Run(context.Background(), Credentials{Email: "a@b.c", Password: "p"}, search)

	require.Len(t, records, 1)
	assert.Equal(t, "x", records[0].Title())
}

func TestRun_AdvanceFailureKeepsPartialResults(t *testing.T) {
	search := Search{Keyword: "Eng", Locations: []string{"L1", "L2"}, PageLimit: 3}
	drv := newFakeDriver(map[string]*fakeSite{
		BuildSearchURL("Eng", "L1", ""): {
			pageLabels:    []string{"Page 1", "Page 2", "Page 3"},
			failAdvanceTo: 2,
			pages: [][]fakeCard{
				pageOf(fakeCard{title: "a1", description: "d"}),
				pageOf(fakeCard{title: "a2", description: "d"}),
				pageOf(fakeCard{title: "a3", description: "d"}),
			},
		},
		BuildSearchURL("Eng", "L2", ""): {pages: [][]fakeCard{pageOf(fakeCard{title: "b1", description: "d"})}},
	})

	records := newTestCrawler(drv).Run(context.Background(), Credentials{Email: "a@b.c", Password: "p"}, search)

	// Page 1 of location 1 is kept; the failed advance only stops that
	// location's pagination.
	assert.Equal(t, []string{"a1", "b1"}, titles(records))
}

func TestRun_MissingPaginationMeansSinglePage(t *testing.T) {
	search := Search{Keyword: "Eng", Locations: []string{"L1"}, PageLimit: 5}
	drv := newFakeDriver(map[string]*fakeSite{
		BuildSearchURL("Eng", "L1", ""): {
			// Control absent: only page 1 must be visited even though more
			// pages exist in the fixture.
			pages: [][]fakeCard{
				pageOf(fakeCard{title: "a1", description: "d"}),
				pageOf(fakeCard{title: "never", description: "d"}),
			},
		},
	})

	records := newTestCrawler(drv).Run(context.Background(), Credentials{Email: "a@b.c", Password: "p"}, search)

	assert.Equal(t, []string{"a1"}, titles(records))
}

func TestRun_UnparsablePaginationLabels(t *testing.T) {
	search := Search{Keyword: "Eng", Locations: []string{"L1"}, PageLimit: 5}
	drv := newFakeDriver(map[string]*fakeSite{
		BuildSearchURL("Eng", "L1", ""): {
			pageLabels: []string{"previous", "next"},
			pages: [][]fakeCard{
				pageOf(fakeCard{title: "a1", description: "d"}),
				pageOf(fakeCard{title: "never", description: "d"}),
			},
		},
	})

	records := newTestCrawler(drv).Run(context.Background(), Credentials{Email: "a@b.c", Password: "p"}, search)

	assert.Equal(t, []string{"a1"}, titles(records))
}

func TestRun_InvalidSearchIsFatal(t *testing.T) {
	drv := newFakeDriver(nil)
	c := newTestCrawler(drv)

	assert.Nil(t, c.Run(context.Background(), Credentials{}, Search{}))
	assert.Nil(t, c.Run(context.Background(), Credentials{}, Search{Keyword: "x", PageLimit: 1}))
	assert.Nil(t, c.Run(context.Background(), Credentials{}, Search{Keyword: "x", Locations: []string{"L"}, PageLimit: 0}))
}

func TestExtractPage_DescriptionFollowsSelectedCard(t *testing.T) {
	search := Search{Keyword: "Eng", Locations: []string{"L1"}, PageLimit: 1}
	drv := newFakeDriver(map[string]*fakeSite{
		BuildSearchURL("Eng", "L1", ""): {
			pages: [][]fakeCard{pageOf(
				fakeCard{title: "first", description: "first desc"},
				fakeCard{title: "second", description: "second desc"},
			)},
		},
	})

	records := newTestCrawler(drv).Run(context.Background(), Credentials{Email: "a@b.c", Password: "p"}, search)

	require.Len(t, records, 2)
	assert.Equal(t, "first desc", records[0].Description())
	assert.Equal(t, "second desc", records[1].Description())
}
