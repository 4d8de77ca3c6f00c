package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/amarchal/jobradar/internal/corpus"
)

// cardFields holds the per-field extraction results for one job card.
type cardFields struct {
	title       Field
	company     Field
	location    Field
	url         Field
	description Field
}

func (f cardFields) record() corpus.Record {
	return corpus.Record{
		JobTitle:       f.title.Ptr(),
		CompanyName:    f.company.Ptr(),
		JobLocation:    f.location.Ptr(),
		JobURL:         f.url.Ptr(),
		JobDescription: f.description.Ptr(),
	}
}

// extractPage captures every visible job card on the current page. Cards
// after the first are clicked first so the description panel renders the
// selected posting. Each field extraction is isolated: a failed field is
// absent, the record itself is always kept.
func (c *Crawler) extractPage(ctx context.Context) []corpus.Record {
	wctx, cancel := context.WithTimeout(ctx, c.timeout)
	n, err := c.drv.Count(wctx, selJobCard)
	cancel()
	if err != nil {
		c.log.Warn("failed to enumerate job cards", zap.Error(err))
		return nil
	}

	records := make([]corpus.Record, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			wctx, cancel := context.WithTimeout(ctx, c.timeout)
			if err := c.drv.ClickAt(wctx, selJobCard, i); err != nil {
				c.log.Debug("failed to select job card", zap.Int("card", i), zap.Error(err))
			}
			cancel()
			c.pause()
		}

		var cardHTML, descHTML string
		wctx, cancel := context.WithTimeout(ctx, c.timeout)
		if cardHTML, err = c.drv.OuterHTMLAt(wctx, selJobCard, i); err != nil {
			c.log.Debug("failed to read job card", zap.Int("card", i), zap.Error(err))
			cardHTML = ""
		}
		if descHTML, err = c.drv.OuterHTML(wctx, selDescription); err != nil {
			c.log.Debug("failed to read description panel", zap.Int("card", i), zap.Error(err))
			descHTML = ""
		}
		cancel()

		fields := parseCard(cardHTML)
		fields.description = parseDescription(descHTML)
		records = append(records, fields.record())
	}

	c.log.Info("extracted job cards", zap.Int("count", len(records)))
	return records
}

// parseCard extracts title, company, location and URL from a card's HTML
// snapshot. An empty or unparsable snapshot yields all-absent fields.
func parseCard(html string) cardFields {
	var f cardFields
	if html == "" {
		return f
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return f
	}

	f.title = selectionText(doc.Find(".job-card-container__link .visually-hidden"))
	f.company = selectionText(doc.Find(".artdeco-entity-lockup__subtitle"))
	f.location = selectionText(doc.Find(".artdeco-entity-lockup__caption"))

	if href, ok := doc.Find(".job-card-container__link").First().Attr("href"); ok {
		f.url = Present(href)
	} else {
		f.url = Absent()
	}
	return f
}

// parseDescription extracts the text of the separately rendered
// description panel, flattening newlines to spaces.
func parseDescription(html string) Field {
	if html == "" {
		return Absent()
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Absent()
	}
	sel := doc.Find(".mt4")
	if sel.Length() == 0 {
		return Absent()
	}
	text := strings.Join(strings.Fields(sel.First().Text()), " ")
	return Present(text)
}

func selectionText(sel *goquery.Selection) Field {
	if sel.Length() == 0 {
		return Absent()
	}
	return Present(strings.TrimSpace(sel.First().Text()))
}
