package crawler

import (
	"fmt"
	"strings"
)

const searchBaseURL = "https://www.linkedin.com/jobs/search/"

// DefaultTimeRange restricts results to postings from the last 24 hours.
const DefaultTimeRange = "r86400"

// BuildSearchURL constructs a job search URL for one keyword/location pair.
// Query parameter order is fixed and only spaces are percent-escaped, so
// the output is byte-stable for a given input. An empty timeRange selects
// DefaultTimeRange.
func BuildSearchURL(keyword, location, timeRange string) string {
	if timeRange == "" {
		timeRange = DefaultTimeRange
	}
	return fmt.Sprintf("%s?f_TPR=%s&keywords=%s&location=%s&origin=JOB_SEARCH_PAGE_JOB_FILTER",
		searchBaseURL, timeRange, escapeSpaces(keyword), escapeSpaces(location))
}

func escapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
