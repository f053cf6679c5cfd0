package report

import (
	"fmt"
	"strings"
	"time"

	"jobdigest/internal/domain"
)

const (
	DefaultHeading   = "Daily Jobs Report — Entry-level Cloud/DevOps (AWS)"
	DefaultTopN      = 10
	NoResultsSubject = "Daily Jobs Report — No Results"

	CSVContentType = "application/csv"
)

// Subject embeds the UTC date of now.
func Subject(now time.Time) string {
	return fmt.Sprintf("Daily Jobs Report — %s (Google Search)", now.UTC().Format("2006-01-02"))
}

func NoResultsBody(now time.Time) string {
	return "No results found on " + now.UTC().Format("2006-01-02 15:04") + " UTC"
}

// Body lists the first topN records as a numbered list under heading.
func Body(heading string, records []domain.JobRecord, topN int) string {
	if topN < 0 {
		topN = 0
	}
	if topN > len(records) {
		topN = len(records)
	}
	lines := make([]string, 0, topN)
	for i, r := range records[:topN] {
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s\n   %s\n", i+1, r.Title, r.URL, r.Snippet))
	}
	return heading + "\n\n" + strings.Join(lines, "\n")
}
