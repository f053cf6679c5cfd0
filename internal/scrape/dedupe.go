package scrape

import "jobdigest/internal/domain"

// Dedupe keeps the first record for every non-empty URL, in input order.
// Records without a URL have no key and are always kept.
func Dedupe(records []domain.JobRecord) []domain.JobRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]domain.JobRecord, 0, len(records))
	for _, r := range records {
		if r.URL != "" {
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}
