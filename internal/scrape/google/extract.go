package google

import (
	"jobdigest/internal/domain"

	"github.com/tidwall/gjson"
)

// Extract maps the "items" array of a search response to records, keeping
// provider order. Missing fields become empty strings; a response without
// items yields an empty, non-nil slice.
func Extract(body []byte) []domain.JobRecord {
	items := gjson.GetBytes(body, "items")
	out := make([]domain.JobRecord, 0, len(items.Array()))
	if !items.IsArray() {
		return out
	}
	items.ForEach(func(_, item gjson.Result) bool {
		out = append(out, domain.JobRecord{
			Title:   str(item.Get("title")),
			URL:     str(item.Get("link")),
			Snippet: str(item.Get("snippet")),
		})
		return true
	})
	return out
}

// str treats null and non-string values as absent.
func str(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}
