package domain

// JobRecord is one normalized search hit. Empty strings mean the provider
// did not return the field.
type JobRecord struct {
	Title   string
	URL     string
	Snippet string
}
