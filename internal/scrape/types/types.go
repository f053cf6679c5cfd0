package types

import (
	"context"

	"jobdigest/internal/domain"
)

// QueryResult is the outcome of one search query: either records or the
// reason the query produced none.
type QueryResult struct {
	Query   string
	Records []domain.JobRecord
	Err     error
}

func (r QueryResult) OK() bool { return r.Err == nil }

func Failed(query string, err error) QueryResult {
	return QueryResult{Query: query, Err: err}
}

// Runner executes a single query against a search provider.
type Runner interface {
	Name() string
	Run(ctx context.Context, query string) QueryResult
}
