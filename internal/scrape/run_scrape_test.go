package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"jobdigest/internal/domain"
	"jobdigest/internal/scrape/types"
)

type fakeRunner struct {
	results map[string]types.QueryResult
	calls   []string
}

func (f *fakeRunner) Name() string { return "fake" }

func (f *fakeRunner) Run(_ context.Context, q string) types.QueryResult {
	f.calls = append(f.calls, q)
	if r, ok := f.results[q]; ok {
		return r
	}
	return types.QueryResult{Query: q}
}

func TestRunQueries_SkipsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := &fakeRunner{results: map[string]types.QueryResult{
		"q1": {Query: "q1", Records: []domain.JobRecord{rec("a", "https://x.com/a")}},
		"q2": types.Failed("q2", errors.New("google status 500")),
		"q3": {Query: "q3", Records: []domain.JobRecord{rec("b", "https://x.com/b"), rec("a2", "https://x.com/a")}},
	}}

	got := RunQueries(context.Background(), r, []string{"q1", "q2", "q3"}, zap.New(core))

	assert.Equal(t, []string{"q1", "q2", "q3"}, r.calls)
	assert.Equal(t, []domain.JobRecord{
		rec("a", "https://x.com/a"),
		rec("b", "https://x.com/b"),
		rec("a2", "https://x.com/a"),
	}, got)

	failures := logs.FilterMessage("search error").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "q2", failures[0].ContextMap()["query"])
	assert.Equal(t, zapcore.WarnLevel, failures[0].Level)
}

func TestRunQueries_AllFail(t *testing.T) {
	r := &fakeRunner{results: map[string]types.QueryResult{
		"q1": types.Failed("q1", errors.New("dial tcp: connection refused")),
		"q2": types.Failed("q2", errors.New("dial tcp: connection refused")),
	}}

	got := RunQueries(context.Background(), r, []string{"q1", "q2"}, nil)
	assert.Empty(t, got)
	assert.Empty(t, Dedupe(got))
}
