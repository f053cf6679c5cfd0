package scrape

import (
	"context"

	"jobdigest/internal/domain"
	"jobdigest/internal/logging"
	"jobdigest/internal/scrape/types"

	"go.uber.org/zap"
)

// RunQueries runs every query in order and concatenates the records of the
// ones that succeeded. A failed query is logged and contributes nothing.
func RunQueries(ctx context.Context, r types.Runner, queries []string, log *zap.Logger) []domain.JobRecord {
	log = logging.OrNop(log).With(zap.String("source", r.Name()))

	var all []domain.JobRecord
	failed := 0
	for _, q := range queries {
		res := r.Run(ctx, q)
		if !res.OK() {
			failed++
			log.Warn("search error", zap.String("query", q), zap.Error(res.Err))
			continue
		}
		log.Info("search ok", zap.String("query", q), zap.Int("items", len(res.Records)))
		all = append(all, res.Records...)
	}

	log.Info("search done",
		zap.Int("queries", len(queries)),
		zap.Int("failed", failed),
		zap.Int("records", len(all)))
	return all
}
