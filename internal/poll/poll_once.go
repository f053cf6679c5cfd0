package poll

import (
	"context"
	"time"

	"jobdigest/internal/domain"
	"jobdigest/internal/logging"
	"jobdigest/internal/scrape"
	"jobdigest/internal/scrape/types"

	"go.uber.org/zap"
)

type Deliverer interface {
	Deliver(ctx context.Context, records []domain.JobRecord) error
}

// RunOnce is one full pass: search every query, dedupe, report. Search
// failures are absorbed; a Deliver error is returned to the caller.
//
// searchTimeout bounds the search phase only (<= 0 means no bound). Delivery
// runs on ctx as given, so the SMTP step carries no deadline of its own.
func RunOnce(ctx context.Context, runner types.Runner, queries []string, rep Deliverer, searchTimeout time.Duration, log *zap.Logger) (sent int, err error) {
	log = logging.OrNop(log)

	searchCtx := ctx
	if searchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, searchTimeout)
		defer cancel()
	}

	all := scrape.RunQueries(searchCtx, runner, queries, log)
	unique := scrape.Dedupe(all)
	log.Info("dedupe", zap.Int("total", len(all)), zap.Int("unique", len(unique)))

	if err := rep.Deliver(ctx, unique); err != nil {
		return 0, err
	}
	return len(unique), nil
}
