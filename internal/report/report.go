package report

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"jobdigest/internal/domain"
	"jobdigest/internal/logging"

	"go.uber.org/zap"
)

type Options struct {
	OutputPath string
	Heading    string
	TopN       int
}

// Reporter turns the deduplicated records into one email, writing the CSV
// attachment first when there is anything to report.
type Reporter struct {
	sender Sender
	opts   Options
	log    *zap.Logger
	now    func() time.Time
}

func New(sender Sender, opts Options, log *zap.Logger) *Reporter {
	if opts.Heading == "" {
		opts.Heading = DefaultHeading
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &Reporter{
		sender: sender,
		opts:   opts,
		log:    logging.OrNop(log),
		now:    time.Now,
	}
}

// Deliver sends exactly one message. Empty input sends the no-results notice
// and leaves the CSV untouched. Any write or send error is returned.
func (r *Reporter) Deliver(ctx context.Context, records []domain.JobRecord) error {
	now := r.now()

	if len(records) == 0 {
		if err := r.sender.Send(ctx, Message{
			Subject: NoResultsSubject,
			Body:    NoResultsBody(now),
		}); err != nil {
			return fmt.Errorf("send no-results email: %w", err)
		}
		r.log.Info("no results; notice sent")
		return nil
	}

	data, err := SaveCSV(r.opts.OutputPath, records)
	if err != nil {
		return err
	}
	r.log.Info("csv written", zap.String("path", r.opts.OutputPath), zap.Int("records", len(records)))

	msg := Message{
		Subject: Subject(now),
		Body:    Body(r.opts.Heading, records, r.opts.TopN),
		Attachment: &Attachment{
			Filename:    filepath.Base(r.opts.OutputPath),
			ContentType: CSVContentType,
			Data:        data,
		},
	}
	if err := r.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	r.log.Info("report sent", zap.Int("records", len(records)))
	return nil
}
