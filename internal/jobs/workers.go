package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/worklog-app/server/internal/domain/entries"
	"github.com/worklog-app/server/internal/metrics"
)

// EntrySummaryArgs carries a queued summary email request. Only the raw
// date strings cross the queue boundary; the worker re-resolves the
// range itself, so the payload stays at three serializable fields.
type EntrySummaryArgs struct {
	Recipient string `json:"recipient"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (EntrySummaryArgs) Kind() string { return JobKindEntrySummaryEmail }

func (EntrySummaryArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueEmails,
		MaxAttempts: EntrySummaryMaxAttempts,
	}
}

// SummaryMailer delivers a rendered entry summary.
type SummaryMailer interface {
	SendEntrySummary(ctx context.Context, to string, rng entries.DateRange, items []entries.Entry) error
}

// EntrySummaryWorker resolves the queued date range, fetches the
// matching billable entries and mails the summary.
type EntrySummaryWorker struct {
	river.WorkerDefaults[EntrySummaryArgs]
	Filter *entries.Filter
	Repo   entries.Repository
	Mailer SummaryMailer
}

func (EntrySummaryWorker) Kind() string { return JobKindEntrySummaryEmail }

func (w EntrySummaryWorker) Work(ctx context.Context, job *river.Job[EntrySummaryArgs]) error {
	if w.Filter == nil || w.Repo == nil || w.Mailer == nil {
		return fmt.Errorf("entry summary worker not fully configured")
	}
	if job == nil {
		return fmt.Errorf("entry summary job missing")
	}

	rng, err := w.Filter.Resolve(job.Args.StartDate, job.Args.EndDate)
	if err != nil {
		if errors.Is(err, entries.ErrInvalidDate) {
			// Retrying cannot fix bad input; the enqueue path validates,
			// so this only happens if a malformed payload was inserted
			// directly.
			return river.JobCancel(err)
		}
		return err
	}

	items, err := w.Repo.List(ctx, w.Filter.Spec(rng))
	if err != nil {
		return fmt.Errorf("list entries for summary: %w", err)
	}

	if err := w.Mailer.SendEntrySummary(ctx, job.Args.Recipient, rng, items); err != nil {
		metrics.SummaryEmailsFailed.Inc()
		return err
	}
	metrics.SummaryEmailsSent.Inc()
	return nil
}
