package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/worklog-app/server/internal/domain/entries"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type recordingRepo struct {
	entries []entries.Entry
	specs   []entries.QuerySpec
	err     error
}

func (r *recordingRepo) List(_ context.Context, spec entries.QuerySpec) ([]entries.Entry, error) {
	r.specs = append(r.specs, spec)
	return r.entries, r.err
}

func (r *recordingRepo) Create(_ context.Context, entry entries.Entry) (entries.Entry, error) {
	return entry, nil
}

func (r *recordingRepo) GetByULID(_ context.Context, _ string) (*entries.Entry, error) {
	return nil, nil
}

type recordingMailer struct {
	recipients []string
	ranges     []entries.DateRange
	items      [][]entries.Entry
	err        error
}

func (m *recordingMailer) SendEntrySummary(_ context.Context, to string, rng entries.DateRange, items []entries.Entry) error {
	m.recipients = append(m.recipients, to)
	m.ranges = append(m.ranges, rng)
	m.items = append(m.items, items)
	return m.err
}

func summaryWorker(repo *recordingRepo, mailer *recordingMailer) EntrySummaryWorker {
	filter := entries.NewFilter(fixedClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}, time.UTC)
	return EntrySummaryWorker{Filter: filter, Repo: repo, Mailer: mailer}
}

func TestEntrySummaryArgs_Kind(t *testing.T) {
	args := EntrySummaryArgs{Recipient: "reports@worklog.test"}
	if args.Kind() != JobKindEntrySummaryEmail {
		t.Errorf("Kind() = %q, want %q", args.Kind(), JobKindEntrySummaryEmail)
	}
	if opts := args.InsertOpts(); opts.Queue != QueueEmails {
		t.Errorf("InsertOpts().Queue = %q, want %q", opts.Queue, QueueEmails)
	}
}

func TestEntrySummaryWorkerSendsSummary(t *testing.T) {
	hours := 2.0
	repo := &recordingRepo{entries: []entries.Entry{
		{ULID: "a", StartTime: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), Hours: &hours},
	}}
	mailer := &recordingMailer{}
	worker := summaryWorker(repo, mailer)

	job := &river.Job[EntrySummaryArgs]{
		Args: EntrySummaryArgs{
			Recipient: "reports@worklog.test",
			StartDate: "2024-03-10",
			EndDate:   "2024-03-11",
		},
	}
	if err := worker.Work(context.Background(), job); err != nil {
		t.Fatalf("Work() error = %v", err)
	}

	if len(repo.specs) != 1 {
		t.Fatalf("expected one query, got %d", len(repo.specs))
	}
	wantFrom := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	wantUntil := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	if !repo.specs[0].From.Equal(wantFrom) || !repo.specs[0].Until.Equal(wantUntil) {
		t.Errorf("query window = [%v, %v), want [%v, %v)", repo.specs[0].From, repo.specs[0].Until, wantFrom, wantUntil)
	}

	if len(mailer.recipients) != 1 || mailer.recipients[0] != "reports@worklog.test" {
		t.Errorf("mailer recipients = %v", mailer.recipients)
	}
	if len(mailer.items[0]) != 1 {
		t.Errorf("mailed %d entries, want 1", len(mailer.items[0]))
	}
}

func TestEntrySummaryWorkerDefaultsRangeToToday(t *testing.T) {
	repo := &recordingRepo{}
	mailer := &recordingMailer{}
	worker := summaryWorker(repo, mailer)

	job := &river.Job[EntrySummaryArgs]{Args: EntrySummaryArgs{Recipient: "reports@worklog.test"}}
	if err := worker.Work(context.Background(), job); err != nil {
		t.Fatalf("Work() error = %v", err)
	}

	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !mailer.ranges[0].Start.Equal(today) || !mailer.ranges[0].End.Equal(today) {
		t.Errorf("range = %+v, want today/today", mailer.ranges[0])
	}
}

func TestEntrySummaryWorkerCancelsOnBadDates(t *testing.T) {
	repo := &recordingRepo{}
	mailer := &recordingMailer{}
	worker := summaryWorker(repo, mailer)

	job := &river.Job[EntrySummaryArgs]{
		Args: EntrySummaryArgs{Recipient: "reports@worklog.test", StartDate: "never"},
	}
	err := worker.Work(context.Background(), job)
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if !errors.Is(err, entries.ErrInvalidDate) {
		t.Errorf("error = %v, want wrapped ErrInvalidDate", err)
	}
	if len(repo.specs) != 0 {
		t.Errorf("query ran despite malformed input")
	}
	if len(mailer.recipients) != 0 {
		t.Errorf("mail sent despite malformed input")
	}
}

func TestEntrySummaryWorkerPropagatesMailerError(t *testing.T) {
	repo := &recordingRepo{}
	mailer := &recordingMailer{err: errors.New("smtp down")}
	worker := summaryWorker(repo, mailer)

	job := &river.Job[EntrySummaryArgs]{Args: EntrySummaryArgs{Recipient: "reports@worklog.test"}}
	if err := worker.Work(context.Background(), job); err == nil {
		t.Fatal("expected mailer error to propagate for retry")
	}
}

func TestEntrySummaryWorkerRequiresDependencies(t *testing.T) {
	worker := EntrySummaryWorker{}
	job := &river.Job[EntrySummaryArgs]{Args: EntrySummaryArgs{Recipient: "reports@worklog.test"}}
	if err := worker.Work(context.Background(), job); err == nil {
		t.Fatal("expected error for unconfigured worker")
	}
}
