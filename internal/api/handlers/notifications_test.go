package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"github.com/worklog-app/server/internal/jobs"
)

type stubEnqueuer struct {
	inserted []river.JobArgs
	err      error
}

func (s *stubEnqueuer) Insert(_ context.Context, args river.JobArgs, _ *river.InsertOpts) (*rivertype.JobInsertResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.inserted = append(s.inserted, args)
	return &rivertype.JobInsertResult{Job: &rivertype.JobRow{ID: 42}}, nil
}

func TestNotificationsCreateQueuesJob(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	handler := NewNotificationsHandler(newTestService(seededRepo()), enqueuer, "test")

	body := `{"recipient":"pat@example.com","start_date":"2024-03-14","end_date":"2024-03-15"}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest("POST", "/api/v1/entries/summary-email", strings.NewReader(body)))

	require.Equal(t, http.StatusAccepted, rec.Code)

	var response struct {
		Status string `json:"status"`
		JobID  int64  `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "queued", response.Status)
	require.Equal(t, int64(42), response.JobID)

	require.Len(t, enqueuer.inserted, 1)
	args, ok := enqueuer.inserted[0].(jobs.EntrySummaryArgs)
	require.True(t, ok)
	require.Equal(t, "pat@example.com", args.Recipient)
	require.Equal(t, "2024-03-14", args.StartDate)
	require.Equal(t, "2024-03-15", args.EndDate)
}

func TestNotificationsCreateBlankDatesStayBlank(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	handler := NewNotificationsHandler(newTestService(seededRepo()), enqueuer, "test")

	body := `{"recipient":"pat@example.com"}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest("POST", "/api/v1/entries/summary-email", strings.NewReader(body)))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enqueuer.inserted, 1)
	args := enqueuer.inserted[0].(jobs.EntrySummaryArgs)
	require.Empty(t, args.StartDate)
	require.Empty(t, args.EndDate)
}

func TestNotificationsCreateRejectsMissingRecipient(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	handler := NewNotificationsHandler(newTestService(seededRepo()), enqueuer, "test")

	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest("POST", "/api/v1/entries/summary-email", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, enqueuer.inserted)
}

func TestNotificationsCreateRejectsMalformedDate(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	handler := NewNotificationsHandler(newTestService(seededRepo()), enqueuer, "test")

	body := `{"recipient":"pat@example.com","start_date":"14/03/2024"}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest("POST", "/api/v1/entries/summary-email", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, enqueuer.inserted, "malformed dates must never reach the queue")
}

func TestNotificationsCreateInsertFailure(t *testing.T) {
	enqueuer := &stubEnqueuer{err: errors.New("queue unavailable")}
	handler := NewNotificationsHandler(newTestService(seededRepo()), enqueuer, "test")

	body := `{"recipient":"pat@example.com"}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest("POST", "/api/v1/entries/summary-email", strings.NewReader(body)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
