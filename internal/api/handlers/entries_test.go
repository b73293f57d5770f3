package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/worklog-app/server/internal/domain/entries"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeRepo struct {
	entries []entries.Entry
	listErr error
	calls   int
}

func (r *fakeRepo) List(_ context.Context, spec entries.QuerySpec) ([]entries.Entry, error) {
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var matched []entries.Entry
	for _, entry := range r.entries {
		if !entry.Billable() {
			continue
		}
		if entry.StartTime.Before(spec.From) || !entry.StartTime.Before(spec.Until) {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.After(matched[j].StartTime)
	})
	return matched, nil
}

func (r *fakeRepo) Create(_ context.Context, entry entries.Entry) (entries.Entry, error) {
	entry.ID = "row-1"
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeRepo) GetByULID(_ context.Context, ulid string) (*entries.Entry, error) {
	for _, entry := range r.entries {
		if entry.ULID == ulid {
			found := entry
			return &found, nil
		}
	}
	return nil, nil
}

func hoursPtr(v float64) *float64 { return &v }
func centsPtr(v int64) *int64     { return &v }

func newTestService(repo *fakeRepo) *entries.Service {
	filter := entries.NewFilter(fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}, time.UTC)
	return entries.NewService(filter, repo)
}

func seededRepo() *fakeRepo {
	return &fakeRepo{entries: []entries.Entry{
		{ULID: "01TODAY00000000000000000AA", Description: "today", StartTime: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), Hours: hoursPtr(2)},
		{ULID: "01YESTERDAY0000000000000AA", Description: "yesterday", StartTime: time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC), BillAmount: centsPtr(9000)},
		{ULID: "01FREE000000000000000000AA", Description: "unbillable", StartTime: time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC)},
	}}
}

func TestEntriesListDefaultsToToday(t *testing.T) {
	handler := NewEntriesHandler(newTestService(seededRepo()), "test")

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest("GET", "/api/v1/entries", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Range struct {
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		} `json:"range"`
		Items []struct {
			ID          string `json:"id"`
			Description string `json:"description"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2024-03-15", body.Range.StartDate)
	require.Equal(t, "2024-03-15", body.Range.EndDate)
	require.Len(t, body.Items, 1)
	require.Equal(t, "today", body.Items[0].Description)
}

func TestEntriesListWithBounds(t *testing.T) {
	handler := NewEntriesHandler(newTestService(seededRepo()), "test")

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest("GET", "/api/v1/entries?start_date=2024-03-14&end_date=2024-03-15", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []struct {
			Description string `json:"description"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	require.Equal(t, "today", body.Items[0].Description)
	require.Equal(t, "yesterday", body.Items[1].Description)
}

func TestEntriesListMalformedDate(t *testing.T) {
	repo := seededRepo()
	handler := NewEntriesHandler(newTestService(repo), "test")

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest("GET", "/api/v1/entries?start_date=not-a-date", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Zero(t, repo.calls, "no query should run for malformed input")
}

func TestEntriesListEmptyResult(t *testing.T) {
	handler := NewEntriesHandler(newTestService(&fakeRepo{}), "test")

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest("GET", "/api/v1/entries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestEntriesGet(t *testing.T) {
	handler := NewEntriesHandler(newTestService(seededRepo()), "test")

	req := httptest.NewRequest("GET", "/api/v1/entries/01TODAY00000000000000000AA", nil)
	req.SetPathValue("id", "01TODAY00000000000000000AA")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"description":"today"`)
}

func TestEntriesGetNotFound(t *testing.T) {
	handler := NewEntriesHandler(newTestService(seededRepo()), "test")

	req := httptest.NewRequest("GET", "/api/v1/entries/01MISSING000000000000000AA", nil)
	req.SetPathValue("id", "01MISSING000000000000000AA")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntriesCreate(t *testing.T) {
	repo := &fakeRepo{}
	handler := NewEntriesHandler(newTestService(repo), "test")

	body := `{"description":"standup","start_time":"2024-03-15 09:30:00","hours":0.5}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest("POST", "/api/v1/entries", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.entries, 1)
	require.Contains(t, rec.Body.String(), `"description":"standup"`)
}

func TestEntriesCreateRejectsBadStartTime(t *testing.T) {
	handler := NewEntriesHandler(newTestService(&fakeRepo{}), "test")

	body := `{"description":"standup","start_time":"soon"}`
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest("POST", "/api/v1/entries", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
