package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/worklog-app/server/internal/api/problem"
	"github.com/worklog-app/server/internal/domain/entries"
	"github.com/worklog-app/server/internal/metrics"
)

type EntriesHandler struct {
	Service *entries.Service
	Env     string
}

func NewEntriesHandler(service *entries.Service, env string) *EntriesHandler {
	return &EntriesHandler{Service: service, Env: env}
}

type entryPayload struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	StartTime   string   `json:"start_time"`
	Hours       *float64 `json:"hours,omitempty"`
	BillAmount  *int64   `json:"bill_amount,omitempty"`
}

type listResponse struct {
	Range rangePayload   `json:"range"`
	Items []entryPayload `json:"items"`
}

type rangePayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://worklog.app/problems/server-error", "Server error", nil, h.Env)
		return
	}

	query := r.URL.Query()
	rng, items, err := h.Service.List(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		if errors.Is(err, entries.ErrInvalidDate) {
			metrics.EntriesListed.WithLabelValues("invalid").Inc()
			problem.Write(w, r, http.StatusBadRequest, "https://worklog.app/problems/validation-error", "Invalid request", err, h.Env)
			return
		}
		metrics.EntriesListed.WithLabelValues("error").Inc()
		problem.Write(w, r, http.StatusInternalServerError, "https://worklog.app/problems/server-error", "Server error", err, h.Env)
		return
	}

	metrics.EntriesListed.WithLabelValues("ok").Inc()
	payload := listResponse{
		Range: rangePayload{
			StartDate: rng.Start.Format("2006-01-02"),
			EndDate:   rng.End.Format("2006-01-02"),
		},
		Items: make([]entryPayload, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, toEntryPayload(item))
	}

	writeJSON(w, http.StatusOK, payload)
}

func (h *EntriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://worklog.app/problems/server-error", "Server error", nil, h.Env)
		return
	}

	ulid := strings.TrimSpace(r.PathValue("id"))
	if ulid == "" {
		problem.Write(w, r, http.StatusBadRequest, "https://worklog.app/problems/validation-error", "Invalid request", errors.New("missing entry id"), h.Env)
		return
	}

	entry, err := h.Service.GetByULID(r.Context(), ulid)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://worklog.app/problems/server-error", "Server error", err, h.Env)
		return
	}
	if entry == nil {
		problem.Write(w, r, http.StatusNotFound, "https://worklog.app/problems/not-found", "Not found", problem.ErrNotFound, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, toEntryPayload(*entry))
}

func (h *EntriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://worklog.app/problems/server-error", "Server error", nil, h.Env)
		return
	}

	var input entries.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://worklog.app/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	entry, err := h.Service.Create(r.Context(), input)
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://worklog.app/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryPayload(entry))
}

func toEntryPayload(entry entries.Entry) entryPayload {
	return entryPayload{
		ID:          entry.ULID,
		Description: entry.Description,
		StartTime:   entry.StartTime.Format(time.RFC3339),
		Hours:       entry.Hours,
		BillAmount:  entry.BillAmount,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
