package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/worklog-app/server/internal/api/problem"
	"github.com/worklog-app/server/internal/domain/entries"
	"github.com/worklog-app/server/internal/jobs"
	"github.com/worklog-app/server/internal/metrics"
)

// JobEnqueuer is the slice of the river client the handler needs;
// narrowed so tests can stub it.
type JobEnqueuer interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// NotificationsHandler accepts summary email requests and hands them to
// the job queue. Only the recipient and the two raw date strings cross
// the boundary; the worker re-resolves the range on its own clock.
type NotificationsHandler struct {
	Service  *entries.Service
	Enqueuer JobEnqueuer
	Env      string

	validate *validator.Validate
}

func NewNotificationsHandler(service *entries.Service, enqueuer JobEnqueuer, env string) *NotificationsHandler {
	return &NotificationsHandler{
		Service:  service,
		Enqueuer: enqueuer,
		Env:      env,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type queuedResponse struct {
	Status string `json:"status"`
	JobID  int64  `json:"job_id,omitempty"`
}

func (h *NotificationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil || h.Enqueuer == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://worklog.app/problems/server-error", "Server error", nil, h.Env)
		return
	}

	var request entries.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://worklog.app/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	if err := h.validate.Struct(request); err != nil {
		fields := map[string]interface{}{}
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				fields[fieldErr.Field()] = fieldErr.Tag()
			}
		}
		problem.Write(w, r, http.StatusBadRequest, "https://worklog.app/problems/validation-error", "Invalid request", err, h.Env,
			problem.WithErrors(fields))
		return
	}

	// Reject malformed dates now, before anything is queued; blank
	// inputs stay blank so the worker resolves "today" at send time.
	if _, err := h.Service.Filter().Resolve(request.StartInput, request.EndInput); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://worklog.app/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	result, err := h.Enqueuer.Insert(r.Context(), jobs.EntrySummaryArgs{
		Recipient: request.Recipient,
		StartDate: request.StartInput,
		EndDate:   request.EndInput,
	}, nil)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://worklog.app/problems/server-error", "Server error", err, h.Env)
		return
	}

	metrics.SummaryEmailsQueued.Inc()
	response := queuedResponse{Status: "queued"}
	if result != nil && result.Job != nil {
		response.JobID = result.Job.ID
	}
	writeJSON(w, http.StatusAccepted, response)
}
