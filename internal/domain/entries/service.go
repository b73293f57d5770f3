package entries

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	filter *Filter
	repo   Repository
}

func NewService(filter *Filter, repo Repository) *Service {
	return &Service{filter: filter, repo: repo}
}

// Filter exposes the service's date-range filter so callers that only
// need resolution (input validation, the summary worker) share one
// clock and zone.
func (s *Service) Filter() *Filter {
	return s.filter
}

// List resolves the raw inputs and fetches the matching billable
// entries, newest first. Malformed input fails before any query runs.
func (s *Service) List(ctx context.Context, startInput, endInput string) (DateRange, []Entry, error) {
	rng, err := s.filter.Resolve(startInput, endInput)
	if err != nil {
		return DateRange{}, nil, err
	}
	items, err := s.repo.List(ctx, s.filter.Spec(rng))
	if err != nil {
		return DateRange{}, nil, err
	}
	return rng, items, nil
}

// GetByULID returns the entry with the given public id, or nil when no
// such entry exists.
func (s *Service) GetByULID(ctx context.Context, ulid string) (*Entry, error) {
	return s.repo.GetByULID(ctx, ulid)
}

// Create records a new entry. Start time accepts the same layouts as
// the filter inputs.
func (s *Service) Create(ctx context.Context, input EntryInput) (Entry, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return Entry{}, fmt.Errorf("description is required")
	}
	value := strings.TrimSpace(input.StartTime)
	if value == "" {
		return Entry{}, fmt.Errorf("start_time is required")
	}

	var startTime time.Time
	var parseErr error
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, s.filter.loc); err == nil {
			startTime = parsed
			parseErr = nil
			break
		} else {
			parseErr = err
		}
	}
	if parseErr != nil {
		return Entry{}, InvalidDateError{Field: "start_time", Value: value}
	}

	ulid, err := NewEntryULID()
	if err != nil {
		return Entry{}, fmt.Errorf("mint entry id: %w", err)
	}

	return s.repo.Create(ctx, Entry{
		ULID:        ulid,
		Description: description,
		StartTime:   startTime,
		Hours:       input.Hours,
		BillAmount:  input.BillAmount,
	})
}
