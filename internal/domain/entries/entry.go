package entries

import (
	"time"

	"github.com/worklog-app/server/internal/domain/ids"
)

// Entry is a time-tracking record. Hours and BillAmount are both
// optional; an entry is billable when either is set.
type Entry struct {
	ID          string
	ULID        string
	Description string
	StartTime   time.Time
	Hours       *float64
	BillAmount  *int64 // cents
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Billable reports whether the entry has recorded hours or a bill
// amount.
func (e Entry) Billable() bool {
	return e.Hours != nil || e.BillAmount != nil
}

// EntryInput is the payload for creating an entry.
type EntryInput struct {
	Description string   `json:"description"`
	StartTime   string   `json:"start_time"`
	Hours       *float64 `json:"hours,omitempty"`
	BillAmount  *int64   `json:"bill_amount,omitempty"`
}

// NewEntryULID mints a public identifier for a new entry.
func NewEntryULID() (string, error) {
	return ids.NewULID()
}
