package entries

import (
	"strings"
	"time"
)

// Clock supplies the current time. Injected so "today" is deterministic
// in tests; production code uses SystemClock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// DateRange is a resolved, inclusive calendar-day range. Both bounds are
// always populated (midnight in the filter's zone). Start may be after
// End; an inverted range is not an error, it just matches nothing.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// QuerySpec describes which entries to fetch: billable entries whose
// start time falls in the half-open window [From, Until), newest first.
// Until is the midnight after the range's last day, so the final day is
// included down to its last instant. Postgres keeps microseconds, which
// is why the window is half-open instead of a closed 23:59:59.999999
// upper bound.
type QuerySpec struct {
	From  time.Time
	Until time.Time
}

// dateLayouts are the accepted input formats. Full timestamps are
// accepted for their date portion, read literally (no zone conversion).
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Filter resolves raw optional date inputs into a concrete DateRange and
// builds the matching query specification. It owns no state beyond the
// clock and zone, and performs no I/O.
type Filter struct {
	clock Clock
	loc   *time.Location
}

func NewFilter(clock Clock, loc *time.Location) *Filter {
	if clock == nil {
		clock = SystemClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Filter{clock: clock, loc: loc}
}

// Resolve turns two optional date strings into a concrete range. Blank
// input falls back to today in the configured zone; non-blank input that
// does not parse returns InvalidDateError. No ordering correction is
// applied.
func (f *Filter) Resolve(startInput, endInput string) (DateRange, error) {
	today := f.dateOf(f.clock.Now().In(f.loc))
	rng := DateRange{Start: today, End: today}

	if value := strings.TrimSpace(startInput); value != "" {
		parsed, err := f.parseDate("start_date", value)
		if err != nil {
			return DateRange{}, err
		}
		rng.Start = parsed
	}
	if value := strings.TrimSpace(endInput); value != "" {
		parsed, err := f.parseDate("end_date", value)
		if err != nil {
			return DateRange{}, err
		}
		rng.End = parsed
	}
	return rng, nil
}

// Spec builds the query specification for a resolved range. A record at
// the last instant of the end day matches; one at the first instant of
// the following day does not.
func (f *Filter) Spec(rng DateRange) QuerySpec {
	return QuerySpec{
		From:  rng.Start,
		Until: rng.End.AddDate(0, 0, 1),
	}
}

func (f *Filter) parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, f.loc); err == nil {
			return f.dateOf(parsed), nil
		}
	}
	return time.Time{}, InvalidDateError{Field: field, Value: value}
}

func (f *Filter) dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, f.loc)
}
