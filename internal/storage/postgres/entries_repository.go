package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/worklog-app/server/internal/domain/entries"
)

var _ entries.Repository = (*EntryRepository)(nil)

type entryRow struct {
	ID          string
	ULID        string
	Description string
	StartTime   pgtype.Timestamptz
	Hours       *float64
	BillAmount  *int64
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (row entryRow) toDomain() entries.Entry {
	return entries.Entry{
		ID:          row.ID,
		ULID:        row.ULID,
		Description: row.Description,
		StartTime:   row.StartTime.Time,
		Hours:       row.Hours,
		BillAmount:  row.BillAmount,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

// List fetches billable entries inside the spec's window, newest first.
// The full matching set is returned; the caller asked for a bounded day
// range, not a page.
func (r *EntryRepository) List(ctx context.Context, spec entries.QuerySpec) ([]entries.Entry, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, ulid, description, start_time, hours, bill_amount, created_at, updated_at
  FROM entries
 WHERE (hours IS NOT NULL OR bill_amount IS NOT NULL)
   AND start_time >= $1
   AND start_time < $2
 ORDER BY start_time DESC
`, spec.From, spec.Until)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var result []entries.Entry
	for rows.Next() {
		var row entryRow
		if err := rows.Scan(
			&row.ID, &row.ULID, &row.Description, &row.StartTime,
			&row.Hours, &row.BillAmount, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		result = append(result, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return result, nil
}

func (r *EntryRepository) Create(ctx context.Context, entry entries.Entry) (entries.Entry, error) {
	var row entryRow
	err := r.queryer().QueryRow(ctx, `
INSERT INTO entries (ulid, description, start_time, hours, bill_amount)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, ulid, description, start_time, hours, bill_amount, created_at, updated_at
`, entry.ULID, entry.Description, entry.StartTime, entry.Hours, entry.BillAmount).Scan(
		&row.ID, &row.ULID, &row.Description, &row.StartTime,
		&row.Hours, &row.BillAmount, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return entries.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	return row.toDomain(), nil
}

// GetByULID fetches a single entry by its public identifier.
func (r *EntryRepository) GetByULID(ctx context.Context, ulid string) (*entries.Entry, error) {
	var row entryRow
	err := r.queryer().QueryRow(ctx, `
SELECT id, ulid, description, start_time, hours, bill_amount, created_at, updated_at
  FROM entries
 WHERE ulid = $1
`, ulid).Scan(
		&row.ID, &row.ULID, &row.Description, &row.StartTime,
		&row.Hours, &row.BillAmount, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	entry := row.toDomain()
	return &entry, nil
}
