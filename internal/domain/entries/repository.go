package entries

import "context"

// Repository is the record store contract. List returns billable
// entries matching the spec in descending start-time order; an empty
// slice is a valid result, not an error.
type Repository interface {
	List(ctx context.Context, spec QuerySpec) ([]Entry, error)
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByULID(ctx context.Context, ulid string) (*Entry, error)
}
