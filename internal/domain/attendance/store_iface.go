package attendance

import "context"

type StoreAPI interface {
	// Upsert writes the record for (employee, date), replacing status and
	// times when one already exists.
	Upsert(ctx context.Context, rec Record) (int64, error)
	Get(ctx context.Context, id int64) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Update(ctx context.Context, id int64, rec Record) error
	Delete(ctx context.Context, id int64) error
}
