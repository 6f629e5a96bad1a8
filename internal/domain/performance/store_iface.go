package performance

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, review Review) (int64, error)
	Get(ctx context.Context, id int64) (Review, error)
	List(ctx context.Context, filter Filter) ([]Review, error)
	Update(ctx context.Context, id int64, review Review) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}
