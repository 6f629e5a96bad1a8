package leave

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, req Request) (int64, error)
	Get(ctx context.Context, id int64) (Request, error)
	List(ctx context.Context, filter Filter) ([]Request, error)
	Update(ctx context.Context, id int64, req Request) error
	Delete(ctx context.Context, id int64) error
}
