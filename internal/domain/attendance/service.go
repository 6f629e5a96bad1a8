package attendance

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Record upserts attendance for (employee, date). Posting the same pair again
// overwrites status and times on the existing row.
func (s *Service) Record(ctx context.Context, rec Record) (int64, error) {
	rec, err := normalize(rec)
	if err != nil {
		return 0, err
	}
	return s.Store.Upsert(ctx, rec)
}

func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Record, error) {
	return s.Store.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id int64, rec Record) error {
	rec, err := normalize(rec)
	if err != nil {
		return err
	}
	return s.Store.Update(ctx, id, rec)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}
