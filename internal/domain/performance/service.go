package performance

import (
	"context"
	"time"
)

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

func validStatus(v string) bool {
	for _, s := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s *Service) prepare(rv Review) (Review, error) {
	if rv.Rating < MinRating || rv.Rating > MaxRating {
		return Review{}, ErrInvalidRating
	}
	if rv.Status == "" {
		rv.Status = StatusDraft
	}
	if !validStatus(rv.Status) {
		return Review{}, ErrInvalidStatus
	}
	if rv.ReviewDate.IsZero() {
		rv.ReviewDate = s.Now()
	}
	y, m, d := rv.ReviewDate.Date()
	rv.ReviewDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return rv, nil
}

// Create stores a review. reviewerID fills ReviewerID when the caller did
// not name a reviewer.
func (s *Service) Create(ctx context.Context, rv Review, reviewerID *int64) (Review, error) {
	if rv.ReviewerID == nil {
		rv.ReviewerID = reviewerID
	}
	rv, err := s.prepare(rv)
	if err != nil {
		return Review{}, err
	}
	id, err := s.Store.Insert(ctx, rv)
	if err != nil {
		return Review{}, err
	}
	rv.ID = id
	return rv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Review, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Review, error) {
	return s.Store.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id int64, rv Review) (Review, error) {
	rv, err := s.prepare(rv)
	if err != nil {
		return Review{}, err
	}
	if err := s.Store.Update(ctx, id, rv); err != nil {
		return Review{}, err
	}
	rv.ID = id
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

// Acknowledge marks a review as seen by the employee it is about.
func (s *Service) Acknowledge(ctx context.Context, id int64, employeeID *int64) (Review, error) {
	rv, err := s.Store.Get(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if employeeID == nil || *employeeID != rv.EmployeeID {
		return Review{}, ErrNotReviewSubject
	}
	if err := s.Store.SetStatus(ctx, id, StatusAcknowledged); err != nil {
		return Review{}, err
	}
	rv.Status = StatusAcknowledged
	return rv, nil
}
