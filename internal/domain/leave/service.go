package leave

import (
	"context"
	"strings"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Create(ctx context.Context, in NewRequest) (Request, error) {
	if !validType(in.LeaveType) {
		return Request{}, ErrInvalidType
	}
	days, err := CalculateDays(in.StartDate, in.EndDate)
	if err != nil {
		return Request{}, err
	}
	req := Request{
		EmployeeID:    in.EmployeeID,
		LeaveType:     in.LeaveType,
		StartDate:     truncateDay(in.StartDate),
		EndDate:       truncateDay(in.EndDate),
		DaysRequested: days,
		Reason:        strings.TrimSpace(in.Reason),
		Status:        StatusPending,
	}
	id, err := s.Store.Insert(ctx, req)
	if err != nil {
		return Request{}, err
	}
	req.ID = id
	return req, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Request, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Request, error) {
	return s.Store.List(ctx, filter)
}

// Update applies a decision and/or an edit. Re-dated requests get their day
// count recomputed. It returns the stored request before and after.
func (s *Service) Update(ctx context.Context, id int64, change Change) (Request, Request, error) {
	before, err := s.Store.Get(ctx, id)
	if err != nil {
		return Request{}, Request{}, err
	}
	after := before

	if change.LeaveType != "" {
		if !validType(change.LeaveType) {
			return Request{}, Request{}, ErrInvalidType
		}
		after.LeaveType = change.LeaveType
	}
	if change.Reason != nil {
		after.Reason = strings.TrimSpace(*change.Reason)
	}
	if change.StartDate != nil {
		after.StartDate = truncateDay(*change.StartDate)
	}
	if change.EndDate != nil {
		after.EndDate = truncateDay(*change.EndDate)
	}
	if change.StartDate != nil || change.EndDate != nil {
		days, err := CalculateDays(after.StartDate, after.EndDate)
		if err != nil {
			return Request{}, Request{}, err
		}
		after.DaysRequested = days
	}

	switch change.Status {
	case "":
	case StatusApproved, StatusRejected:
		after.Status = change.Status
		after.ApprovedBy = change.ApproverID
	case StatusPending:
		after.Status = StatusPending
		after.ApprovedBy = nil
	default:
		return Request{}, Request{}, ErrInvalidState
	}

	if err := s.Store.Update(ctx, id, after); err != nil {
		return Request{}, Request{}, err
	}
	return before, after, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}
