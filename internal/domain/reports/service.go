package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) today() time.Time {
	y, m, d := s.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DashboardStats runs every figure concurrently. Any failing figure fails
// the whole report.
func (s *Service) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	today := s.today()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalEmployees, err = s.Store.CountActiveEmployees(ctx)
		return wrap("total employees", err)
	})
	g.Go(func() (err error) {
		out.PendingLeaveRequests, err = s.Store.CountPendingLeave(ctx)
		return wrap("pending leave", err)
	})
	g.Go(func() (err error) {
		out.TodayPresent, err = s.Store.CountPresentOn(ctx, today)
		return wrap("present today", err)
	})
	g.Go(func() (err error) {
		out.TotalDepartments, err = s.Store.CountActiveDepartments(ctx)
		return wrap("departments", err)
	})
	g.Go(func() (err error) {
		out.EmployeesByType, err = s.Store.EmployeesByType(ctx)
		return wrap("employees by type", err)
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	if out.EmployeesByType == nil {
		out.EmployeesByType = []TypeCount{}
	}
	return out, nil
}

func wrap(figure string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard %s: %w", figure, err)
}

func (s *Service) DepartmentDistribution(ctx context.Context) ([]DepartmentCount, error) {
	out, err := s.Store.DepartmentDistribution(ctx)
	if out == nil && err == nil {
		out = []DepartmentCount{}
	}
	return out, err
}

// AttendanceSummary counts records per status for day, today when day is nil.
func (s *Service) AttendanceSummary(ctx context.Context, day *time.Time) (AttendanceSummary, error) {
	d := s.today()
	if day != nil {
		d = *day
	}
	counts, err := s.Store.AttendanceByStatus(ctx, d)
	if err != nil {
		return AttendanceSummary{}, err
	}
	out := AttendanceSummary{Date: d.Format(time.DateOnly), Counts: []StatusCount{}}
	for _, c := range counts {
		out.Counts = append(out.Counts, c)
		out.Total += c.Count
	}
	return out, nil
}

func (s *Service) LeaveSummary(ctx context.Context) ([]LeaveSummaryRow, error) {
	out, err := s.Store.LeaveSummary(ctx)
	if out == nil && err == nil {
		out = []LeaveSummaryRow{}
	}
	return out, err
}

func (s *Service) Roster(ctx context.Context) ([]RosterRow, error) {
	return s.Store.Roster(ctx)
}
