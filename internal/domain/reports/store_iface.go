package reports

import (
	"context"
	"time"
)

type StoreAPI interface {
	CountActiveEmployees(ctx context.Context) (int, error)
	CountPendingLeave(ctx context.Context) (int, error)
	CountPresentOn(ctx context.Context, day time.Time) (int, error)
	CountActiveDepartments(ctx context.Context) (int, error)
	EmployeesByType(ctx context.Context) ([]TypeCount, error)
	DepartmentDistribution(ctx context.Context) ([]DepartmentCount, error)
	AttendanceByStatus(ctx context.Context, day time.Time) ([]StatusCount, error)
	LeaveSummary(ctx context.Context) ([]LeaveSummaryRow, error)
	Roster(ctx context.Context) ([]RosterRow, error)
}
