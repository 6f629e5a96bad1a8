package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"staffrecords/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (s *Store) CountActiveEmployees(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM employees WHERE status = 'active'")
}

func (s *Store) CountPendingLeave(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = 'pending'")
}

func (s *Store) CountPresentOn(ctx context.Context, day time.Time) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM attendance WHERE date = $1 AND status = 'present'", day)
}

func (s *Store) CountActiveDepartments(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM departments WHERE status = 'active'")
}

func (s *Store) EmployeesByType(ctx context.Context) ([]TypeCount, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(employment_type, 'unspecified'), COUNT(1)
    FROM employees
    WHERE status = 'active'
    GROUP BY 1
    ORDER BY 1
  `)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (TypeCount, error) {
		var tc TypeCount
		err := row.Scan(&tc.EmploymentType, &tc.Count)
		return tc, err
	})
}

func (s *Store) DepartmentDistribution(ctx context.Context) ([]DepartmentCount, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.name, COUNT(e.id)
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id AND e.status = 'active'
    GROUP BY d.id, d.name
    ORDER BY d.name
  `)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (DepartmentCount, error) {
		var dc DepartmentCount
		err := row.Scan(&dc.DepartmentID, &dc.Name, &dc.EmployeeCount)
		return dc, err
	})
}

func (s *Store) AttendanceByStatus(ctx context.Context, day time.Time) ([]StatusCount, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT status, COUNT(1)
    FROM attendance
    WHERE date = $1
    GROUP BY status
    ORDER BY status
  `, day)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (StatusCount, error) {
		var sc StatusCount
		err := row.Scan(&sc.Status, &sc.Count)
		return sc, err
	})
}

func (s *Store) LeaveSummary(ctx context.Context) ([]LeaveSummaryRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT leave_type, status, COUNT(1), COALESCE(SUM(days_requested), 0)
    FROM leave_requests
    GROUP BY leave_type, status
    ORDER BY leave_type, status
  `)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (LeaveSummaryRow, error) {
		var ls LeaveSummaryRow
		err := row.Scan(&ls.LeaveType, &ls.Status, &ls.Count, &ls.TotalDays)
		return ls, err
	})
}

func (s *Store) Roster(ctx context.Context) ([]RosterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.employee_code, e.first_name, e.last_name, e.email, COALESCE(e.phone, ''),
           COALESCE(d.name, ''), COALESCE(e.position, ''), COALESCE(e.employment_type, ''),
           e.status, e.hire_date, e.salary
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    ORDER BY e.employee_code
  `)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (RosterRow, error) {
		var r RosterRow
		err := row.Scan(&r.Code, &r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.Department, &r.Position,
			&r.EmploymentType, &r.Status, &r.HireDate, &r.Salary)
		return r, err
	})
}
