package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"staffrecords/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestSelect = `
    SELECT l.id, l.employee_id, e.first_name || ' ' || e.last_name, e.employee_code, e.department_id,
           l.leave_type, l.start_date, l.end_date, l.days_requested, l.reason, l.status, l.approved_by,
           CASE WHEN a.id IS NULL THEN NULL ELSE a.first_name || ' ' || a.last_name END,
           l.created_at
    FROM leave_requests l
    JOIN employees e ON e.id = l.employee_id
    LEFT JOIN employees a ON a.id = l.approved_by
`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &req.EmployeeCode, &req.DepartmentID,
		&req.LeaveType, &req.StartDate, &req.EndDate, &req.DaysRequested, &req.Reason, &req.Status, &req.ApprovedBy,
		&req.ApproverName, &req.CreatedAt)
	return req, err
}

func (s *Store) Insert(ctx context.Context, req Request) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days_requested, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.DaysRequested, req.Reason, req.Status).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id int64) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, requestSelect+" WHERE l.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Request, error) {
	query := requestSelect + " WHERE 1=1"
	var args []any
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND l.employee_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	query += " ORDER BY l.created_at DESC, l.id DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, id int64, req Request) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET leave_type = $1, start_date = $2, end_date = $3, days_requested = $4, reason = $5,
        status = $6, approved_by = $7
    WHERE id = $8
  `, req.LeaveType, req.StartDate, req.EndDate, req.DaysRequested, req.Reason, req.Status, req.ApprovedBy, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
