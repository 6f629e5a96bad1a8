package attendance

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

const recordSelect = `
    SELECT a.id, a.employee_id, e.first_name || ' ' || e.last_name, e.employee_code, e.department_id,
           a.date, a.status,
           to_char(a.check_in_time, 'HH24:MI:SS'), to_char(a.check_out_time, 'HH24:MI:SS'),
           a.created_at
    FROM attendance a
    JOIN employees e ON e.id = a.employee_id
`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.EmployeeCode, &rec.DepartmentID,
		&rec.Date, &rec.Status, &rec.CheckIn, &rec.CheckOut, &rec.CreatedAt)
	return rec, err
}

func (s *Store) Upsert(ctx context.Context, rec Record) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, status, check_in_time, check_out_time)
    VALUES ($1, $2, $3, $4::time, $5::time)
    ON CONFLICT ON CONSTRAINT attendance_employee_date_key DO UPDATE
    SET status = EXCLUDED.status,
        check_in_time = EXCLUDED.check_in_time,
        check_out_time = EXCLUDED.check_out_time
    RETURNING id
  `, rec.EmployeeID, rec.Date, rec.Status, rec.CheckIn, rec.CheckOut).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, recordSelect+" WHERE a.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := recordSelect + " WHERE 1=1"
	var args []any
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += fmt.Sprintf(" AND a.date = $%d", len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND a.employee_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	query += " ORDER BY a.date DESC, a.id DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, id int64, rec Record) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE attendance
    SET date = $1, status = $2, check_in_time = $3::time, check_out_time = $4::time
    WHERE id = $5
  `, rec.Date, rec.Status, rec.CheckIn, rec.CheckOut, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM attendance WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
