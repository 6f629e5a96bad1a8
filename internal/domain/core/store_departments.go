package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const departmentSelect = `
    SELECT d.id, d.name, d.head_id,
           CASE WHEN h.id IS NULL THEN NULL ELSE h.first_name || ' ' || h.last_name END,
           d.description, d.status,
           (SELECT COUNT(1) FROM employees e WHERE e.department_id = d.id AND e.status = 'active'),
           d.created_at
    FROM departments d
    LEFT JOIN employees h ON h.id = d.head_id
`

func scanDepartment(row pgx.Row) (Department, error) {
	var dep Department
	err := row.Scan(&dep.ID, &dep.Name, &dep.HeadID, &dep.HeadName, &dep.Description, &dep.Status,
		&dep.EmployeeCount, &dep.CreatedAt)
	return dep, err
}

func (s *Store) ListDepartments(ctx context.Context, search string) ([]Department, error) {
	query := departmentSelect
	var args []any
	if search != "" {
		query += " WHERE d.name ILIKE $1 OR d.description ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY d.name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Department{}
	for rows.Next() {
		dep, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) GetDepartment(ctx context.Context, id int64) (Department, error) {
	dep, err := scanDepartment(s.DB.QueryRow(ctx, departmentSelect+" WHERE d.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrDepartmentNotFound
	}
	return dep, err
}

func (s *Store) InsertDepartment(ctx context.Context, dep Department) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, head_id, description, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, dep.Name, dep.HeadID, dep.Description, dep.Status).Scan(&id)
	return id, err
}

func (s *Store) UpdateDepartment(ctx context.Context, id int64, dep Department) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET name = $1, head_id = $2, description = $3, status = $4
    WHERE id = $5
  `, dep.Name, dep.HeadID, dep.Description, dep.Status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if isForeignKeyViolation(err) {
		return ErrDepartmentInUse
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}
