package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"staffrecords/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const accountSelect = `
    SELECT a.id, a.kind, a.email, a.password_hash, a.role, a.status,
           COALESCE(e.first_name, a.first_name, ''), COALESCE(e.last_name, a.last_name, ''),
           COALESCE(e.position, ''), a.employee_id, COALESCE(e.employee_code, ''), e.department_id,
           EXISTS (SELECT 1 FROM departments d WHERE d.head_id = a.employee_id) AS is_head,
           a.created_at
    FROM accounts a
    LEFT JOIN employees e ON e.id = a.employee_id
`

func scanAccount(row pgx.Row) (Account, error) {
	var out Account
	err := row.Scan(&out.ID, &out.Kind, &out.Email, &out.PasswordHash, &out.Role, &out.Status,
		&out.FirstName, &out.LastName, &out.Position, &out.EmployeeID, &out.EmployeeCode, &out.DepartmentID,
		&out.IsHead, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return out, err
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (Account, error) {
	return scanAccount(s.DB.QueryRow(ctx, accountSelect+" WHERE lower(a.email) = lower($1)", email))
}

func (s *Store) AccountByID(ctx context.Context, id int64) (Account, error) {
	return scanAccount(s.DB.QueryRow(ctx, accountSelect+" WHERE a.id = $1", id))
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE accounts SET password_hash = $1 WHERE id = $2", hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
