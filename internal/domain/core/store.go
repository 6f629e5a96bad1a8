package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staffrecords/internal/platform/querier"
)

// employeeCodeLock is the advisory lock key serialising code generation.
const employeeCodeLock int64 = 0x48555f434f4445

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) WithTx(ctx context.Context, fn func(StoreAPI) error) error {
	beginner, ok := s.DB.(querier.TxBeginner)
	if !ok {
		return errors.New("store cannot begin transactions")
	}
	return querier.InTx(ctx, beginner, func(tx pgx.Tx) error {
		return fn(&Store{DB: tx})
	})
}

func (s *Store) LockEmployeeCodes(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", employeeCodeLock)
	return err
}

// MaxEmployeeCode returns the code with the largest numeric part, or "" when
// there are no employees.
func (s *Store) MaxEmployeeCode(ctx context.Context) (string, error) {
	var code string
	err := s.DB.QueryRow(ctx, `
    SELECT employee_code
    FROM employees
    ORDER BY NULLIF(regexp_replace(employee_code, '[^0-9]', '', 'g'), '')::numeric DESC NULLS LAST, id DESC
    LIMIT 1
  `).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return code, err
}

func (s *Store) InsertEmployee(ctx context.Context, emp Employee) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, first_name, last_name, gender, date_of_birth, phone, email, position,
      department_id, employment_type, hire_date, salary, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `,
		emp.Code, emp.FirstName, emp.LastName, emp.Gender, emp.DateOfBirth, emp.Phone, emp.Email, emp.Position,
		emp.DepartmentID, emp.EmploymentType, emp.HireDate, emp.Salary, emp.Status,
	).Scan(&id)
	return id, err
}

func (s *Store) InsertAccount(ctx context.Context, acct LinkedAccount) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO accounts (kind, employee_id, email, password_hash, role)
    VALUES ('employee', $1, $2, $3, $4)
  `, acct.EmployeeID, acct.Email, acct.PasswordHash, acct.Role)
	return err
}

const employeeSelect = `
    SELECT e.id, e.employee_code, e.first_name, e.last_name, e.gender, e.date_of_birth, e.phone, e.email,
           e.position, e.department_id, d.name, e.employment_type, e.hire_date, e.salary, e.status, e.created_at
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.FirstName, &emp.LastName, &emp.Gender, &emp.DateOfBirth, &emp.Phone, &emp.Email,
		&emp.Position, &emp.DepartmentID, &emp.DepartmentName, &emp.EmploymentType, &emp.HireDate, &emp.Salary,
		&emp.Status, &emp.CreatedAt,
	)
	return emp, err
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, employeeSelect+" WHERE e.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	query := employeeSelect + " WHERE 1=1"
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d
      OR e.phone ILIKE $%d OR e.employee_code ILIKE $%d)`, n, n, n, n, n)
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	query += " ORDER BY e.created_at DESC, e.id DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, id int64, emp Employee) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        gender = $3,
        date_of_birth = $4,
        phone = $5,
        email = $6,
        position = $7,
        department_id = $8,
        employment_type = $9,
        hire_date = $10,
        salary = $11,
        status = $12
    WHERE id = $13
  `,
		emp.FirstName, emp.LastName, emp.Gender, emp.DateOfBirth, emp.Phone, emp.Email, emp.Position,
		emp.DepartmentID, emp.EmploymentType, emp.HireDate, emp.Salary, emp.Status, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) LockEmployee(ctx context.Context, id int64) error {
	var locked int64
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE id = $1 FOR UPDATE", id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEmployeeNotFound
	}
	return err
}

func (s *Store) EmployeeExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

func (s *Store) DeleteAccountsFor(ctx context.Context, employeeID int64) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM accounts WHERE employee_id = $1", employeeID)
	return err
}

func (s *Store) ClearLeaveApprover(ctx context.Context, employeeID int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE leave_requests SET approved_by = NULL WHERE approved_by = $1", employeeID)
	return err
}

func (s *Store) DeleteLeaveFor(ctx context.Context, employeeID int64) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM leave_requests WHERE employee_id = $1", employeeID)
	return err
}

func (s *Store) DeleteAttendanceFor(ctx context.Context, employeeID int64) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM attendance WHERE employee_id = $1", employeeID)
	return err
}

func (s *Store) DeleteReviewsFor(ctx context.Context, employeeID int64) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM performance_reviews WHERE employee_id = $1 OR reviewer_id = $1", employeeID)
	return err
}

func (s *Store) ClearDepartmentHead(ctx context.Context, employeeID int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE departments SET head_id = NULL WHERE head_id = $1", employeeID)
	return err
}

func (s *Store) DeleteEmployeeRow(ctx context.Context, employeeID int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
