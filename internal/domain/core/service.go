package core

import (
	"context"
	"errors"
	"strings"

	"staffrecords/internal/domain/auth"
)

type Service struct {
	Store      StoreAPI
	CodePrefix string
	Hash       func(string) (string, error)
}

func NewService(store StoreAPI, codePrefix string) *Service {
	if codePrefix == "" {
		codePrefix = DefaultCodePrefix
	}
	return &Service{Store: store, CodePrefix: codePrefix, Hash: auth.HashPassword}
}

// CreateEmployee inserts the employee and its login account in one
// transaction. The initial password is the generated code.
func (s *Service) CreateEmployee(ctx context.Context, in NewEmployee) (Created, error) {
	const op = "create employee"

	role := in.Role
	if role == "" {
		role = auth.RoleEmployee
	}
	if !auth.IsStoredRole(role) || role == auth.RoleAdmin {
		return Created{}, ErrInvalidRole
	}
	emp := in.Employee
	if emp.Status == "" {
		emp.Status = StatusActive
	}

	var out Created
	err := s.Store.WithTx(ctx, func(tx StoreAPI) error {
		if err := tx.LockEmployeeCodes(ctx); err != nil {
			return stepErr(op, "lock", err)
		}
		maxCode, err := tx.MaxEmployeeCode(ctx)
		if err != nil {
			return stepErr(op, "next_code", err)
		}
		emp.Code = NextEmployeeCode(s.CodePrefix, maxCode)

		id, err := tx.InsertEmployee(ctx, emp)
		if err != nil {
			return stepErr(op, "employee", err)
		}

		hash, err := s.Hash(emp.Code)
		if err != nil {
			return stepErr(op, "account", err)
		}
		if err := tx.InsertAccount(ctx, LinkedAccount{
			EmployeeID:   id,
			Email:        strings.TrimSpace(emp.Email),
			PasswordHash: hash,
			Role:         role,
		}); err != nil {
			return stepErr(op, "account", err)
		}

		out = Created{ID: id, Code: emp.Code}
		return nil
	})
	if err != nil {
		return Created{}, err
	}
	return out, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.Store.ListEmployees(ctx, filter)
}

// UpdateEmployee overwrites every mutable field. Omitted optional fields are
// stored as NULL.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, emp Employee) error {
	return s.Store.UpdateEmployee(ctx, id, emp)
}

// DeleteEmployee removes the employee and every row that references it, in
// one transaction.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	const op = "delete employee"

	return s.Store.WithTx(ctx, func(tx StoreAPI) error {
		if err := tx.LockEmployee(ctx, id); err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return err
			}
			return stepErr(op, "lock", err)
		}
		steps := []struct {
			name string
			run  func(context.Context, int64) error
		}{
			{"accounts", tx.DeleteAccountsFor},
			{"leave_approvals", tx.ClearLeaveApprover},
			{"leave_requests", tx.DeleteLeaveFor},
			{"attendance", tx.DeleteAttendanceFor},
			{"performance_reviews", tx.DeleteReviewsFor},
			{"department_heads", tx.ClearDepartmentHead},
			{"employee", tx.DeleteEmployeeRow},
		}
		for _, step := range steps {
			if err := step.run(ctx, id); err != nil {
				return stepErr(op, step.name, err)
			}
		}
		return nil
	})
}

func (s *Service) ListDepartments(ctx context.Context, search string) ([]Department, error) {
	return s.Store.ListDepartments(ctx, strings.TrimSpace(search))
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (Department, error) {
	return s.Store.GetDepartment(ctx, id)
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (int64, error) {
	if err := s.checkHead(ctx, dep.HeadID); err != nil {
		return 0, err
	}
	if dep.Status == "" {
		dep.Status = StatusActive
	}
	return s.Store.InsertDepartment(ctx, dep)
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, dep Department) error {
	if err := s.checkHead(ctx, dep.HeadID); err != nil {
		return err
	}
	if dep.Status == "" {
		dep.Status = StatusActive
	}
	return s.Store.UpdateDepartment(ctx, id, dep)
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	return s.Store.DeleteDepartment(ctx, id)
}

func (s *Service) checkHead(ctx context.Context, headID *int64) error {
	if headID == nil {
		return nil
	}
	ok, err := s.Store.EmployeeExists(ctx, *headID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrHeadNotFound
	}
	return nil
}
