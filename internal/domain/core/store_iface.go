package core

import "context"

type StoreAPI interface {
	// WithTx runs fn against a store bound to one transaction. fn's error
	// rolls the transaction back.
	WithTx(ctx context.Context, fn func(StoreAPI) error) error

	LockEmployeeCodes(ctx context.Context) error
	MaxEmployeeCode(ctx context.Context) (string, error)
	InsertEmployee(ctx context.Context, emp Employee) (int64, error)
	InsertAccount(ctx context.Context, acct LinkedAccount) error
	GetEmployee(ctx context.Context, id int64) (Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	UpdateEmployee(ctx context.Context, id int64, emp Employee) error
	LockEmployee(ctx context.Context, id int64) error

	DeleteAccountsFor(ctx context.Context, employeeID int64) error
	ClearLeaveApprover(ctx context.Context, employeeID int64) error
	DeleteLeaveFor(ctx context.Context, employeeID int64) error
	DeleteAttendanceFor(ctx context.Context, employeeID int64) error
	DeleteReviewsFor(ctx context.Context, employeeID int64) error
	ClearDepartmentHead(ctx context.Context, employeeID int64) error
	DeleteEmployeeRow(ctx context.Context, employeeID int64) error

	ListDepartments(ctx context.Context, search string) ([]Department, error)
	GetDepartment(ctx context.Context, id int64) (Department, error)
	InsertDepartment(ctx context.Context, dep Department) (int64, error)
	UpdateDepartment(ctx context.Context, id int64, dep Department) error
	DeleteDepartment(ctx context.Context, id int64) error
	EmployeeExists(ctx context.Context, id int64) (bool, error)
}
