package leave

import (
	"errors"
	"time"
)

const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
	TypeUnpaid    = "unpaid"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	Types    = []string{TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeUnpaid}
	Statuses = []string{StatusPending, StatusApproved, StatusRejected}
)

var (
	ErrNotFound     = errors.New("leave request not found")
	ErrInvalidRange = errors.New("end date before start date")
	ErrInvalidType  = errors.New("invalid leave type")
	ErrInvalidState = errors.New("invalid leave status")
)

type Request struct {
	ID            int64     `json:"id"`
	EmployeeID    int64     `json:"employeeId"`
	EmployeeName  string    `json:"employeeName"`
	EmployeeCode  string    `json:"employeeCode"`
	DepartmentID  *int64    `json:"departmentId"`
	LeaveType     string    `json:"leaveType"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	DaysRequested int       `json:"daysRequested"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	ApprovedBy    *int64    `json:"approvedBy"`
	ApproverName  *string   `json:"approverName"`
	CreatedAt     time.Time `json:"createdAt"`
}

type NewRequest struct {
	EmployeeID int64
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// Change is either a decision (Status set) or an edit (dates, type, reason
// set), or both.
type Change struct {
	Status     string
	ApproverID *int64
	LeaveType  string
	StartDate  *time.Time
	EndDate    *time.Time
	Reason     *string
}

type Filter struct {
	EmployeeID   *int64
	DepartmentID *int64
}
