package attendance

import (
	"errors"
	"time"
)

const (
	StatusPresent    = "present"
	StatusAbsent     = "absent"
	StatusLate       = "late"
	StatusPermission = "permission"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusPermission}

var (
	ErrNotFound      = errors.New("attendance record not found")
	ErrInvalidStatus = errors.New("invalid attendance status")
	ErrInvalidTime   = errors.New("time must be HH:MM or HH:MM:SS")
)

type Record struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	EmployeeCode string    `json:"employeeCode"`
	DepartmentID *int64    `json:"departmentId"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	CheckIn      *string   `json:"checkInTime"`
	CheckOut     *string   `json:"checkOutTime"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Filter struct {
	Date         *time.Time
	EmployeeID   *int64
	DepartmentID *int64
}
