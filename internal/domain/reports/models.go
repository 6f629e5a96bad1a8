package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

type TypeCount struct {
	EmploymentType string `json:"employmentType"`
	Count          int    `json:"count"`
}

type DashboardStats struct {
	TotalEmployees       int         `json:"totalEmployees"`
	PendingLeaveRequests int         `json:"pendingLeaveRequests"`
	TodayPresent         int         `json:"todayPresent"`
	TotalDepartments     int         `json:"totalDepartments"`
	EmployeesByType      []TypeCount `json:"employeesByType"`
}

type DepartmentCount struct {
	DepartmentID  int64  `json:"departmentId"`
	Name          string `json:"name"`
	EmployeeCount int    `json:"employeeCount"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type AttendanceSummary struct {
	Date   string        `json:"date"`
	Counts []StatusCount `json:"counts"`
	Total  int           `json:"total"`
}

type LeaveSummaryRow struct {
	LeaveType string `json:"leaveType"`
	Status    string `json:"status"`
	Count     int    `json:"count"`
	TotalDays int    `json:"totalDays"`
}

// RosterRow is one line of the employee spreadsheet export.
type RosterRow struct {
	Code           string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Department     string
	Position       string
	EmploymentType string
	Status         string
	HireDate       *time.Time
	Salary         decimal.NullDecimal
}
