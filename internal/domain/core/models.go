package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	GenderMale   = "male"
	GenderFemale = "female"

	EmploymentAcademic = "academic"
	EmploymentAdmin    = "admin"
	EmploymentSupport  = "support"
)

var (
	Statuses        = []string{StatusActive, StatusInactive}
	Genders         = []string{GenderMale, GenderFemale}
	EmploymentTypes = []string{EmploymentAcademic, EmploymentAdmin, EmploymentSupport}
)

type Employee struct {
	ID             int64               `json:"id"`
	Code           string              `json:"employeeCode"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	Gender         *string             `json:"gender"`
	DateOfBirth    *time.Time          `json:"dateOfBirth"`
	Phone          *string             `json:"phone"`
	Email          string              `json:"email"`
	Position       *string             `json:"position"`
	DepartmentID   *int64              `json:"departmentId"`
	DepartmentName *string             `json:"departmentName"`
	EmploymentType *string             `json:"employmentType"`
	HireDate       *time.Time          `json:"hireDate"`
	Salary         decimal.NullDecimal `json:"salary"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// NewEmployee is the input for Create. Role applies to the linked account.
type NewEmployee struct {
	Employee
	Role string
}

type EmployeeFilter struct {
	Search       string
	DepartmentID *int64
}

type Created struct {
	ID   int64  `json:"id"`
	Code string `json:"employeeCode"`
}

// LinkedAccount is the login created alongside an employee.
type LinkedAccount struct {
	EmployeeID   int64
	Email        string
	PasswordHash string
	Role         string
}

type Department struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	HeadID        *int64    `json:"headId"`
	HeadName      *string   `json:"headName"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
