package performance

import (
	"errors"
	"time"
)

const (
	StatusDraft        = "draft"
	StatusSubmitted    = "submitted"
	StatusCompleted    = "completed"
	StatusAcknowledged = "acknowledged"

	MinRating = 1
	MaxRating = 5
)

var Statuses = []string{StatusDraft, StatusSubmitted, StatusCompleted, StatusAcknowledged}

var (
	ErrNotFound         = errors.New("performance review not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus    = errors.New("invalid review status")
	ErrNotReviewSubject = errors.New("only the reviewed employee can acknowledge")
)

type Review struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	DepartmentID *int64    `json:"departmentId"`
	ReviewerID   *int64    `json:"reviewerId"`
	ReviewerName *string   `json:"reviewerName"`
	ReviewPeriod string    `json:"reviewPeriod"`
	Rating       int       `json:"rating"`
	Strengths    *string   `json:"strengths"`
	Improvements *string   `json:"improvements"`
	Goals        *string   `json:"goals"`
	Comments     *string   `json:"comments"`
	ReviewDate   time.Time `json:"reviewDate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Filter struct {
	EmployeeID   *int64
	DepartmentID *int64
}
