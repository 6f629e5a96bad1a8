package auth

import "time"

const (
	KindAdmin    = "admin"
	KindEmployee = "employee"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Account is a row of the unified accounts table, joined with the linked
// employee when there is one.
type Account struct {
	ID           int64
	Kind         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	FirstName    string
	LastName     string
	Position     string
	EmployeeID   *int64
	EmployeeCode string
	DepartmentID *int64
	IsHead       bool
	CreatedAt    time.Time
}

func (a Account) IsAdmin() bool {
	return a.Kind == KindAdmin
}

// EffectiveRole is the role asserted in the token. Administrators are always
// admin; an employee heading any department is head regardless of the stored
// role.
func (a Account) EffectiveRole() string {
	if a.IsAdmin() {
		return RoleAdmin
	}
	if a.IsHead {
		return RoleHead
	}
	if a.Role == "" {
		return RoleEmployee
	}
	return a.Role
}

// UserContext is the authenticated identity carried on a request.
type UserContext struct {
	AccountID    int64
	Email        string
	Role         string
	IsAdmin      bool
	EmployeeID   *int64
	DepartmentID *int64
	ExpiresAt    time.Time
}

// SessionUser is the user summary returned at login.
type SessionUser struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Position     string `json:"position,omitempty"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	EmployeeID   *int64 `json:"employeeId,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      SessionUser `json:"user"`
}

type Profile struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"kind"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Position     string    `json:"position,omitempty"`
	EmployeeID   *int64    `json:"employeeId,omitempty"`
	EmployeeCode string    `json:"employeeCode,omitempty"`
	DepartmentID *int64    `json:"departmentId,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

func sessionUser(a Account) SessionUser {
	return SessionUser{
		ID:           a.ID,
		Email:        a.Email,
		Role:         a.EffectiveRole(),
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Position:     a.Position,
		DepartmentID: a.DepartmentID,
		EmployeeID:   a.EmployeeID,
		IsAdmin:      a.IsAdmin(),
	}
}
