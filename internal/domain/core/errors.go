package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrHeadNotFound       = errors.New("department head must be an existing employee")
	ErrDepartmentInUse    = errors.New("department cannot be deleted")
	ErrInvalidRole        = errors.New("invalid account role")
)

// StepError reports which step of a multi-step write failed. The whole
// operation has been rolled back by the time it is returned.
type StepError struct {
	Op   string
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %s: %v", e.Op, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(op, step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Op: op, Step: step, Err: err}
}
