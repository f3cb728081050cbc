package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotReviewed          = errors.New("checkout is not on the review step")
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	ErrNoNextStep           = errors.New("review is the last step, submit the order instead")
	ErrStepLocked           = errors.New("fields of this step can only be edited on that step")
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is returned when a step cannot be left because some of its
// fields are missing or malformed. The session is left unchanged.
type ValidationError struct {
	Step   Step         `json:"step"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("%s step incomplete: %s", e.Step, strings.Join(names, ", "))
}

// PlacementError wraps a failed or timed out placement call. Cart and
// checkout state are untouched, so the same submission can be retried.
type PlacementError struct {
	Err error
}

func (e *PlacementError) Error() string {
	if e.Timeout() {
		return "order placement timed out: " + e.Err.Error()
	}
	return "order placement failed: " + e.Err.Error()
}

func (e *PlacementError) Unwrap() error { return e.Err }

func (e *PlacementError) Retryable() bool { return true }

func (e *PlacementError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}
