package scaling

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Sentinel errors. Use errors.Is to test for them.
var (
	// ErrGroupNotFound indicates that no Auto Scaling group has the given name
	ErrGroupNotFound = errors.New("scaling: auto scaling group not found")

	// ErrInvalidCapacity indicates a capacity that cannot be applied
	ErrInvalidCapacity = errors.New("scaling: invalid capacity")

	// ErrWaitTimeout indicates that instances did not reach InService in time
	ErrWaitTimeout = errors.New("scaling: timed out waiting for instances")

	// ErrAccessDenied indicates that the credentials lack a required permission
	ErrAccessDenied = errors.New("scaling: access denied")

	// ErrValidation indicates that the API rejected the request parameters
	ErrValidation = errors.New("scaling: validation error")
)

// Error records the operation and group that failed.
type Error struct {
	Op    string
	Group string
	Err   error
}

func (e *Error) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("scaling.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("scaling.%s group %s: %v", e.Op, e.Group, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, group string, err error) *Error {
	return &Error{Op: op, Group: group, Err: err}
}

// convertAWSError tags API errors with a package sentinel when the error
// code is one callers are expected to handle.
func convertAWSError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation":
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	case "ValidationError":
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}
