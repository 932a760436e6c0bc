package errorvalues

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by services matches exactly one of them
// with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrUpstream            = errors.New("remote store error")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInternal            = errors.New("internal error")
)

var (
	ErrEmptyTaskIDs   = fmt.Errorf("%w: task_ids must not be empty", ErrValidation)
	ErrEmptyRewardID  = fmt.Errorf("%w: reward_id is required", ErrValidation)
	ErrRewardRedeemed = fmt.Errorf("%w: reward has already been redeemed", ErrValidation)
	ErrInvalidBody    = fmt.Errorf("%w: invalid request body", ErrValidation)
	ErrRewardNotFound = fmt.Errorf("reward %w", ErrNotFound)
	ErrTaskNotFound   = fmt.Errorf("task %w", ErrNotFound)
	ErrMarkerNotFound = errors.New("reset marker doesn't exist")
)

// UpstreamError describes a failed call to the remote table store.
type UpstreamError struct {
	Op        string
	Code      int
	Message   string
	Retryable bool
	Err       error
}

func (e *UpstreamError) Error() string {
	msg := e.Op + ": "
	if e.Code != 0 {
		msg += fmt.Sprintf("code %d: ", e.Code)
	}
	if e.Message != "" {
		msg += e.Message
	} else if e.Err != nil {
		msg += e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type InsufficientBalanceError struct {
	Required int
	Balance  int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: reward requires %d stars, current balance is %d", e.Required, e.Balance)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// IsRetryable reports whether err is a transient remote store failure.
func IsRetryable(err error) bool {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Retryable
	}
	return false
}
