package errorvalues_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	up := &errorvalues.UpstreamError{Op: "list records", Err: context.DeadlineExceeded, Retryable: true}
	wrapped := fmt.Errorf("listing tasks: %w", up)
	assert.ErrorIs(t, wrapped, errorvalues.ErrUpstream)
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
	assert.True(t, errorvalues.IsRetryable(wrapped))
	assert.False(t, errorvalues.IsRetryable(errors.New("plain")))

	bal := &errorvalues.InsufficientBalanceError{Required: 8, Balance: 5}
	assert.ErrorIs(t, bal, errorvalues.ErrInsufficientBalance)
	assert.Contains(t, bal.Error(), "8")
	assert.Contains(t, bal.Error(), "5")

	assert.ErrorIs(t, errorvalues.ErrEmptyTaskIDs, errorvalues.ErrValidation)
	assert.ErrorIs(t, errorvalues.ErrRewardNotFound, errorvalues.ErrNotFound)
	assert.NotErrorIs(t, errorvalues.ErrRewardNotFound, errorvalues.ErrValidation)
}

func TestUpstreamErrorMessage(t *testing.T) {
	err := &errorvalues.UpstreamError{Op: "get record", Code: 1254043, Message: "RecordIdNotFound"}
	assert.Equal(t, "get record: code 1254043: RecordIdNotFound", err.Error())
}
