package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltdriver/boltdriver-go/auth"
	"github.com/boltdriver/boltdriver-go/types"
)

func fastPolicy() auth.RetryPolicy {
	return auth.RetryPolicy{
		RateLimitCooldown: 5 * time.Millisecond,
		ServerCooldown:    time.Millisecond,
		MaxAttempts:       3,
	}
}

func TestRetryPolicy_RetriesServerErrors(t *testing.T) {
	attempts := 0
	err := fastPolicy().Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return &types.APIError{Kind: types.KindDatabaseError, Message: "DATABASE_ERROR"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := fastPolicy().Do(context.Background(), func() error {
		attempts++
		return &types.APIError{Kind: types.KindSmsLimit, Message: "SMS_LIMIT_REACHED"}
	})

	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindSmsLimit))
	assert.Equal(t, 3, attempts)
}

func TestRetryPolicy_ValidationIsNeverRetried(t *testing.T) {
	attempts := 0
	err := fastPolicy().Do(context.Background(), func() error {
		attempts++
		return types.NewValidationError("bad phone")
	})

	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindValidation))
	assert.Equal(t, 1, attempts)
}

func TestRetryPolicy_NotAuthorizedIsNeverRetried(t *testing.T) {
	attempts := 0
	err := fastPolicy().Do(context.Background(), func() error {
		attempts++
		return types.NewNotAuthorizedError("token rejected")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryPolicy_ContextCancelsCooldown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := auth.RetryPolicy{
		RateLimitCooldown: time.Hour,
		ServerCooldown:    time.Hour,
		MaxAttempts:       3,
	}

	done := make(chan error, 1)
	go func() {
		done <- policy.Do(ctx, func() error {
			return &types.APIError{Kind: types.KindServerError}
		})
	}()

	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not observe context cancellation")
	}
}
