package auth

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/boltdriver/boltdriver-go/types"
)

// RetryPolicy is the documented caller-level retry contract for auth
// operations: rate-limit errors cool down for 30 seconds, transient
// server/database errors for 5 seconds, and both give up after 3 attempts.
// Validation and wrong-input errors are never retried.
type RetryPolicy struct {
	// RateLimitCooldown is the wait after an SMS-limit class error.
	RateLimitCooldown time.Duration

	// ServerCooldown is the wait after a server/database class error.
	ServerCooldown time.Duration

	// MaxAttempts bounds the total number of attempts.
	MaxAttempts uint64
}

// DefaultRetryPolicy returns the canonical cooldowns and attempt count.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		RateLimitCooldown: 30 * time.Second,
		ServerCooldown:    5 * time.Second,
		MaxAttempts:       3,
	}
}

// Do runs op, retrying retryable failures on the policy's schedule. The
// context cancels any pending cooldown.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = 1
	}

	waits := &cooldownBackOff{policy: p}

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}

		kind, ok := types.KindOf(err)
		if !ok {
			// Transport-level failures are worth one more try on the
			// short cooldown.
			waits.kind = types.KindServerError
			return err
		}

		switch kind {
		case types.KindSmsLimit, types.KindDatabaseError, types.KindServerError:
			waits.kind = kind
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	schedule := backoff.WithContext(backoff.WithMaxRetries(waits, p.MaxAttempts-1), ctx)
	return backoff.Retry(wrapped, schedule)
}

// cooldownBackOff picks the cooldown matching the class of the last error.
type cooldownBackOff struct {
	policy RetryPolicy
	kind   types.ErrorKind
}

func (b *cooldownBackOff) NextBackOff() time.Duration {
	if b.kind == types.KindSmsLimit {
		return b.policy.RateLimitCooldown
	}
	return b.policy.ServerCooldown
}

func (b *cooldownBackOff) Reset() {}
