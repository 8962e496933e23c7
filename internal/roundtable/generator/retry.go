package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/louisbranch/roundtable/internal/platform/timeouts"
)

// RetryPolicy bounds how hard a Retrying invoker tries before giving up.
type RetryPolicy struct {
	// MaxTries caps the total number of attempts, the first included.
	MaxTries uint
	// MaxElapsed caps the wall-clock time spent on one logical invocation,
	// attempts and backoff waits included.
	MaxElapsed time.Duration
	// PerAttempt bounds each individual attempt.
	PerAttempt time.Duration
}

// DefaultRetryPolicy is the policy used when a zero RetryPolicy is given.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxTries:   3,
		MaxElapsed: timeouts.GeneratorRetryCap,
		PerAttempt: timeouts.GeneratorInvoke,
	}
}

type retrying struct {
	next   Invoker
	policy RetryPolicy
}

// NewRetrying wraps an invoker with per-attempt timeouts and capped
// exponential backoff. Retry exhaustion surfaces the last attempt's error.
func NewRetrying(next Invoker, policy RetryPolicy) Invoker {
	if policy.MaxTries == 0 {
		policy.MaxTries = DefaultRetryPolicy().MaxTries
	}
	if policy.MaxElapsed == 0 {
		policy.MaxElapsed = DefaultRetryPolicy().MaxElapsed
	}
	if policy.PerAttempt == 0 {
		policy.PerAttempt = DefaultRetryPolicy().PerAttempt
	}
	return &retrying{next: next, policy: policy}
}

func (r *retrying) Invoke(ctx context.Context, req Request) (string, error) {
	operation := func() (string, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, r.policy.PerAttempt)
		defer cancel()

		text, err := r.next.Invoke(attemptCtx, req)
		if err != nil {
			if ctx.Err() != nil {
				return "", backoff.Permanent(ctx.Err())
			}
			return "", err
		}
		return text, nil
	}

	text, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(r.policy.MaxTries),
		backoff.WithMaxElapsedTime(r.policy.MaxElapsed),
	)
	if err != nil {
		return "", fmt.Errorf("generator retries exhausted: %w", err)
	}
	return text, nil
}
