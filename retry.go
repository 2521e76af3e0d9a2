package flowexpr

import (
	"time"

	"github.com/flowexpr-go/flowexpr/pkg/core"
)

// RetryPolicy configures RetryOp's bounded, backed-off retry loop.
type RetryPolicy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// RetryBuilder builds a RetryPolicy fluently.
type RetryBuilder struct {
	policy RetryPolicy
}

// Retry creates a RetryBuilder with the given maxAttempts.
//
// maxAttempts <= 0 is treated as 1 (no retries).
func Retry(maxAttempts int) RetryBuilder {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return RetryBuilder{policy: RetryPolicy{MaxAttempts: maxAttempts}}
}

// WithExponentialBackoff configures exponential backoff:
//   - initial is the delay before the first retry.
//   - multiplier > 1 grows the delay each attempt (default 2.0 if <= 0).
//   - max caps the delay; if <= 0, there is no cap.
func (r RetryBuilder) WithExponentialBackoff(initial time.Duration, multiplier float64, max time.Duration) RetryBuilder {
	p := r.policy
	p.InitialBackoff = initial
	p.MaxBackoff = max
	if multiplier <= 0 {
		multiplier = 2.0
	}
	p.BackoffMultiplier = multiplier
	return RetryBuilder{policy: p}
}

// WithConstantBackoff configures a constant backoff between retries.
func (r RetryBuilder) WithConstantBackoff(delay time.Duration) RetryBuilder {
	p := r.policy
	p.InitialBackoff = delay
	p.MaxBackoff = 0
	p.BackoffMultiplier = 1.0
	return RetryBuilder{policy: p}
}

// Immediate disables any sleep between retries. Retries still respect
// MaxAttempts.
func (r RetryBuilder) Immediate() RetryBuilder {
	p := r.policy
	p.InitialBackoff = 0
	p.MaxBackoff = 0
	p.BackoffMultiplier = 0
	return RetryBuilder{policy: p}
}

// Policy returns the underlying RetryPolicy.
func (r RetryBuilder) Policy() RetryPolicy {
	return r.policy
}

// RetryOp wraps pred so that a false result is retried up to
// policy.MaxAttempts times, sleeping an exponentially growing backoff
// between attempts (capped at policy.MaxBackoff), before the Operator
// node it's bound to sees the final false. RetryOp never changes
// run/check_run semantics: from the Operator's point of view the
// predicate is just slower, and it is called exactly
// policy.MaxAttempts times whenever every attempt fails (or exactly
// once more than the number of failures preceding the first success).
//
// RetryOp exists for operators whose underlying Context wraps an
// unreliable resource, such as a network-backed token source; ordinary
// scanner-bound operators (ext/textscan) have no use for it.
func RetryOp[T any](policy RetryPolicy, pred func(T, *ValueSlot) bool) func(T, *ValueSlot) bool {
	maxAttempts := policy.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return func(ctx T, slot *ValueSlot) bool {
		backoff := policy.InitialBackoff
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if pred(ctx, slot) {
				return true
			}
			if attempt == maxAttempts {
				break
			}
			if backoff > 0 {
				time.Sleep(backoff)
			}
			if policy.BackoffMultiplier > 0 {
				backoff = time.Duration(float64(backoff) * policy.BackoffMultiplier)
			}
			if policy.MaxBackoff > 0 && backoff > policy.MaxBackoff {
				backoff = policy.MaxBackoff
			}
		}
		return false
	}
}

// BuilderRetryOp appends an Operator whose predicate is pred wrapped by
// RetryOp, the same way Builder.Op does. It is a free function because
// Builder is an alias of core.Builder, and Go methods cannot be declared
// on a type from another package.
func BuilderRetryOp[T any](b *Builder[T], policy RetryPolicy, pred func(T, *core.ValueSlot) bool) *Builder[T] {
	return b.Op(RetryOp(policy, pred))
}
