// Package retry implements the bounded exponential-backoff policy shared by
// the chat transports. A Policy wraps one request-executing operation and
// re-runs it on transient failures only; terminal failures and exhausted
// budgets surface the original error unchanged.
package retry

import (
	"context"
	"time"
)

// DefaultBase is the backoff applied before the first retry. Each further
// retry doubles it.
const DefaultBase = 500 * time.Millisecond

var transientStatus = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// TransientStatus reports whether an HTTP status code is expected to resolve
// on retry without caller intervention.
func TransientStatus(code int) bool { return transientStatus[code] }

// Policy retries an operation on transient failures with exponential
// backoff. The zero value performs no retries.
type Policy struct {
	// MaxRetries bounds the number of re-executions after the first attempt.
	MaxRetries int

	// Base is the pause before the first retry; it doubles per retry.
	Base time.Duration

	// Classify reports whether an error is transient. A nil Classify
	// retries nothing.
	Classify func(error) bool

	// OnRetry, when set, observes every scheduled retry before its backoff
	// pause.
	OnRetry func(attempt int, err error)
}

// New returns a Policy with the default backoff base.
func New(maxRetries int, optFns ...func(p *Policy)) Policy {
	p := Policy{MaxRetries: maxRetries, Base: DefaultBase}
	for _, fn := range optFns {
		fn(&p)
	}
	return p
}

// Do runs op, re-executing it after a backoff pause for every transient
// failure until it succeeds or the retry budget is spent. The last error is
// returned unchanged; non-transient errors propagate immediately. A context
// cancelled during backoff also ends the exchange with the last error.
func (p Policy) Do(ctx context.Context, op func() error) error {
	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || p.Classify == nil || !p.Classify(err) {
			return err
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}
		if sleep(ctx, p.backoff(attempt)) != nil {
			return err
		}
	}
}

// backoff returns Base * 2^attempt.
func (p Policy) backoff(attempt int) time.Duration {
	d := p.Base
	if d <= 0 {
		d = DefaultBase
	}
	for i := 0; i < attempt; i++ {
		d *= 2
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
