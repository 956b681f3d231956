package scraper

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/monitor"
)

// Retrier runs an operation with exponential backoff and jitter.
// Transient failures are retried, client errors are not.
type Retrier struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration

	mu          sync.Mutex
	retries     int
	exhaustions int

	mon    *monitor.Monitor
	logger *zap.Logger
}

// NewRetrier builds a Retrier. maxAttempts counts the first try, so 3
// means at most two retries.
func NewRetrier(maxAttempts int, baseDelay, maxDelay time.Duration, mon *monitor.Monitor, logger *zap.Logger) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrier{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
		mon:         mon,
		logger:      logger,
	}
}

// Do runs op until it succeeds, fails fatally, or attempts run out.
// The error from the final attempt is returned as-is.
func (r *Retrier) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == r.maxAttempts {
			break
		}

		r.recordRetry()
		delay := r.backoff(attempt)
		r.logger.Debug("retrying request",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(lastErr),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	r.mu.Lock()
	r.exhaustions++
	r.mu.Unlock()
	return lastErr
}

// backoff returns the delay before retry n (1-based): base doubled per
// retry, with ±10% jitter, capped at maxDelay.
func (r *Retrier) backoff(n int) time.Duration {
	d := r.baseDelay << uint(n)
	if d > r.maxDelay || d <= 0 {
		d = r.maxDelay
	}
	jitter := 1 + (rand.Float64()*0.2 - 0.1)
	d = time.Duration(float64(d) * jitter)
	if d > r.maxDelay {
		d = r.maxDelay
	}
	return d
}

func (r *Retrier) recordRetry() {
	r.mu.Lock()
	r.retries++
	r.mu.Unlock()
	if r.mon != nil {
		r.mon.RecordRetry()
	}
}

// retryable classifies an error. Responses with retryable statuses
// (429, 503) and transient transport failures are worth another
// attempt; other client errors, blocks included, are final.
func retryable(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		switch se.Kind {
		case KindBlocked, KindNotFound, KindDataIntegrity, KindParse:
			return false
		case KindTimeout, KindConnection, KindTooManyRedirects:
			return true
		}
		if se.Status == 429 || se.Status == 503 {
			return true
		}
		if se.Status >= 400 && se.Status < 500 {
			return false
		}
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// RetryStats is the snapshot served by the retry monitoring endpoint.
type RetryStats struct {
	MaxAttempts        int     `json:"maxAttempts"`
	BaseDelaySeconds   float64 `json:"baseDelaySeconds"`
	MaxDelaySeconds    float64 `json:"maxDelaySeconds"`
	RetriesPerformed   int     `json:"retriesPerformed"`
	AttemptsExhausted  int     `json:"attemptsExhausted"`
	RetryableStatuses  []int   `json:"retryableStatuses"`
	JitterFractionPct  int     `json:"jitterFractionPercent"`
	BackoffMultiplier  int     `json:"backoffMultiplier"`
}

// Stats reports the retry configuration and counters.
func (r *Retrier) Stats() RetryStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RetryStats{
		MaxAttempts:       r.maxAttempts,
		BaseDelaySeconds:  r.baseDelay.Seconds(),
		MaxDelaySeconds:   r.maxDelay.Seconds(),
		RetriesPerformed:  r.retries,
		AttemptsExhausted: r.exhaustions,
		RetryableStatuses: []int{429, 503},
		JitterFractionPct: 10,
		BackoffMultiplier: 2,
	}
}
