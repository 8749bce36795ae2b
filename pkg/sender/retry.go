package sender

import (
	"math"
	"strings"
	"time"

	"mdt/pkg/tools"
)

// RetryConfig bounds the exponential backoff applied to a failed send.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetry is used by Sender.
var DefaultRetry = RetryConfig{
	MaxRetries:    3,
	InitialDelay:  time.Second,
	MaxDelay:      30 * time.Second,
	BackoffFactor: 2.0,
}

// GetDelay returns the wait before retry number attempt (1-based).
func (r RetryConfig) GetDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := time.Duration(float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1)))
	if delay > r.MaxDelay {
		delay = r.MaxDelay
	}
	return delay
}

// Do runs op until it succeeds, fails with a permanent error, or the retry
// budget is spent. It returns the last error.
func (r RetryConfig) Do(op func() error) error {
	err := op()
	for attempt := 1; err != nil && attempt <= r.MaxRetries && IsRetriableError(err); attempt++ {
		time.Sleep(r.GetDelay(attempt))
		err = op()
	}
	return err
}

var retriableErrors = []string{
	"timeout",
	"connection",
	"network",
	"temporary",
	"rate limit",
	"429",
	"500",
	"502",
	"503",
	"i/o timeout",
	"context deadline",
}

// IsRetriableError reports whether err looks transient.
func IsRetriableError(err error) bool {
	if err == nil {
		return false
	}
	return tools.ContainsAny(strings.ToLower(err.Error()), retriableErrors)
}
