package spamc

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker guards exchanges with one server. Satisfied by
// gobreaker.CircuitBreaker[bool].
type CircuitBreaker interface {
	Execute(req func() (bool, error)) (bool, error)
}

var _ CircuitBreaker = (*gobreaker.CircuitBreaker[bool])(nil)

// NewCircuitBreakerConfig returns a factory creating one circuit breaker
// per server address, for use as Config.NewCircuitBreaker.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(addr string) CircuitBreaker {
	return func(addr string) CircuitBreaker {
		settings := gobreaker.Settings{
			Name:        addr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[bool](settings)
	}
}
