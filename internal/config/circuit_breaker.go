package config

import (
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"github.com/intelicop/console/internal/core/domain"
)

const (
	BreakerAuth      = "Backend-Auth"
	BreakerAPI       = "Backend-API"
	BreakerPublisher = "RabbitMQ-Publisher"
)

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
// A backend refusal (4xx) is an answer, not an outage, so it does not
// count towards tripping; 5xx and transport errors do.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	var timeout time.Duration

	switch name {
	case BreakerAuth:
		timeout = time.Second * 5
	case BreakerAPI:
		timeout = time.Second * 10
	default:
		timeout = time.Second * 30
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Open circuit after 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return errors.Is(err, domain.ErrRejected) && !errors.Is(err, domain.ErrServerFault)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CRITICAL] Circuit Breaker %s: %s -> %s", name, from, to)
		},
	})
}
