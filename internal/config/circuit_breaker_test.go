package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sony/gobreaker"

	"github.com/intelicop/console/internal/core/domain"
)

func TestCircuitBreaker_Trips(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected gobreaker.State
	}{
		{"transport failures", errors.New("connection refused"), gobreaker.StateOpen},
		{"server faults", fmt.Errorf("%w: %w", domain.ErrRejected, domain.ErrServerFault), gobreaker.StateOpen},
		{"client refusals", fmt.Errorf("bad request: %w", domain.ErrRejected), gobreaker.StateClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker(BreakerAPI)
			for i := 0; i < 3; i++ {
				_, _ = cb.Execute(func() (interface{}, error) { return nil, tt.err })
			}
			if cb.State() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, cb.State())
			}
		})
	}
}

func TestCircuitBreaker_ResetsOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker(BreakerAuth)
	fail := func() (interface{}, error) { return nil, errors.New("timeout") }
	ok := func() (interface{}, error) { return nil, nil }

	_, _ = cb.Execute(fail)
	_, _ = cb.Execute(fail)
	_, _ = cb.Execute(ok)
	_, _ = cb.Execute(fail)
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed after a success between failures, got %s", cb.State())
	}
}
