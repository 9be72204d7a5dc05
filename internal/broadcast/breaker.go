// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package broadcast

import (
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/metrics"
)

// NewCircuitBreaker creates the breaker that guards transport publishes.
func NewCircuitBreaker(name string, cfg *config.BroadcastConfig) *gobreaker.CircuitBreaker[interface{}] {
	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(to.String())
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Broadcast circuit breaker state changed")
		},
	}

	return gobreaker.NewCircuitBreaker[interface{}](settings)
}

// BreakerState returns the breaker state as a string for health reporting.
func BreakerState(cb *gobreaker.CircuitBreaker[interface{}]) string {
	return cb.State().String()
}
