// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry adds bounded retry with exponential backoff around model
// gateway calls. The reference pipeline runs with zero retries, so any
// gateway failure is fatal to the run; operators opt in via --max-retries.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pdiddy/deep-research/internal/gateway"
)

// BaseDelay controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var BaseDelay = time.Second

// Gateway decorates an inner gateway with bounded retry. Only transient
// failures (ErrModelUnavailable) are retried; an invalid model identifier
// fails the same way on every attempt and is returned immediately.
type Gateway struct {
	Inner      gateway.Gateway
	MaxRetries int
}

// Wrap returns gw unchanged when maxRetries is zero, otherwise a retrying
// decorator around it.
func Wrap(gw gateway.Gateway, maxRetries int) gateway.Gateway {
	if maxRetries <= 0 {
		return gw
	}
	return &Gateway{Inner: gw, MaxRetries: maxRetries}
}

// Invoke forwards to the inner gateway, retrying unavailable-model failures
// with exponential backoff: BaseDelay, 2×, 4×, and so on. The context
// cancels waits between attempts.
func (g *Gateway) Invoke(ctx context.Context, model string, msgs []gateway.Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * BaseDelay
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := g.Inner.Invoke(ctx, model, msgs)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, gateway.ErrModelUnavailable) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", g.MaxRetries, lastErr)
}
