package scaling

import (
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultPollInterval is the time between InService checks.
	DefaultPollInterval = 10 * time.Second

	// restoreTimeout bounds the revert call when the caller's context is already done.
	restoreTimeout = time.Minute
)

// Hooks receive notifications as a pulse progresses. Nil fields are skipped.
type Hooks struct {
	// Current is called with the capacity read before scaling.
	Current func(Capacity)

	// ScaleUp is called with the doubled capacity before it is applied.
	ScaleUp func(Capacity)

	// Poll is called after every InService check.
	Poll func(inService, desired int32)

	// Revert is called with the original capacity before it is restored.
	Revert func(Capacity)
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used by the client.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPollInterval sets the time between InService checks.
// Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTimeout bounds how long WaitInService waits. Zero waits until the
// context is cancelled.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithProgress sets a callback invoked after every InService check.
func WithProgress(fn func(inService, desired int32)) Option {
	return func(c *Client) {
		c.hooks.Poll = fn
	}
}

// WithHooks sets the pulse notifications. It replaces any callback set by WithProgress.
func WithHooks(h Hooks) Option {
	return func(c *Client) {
		c.hooks = h
	}
}
