// internal/trustedform/collector.go
//
// Certification collector.
//
// Context
//   A third-party script asserts consent provenance by writing a
//   certificate URL into a hidden form field after an indeterminate delay.
//   We model that side effect as an injected Source capability and poll it
//   until a non-empty value appears or the timeout elapses, then resolve
//   with whatever is present.  Absence of a certificate is a valid outcome:
//   the collector never fails, it only answers late with an empty string.
//
//------------------------------------------------------------------------------

package trustedform

import (
	"context"
	"time"
)

// Defaults match the vendor script's observed settle time.
const (
	DefaultInterval = 100 * time.Millisecond
	DefaultTimeout  = 2 * time.Second
)

// Source yields the current certificate value; "" means not yet available.
type Source func() string

// Collector polls a Source on a fixed cadence.
type Collector struct {
	src      Source
	interval time.Duration
	timeout  time.Duration
}

// Option tweaks a Collector.
type Option func(*Collector)

// WithInterval overrides the polling cadence.
func WithInterval(d time.Duration) Option {
	return func(c *Collector) { c.interval = d }
}

// WithTimeout overrides how long Collect waits for a value.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) { c.timeout = d }
}

// New builds a Collector around src.
func New(src Source, opts ...Option) *Collector {
	c := &Collector{
		src:      src,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Collect blocks until the source yields a non-empty value, the timeout
// elapses, or ctx is canceled, then returns whatever value is present.
func (c *Collector) Collect(ctx context.Context) string {
	// First check before any timer fires; the script may already be done.
	if v := c.src(); v != "" {
		return v
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	deadline := time.NewTimer(c.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return c.src()
		case <-deadline.C:
			return c.src()
		case <-ticker.C:
			if v := c.src(); v != "" {
				return v
			}
		}
	}
}
