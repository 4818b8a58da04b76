package form

import (
	"sync"
	"time"
)

// DefaultCheckDelay is how long input must stay idle before a duplicate
// probe actually fires.
const DefaultCheckDelay = 500 * time.Millisecond

// IdentityChecker debounces advisory duplicate-identity probes while the
// user is still typing. Each scheduled probe carries a monotonically
// increasing token; a result is delivered only if no newer check was
// scheduled in the meantime, so a slow response can never overwrite the
// state of a later one.
type IdentityChecker struct {
	lookup func(identityNumber string) (bool, error)
	delay  time.Duration

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// NewIdentityChecker wraps a lookup reporting whether an identity number
// already exists in the store.
func NewIdentityChecker(lookup func(string) (bool, error), delay time.Duration) *IdentityChecker {
	if delay <= 0 {
		delay = DefaultCheckDelay
	}
	return &IdentityChecker{lookup: lookup, delay: delay}
}

// Check schedules a probe for identityNumber, superseding any pending
// one. deliver is invoked with the result unless a newer check was
// scheduled before the probe finished.
func (c *IdentityChecker) Check(identityNumber string, deliver func(exists bool, err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	token := c.seq
	if c.timer != nil {
		c.timer.Stop()
	}

	c.timer = time.AfterFunc(c.delay, func() {
		exists, err := c.lookup(identityNumber)

		c.mu.Lock()
		latest := c.seq == token
		c.mu.Unlock()

		if latest {
			deliver(exists, err)
		}
	})
}

// Stop cancels any pending probe and invalidates in-flight results.
func (c *IdentityChecker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
