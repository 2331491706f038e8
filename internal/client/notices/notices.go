// Package notices collects transient user-facing success/failure messages
// that auto-dismiss after a fixed interval.
package notices

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTTL matches the interface's auto-dismiss interval.
const DefaultTTL = 3 * time.Second

type Level int

const (
	Success Level = iota
	Failure
)

type Notice struct {
	Level   Level
	Message string
	posted  time.Time
}

// Center is a fixed-TTL notice buffer. Expired notices are dropped lazily on
// read.
type Center struct {
	mu    sync.Mutex
	ttl   time.Duration
	items []Notice
	now   func() time.Time
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

func (c *Center) Successf(format string, args ...any) {
	c.post(Success, fmt.Sprintf(format, args...))
}

func (c *Center) Failuref(format string, args ...any) {
	c.post(Failure, fmt.Sprintf(format, args...))
}

func (c *Center) post(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, Notice{Level: level, Message: msg, posted: c.now()})
}

// Active returns notices that have not yet expired, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	live := c.items[:0]
	for _, n := range c.items {
		if n.posted.After(cutoff) {
			live = append(live, n)
		}
	}
	c.items = live

	out := make([]Notice, len(live))
	copy(out, live)
	return out
}
