package vtest

import (
	"sort"
	"time"

	"github.com/vango-dev/pagefx/pkg/loop"
)

// Clock is a deterministic loop.Scheduler driven by Advance.
// It is not safe for concurrent use; tests drive it from one goroutine,
// which matches the single-queue model it stands in for.
type Clock struct {
	now    time.Duration
	seq    uint64
	queue  []func()
	timers []*clockTimer
}

var _ loop.Scheduler = (*Clock)(nil)

type clockTimer struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop implements loop.Timer.
func (t *clockTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewClock creates a Clock at virtual time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Dispatch queues fn; it runs on the next Flush or Advance.
func (c *Clock) Dispatch(fn func()) {
	c.queue = append(c.queue, fn)
}

// AfterFunc schedules fn at Now()+d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) loop.Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &clockTimer{at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Flush runs queued callbacks, including any they queue, without moving
// time.
func (c *Clock) Flush() {
	for len(c.queue) > 0 {
		fn := c.queue[0]
		c.queue = c.queue[1:]
		fn()
	}
}

// Advance moves time forward by d, running every timer that falls due in
// order of deadline (ties broken by scheduling order). Timers scheduled by
// callbacks during the advance run too if they fall inside the window.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	c.Flush()
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.fn()
		c.Flush()
	}
	c.now = target
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (c *Clock) nextDue(target time.Duration) *clockTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at != c.timers[j].at {
			return c.timers[i].at < c.timers[j].at
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	if len(c.timers) == 0 || c.timers[0].at > target {
		return nil
	}
	return c.timers[0]
}
