package loop

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running if it has not started.
	// It reports whether the call stopped the timer.
	Stop() bool
}

// Scheduler is the contract components use to defer work.
// Callbacks passed to AfterFunc run on the same queue as Dispatch.
type Scheduler interface {
	// Dispatch queues fn to run on the loop.
	Dispatch(fn func())

	// AfterFunc queues fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Config configures an EventLoop.
type Config struct {
	// Logger receives panic reports.
	Logger zerolog.Logger
}

// EventLoop is a Scheduler backed by one goroutine. Its queue is
// unbounded: Dispatch never blocks and no callback, timer or task is
// dropped while the loop is open.
type EventLoop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}

	done   chan struct{}
	closed atomic.Bool
	once   sync.Once
	logger zerolog.Logger
}

// New creates an EventLoop. Call Run to start processing.
func New(cfg Config) *EventLoop {
	return &EventLoop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: cfg.Logger,
	}
}

// Run processes callbacks in queue order until ctx is cancelled or Close
// is called.
func (l *EventLoop) Run(ctx context.Context) {
	for {
		select {
		case <-l.wake:
			for batch := l.take(); len(batch) > 0; batch = l.take() {
				for _, fn := range batch {
					if l.closed.Load() {
						return
					}
					l.execute(fn)
				}
			}
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		}
	}
}

// push appends fn to the queue and wakes Run. It reports false once the
// loop is closed.
func (l *EventLoop) push(fn func()) bool {
	l.mu.Lock()
	if l.closed.Load() {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// take removes and returns everything queued so far.
func (l *EventLoop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.pending
	l.pending = nil
	return batch
}

// execute runs fn with panic recovery so one bad callback cannot stop the
// loop.
func (l *EventLoop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("loop callback panic")
		}
	}()
	fn()
}

// Dispatch queues fn to run on the loop. It is safe to call from any
// goroutine, including the loop itself. Callbacks queued after Close are
// discarded.
func (l *EventLoop) Dispatch(fn func()) {
	l.push(fn)
}

// AfterFunc queues fn on the loop after d. A due callback is always
// queued, however busy the loop is.
func (l *EventLoop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		l.push(fn)
	})
}

// Do runs fn on the loop and waits for it to finish. It returns
// ctx.Err() if ctx ends first, or ErrClosed if the loop has stopped. A
// task whose wait was abandoned still runs.
func (l *EventLoop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.push(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop. Pending callbacks are dropped.
func (l *EventLoop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed.Store(true)
		l.pending = nil
		l.mu.Unlock()
		close(l.done)
	})
}

// Closed reports whether Close has been called.
func (l *EventLoop) Closed() bool {
	return l.closed.Load()
}
