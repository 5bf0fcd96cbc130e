package tick

import (
	"container/heap"
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/mcoot/forceteam/internal/dependencies/clock"
)

// DefaultInterval matches a 64-tick game server
const DefaultInterval = time.Second / 64

// ErrStopped is returned by Call once the loop has exited
var ErrStopped = errors.New("tick loop stopped")

// Scheduler defers work onto the host's cooperative loop
type Scheduler interface {
	// NextTick runs fn on the step after the current one
	NextTick(fn func())
	// After runs fn on the first step at or after d has elapsed
	After(d time.Duration, fn func())
}

// Loop is a single-threaded cooperative task loop.
//
// NextTick and After may be called from any goroutine, but callbacks only
// ever run from Step, one at a time. Work queued while a step is running is
// never picked up by that same step.
type Loop struct {
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	next   []func()
	timers timerQueue
	seq    uint64
	steps  uint64

	stopOnce sync.Once
	stopped  chan struct{}
}

// Ensure Loop implements Scheduler
var _ Scheduler = (*Loop)(nil)

// NewLoop creates a loop that steps every interval once Run is called
func NewLoop(clk clock.Clock, interval time.Duration, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		clock:    clk,
		interval: interval,
		logger:   logger.With(slog.String("component", "tick-loop")),
		stopped:  make(chan struct{}),
	}
}

// Interval returns the step period
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Steps returns how many steps have run
func (l *Loop) Steps() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.steps
}

// NextTick queues fn for the next step
func (l *Loop) NextTick(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next = append(l.next, fn)
}

// After queues fn to run once d has elapsed on the loop's clock
func (l *Loop) After(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	heap.Push(&l.timers, &timer{
		due: l.clock.Now().Add(d),
		seq: l.seq,
		fn:  fn,
	})
}

// Step runs one tick: everything queued with NextTick before the step
// started, then every timer that is due.
func (l *Loop) Step() {
	l.mu.Lock()
	tasks := l.next
	l.next = nil
	l.steps++

	now := l.clock.Now()
	var due []*timer
	for len(l.timers) > 0 && !l.timers[0].due.After(now) {
		due = append(due, heap.Pop(&l.timers).(*timer))
	}
	l.mu.Unlock()

	for _, fn := range tasks {
		l.run(fn)
	}
	for _, t := range due {
		l.run(t.fn)
	}
}

// Run steps the loop every interval until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.stop()

	l.logger.Info("tick loop started", slog.Duration("interval", l.interval))
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("tick loop stopped", slog.Uint64("steps", l.Steps()))
			return nil
		case <-ticker.C:
			l.Step()
		}
	}
}

// Call runs fn on the loop and waits for it to finish.
// It is the only safe way for other goroutines to touch loop-owned state.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	select {
	case <-l.stopped:
		return ErrStopped
	default:
	}

	done := make(chan struct{})
	l.NextTick(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrStopped
	}
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.stopped) })
}

// run executes a callback, containing any panic to that callback
func (l *Loop) run(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("panic recovered in tick callback",
				slog.Any("error", err),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	fn()
}

type timer struct {
	due time.Time
	seq uint64
	fn  func()
}

// timerQueue orders timers by due time, then by scheduling order
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
