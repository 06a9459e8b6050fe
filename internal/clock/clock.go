// Package clock abstracts wall time and delayed callbacks so that
// simulated latencies can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn once after d has elapsed. The returned stop function
// cancels the task and reports whether it was still pending.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// Real is a Scheduler backed by the runtime timers.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// Manual is a Scheduler whose time only moves when Advance is called.
// Due tasks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at   time.Time
	seq  int
	fn   func()
	done bool
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	task := &manualTask{at: m.now.Add(d), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if task.done {
			return false
		}
		task.done = true
		return true
	}
}

// Pending returns the number of tasks not yet run or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every task that became
// due, in due-time order. Tasks scheduled by running tasks are honoured
// if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.compactLocked()
			m.mu.Unlock()
			return
		}
		next.done = true
		if next.at.After(m.now) {
			m.now = next.at
		}
		m.mu.Unlock()

		next.fn()
	}
}

func (m *Manual) nextDueLocked(target time.Time) *manualTask {
	var due []*manualTask
	for _, t := range m.tasks {
		if !t.done && !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (m *Manual) compactLocked() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	m.tasks = live
}
