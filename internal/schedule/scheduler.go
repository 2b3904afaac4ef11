// Package schedule runs delayed tasks keyed by the control they give feedback on.
package schedule

import (
	"sync"
	"time"
)

// Timer is the part of [time.Timer] the scheduler uses.
type Timer interface {
	Stop() bool
}

// AfterFunc has the semantics of [time.AfterFunc].
type AfterFunc func(d time.Duration, f func()) Timer

type task struct {
	id    uint64
	timer Timer
}

// Scheduler runs at most one pending task per key. Scheduling a task for a key supersedes the pending task of
// that key, so whatever the task does reflects the most recent activation.
type Scheduler struct {
	mu        sync.Mutex
	afterFunc AfterFunc
	tasks     map[string]*task
	seq       uint64
	stopped   bool
}

// New creates a Scheduler backed by [time.AfterFunc].
func New() *Scheduler {
	return NewWithAfterFunc(func(d time.Duration, f func()) Timer {
		return time.AfterFunc(d, f)
	})
}

// NewWithAfterFunc creates a Scheduler with a custom timer source, e.g., a manual clock in tests.
func NewWithAfterFunc(afterFunc AfterFunc) *Scheduler {
	return &Scheduler{
		mu:        sync.Mutex{},
		afterFunc: afterFunc,
		tasks:     map[string]*task{},
		seq:       0,
		stopped:   false,
	}
}

// Schedule runs fn after delay unless the task is superseded or cancelled first. A nil fn only marks the key as
// pending for the duration.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
	}
	s.seq++
	t := &task{id: s.seq, timer: nil}
	s.tasks[key] = t
	t.timer = s.afterFunc(delay, func() {
		s.mu.Lock()
		current, ok := s.tasks[key]
		if !ok || current.id != t.id {
			// Superseded after the timer already fired.
			s.mu.Unlock()
			return
		}
		delete(s.tasks, key)
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

// Cancel stops the pending task of key and reports whether there was one.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	return true
}

// Pending reports whether key has a task that has not run yet.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels every pending task. Later calls to Schedule are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
	s.stopped = true
}
