package testhelpers

import (
	"github.com/myrjola/constellation/internal/schedule"
	"slices"
	"sync"
	"time"
)

// ManualTimers is a timer source for [schedule.NewWithAfterFunc] that only fires when the test advances it.
type ManualTimers struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	owner *ManualTimers
	due   time.Duration
	seq   int
	f     func()
}

func (t *manualTimer) Stop() bool {
	m := t.owner
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.Index(m.pending, t)
	if i < 0 {
		return false
	}
	m.pending = slices.Delete(m.pending, i, i+1)
	return true
}

// AfterFunc registers f to run once the clock has advanced by d.
func (m *ManualTimers) AfterFunc(d time.Duration, f func()) schedule.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{owner: m, due: m.now + d, seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d and runs every timer that becomes due, in due order.
func (m *ManualTimers) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.pending = slices.DeleteFunc(m.pending, func(t *manualTimer) bool { return t == next })
		m.now = next.due
		m.mu.Unlock()
		next.f()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *ManualTimers) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *ManualTimers) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range m.pending {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}
