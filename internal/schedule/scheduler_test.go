package schedule_test

import (
	"github.com/myrjola/constellation/internal/schedule"
	"github.com/myrjola/constellation/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"sync/atomic"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T, clock *testhelpers.ManualTimers, s *schedule.Scheduler)
	}{
		{
			name: "runs after the delay",
			testFunc: func(t *testing.T, clock *testhelpers.ManualTimers, s *schedule.Scheduler) {
				var runs int
				s.Schedule("wish", 800*time.Millisecond, func() { runs++ })
				require.True(t, s.Pending("wish"))

				clock.Advance(799 * time.Millisecond)
				require.Equal(t, 0, runs)
				require.True(t, s.Pending("wish"))

				clock.Advance(time.Millisecond)
				require.Equal(t, 1, runs)
				require.False(t, s.Pending("wish"))
			},
		},
		{
			name: "new activation supersedes the pending task",
			testFunc: func(t *testing.T, clock *testhelpers.ManualTimers, s *schedule.Scheduler) {
				var last string
				s.Schedule("finale", 3600*time.Millisecond, func() { last = "first" })
				clock.Advance(2 * time.Second)
				s.Schedule("finale", 3600*time.Millisecond, func() { last = "second" })

				clock.Advance(2 * time.Second)
				require.Empty(t, last, "superseded task ran")
				require.True(t, s.Pending("finale"))

				clock.Advance(1600 * time.Millisecond)
				require.Equal(t, "second", last)
				require.Equal(t, 0, clock.Pending())
			},
		},
		{
			name: "keys are independent",
			testFunc: func(t *testing.T, clock *testhelpers.ManualTimers, s *schedule.Scheduler) {
				var order []string
				s.Schedule("b", 20*time.Millisecond, func() { order = append(order, "b") })
				s.Schedule("a", 10*time.Millisecond, func() { order = append(order, "a") })
				s.Schedule("c", 20*time.Millisecond, nil)
				require.Equal(t, 3, s.Len())

				clock.Advance(time.Second)
				require.Equal(t, []string{"a", "b"}, order)
				require.Equal(t, 0, s.Len())
			},
		},
		{
			name: "cancel",
			testFunc: func(t *testing.T, clock *testhelpers.ManualTimers, s *schedule.Scheduler) {
				var runs int
				s.Schedule("wish", time.Second, func() { runs++ })
				require.True(t, s.Cancel("wish"))
				require.False(t, s.Cancel("wish"))
				clock.Advance(time.Minute)
				require.Equal(t, 0, runs)
			},
		},
		{
			name: "stop cancels everything and ignores new tasks",
			testFunc: func(t *testing.T, clock *testhelpers.ManualTimers, s *schedule.Scheduler) {
				var runs int
				s.Schedule("a", time.Second, func() { runs++ })
				s.Stop()
				s.Schedule("b", time.Second, func() { runs++ })
				clock.Advance(time.Minute)
				require.Equal(t, 0, runs)
				require.Equal(t, 0, s.Len())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &testhelpers.ManualTimers{}
			s := schedule.NewWithAfterFunc(clock.AfterFunc)
			tt.testFunc(t, clock, s)
		})
	}
}

func TestScheduler_realTimers(t *testing.T) {
	s := schedule.New()
	t.Cleanup(s.Stop)

	var runs atomic.Int32
	s.Schedule("wish", 10*time.Millisecond, func() { runs.Add(1) })
	s.Schedule("wish", 10*time.Millisecond, func() { runs.Add(1) })

	require.Eventually(t, func() bool { return !s.Pending("wish") }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, int32(1), runs.Load())
}
