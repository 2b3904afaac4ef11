package broker_test

import (
	"github.com/myrjola/constellation/internal/broker"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"testing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHub(t *testing.T) {
	type testCase struct {
		name     string
		testFunc func(t *testing.T, h *broker.Hub[string, int])
	}
	tests := []testCase{
		{
			name: "every subscriber of the id receives the payload",
			testFunc: func(t *testing.T, h *broker.Hub[string, int]) {
				first, unsubscribeFirst := h.Subscribe("viewer")
				defer unsubscribeFirst()
				second, unsubscribeSecond := h.Subscribe("viewer")
				defer unsubscribeSecond()
				other, unsubscribeOther := h.Subscribe("other")
				defer unsubscribeOther()

				require.Equal(t, 2, h.Publish("viewer", 42))
				require.Equal(t, 42, <-first)
				require.Equal(t, 42, <-second)
				require.Empty(t, other)
			},
		},
		{
			name: "publishing without subscribers drops the payload",
			testFunc: func(t *testing.T, h *broker.Hub[string, int]) {
				require.Equal(t, 0, h.Publish("nobody", 1))
			},
		},
		{
			name: "full subscriber buffer drops the payload",
			testFunc: func(t *testing.T, h *broker.Hub[string, int]) {
				c, unsubscribe := h.Subscribe("viewer")
				defer unsubscribe()
				require.Equal(t, 1, h.Publish("viewer", 1))
				require.Equal(t, 1, h.Publish("viewer", 2))
				require.Equal(t, 0, h.Publish("viewer", 3))
				require.Equal(t, 1, <-c)
				require.Equal(t, 2, <-c)
			},
		},
		{
			name: "unsubscribe closes the channel",
			testFunc: func(t *testing.T, h *broker.Hub[string, int]) {
				c, unsubscribe := h.Subscribe("viewer")
				unsubscribe()
				_, ok := <-c
				require.False(t, ok, "channel not closed")
				// Unsubscribing twice is harmless.
				unsubscribe()
				require.Equal(t, 0, h.Publish("viewer", 1))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := broker.NewHub[string, int](2)
			go h.Start()
			t.Cleanup(h.Stop)
			tt.testFunc(t, h)
		})
	}
}

func TestHub_Stop(t *testing.T) {
	h := broker.NewHub[string, int](1)
	done := make(chan struct{})
	go func() {
		h.Start()
		close(done)
	}()

	c, unsubscribe := h.Subscribe("viewer")
	h.Stop()
	<-done

	_, ok := <-c
	require.False(t, ok, "subscriber channel not closed on stop")
	unsubscribe()
	require.Equal(t, 0, h.Publish("viewer", 1))

	late, _ := h.Subscribe("viewer")
	_, ok = <-late
	require.False(t, ok, "late subscriber channel not closed")
}
