package effect

import (
	"context"
	"github.com/myrjola/constellation/internal/broker"
	"log/slog"
)

// subscriberBuffer is how many bursts a slow stream may lag behind before bursts are dropped for it.
const subscriberBuffer = 16

// Hub routes bursts to the effect streams of a viewer.
type Hub struct {
	hub     *broker.Hub[string, Burst]
	logger  *slog.Logger
	observe func(delivered bool)
}

// NewHub creates a Hub. observe is told whether each fired burst reached a stream, it may be nil.
func NewHub(logger *slog.Logger, observe func(delivered bool)) *Hub {
	if observe == nil {
		observe = func(bool) {}
	}
	return &Hub{
		hub:     broker.NewHub[string, Burst](subscriberBuffer),
		logger:  logger,
		observe: observe,
	}
}

// Start blocks until Stop is called.
func (h *Hub) Start() {
	h.hub.Start()
}

func (h *Hub) Stop() {
	h.hub.Stop()
}

// Subscribe returns the bursts fired for viewerID and a function to stop receiving them.
func (h *Hub) Subscribe(viewerID string) (<-chan Burst, func()) {
	return h.hub.Subscribe(viewerID)
}

// For returns a Trigger that fires bursts on the streams of viewerID. Bursts fired while the viewer has no open
// stream are dropped.
func (h *Hub) For(viewerID string) Trigger {
	return TriggerFunc(func(ctx context.Context, b Burst) {
		delivered := h.hub.Publish(viewerID, b) > 0
		h.observe(delivered)
		if !delivered {
			h.logger.LogAttrs(ctx, slog.LevelDebug, "dropped burst without effect stream")
		}
	})
}
