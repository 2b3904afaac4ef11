package broker

type subscription[TID comparable, TPayload any] struct {
	ID      TID
	Channel chan TPayload
}

type publication[TID comparable, TPayload any] struct {
	ID      TID
	Payload TPayload
	// Delivered receives the number of subscribers the payload was handed to.
	Delivered chan int
}

// Hub fans out payloads published for an ID to every current subscriber of that ID.
//
// Delivery never blocks the publisher: every subscriber has a buffered channel and a payload is dropped for a
// subscriber whose buffer is full. Publishing to an ID without subscribers drops the payload. This fits transient
// signals like visual effects where a late delivery is worse than none.
type Hub[TID comparable, TPayload any] struct {
	bufferSize         int
	stopChannel        chan struct{}
	publishChannel     chan publication[TID, TPayload]
	subscribeChannel   chan subscription[TID, TPayload]
	unsubscribeChannel chan subscription[TID, TPayload]
}

// NewHub creates a new Hub. Call Start in a goroutine and Stop when done.
func NewHub[TID comparable, TPayload any](bufferSize int) *Hub[TID, TPayload] {
	return &Hub[TID, TPayload]{
		bufferSize:         bufferSize,
		stopChannel:        make(chan struct{}),
		publishChannel:     make(chan publication[TID, TPayload]),
		subscribeChannel:   make(chan subscription[TID, TPayload]),
		unsubscribeChannel: make(chan subscription[TID, TPayload]),
	}
}

// Start listening for publish, subscribe, and unsubscribe events. This function blocks until Stop() is called,
// so it should be called in a goroutine. Subscriber channels are closed when the hub stops.
func (h *Hub[TID, TPayload]) Start() {
	subscribers := map[TID][]chan TPayload{}
	defer func() {
		for _, channels := range subscribers {
			for _, c := range channels {
				close(c)
			}
		}
	}()
	for {
		select {
		case <-h.stopChannel:
			return

		case sub := <-h.subscribeChannel:
			subscribers[sub.ID] = append(subscribers[sub.ID], sub.Channel)

		case sub := <-h.unsubscribeChannel:
			channels := subscribers[sub.ID]
			for i, c := range channels {
				if c == sub.Channel {
					close(c)
					channels = append(channels[:i], channels[i+1:]...)
					break
				}
			}
			if len(channels) == 0 {
				delete(subscribers, sub.ID)
			} else {
				subscribers[sub.ID] = channels
			}

		case pub := <-h.publishChannel:
			delivered := 0
			for _, c := range subscribers[pub.ID] {
				select {
				case c <- pub.Payload:
					delivered++
				default:
					// Subscriber is lagging behind, drop the payload for it.
				}
			}
			pub.Delivered <- delivered
		}
	}
}

// Stop the goroutine that handles the hub.
func (h *Hub[TID, TPayload]) Stop() {
	close(h.stopChannel)
}

// Subscribe to payloads published for id. The returned function unsubscribes and closes the channel. The channel is
// also closed when the hub stops.
func (h *Hub[TID, TPayload]) Subscribe(id TID) (<-chan TPayload, func()) {
	sub := subscription[TID, TPayload]{
		ID:      id,
		Channel: make(chan TPayload, h.bufferSize),
	}
	select {
	case h.subscribeChannel <- sub:
	case <-h.stopChannel:
		close(sub.Channel)
		return sub.Channel, func() {}
	}
	return sub.Channel, func() {
		select {
		case h.unsubscribeChannel <- sub:
		case <-h.stopChannel:
		}
	}
}

// Publish the payload to the current subscribers of id and return how many received it.
func (h *Hub[TID, TPayload]) Publish(id TID, payload TPayload) int {
	pub := publication[TID, TPayload]{
		ID:        id,
		Payload:   payload,
		Delivered: make(chan int, 1),
	}
	select {
	case h.publishChannel <- pub:
	case <-h.stopChannel:
		return 0
	}
	return <-pub.Delivered
}
