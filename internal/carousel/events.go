package carousel

import "context"

// Event names a controller transition.
type Event string

const (
	EventLoadComplete Event = "load_complete"
	EventLoadFailed   Event = "load_failed"
	EventUserAdvance  Event = "user_advance"
	EventUserRetreat  Event = "user_retreat"
	EventTimerTick    Event = "timer_tick"
)

// Notice is delivered to handlers after a transition.
type Notice struct {
	Event  Event
	Window Window
	// Err is set for EventLoadFailed.
	Err error
}

// Handler receives notices. Handlers run on the caller's goroutine after the
// controller lock is released, so they may call back into the controller.
type Handler func(ctx context.Context, n Notice)

// On registers h for ev. Handlers run in registration order.
func (c *Controller) On(ev Event, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[ev] = append(c.handlers[ev], h)
}

func (c *Controller) handlersLocked(ev Event) []Handler {
	hs := c.handlers[ev]
	if len(hs) == 0 {
		return nil
	}
	out := make([]Handler, len(hs))
	copy(out, hs)
	return out
}

func notify(ctx context.Context, handlers []Handler, n Notice) {
	for _, h := range handlers {
		h(ctx, n)
	}
}
