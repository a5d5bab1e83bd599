// Package collector accumulates inbound messages from the webhook event
// stream under a filter, count and time budget.
package collector

import (
	"sync"
	"time"

	"whatsapp-client/pkg/waerrors"
	"whatsapp-client/pkg/webhook"
)

// Filter decides whether a message is collected.
type Filter func(*webhook.IncomingMessage) bool

// Options configure a Collector. Zero values mean: accept everything, no
// count limit, no deadline, listen on message.received and
// interaction.create.
type Options struct {
	Filter  Filter
	Max     int
	Timeout time.Duration
	Events  []webhook.EventType
	// OnCollect runs synchronously for every accepted message.
	OnCollect func(*webhook.IncomingMessage)
}

// Collector subscribes to the webhook stream and keys accepted messages by
// message ID until its budget runs out. Once ended it accepts nothing more
// and delivers the collected map exactly once on Done.
type Collector struct {
	mu        sync.Mutex
	collected map[string]*webhook.IncomingMessage
	filter    Filter
	max       int
	ended     bool
	onCollect func(*webhook.IncomingMessage)

	handler *webhook.Handler
	subs    []webhook.Subscription
	timer   *time.Timer
	done    chan map[string]*webhook.IncomingMessage
}

// New creates a collector on an initialized webhook handler and starts
// listening immediately.
func New(h *webhook.Handler, opts Options) (*Collector, error) {
	if h == nil {
		return nil, waerrors.New("webhook handler is not initialized", 0)
	}

	c := &Collector{
		collected: make(map[string]*webhook.IncomingMessage),
		filter:    opts.Filter,
		max:       opts.Max,
		onCollect: opts.OnCollect,
		handler:   h,
		done:      make(chan map[string]*webhook.IncomingMessage, 1),
	}
	if c.filter == nil {
		c.filter = func(*webhook.IncomingMessage) bool { return true }
	}

	events := opts.Events
	if len(events) == 0 {
		events = []webhook.EventType{webhook.EventMessageReceived, webhook.EventInteractionCreate}
	}
	for _, event := range events {
		c.subs = append(c.subs, h.Subscribe(event, c.handleEvent))
	}

	if opts.Timeout > 0 {
		c.timer = time.AfterFunc(opts.Timeout, c.Stop)
	}
	return c, nil
}

func (c *Collector) handleEvent(event webhook.Event) {
	if event.Message == nil {
		return
	}

	c.mu.Lock()
	if c.ended || !c.filter(event.Message) {
		c.mu.Unlock()
		return
	}
	c.collected[event.Message.ID] = event.Message
	full := c.max > 0 && len(c.collected) >= c.max
	onCollect := c.onCollect
	c.mu.Unlock()

	if onCollect != nil {
		onCollect(event.Message)
	}
	if full {
		c.Stop()
	}
}

// Stop ends collection: it cancels the deadline, unsubscribes from every
// event type and delivers the collected map on Done. Calling it again is a
// no-op.
func (c *Collector) Stop() {
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return
	}
	c.ended = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	collected := c.snapshotLocked()
	c.mu.Unlock()

	for _, sub := range c.subs {
		c.handler.Unsubscribe(sub)
	}
	c.done <- collected
	close(c.done)
}

// Done delivers the full collected map once the collector ends.
func (c *Collector) Done() <-chan map[string]*webhook.IncomingMessage {
	return c.done
}

// Collected returns a snapshot of what has been accepted so far.
func (c *Collector) Collected() map[string]*webhook.IncomingMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Ended reports whether the collector has stopped.
func (c *Collector) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ended
}

func (c *Collector) snapshotLocked() map[string]*webhook.IncomingMessage {
	out := make(map[string]*webhook.IncomingMessage, len(c.collected))
	for id, msg := range c.collected {
		out[id] = msg
	}
	return out
}

// AwaitMessage waits for the first message passing the filter. It returns
// a timeout error when the budget elapses with nothing collected.
func AwaitMessage(h *webhook.Handler, filter Filter, timeout time.Duration, events ...webhook.EventType) (*webhook.IncomingMessage, error) {
	c, err := New(h, Options{Filter: filter, Max: 1, Timeout: timeout, Events: events})
	if err != nil {
		return nil, err
	}

	collected := <-c.Done()
	for _, msg := range collected {
		return msg, nil
	}
	return nil, waerrors.New("no messages were collected within the time limit", 0)
}
