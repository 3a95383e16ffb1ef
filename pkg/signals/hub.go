// Package signals carries the two configuration broadcast channels.
//
// Committed fires synchronously once per successful save and means "the file
// on disk changed". Preview fires after a trailing debounce window following
// the last in-memory edit and means "re-derive your view from current state".
// Neither carries a payload.
//
// Preview handlers run on the debounce timer goroutine. Consumers that own a
// single-threaded context (a bubbletea program, for example) must hand the
// event back to it themselves.
package signals

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultPreviewDelay is the trailing debounce window for Preview
const DefaultPreviewDelay = 150 * time.Millisecond

// Handler receives a channel event
type Handler func()

// Subscription is a registered handler
type Subscription struct {
	once   sync.Once
	remove func()
}

// Unsubscribe removes the handler. Calling it again, or after the hub was
// closed, does nothing.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.remove != nil {
			s.remove()
		}
	})
}

// Channel is one broadcast topic
type Channel struct {
	name   string
	logger *slog.Logger

	mu       sync.RWMutex
	nextID   uint64
	order    []uint64
	handlers map[uint64]Handler
	closed   bool
}

func newChannel(name string, logger *slog.Logger) *Channel {
	return &Channel{
		name:     name,
		logger:   logger,
		handlers: make(map[uint64]Handler),
	}
}

// Name returns the channel name
func (c *Channel) Name() string {
	return c.name
}

// Subscribe registers fn. Subscribing to a closed channel returns an inert
// subscription.
func (c *Channel) Subscribe(fn Handler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || fn == nil {
		return &Subscription{}
	}

	id := c.nextID
	c.nextID++
	c.order = append(c.order, id)
	c.handlers[id] = fn

	return &Subscription{remove: func() { c.unsubscribe(id) }}
}

// Subscribers returns the number of registered handlers
func (c *Channel) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}

func (c *Channel) unsubscribe(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.handlers[id]; !ok {
		return
	}
	delete(c.handlers, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// emit calls every handler outside the lock. A panicking handler is logged
// and does not stop delivery to the others.
func (c *Channel) emit() {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	handlers := make([]Handler, 0, len(c.order))
	for _, id := range c.order {
		handlers = append(handlers, c.handlers[id])
	}
	c.mu.RUnlock()

	for _, h := range handlers {
		c.call(h)
	}
}

func (c *Channel) call(h Handler) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("signal handler panicked", "channel", c.name, "panic", r)
		}
	}()
	h()
}

func (c *Channel) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.handlers = make(map[uint64]Handler)
	c.order = nil
}

// Hub owns the Committed and Preview channels. It is created at startup and
// passed to the store and editors; a nil *Hub is valid and drops everything.
type Hub struct {
	Committed *Channel
	Preview   *Channel

	logger  *slog.Logger
	delay   time.Duration
	preview *Debouncer

	closeOnce sync.Once
}

// Option configures a Hub
type Option func(*Hub)

// WithPreviewDelay overrides DefaultPreviewDelay
func WithPreviewDelay(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.delay = d
		}
	}
}

// WithLogger sets the logger used for handler failures
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHub creates a hub
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		logger: slog.Default(),
		delay:  DefaultPreviewDelay,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.logger = h.logger.With("component", "signals")
	h.Committed = newChannel("committed", h.logger)
	h.Preview = newChannel("preview", h.logger)
	h.preview = NewDebouncer(h.delay, h.Preview.emit)

	return h
}

// PreviewDelay returns the debounce window
func (h *Hub) PreviewDelay() time.Duration {
	if h == nil {
		return 0
	}
	return h.delay
}

// NotifyCommitted fires Committed synchronously
func (h *Hub) NotifyCommitted() {
	if h == nil {
		return
	}
	h.logger.Debug("config committed")
	h.Committed.emit()
}

// NotifyPreview (re)starts the Preview debounce window
func (h *Hub) NotifyPreview() {
	if h == nil {
		return
	}
	h.preview.Trigger()
}

// FlushPreview fires a pending Preview now
func (h *Hub) FlushPreview() {
	if h == nil {
		return
	}
	h.preview.Flush()
}

// CancelPreview drops a pending Preview
func (h *Hub) CancelPreview() {
	if h == nil {
		return
	}
	h.preview.Cancel()
}

// PreviewPending reports whether a Preview is scheduled
func (h *Hub) PreviewPending() bool {
	if h == nil {
		return false
	}
	return h.preview.Pending()
}

// Close cancels a pending Preview and drops all subscribers. Safe to call
// more than once.
func (h *Hub) Close() {
	if h == nil {
		return
	}
	h.closeOnce.Do(func() {
		h.preview.Cancel()
		h.Committed.close()
		h.Preview.close()
	})
}
