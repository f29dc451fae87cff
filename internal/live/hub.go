// Package live implements the change-notification machinery behind the
// store's observable queries. A Hub fans table-level invalidation signals out
// to subscriptions; a Stream owns the re-query loop that turns those signals
// into fresh snapshots for a single observer.
package live

import "sync"

// Hub is a table-keyed change notifier. Writers call Notify after committing
// a change to a table; every Subscription watching that table is woken up.
type Hub struct {
	mu     sync.RWMutex
	closed bool
	subs   map[*Subscription]struct{}
}

// Subscription is one observer's handle on the hub. Signals are conflated:
// any number of notifications between two reads collapse into a single wakeup,
// so a slow observer sees the latest state rather than a backlog.
type Subscription struct {
	hub    *Hub
	tables map[string]struct{}

	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers an observer for changes to any of the given tables and
// returns its subscription handle. The caller must Close the subscription
// when done observing.
func (h *Hub) Subscribe(tables ...string) *Subscription {
	s := &Subscription{
		hub:    h,
		tables: make(map[string]struct{}, len(tables)),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(s.done)
		return s
	}
	h.subs[s] = struct{}{}

	return s
}

// Notify wakes every subscription watching any of the given tables. It never
// blocks: a pending, not-yet-consumed signal absorbs new ones.
func (h *Hub) Notify(tables ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		for _, t := range tables {
			if _, ok := s.tables[t]; ok {
				select {
				case s.signal <- struct{}{}:
				default:
				}
				break
			}
		}
	}
}

// Close terminates every subscription. Subsequent Subscribe calls return
// already-terminated handles and Notify becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*Subscription]struct{})
	h.closed = true
	h.mu.Unlock()

	for s := range subs {
		s.once.Do(func() { close(s.done) })
	}
}

// Signal returns the conflated wakeup channel.
func (s *Subscription) Signal() <-chan struct{} {
	return s.signal
}

// Done is closed when the subscription or its hub is closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close unregisters the subscription from its hub. Safe to call multiple
// times and safe to call concurrently with Notify.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	delete(s.hub.subs, s)
	s.hub.mu.Unlock()

	s.once.Do(func() { close(s.done) })
}
