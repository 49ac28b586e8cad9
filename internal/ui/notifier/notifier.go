// Package notifier fans out change pings to the admin UI's SSE streams.
package notifier

import "sync"

// Notifier delivers empty-struct pings to every subscriber. A ping means
// "the repo changed, re-read it"; it carries no payload so a slow consumer
// coalesces a burst of changes into a single refresh.
type Notifier struct {
	mu   sync.RWMutex
	subs map[chan struct{}]struct{}
}

// New returns a Notifier ready for subscribers.
func New() *Notifier {
	return &Notifier{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. The channel is buffered with capacity one
// so a ping arriving while the listener is busy rendering is retained.
// Callers must Unsubscribe when done to avoid leaking the channel.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.subs, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast pings every subscriber without blocking. A subscriber whose
// buffer already holds a ping is skipped; it refreshes once either way.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
