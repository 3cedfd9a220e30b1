package service

import "sync"

// SignalLogout is the process-wide signal name broadcast when any session
// ends. Mounted pages subscribe for their lifetime and navigate to login
// when it fires.
const SignalLogout = "logout"

// Broadcaster fans a named signal out to all current subscribers without
// blocking the publisher. Subscribers that fall behind miss signals rather
// than stall logout.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan string
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan string)}
}

// Subscribe registers a listener. The returned cancel func detaches the
// listener; callers must invoke it when the subscribing component unmounts.
func (b *Broadcaster) Subscribe() (<-chan string, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan string, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers the signal to every subscriber. Non-blocking: a full
// subscriber buffer drops the signal for that subscriber only.
func (b *Broadcaster) Publish(signal string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- signal:
		default:
		}
	}
}

// Len reports the number of active subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
