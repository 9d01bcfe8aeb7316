package events

import (
	"sync"

	"civitaid/pkg/types"
)

// subscriberBuffer is how many events a slow subscriber may lag behind
// before events are dropped for it.
const subscriberBuffer = 64

// Broadcaster fans events out to any number of subscribers. A subscriber
// whose buffer is full misses events rather than stalling the batch.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan types.Event]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan types.Event]struct{})}
}

func (b *Broadcaster) Publish(e types.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a channel of future events and a cancel func that must
// be called to release it.
func (b *Broadcaster) Subscribe() (<-chan types.Event, func()) {
	ch := make(chan types.Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			close(ch)
			b.mu.Unlock()
		})
	}
}

// Subscribers reports the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
