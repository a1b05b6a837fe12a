// Package realtime fans quote change events out to live subscribers.
package realtime

import (
	"context"
	"sync"

	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"
	"labtracker/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// SubscriberBuffer is the per-subscriber queue depth. Events that do not fit
// are dropped for that subscriber.
const SubscriberBuffer = 16

// Broker publishes quote events and hands out subscriptions. The returned
// cancel func is idempotent and closes the channel.
type Broker interface {
	interfaces.IQuoteEventPublisher
	Subscribe(ctx context.Context) (<-chan interfaces.QuoteEvent, func())
}

// MemoryBroker delivers events to subscribers of the same process.
type MemoryBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan interfaces.QuoteEvent
	closed bool
	log    *zap.Logger
}

var _ Broker = (*MemoryBroker)(nil)

func NewMemoryBroker(log *zap.Logger) *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]chan interfaces.QuoteEvent), log: logger.OrNop(log).Named("realtime")}
}

func (b *MemoryBroker) Publish(_ context.Context, ev interfaces.QuoteEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.log.Warn("dropping event for slow subscriber", zap.Int("subscriber", id), zap.String("quote_id", ev.QuoteID))
		}
	}
	return nil
}

// Subscribe registers a subscriber that lives until cancel is called or ctx
// is done.
func (b *MemoryBroker) Subscribe(ctx context.Context) (<-chan interfaces.QuoteEvent, func()) {
	ch := make(chan interfaces.QuoteEvent, SubscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()
	metrics.RealtimeSubscribers.Inc()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(done)
			b.remove(id)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel
}

func (b *MemoryBroker) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
		metrics.RealtimeSubscribers.Dec()
	}
}

// Close ends every subscription.
func (b *MemoryBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
		metrics.RealtimeSubscribers.Dec()
	}
}

// Subscribers returns the number of live subscriptions.
func (b *MemoryBroker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
