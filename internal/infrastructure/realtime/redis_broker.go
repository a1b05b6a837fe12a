package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"
	"labtracker/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBroker relays events over a Redis pub/sub channel so every instance
// behind the load balancer sees every write.
type RedisBroker struct {
	client  *redis.Client
	channel string
	log     *zap.Logger
}

var _ Broker = (*RedisBroker)(nil)

func NewRedisBroker(client *redis.Client, channel string, log *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, channel: channel, log: logger.OrNop(log).Named("realtime")}
}

func (b *RedisBroker) Publish(ctx context.Context, ev interfaces.QuoteEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan interfaces.QuoteEvent, func()) {
	out := make(chan interfaces.QuoteEvent, SubscriberBuffer)
	ps := b.client.Subscribe(ctx, b.channel)
	metrics.RealtimeSubscribers.Inc()

	var once sync.Once
	cancel := func() {
		once.Do(func() { _ = ps.Close() })
	}

	go func() {
		defer metrics.RealtimeSubscribers.Dec()
		defer close(out)
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev interfaces.QuoteEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.log.Warn("discarding malformed event", zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				default:
					b.log.Warn("dropping event for slow subscriber", zap.String("quote_id", ev.QuoteID))
				}
			}
		}
	}()
	return out, cancel
}
