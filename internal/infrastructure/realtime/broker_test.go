package realtime

import (
	"context"
	"testing"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/infrastructure/cache/cachetest"
	"labtracker/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive(t *testing.T, ch <-chan interfaces.QuoteEvent) interfaces.QuoteEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return interfaces.QuoteEvent{}
}

func TestMemoryBroker_FanOut(t *testing.T) {
	b := NewMemoryBroker(nil)
	a, cancelA := b.Subscribe(context.Background())
	c, cancelC := b.Subscribe(context.Background())
	defer cancelC()

	ev := interfaces.QuoteEvent{Type: interfaces.QuoteEventUpdated, QuoteID: "q-1", Status: entities.QuoteStatusPaid}
	require.NoError(t, b.Publish(context.Background(), ev))

	assert.Equal(t, ev, receive(t, a))
	assert.Equal(t, ev, receive(t, c))

	cancelA()
	cancelA()
	_, ok := <-a
	assert.False(t, ok, "cancelled subscription must be closed")
	assert.Equal(t, 1, b.Subscribers())
}

func TestMemoryBroker_ContextCancel(t *testing.T) {
	b := NewMemoryBroker(nil)
	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := b.Subscribe(ctx)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed after context cancel")
	}
	assert.Equal(t, 0, b.Subscribers())
}

func TestMemoryBroker_SlowSubscriberDrops(t *testing.T) {
	b := NewMemoryBroker(nil)
	ch, cancel := b.Subscribe(context.Background())
	defer cancel()

	for i := 0; i < SubscriberBuffer+5; i++ {
		require.NoError(t, b.Publish(context.Background(), interfaces.QuoteEvent{QuoteID: "q"}))
	}
	assert.Len(t, ch, SubscriberBuffer)
}

func TestMemoryBroker_Close(t *testing.T) {
	b := NewMemoryBroker(nil)
	ch, cancel := b.Subscribe(context.Background())
	b.Close()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	late, lateCancel := b.Subscribe(context.Background())
	defer lateCancel()
	_, ok = <-late
	assert.False(t, ok, "subscriptions after Close are closed immediately")
}

func TestRedisBroker_RoundTrip(t *testing.T) {
	client := cachetest.NewTestClient(t)
	b := NewRedisBroker(client, "labtracker:test:quotes", nil)

	ch, cancel := b.Subscribe(context.Background())
	defer cancel()

	// the subscription is established asynchronously
	ev := interfaces.QuoteEvent{Type: interfaces.QuoteEventInserted, QuoteID: "q-9", UserID: "u-1"}
	deadline := time.Now().Add(2 * time.Second)
	for {
		require.NoError(t, b.Publish(context.Background(), ev))
		select {
		case got := <-ch:
			assert.Equal(t, ev, got)
			return
		case <-time.After(100 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for redis event")
		}
	}
}
