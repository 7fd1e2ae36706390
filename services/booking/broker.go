package booking

import (
	"context"
	"sync"
	"time"

	"salonhub/models"

	"go.uber.org/zap"
)

// Watcher is the change-stream source.
type Watcher interface {
	Watch(ctx context.Context) (<-chan models.BookingEvent, error)
}

// Broker fans booking events out to subscribers: locally published events
// immediately, store change events as they arrive.
type Broker struct {
	watcher Watcher
	logger  *zap.Logger

	mu   sync.RWMutex
	subs map[chan models.BookingEvent]struct{}
}

func NewBroker(w Watcher, logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{watcher: w, logger: logger, subs: map[chan models.BookingEvent]struct{}{}}
}

// Subscribe returns an event channel and its cancel func.
func (b *Broker) Subscribe() (<-chan models.BookingEvent, func()) {
	ch := make(chan models.BookingEvent, 32)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers ev to every subscriber without blocking. When a
// subscriber's buffer is full its oldest event is discarded and a resync
// marker queued in its place, so the subscriber reloads instead of going
// stale.
func (b *Broker) Publish(ev models.BookingEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- models.BookingEvent{Op: models.OpResync}:
		default:
			b.logger.Warn("subscriber buffer full, resync marker dropped")
		}
	}
}

// Subscribers reports the number of open subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Run forwards store changes until ctx is done, reopening the stream with
// backoff when it fails.
func (b *Broker) Run(ctx context.Context) {
	backoff := time.Second
	for ctx.Err() == nil {
		events, err := b.watcher.Watch(ctx)
		if err != nil {
			b.logger.Warn("booking change stream unavailable", zap.Error(err), zap.Duration("retry", backoff))
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < time.Minute {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second
		for ev := range events {
			b.Publish(ev)
		}
		// The stream closed; subscribers may have missed changes.
		b.Publish(models.BookingEvent{Op: models.OpResync})
	}
}
