package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

// Event is a named domain event.
type Event interface {
	EventName() string
}

type Handler func(ctx context.Context, event Event) error

// Bus dispatches events in-process. Publish blocks until every subscriber of the event returns.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	logger   *logging.Logger
}

type namedHandler struct {
	name     string
	handler  Handler
	optional bool
}

func New(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.Default()
	}
	return &Bus{
		handlers: make(map[string][]namedHandler),
		logger:   logger.Named("eventbus"),
	}
}

// Subscribe registers handler for eventName under a subscriber name used in logs and errors.
func (b *Bus) Subscribe(eventName, subscriber string, handler Handler) {
	b.subscribe(eventName, namedHandler{name: subscriber, handler: handler})
}

// SubscribeOptional registers a handler whose failures are logged but never returned from Publish.
func (b *Bus) SubscribeOptional(eventName, subscriber string, handler Handler) {
	b.subscribe(eventName, namedHandler{name: subscriber, handler: handler, optional: true})
}

func (b *Bus) subscribe(eventName string, h namedHandler) {
	if h.handler == nil {
		return
	}

	b.mu.Lock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
	b.mu.Unlock()
}

// Publish fans the event out to all subscribers concurrently and joins the errors of required subscribers.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	if event == nil {
		return nil
	}

	b.mu.RLock()
	subscribers := append([]namedHandler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()
	if len(subscribers) == 0 {
		b.logger.DebugContext(ctx, "event has no subscribers", "event", event.EventName())
		return nil
	}

	p := pool.New().WithContext(ctx)
	for _, sub := range subscribers {
		sub := sub
		p.Go(func(ctx context.Context) error {
			if err := sub.handler(ctx, event); err != nil {
				b.logger.WarnContext(ctx, "event subscriber failed",
					"event", event.EventName(),
					"subscriber", sub.name,
					"optional", sub.optional,
					"error", err,
				)
				if sub.optional {
					return nil
				}
				return fmt.Errorf("subscriber %s: %w", sub.name, err)
			}
			return nil
		})
	}
	return p.Wait()
}
