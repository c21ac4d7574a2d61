package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/activepause/activepause/internal/shared/domain"
	"github.com/google/uuid"
)

// Event is the envelope delivered to in-process subscribers.
type Event struct {
	EventID    uuid.UUID       `json:"event_id"`
	RoutingKey string          `json:"routing_key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// HandlerFunc handles a single dispatched event.
type HandlerFunc func(ctx context.Context, event Event) error

// InProcessBus delivers events synchronously to registered handlers, in
// registration order. It replaces broker delivery in local mode and also
// implements Publisher.
type InProcessBus struct {
	mu       sync.Mutex
	handlers map[string][]HandlerFunc
	logger   *slog.Logger
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing key. The wildcard "*" receives
// every event.
func (b *InProcessBus) Subscribe(routingKey string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], handler)
}

// Publish dispatches a raw payload under the given routing key. Handler
// errors are logged, not propagated, so one consumer cannot fail another.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event := Event{
		EventID:    uuid.New(),
		RoutingKey: routingKey,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	b.dispatch(ctx, event)
	return nil
}

// PublishDomainEvent serializes a domain event and dispatches it.
func (b *InProcessBus) PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	envelope := Event{
		EventID:    event.EventID(),
		RoutingKey: event.RoutingKey(),
		OccurredAt: event.OccurredAt(),
		Payload:    payload,
	}
	b.dispatch(ctx, envelope)
	return nil
}

func (b *InProcessBus) dispatch(ctx context.Context, event Event) {
	// Dispatch is serialized so subscribers observe events in publish order.
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := append([]HandlerFunc{}, b.handlers[event.RoutingKey]...)
	handlers = append(handlers, b.handlers["*"]...)

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"error", err,
			)
		}
	}

	b.logger.Debug("event dispatched",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"handlers", len(handlers),
	)
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}
