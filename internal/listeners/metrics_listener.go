package listeners

import (
	"context"

	"go.uber.org/zap"

	"os-manager/internal/events"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/metrics"
)

// MetricsListener переводит доменные события в счётчики Prometheus.
type MetricsListener struct {
	collector metrics.MetricsCollector
	logger    *zap.Logger
}

func NewMetricsListener(collector metrics.MetricsCollector, logger *zap.Logger) *MetricsListener {
	return &MetricsListener{collector: collector, logger: logger}
}

func (l *MetricsListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderCreated, l.handle)
	bus.Subscribe(events.OrderStatusChanged, l.handle)
	bus.Subscribe(events.NotificationCreated, l.handle)
	bus.Subscribe(events.LoginAttempted, l.handle)
}

func (l *MetricsListener) handle(_ context.Context, e eventbus.Event) error {
	switch event := e.(type) {
	case events.OrderCreatedEvent:
		l.collector.RecordOrderCreated()
	case events.OrderStatusChangedEvent:
		l.collector.RecordStatusTransition(string(event.From), string(event.To))
	case events.NotificationCreatedEvent:
		l.collector.RecordNotification(string(event.Notification.Type))
	case events.LoginAttemptedEvent:
		l.collector.RecordLogin(event.Result)
	default:
		l.logger.Debug("MetricsListener: событие без метрики", zap.String("event", e.Name()))
	}
	return nil
}
