// Package metrics - метрики Prometheus для консоли заявок.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector - интерфейс, через который сервисы и слушатели пишут метрики.
type MetricsCollector interface {
	RecordOrderCreated()
	RecordStatusTransition(from, to string)
	RecordNotification(notificationType string)
	RecordLogin(result string)
	RecordHTTPRequest(method, route string, status int, seconds float64)
}

type Collector struct {
	ordersCreated     prometheus.Counter
	statusTransitions *prometheus.CounterVec
	notifications     *prometheus.CounterVec
	logins            *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewCollector создаёт Collector и регистрирует метрики в reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "os_manager_orders_created_total",
			Help: "Количество созданных заявок",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "os_manager_order_status_transitions_total",
			Help: "Смены статуса заявок",
		}, []string{"from", "to"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "os_manager_notifications_total",
			Help: "Созданные уведомления по типу",
		}, []string{"type"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "os_manager_login_attempts_total",
			Help: "Попытки входа по результату",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "os_manager_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		c.ordersCreated,
		c.statusTransitions,
		c.notifications,
		c.logins,
		c.httpDuration,
	)
	return c
}

func (c *Collector) RecordOrderCreated() {
	c.ordersCreated.Inc()
}

func (c *Collector) RecordStatusTransition(from, to string) {
	c.statusTransitions.WithLabelValues(from, to).Inc()
}

func (c *Collector) RecordNotification(notificationType string) {
	c.notifications.WithLabelValues(notificationType).Inc()
}

func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, seconds float64) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

// Handler - обработчик для скрапинга Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
