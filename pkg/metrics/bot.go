package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BotMetrics records counters for the update loop and outbound flows.
type BotMetrics struct {
	updates         *prometheus.CounterVec
	ordersCreated   prometheus.Counter
	broadcastSends  *prometheus.CounterVec
	notifyFailures  prometheus.Counter
	handlerFailures *prometheus.CounterVec
}

// NewBotMetrics registers the bot metrics on the provided registerer.
func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	if reg == nil {
		return &BotMetrics{}
	}
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_processed_total",
		Help: "Telegram updates processed, by kind.",
	}, []string{"kind"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_orders_created_total",
		Help: "Orders placed through checkout.",
	})
	broadcastSends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_broadcast_sends_total",
		Help: "Broadcast deliveries, by result.",
	}, []string{"result"})
	notifyFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_staff_notify_failures_total",
		Help: "Failed staff-group notifications.",
	})
	handlerFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_handler_failures_total",
		Help: "Handler invocations that returned an error, by kind.",
	}, []string{"kind"})
	reg.MustRegister(updates, ordersCreated, broadcastSends, notifyFailures, handlerFailures)
	return &BotMetrics{
		updates:         updates,
		ordersCreated:   ordersCreated,
		broadcastSends:  broadcastSends,
		notifyFailures:  notifyFailures,
		handlerFailures: handlerFailures,
	}
}

// IncUpdate counts one processed update of the given kind.
func (b *BotMetrics) IncUpdate(kind string) {
	if b == nil || b.updates == nil {
		return
	}
	b.updates.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncOrderCreated counts one placed order.
func (b *BotMetrics) IncOrderCreated() {
	if b == nil || b.ordersCreated == nil {
		return
	}
	b.ordersCreated.Inc()
}

// IncBroadcastSend counts one broadcast delivery attempt result ("ok" or "failed").
func (b *BotMetrics) IncBroadcastSend(result string) {
	if b == nil || b.broadcastSends == nil {
		return
	}
	b.broadcastSends.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncNotifyFailure counts one failed staff-group notification.
func (b *BotMetrics) IncNotifyFailure() {
	if b == nil || b.notifyFailures == nil {
		return
	}
	b.notifyFailures.Inc()
}

// IncHandlerFailure counts one handler error for the given update kind.
func (b *BotMetrics) IncHandlerFailure(kind string) {
	if b == nil || b.handlerFailures == nil {
		return
	}
	b.handlerFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
