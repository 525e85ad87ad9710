// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the bot's conversation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Bot Metrics
var (
	MentionsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMentionsReceived,
			Help: HelpTextMentionsReceived,
		},
	)

	CommandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsHandled,
			Help: HelpTextCommandsHandled,
		},
		[]string{LabelCommand},
	)

	IntentsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameIntentsParsed,
			Help: HelpTextIntentsParsed,
		},
		[]string{LabelOperator},
	)

	IntentsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameIntentsApplied,
			Help: HelpTextIntentsApplied,
		},
	)

	OrdersOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrdersOpened,
			Help: HelpTextOrdersOpened,
		},
	)

	OrdersClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrdersClosed,
			Help: HelpTextOrdersClosed,
		},
	)
)

// RecordMentionReceived counts one inbound @-mention.
func RecordMentionReceived() {
	MentionsReceived.Inc()
}

// RecordCommandHandled counts one handled administrative command by kind.
func RecordCommandHandled(command string) {
	CommandsHandled.WithLabelValues(command).Inc()
}

// RecordIntentParsed counts one successfully parsed order intent.
func RecordIntentParsed(operator string) {
	IntentsParsed.WithLabelValues(operator).Inc()
}

// RecordMergeApplied counts intents that actually touched a sheet row.
func RecordMergeApplied(applied int) {
	if applied > 0 {
		IntentsApplied.Add(float64(applied))
	}
}

// RecordOrderOpened counts one opened sheet.
func RecordOrderOpened() {
	OrdersOpened.Inc()
}

// RecordOrderClosed counts one closed sheet.
func RecordOrderClosed() {
	OrdersClosed.Inc()
}
