package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Bot metric names
const (
	MetricNameMentionsReceived = "slack_mentions_received_total"
	MetricNameCommandsHandled  = "commands_handled_total"
	MetricNameIntentsParsed    = "order_intents_parsed_total"
	MetricNameIntentsApplied   = "order_intents_applied_total"
	MetricNameOrdersOpened     = "orders_opened_total"
	MetricNameOrdersClosed     = "orders_closed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Bot metric help text
const (
	HelpTextMentionsReceived = "Total number of bot mentions received"
	HelpTextCommandsHandled  = "Total number of administrative commands handled"
	HelpTextIntentsParsed    = "Total number of order intents parsed from mentions"
	HelpTextIntentsApplied   = "Total number of order intents applied to a sheet"
	HelpTextOrdersOpened     = "Total number of order sheets opened"
	HelpTextOrdersClosed     = "Total number of order sheets closed"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelCommand  = "command"
	LabelOperator = "operator"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
