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

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Progress engine metric names
const (
	MetricNameXPGranted        = "xp_granted_total"
	MetricNameLevelUps         = "level_ups_total"
	MetricNameQuestsProgressed = "quests_progressed_total"
	MetricNameQuestsCompleted  = "quests_completed_total"
	MetricNameActionsApplied   = "actions_applied_total"
	MetricNameActivities       = "activities_recorded_total"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Progress engine metric help text
const (
	HelpTextXPGranted        = "Total XP granted to characters"
	HelpTextLevelUps         = "Total number of levels gained"
	HelpTextQuestsProgressed = "Total number of quest progress updates"
	HelpTextQuestsCompleted  = "Total number of quests completed"
	HelpTextActionsApplied   = "Total number of actions applied to quests"
	HelpTextActivities       = "Total number of activities recorded"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelSource     = "source"
	LabelQuestType  = "quest_type"
	LabelActionKind = "action_kind"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)

// unmatchedRoute labels requests that matched no chi route
const unmatchedRoute = "unmatched"
