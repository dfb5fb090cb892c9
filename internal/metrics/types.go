package metrics

import "github.com/prometheus/client_golang/prometheus"

// Lifetime counter keys kept in the metrics table.
const (
	KeyGamesFinalized = "games_finalized"
	KeyGamesDiscarded = "games_discarded"
	KeyEventsRecorded = "events_recorded"
	KeySyncPushes     = "sync_pushes"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	EventsRecorded     *prometheus.CounterVec
	EventsIgnored      prometheus.Counter
	GamesFinalized     prometheus.Counter
	GamesDiscarded     prometheus.Counter
	RecomputeDuration  prometheus.Histogram
	SyncOpsPushed      *prometheus.CounterVec
	SyncOpsFailed      prometheus.Counter
	PendingOps         prometheus.Gauge
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge

	lifetime MetricsStore
}
