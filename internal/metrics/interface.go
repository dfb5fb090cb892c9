package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncEventsRecorded(statType string)
	IncEventsIgnored(n int)
	IncGamesFinalized()
	IncGamesDiscarded()
	ObserveRecomputeDuration(seconds float64)
	IncSyncOpsPushed(kind string)
	IncSyncOpsFailed()
	SetPendingOps(n int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists lifetime counters that survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
