package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		EventsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoops_events_recorded_total",
			Help: "Stat events appended, by stat type.",
		}, []string{"stat_type"}),
		EventsIgnored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoops_events_ignored_total",
			Help: "Events skipped by the box score fold.",
		}),
		GamesFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoops_games_finalized_total",
			Help: "Games moved to the finalized state.",
		}),
		GamesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoops_games_discarded_total",
			Help: "Games deleted together with their events.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hoops_recompute_duration_seconds",
			Help:    "Time spent folding games into ratings and aggregates.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SyncOpsPushed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoops_sync_ops_pushed_total",
			Help: "Outbox ops published, by kind.",
		}, []string{"kind"}),
		SyncOpsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoops_sync_ops_failed_total",
			Help: "Outbox ops that failed to publish.",
		}),
		PendingOps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hoops_sync_ops_pending",
			Help: "Ops waiting in the outbox after the last push.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoops_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoops_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hoops_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.EventsRecorded,
		s.EventsIgnored,
		s.GamesFinalized,
		s.GamesDiscarded,
		s.RecomputeDuration,
		s.SyncOpsPushed,
		s.SyncOpsFailed,
		s.PendingOps,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

// WithLifetimeStore also persists the lifetime counters to ms so they
// survive restarts.
func (s *Service) WithLifetimeStore(ms MetricsStore) *Service {
	s.lifetime = ms
	return s
}

func (s *Service) persist(key string) {
	if s.lifetime != nil {
		s.lifetime.Increment(key)
	}
}

func (s *Service) IncEventsRecorded(statType string) {
	s.EventsRecorded.WithLabelValues(statType).Inc()
	s.persist(KeyEventsRecorded)
}

func (s *Service) IncEventsIgnored(n int) {
	if n > 0 {
		s.EventsIgnored.Add(float64(n))
	}
}

func (s *Service) IncGamesFinalized() {
	s.GamesFinalized.Inc()
	s.persist(KeyGamesFinalized)
}

func (s *Service) IncGamesDiscarded() {
	s.GamesDiscarded.Inc()
	s.persist(KeyGamesDiscarded)
}

func (s *Service) ObserveRecomputeDuration(seconds float64) {
	s.RecomputeDuration.Observe(seconds)
}

func (s *Service) IncSyncOpsPushed(kind string) {
	s.SyncOpsPushed.WithLabelValues(kind).Inc()
	s.persist(KeySyncPushes)
}

func (s *Service) IncSyncOpsFailed() {
	s.SyncOpsFailed.Inc()
}

func (s *Service) SetPendingOps(n int) {
	s.PendingOps.Set(float64(n))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
