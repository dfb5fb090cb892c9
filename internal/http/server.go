package http

import (
	"net/http"

	"github.com/mauv0809/driveway-hoops/internal/config"
	"github.com/mauv0809/driveway-hoops/internal/http/handlers"
)

func NewServer(deps Deps, cfg config.Config) *Server {
	server := &Server{
		Store:          deps.Store,
		Tracker:        deps.Tracker,
		Stats:          deps.Stats,
		Exporter:       deps.Exporter,
		Dispatcher:     deps.Dispatcher,
		Merger:         deps.Merger,
		Notifier:       deps.Notifier,
		Metrics:        deps.Metrics,
		MetricsHandler: deps.MetricsHandler,
		Lifetime:       deps.Lifetime,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(h, paramsMiddleware, slackVerifyMiddleware(secret))
	handle := func(pattern string, h http.Handler, extra ...Middleware) {
		s.Router.Handle(pattern, Chain(h, append([]Middleware{paramsMiddleware}, extra...)...))
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	handle("GET /health", handlers.HealthCheckHandler(s.Store))
	if s.Lifetime != nil {
		handle("GET /metrics/lifetime", handlers.LifetimeMetricsHandler(s.Lifetime))
	}

	handle("GET /players", handlers.ListPlayersHandler(s.Store))
	handle("POST /players", handlers.AddPlayerHandler(s.Tracker))
	handle("PATCH /players/{id}", handlers.UpdatePlayerHandler(s.Tracker))

	handle("GET /seasons", handlers.ListSeasonsHandler(s.Store))
	handle("POST /seasons", handlers.AddSeasonHandler(s.Tracker))
	handle("GET /seasons/current", handlers.CurrentSeasonHandler(s.Store))
	handle("POST /seasons/{id}/archive", handlers.ArchiveSeasonHandler(s.Tracker))
	handle("POST /seasons/{id}/select", handlers.SelectSeasonHandler(s.Tracker))
	handle("GET /seasons/{id}/dashboard", handlers.DashboardHandler(s.Stats))
	handle("GET /seasons/{id}/games", handlers.GameLogHandler(s.Stats))
	handle("GET /seasons/{id}/export/{file}", handlers.SeasonExportHandler(s.Exporter))

	handle("POST /games", handlers.StartGameHandler(s.Tracker))
	handle("GET /games/{id}", handlers.GetGameHandler(s.Tracker))
	handle("DELETE /games/{id}", handlers.DiscardHandler(s.Tracker))
	handle("POST /games/{id}/events", handlers.RecordStatHandler(s.Tracker))
	handle("POST /games/{id}/undo", handlers.UndoHandler(s.Tracker))
	handle("POST /games/{id}/finalize", handlers.FinalizeHandler(s.Tracker))
	handle("GET /games/{id}/export", handlers.GameExportHandler(s.Exporter))
	handle("DELETE /events/{id}", handlers.DeleteEventHandler(s.Tracker))

	handle("GET /records", handlers.RecordsHandler(s.Stats))
	handle("GET /head-to-head", handlers.HeadToHeadHandler(s.Stats))
	handle("GET /export/backup", handlers.BackupHandler(s.Exporter))

	handle("POST /sync/push", handlers.SyncPushHandler(s.Dispatcher))
	handle("POST /sync/merge", handlers.SyncMergeHandler(s.Merger))

	verify := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)
	handle("POST /slack/command/leaderboard", handlers.LeaderboardCommandHandler(s.Store, s.Stats, s.Notifier), verify)
	handle("POST /slack/command/awards", handlers.AwardsCommandHandler(s.Store, s.Stats, s.Notifier), verify)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
