package http

import (
	"net/http"

	"github.com/mauv0809/driveway-hoops/internal/config"
	"github.com/mauv0809/driveway-hoops/internal/export"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/notifier"
	"github.com/mauv0809/driveway-hoops/internal/outbox"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/mauv0809/driveway-hoops/internal/tracker"
)

type Server struct {
	Store          store.Store
	Tracker        *tracker.Tracker
	Stats          *stats.Service
	Exporter       *export.Exporter
	Dispatcher     *outbox.Dispatcher
	Merger         *outbox.Merger
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Lifetime       metrics.MetricsStore
	Cfg            config.Config
	Router         *http.ServeMux
}

// Deps bundles the services a Server routes to.
type Deps struct {
	Store          store.Store
	Tracker        *tracker.Tracker
	Stats          *stats.Service
	Exporter       *export.Exporter
	Dispatcher     *outbox.Dispatcher
	Merger         *outbox.Merger
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Lifetime       metrics.MetricsStore
}
