package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

// OpCounter reports how many ops wait in the sync outbox.
type OpCounter interface {
	CountOps() (int, error)
}

func HealthCheckHandler(ops OpCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		pending, err := ops.CountOps()
		if err != nil {
			log.Warn("Failed to count pending ops", "error", err)
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "OK!")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK! pending_ops=%d", pending)
	}
}

// LifetimeCounter returns the persisted counters.
type LifetimeCounter interface {
	GetAll() (map[string]int, error)
}

func LifetimeMetricsHandler(lc LifetimeCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := lc.GetAll()
		if err != nil {
			writeError(w, "Failed to load lifetime metrics", err)
			return
		}
		writeJSON(w, http.StatusOK, counters)
	}
}
