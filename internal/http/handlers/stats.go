package handlers

import (
	"net/http"

	"github.com/mauv0809/driveway-hoops/internal/stats"
)

func DashboardHandler(svc *stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.SeasonDashboard(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to build dashboard", err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func GameLogHandler(svc *stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.GameLog(r.PathValue("id"), intParam(r, "limit", stats.GameLogLimit))
		if err != nil {
			writeError(w, "Failed to load game log", err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// RecordsHandler serves the all-time dashboard.
func RecordsHandler(svc *stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.AllTimeDashboard()
		if err != nil {
			writeError(w, "Failed to build records", err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func HeadToHeadHandler(svc *stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		view, err := svc.HeadToHead(q.Get("p"), q.Get("q"), q.Get("season"))
		if err != nil {
			writeError(w, "Failed to load head-to-head", err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
