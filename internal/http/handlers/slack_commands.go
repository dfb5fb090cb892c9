package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/notifier"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
)

// respondWithSlackMsg writes a formatted Slack message as the command response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	writeJSON(w, http.StatusOK, msg)
}

// commandDashboard picks the dashboard a slash command refers to: the
// current season, or all time when the text is "all".
func commandDashboard(r *http.Request, s store.Store, svc *stats.Service) (*stats.Dashboard, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	if strings.EqualFold(strings.TrimSpace(r.FormValue("text")), "all") {
		return svc.AllTimeDashboard()
	}
	season, err := s.CurrentSeason()
	if err != nil {
		return nil, err
	}
	return svc.SeasonDashboard(season.ID)
}

func LeaderboardCommandHandler(s store.Store, svc *stats.Service, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := commandDashboard(r, s, svc)
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build dashboard for leaderboard", "error", err)
			return
		}
		log.Info("Received leaderboard command", "scope", d.Scope, "user", r.FormValue("user_name"))

		msg, err := n.FormatLeaderboardResponse(d)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func AwardsCommandHandler(s store.Store, svc *stats.Service, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := commandDashboard(r, s, svc)
		if err != nil {
			http.Error(w, "Failed to build awards", http.StatusInternalServerError)
			log.Error("Failed to build dashboard for awards", "error", err)
			return
		}
		log.Info("Received awards command", "scope", d.Scope, "user", r.FormValue("user_name"))

		msg, err := n.FormatAwardsResponse(d)
		if err != nil {
			http.Error(w, "Failed to format awards", http.StatusInternalServerError)
			log.Error("Failed to format awards", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
