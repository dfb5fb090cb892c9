package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/mauv0809/driveway-hoops/internal/tracker"
)

func ListPlayersHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeArchived := r.URL.Query().Get("all") == "true"
		players, err := s.ListPlayers(!includeArchived)
		if err != nil {
			writeError(w, "Failed to list players", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

func AddPlayerHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		p, err := t.AddPlayer(req.Name)
		if err != nil {
			writeError(w, "Failed to add player", err)
			return
		}
		log.Info("Added player", "id", p.ID, "name", p.Name)
		writeJSON(w, http.StatusCreated, p)
	}
}

type updatePlayerRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func UpdatePlayerHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		p, err := t.UpdatePlayer(r.PathValue("id"), req.Name, req.Active)
		if err != nil {
			writeError(w, "Failed to update player", err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func ListSeasonsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasons, err := s.ListSeasons(r.URL.Query().Get("all") == "true")
		if err != nil {
			writeError(w, "Failed to list seasons", err)
			return
		}
		writeJSON(w, http.StatusOK, seasons)
	}
}

type addSeasonRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
}

func AddSeasonHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addSeasonRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		season, err := t.AddSeason(req.Name, req.StartDate)
		if err != nil {
			writeError(w, "Failed to add season", err)
			return
		}
		log.Info("Added season", "id", season.ID, "name", season.Name)
		writeJSON(w, http.StatusCreated, season)
	}
}

func CurrentSeasonHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := s.CurrentSeason()
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "No season", http.StatusNotFound)
			return
		}
		if err != nil {
			writeError(w, "Failed to load current season", err)
			return
		}
		writeJSON(w, http.StatusOK, season)
	}
}

func ArchiveSeasonHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := t.ArchiveSeason(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to archive season", err)
			return
		}
		writeJSON(w, http.StatusOK, season)
	}
}

func SelectSeasonHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := t.SelectSeason(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to select season", err)
			return
		}
		writeJSON(w, http.StatusOK, season)
	}
}
