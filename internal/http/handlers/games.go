package handlers

import (
	"net/http"

	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/tracker"
)

type startGameRequest struct {
	SeasonID string     `json:"season_id"`
	SideA    model.Pair `json:"sideA_player_ids"`
	SideB    model.Pair `json:"sideB_player_ids"`
}

func StartGameHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startGameRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		g, err := t.StartGame(req.SeasonID, req.SideA, req.SideB)
		if err != nil {
			writeError(w, "Failed to start game", err)
			return
		}
		writeJSON(w, http.StatusCreated, g)
	}
}

func GetGameHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := t.View(r.PathValue("id"), intParam(r, "recent", tracker.DefaultRecentActions))
		if err != nil {
			writeError(w, "Failed to load game", err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type recordStatRequest struct {
	PlayerID string         `json:"player_id"`
	Stat     model.StatType `json:"stat"`
	Delta    int            `json:"delta"`
}

func RecordStatHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordStatRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		ev, err := t.RecordStat(r.PathValue("id"), req.PlayerID, req.Stat, req.Delta)
		if err != nil {
			writeError(w, "Failed to record stat", err)
			return
		}
		writeJSON(w, http.StatusCreated, ev)
	}
}

func UndoHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, err := t.Undo(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to undo", err)
			return
		}
		writeJSON(w, http.StatusOK, ev)
	}
}

func DeleteEventHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := t.DeleteEvent(r.PathValue("id")); err != nil {
			writeError(w, "Failed to delete event", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func FinalizeHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := t.Finalize(r.PathValue("id"), IsDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to finalize game", err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func DiscardHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := t.Discard(r.PathValue("id")); err != nil {
			writeError(w, "Failed to discard game", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
