package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/export"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/mauv0809/driveway-hoops/internal/tracker"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrGameNotFound),
		errors.Is(err, tracker.ErrEventNotFound),
		errors.Is(err, tracker.ErrPlayerNotFound),
		errors.Is(err, tracker.ErrSeasonNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrGameFinalized),
		errors.Is(err, tracker.ErrNothingToUndo),
		errors.Is(err, tracker.ErrTiedScore),
		errors.Is(err, tracker.ErrArchivedSeason),
		errors.Is(err, tracker.ErrInactivePlayer):
		return http.StatusConflict
	case errors.Is(err, tracker.ErrPlayerNotInGame),
		errors.Is(err, tracker.ErrUnknownStatType),
		errors.Is(err, tracker.ErrEmptyName),
		errors.Is(err, model.ErrInvalidRoster),
		errors.Is(err, stats.ErrInvalidPair),
		errors.Is(err, export.ErrUnknownFile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError responds with the mapped status. Server errors are logged and
// their detail is not echoed.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Warn(msg, "error", err, "status", status)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// intParam reads a positive integer query parameter, falling back to def.
func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Warn("Invalid integer parameter, using default", "param", name, "value", raw, "default", def)
		return def
	}
	return n
}
