package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/samborkent/uuidv7"
)

// AppendEvent records one stat event. A zero delta is stored as 1. Timestamps
// are strictly increasing so the newest event is always unambiguous.
func (s *store) AppendEvent(gameID, playerID string, stat model.StatType, delta int) (*model.StatEvent, error) {
	if delta == 0 {
		delta = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	if !ts.After(s.lastEventTS) {
		ts = s.lastEventTS.Add(time.Microsecond)
	}
	s.lastEventTS = ts

	ev := &model.StatEvent{
		ID:        uuidv7.New().String(),
		GameID:    gameID,
		PlayerID:  playerID,
		StatType:  stat,
		Timestamp: ts,
		Delta:     delta,
	}
	if err := s.upsertEventLocked(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *store) GetEvent(id string) (*model.StatEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, err := scanEvent(s.db.QueryRow("SELECT id, game_id, player_id, stat_type, ts, delta FROM events WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return ev, err
}

func (s *store) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, "event", id)
}

// ListEventsForGame returns the game's events ordered by timestamp, then id.
func (s *store) ListEventsForGame(gameID string) ([]model.StatEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, game_id, player_id, stat_type, ts, delta FROM events
		WHERE game_id = ? ORDER BY ts, id`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.StatEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			log.Error("Failed to scan event row", "error", err, "gameID", gameID)
			continue
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// UpsertEvent stores an event with its existing id and timestamp. Events are
// immutable so a conflicting id is left untouched.
func (s *store) UpsertEvent(ev *model.StatEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertEventLocked(ev)
}

func (s *store) upsertEventLocked(ev *model.StatEvent) error {
	_, err := s.db.Exec(`INSERT INTO events (id, game_id, player_id, stat_type, ts, delta)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO NOTHING`,
		ev.ID, ev.GameID, ev.PlayerID, string(ev.StatType), unixNano(ev.Timestamp), ev.Delta)
	return err
}

func scanEvent(sc scanner) (*model.StatEvent, error) {
	var ev model.StatEvent
	var stat string
	var ts int64
	if err := sc.Scan(&ev.ID, &ev.GameID, &ev.PlayerID, &stat, &ts, &ev.Delta); err != nil {
		return nil, err
	}
	ev.StatType = model.StatType(stat)
	ev.Timestamp = fromUnixNano(ts)
	return &ev, nil
}
