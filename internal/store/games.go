package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/samborkent/uuidv7"
)

const gameColumns = `id, season_id, played_at, side_a1, side_a2, side_b1, side_b2,
	finalized, final_score_a, final_score_b, winner_side, notes`

// CreateGame starts an open game. Rosters that are not 2+2 distinct players
// are rejected with model.ErrInvalidRoster.
func (s *store) CreateGame(seasonID string, sideA, sideB model.Pair) (*model.Game, error) {
	if err := model.ValidateRoster(sideA, sideB); err != nil {
		return nil, err
	}
	if seasonID == "" {
		return nil, errors.New("season id is required")
	}
	g := &model.Game{
		ID:       uuidv7.New().String(),
		SeasonID: seasonID,
		PlayedAt: s.now().UTC(),
		SideA:    sideA,
		SideB:    sideB,
	}
	if err := s.UpsertGame(g); err != nil {
		return nil, err
	}
	log.Info("Created game", "id", g.ID, "season", seasonID, "sideA", sideA, "sideB", sideB)
	return g, nil
}

func (s *store) GetGame(id string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := scanGame(s.db.QueryRow("SELECT "+gameColumns+" FROM games WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return g, err
}

// UpdateGame writes the mutable fields of an existing game. A finalized game
// is never reverted to open.
func (s *store) UpdateGame(g *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE games SET finalized = MAX(finalized, ?), final_score_a = ?, final_score_b = ?, winner_side = ?, notes = ?
		WHERE id = ?`,
		boolInt(g.Finalized), g.FinalScoreA, g.FinalScoreB, string(g.WinnerSide), g.Notes, g.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "game", g.ID)
}

// FinalizeGame writes the result once. It reports false when the game was
// already finalized, in which case nothing changes.
func (s *store) FinalizeGame(id string, scoreA, scoreB int, winner model.Side) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE games SET finalized = 1, final_score_a = ?, final_score_b = ?, winner_side = ?
		WHERE id = ? AND finalized = 0`,
		scoreA, scoreB, string(winner), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM games WHERE id = ?", id).Scan(&exists); err != nil {
		return false, err
	}
	if exists == 0 {
		return false, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return false, nil
}

// DeleteGame removes the game and all of its events.
func (s *store) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM events WHERE game_id = ?", id); err != nil {
		tx.Rollback()
		return err
	}
	res, err := tx.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := requireAffected(res, "game", id); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ListGamesForSeason returns the season's games, most recent first.
func (s *store) ListGamesForSeason(seasonID string, finalizedOnly bool) ([]model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + gameColumns + " FROM games WHERE season_id = ?"
	if finalizedOnly {
		query += " AND finalized = 1"
	}
	query += " ORDER BY played_at DESC, id DESC"
	return s.queryGames(query, seasonID)
}

// ListAllFinalizedGames returns finalized games across all seasons in
// chronological order.
func (s *store) ListAllFinalizedGames() ([]model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryGames("SELECT " + gameColumns + " FROM games WHERE finalized = 1 ORDER BY played_at, id")
}

// UpsertGame inserts or replaces a game. An existing finalized row stays
// finalized and keeps its season, played_at, roster and result.
func (s *store) UpsertGame(g *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO games (`+gameColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			season_id = CASE WHEN games.finalized = 1 THEN games.season_id ELSE excluded.season_id END,
			played_at = CASE WHEN games.finalized = 1 THEN games.played_at ELSE excluded.played_at END,
			side_a1 = CASE WHEN games.finalized = 1 THEN games.side_a1 ELSE excluded.side_a1 END,
			side_a2 = CASE WHEN games.finalized = 1 THEN games.side_a2 ELSE excluded.side_a2 END,
			side_b1 = CASE WHEN games.finalized = 1 THEN games.side_b1 ELSE excluded.side_b1 END,
			side_b2 = CASE WHEN games.finalized = 1 THEN games.side_b2 ELSE excluded.side_b2 END,
			notes = excluded.notes,
			final_score_a = CASE WHEN games.finalized = 1 THEN games.final_score_a ELSE excluded.final_score_a END,
			final_score_b = CASE WHEN games.finalized = 1 THEN games.final_score_b ELSE excluded.final_score_b END,
			winner_side = CASE WHEN games.finalized = 1 THEN games.winner_side ELSE excluded.winner_side END,
			finalized = MAX(games.finalized, excluded.finalized)`,
		g.ID, g.SeasonID, unixNano(g.PlayedAt),
		g.SideA[0], g.SideA[1], g.SideB[0], g.SideB[1],
		boolInt(g.Finalized), g.FinalScoreA, g.FinalScoreB, string(g.WinnerSide), g.Notes)
	return err
}

func (s *store) queryGames(query string, args ...any) ([]model.Game, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func scanGame(sc scanner) (*model.Game, error) {
	var g model.Game
	var playedAt int64
	var finalized int
	var winner string
	err := sc.Scan(&g.ID, &g.SeasonID, &playedAt,
		&g.SideA[0], &g.SideA[1], &g.SideB[0], &g.SideB[1],
		&finalized, &g.FinalScoreA, &g.FinalScoreB, &winner, &g.Notes)
	if err != nil {
		return nil, err
	}
	g.PlayedAt = fromUnixNano(playedAt)
	g.Finalized = finalized == 1
	g.WinnerSide = model.Side(winner)
	return &g, nil
}
