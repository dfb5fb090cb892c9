package rating

import (
	"sort"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/model"
)

// GameChange records the rating movement caused by one game.
type GameChange struct {
	GameID   string    `json:"game_id"`
	PlayedAt time.Time `json:"played_at"`
	TeamA    float64   `json:"team_a_rating"`
	TeamB    float64   `json:"team_b_rating"`
	Expected float64   `json:"expected_a"`
	K        float64   `json:"k"`
	DeltaA   float64   `json:"delta_a"`
}

// Snapshot is the result of replaying a scope's finalized games.
type Snapshot struct {
	Ratings map[string]float64 `json:"ratings"`
	// Deltas is the net change from Baseline for every player seen.
	Deltas  map[string]float64 `json:"deltas"`
	History []GameChange       `json:"history"`
}

// Rating returns the player's rating, or Baseline if unseen.
func (s *Snapshot) Rating(playerID string) float64 {
	if r, ok := s.Ratings[playerID]; ok {
		return r
	}
	return Baseline
}

// Chronological returns a copy of games sorted by played_at, then id.
func Chronological(games []model.Game) []model.Game {
	sorted := make([]model.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PlayedAt.Equal(sorted[j].PlayedAt) {
			return sorted[i].PlayedAt.Before(sorted[j].PlayedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Replay folds games from the baseline. Non-finalized games, games without a
// winner and games without a valid 2+2 roster are skipped. The input is not modified.
func Replay(games []model.Game) *Snapshot {
	snap := &Snapshot{
		Ratings: make(map[string]float64),
		Deltas:  make(map[string]float64),
	}
	for _, g := range Chronological(games) {
		if !g.HasResult() || !g.HasValidRoster() {
			continue
		}
		for _, pid := range g.Players() {
			if _, ok := snap.Ratings[pid]; !ok {
				snap.Ratings[pid] = Baseline
			}
		}

		teamA := TeamAverage(snap.Ratings[g.SideA[0]], snap.Ratings[g.SideA[1]])
		teamB := TeamAverage(snap.Ratings[g.SideB[0]], snap.Ratings[g.SideB[1]])
		delta := Change(teamA, teamB, g.WinnerSide, g.FinalScoreA, g.FinalScoreB)

		for _, pid := range g.SideA {
			snap.Ratings[pid] += delta
		}
		for _, pid := range g.SideB {
			snap.Ratings[pid] -= delta
		}
		snap.History = append(snap.History, GameChange{
			GameID:   g.ID,
			PlayedAt: g.PlayedAt,
			TeamA:    teamA,
			TeamB:    teamB,
			Expected: Expected(teamA, teamB),
			K:        KFactor(g.FinalScoreA, g.FinalScoreB),
			DeltaA:   delta,
		})
	}
	for pid, r := range snap.Ratings {
		snap.Deltas[pid] = r - Baseline
	}
	return snap
}
