package rating

import (
	"testing"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 4, 1, 17, 0, 0, 0, time.UTC)

func finalGame(id string, at time.Time, a, b model.Pair, scoreA, scoreB int) model.Game {
	winner := model.SideB
	if scoreA > scoreB {
		winner = model.SideA
	}
	return model.Game{
		ID: id, PlayedAt: at, SideA: a, SideB: b,
		Finalized: true, FinalScoreA: scoreA, FinalScoreB: scoreB, WinnerSide: winner,
	}
}

func TestKFactor(t *testing.T) {
	assert.InDelta(t, 36.4, KFactor(40, 37), 1e-9)
	// margin multiplier caps at 2, score multiplier at 1.5
	assert.InDelta(t, 60.0, KFactor(80, 20), 1e-9)
	assert.InDelta(t, 20.0, KFactor(0, 0), 1e-9)
}

func TestExpected(t *testing.T) {
	assert.InDelta(t, 0.5, Expected(1000, 1000), 1e-12)
	assert.InDelta(t, 1.0, Expected(1200, 1000)+Expected(1000, 1200), 1e-12)
	assert.Greater(t, Expected(1100, 1000), 0.5)
}

func TestReplay(t *testing.T) {
	t.Run("single game from baseline", func(t *testing.T) {
		g := finalGame("g1", day, model.Pair{"A", "B"}, model.Pair{"C", "D"}, 40, 37)
		snap := Replay([]model.Game{g})

		assert.InDelta(t, 1018.2, snap.Ratings["A"], 1e-9)
		assert.InDelta(t, 1018.2, snap.Ratings["B"], 1e-9)
		assert.InDelta(t, 981.8, snap.Ratings["C"], 1e-9)
		assert.InDelta(t, 981.8, snap.Ratings["D"], 1e-9)
		assert.InDelta(t, 18.2, snap.Deltas["A"], 1e-9)
		require.Len(t, snap.History, 1)
		assert.InDelta(t, 18.2, snap.History[0].DeltaA, 1e-9)
	})

	t.Run("zero sum per game", func(t *testing.T) {
		games := []model.Game{
			finalGame("g1", day, model.Pair{"A", "B"}, model.Pair{"C", "D"}, 40, 30),
			finalGame("g2", day.Add(time.Hour), model.Pair{"A", "C"}, model.Pair{"B", "E"}, 35, 41),
			finalGame("g3", day.Add(2*time.Hour), model.Pair{"E", "D"}, model.Pair{"A", "B"}, 44, 41),
		}
		snap := Replay(games)
		total := 0.0
		for _, d := range snap.Deltas {
			total += d
		}
		assert.InDelta(t, 0.0, total, 1e-9)
	})

	t.Run("order is by played_at regardless of input order", func(t *testing.T) {
		g1 := finalGame("g1", day, model.Pair{"A", "B"}, model.Pair{"C", "D"}, 40, 30)
		g2 := finalGame("g2", day.Add(time.Hour), model.Pair{"A", "C"}, model.Pair{"B", "D"}, 33, 40)
		forward := Replay([]model.Game{g1, g2})
		backward := Replay([]model.Game{g2, g1})
		assert.Equal(t, forward, backward)
	})

	t.Run("same timestamp falls back to game id", func(t *testing.T) {
		g1 := finalGame("g1", day, model.Pair{"A", "B"}, model.Pair{"C", "D"}, 40, 30)
		g2 := finalGame("g2", day, model.Pair{"A", "C"}, model.Pair{"B", "D"}, 33, 40)
		snap := Replay([]model.Game{g2, g1})
		assert.Equal(t, "g1", snap.History[0].GameID)
	})

	t.Run("skips open games and bad rosters", func(t *testing.T) {
		open := finalGame("g1", day, model.Pair{"A", "B"}, model.Pair{"C", "D"}, 40, 30)
		open.Finalized = false
		bad := finalGame("g2", day, model.Pair{"A", "A"}, model.Pair{"C", "D"}, 40, 30)
		noWinner := finalGame("g3", day, model.Pair{"A", "B"}, model.Pair{"C", "D"}, 40, 30)
		noWinner.WinnerSide = ""
		snap := Replay([]model.Game{open, bad, noWinner})
		assert.Empty(t, snap.Ratings)
		assert.Equal(t, Baseline, snap.Rating("A"))
	})

	t.Run("replay is idempotent", func(t *testing.T) {
		games := []model.Game{
			finalGame("g1", day, model.Pair{"A", "B"}, model.Pair{"C", "D"}, 40, 30),
			finalGame("g2", day.Add(time.Hour), model.Pair{"A", "C"}, model.Pair{"B", "D"}, 33, 40),
		}
		assert.Equal(t, Replay(games), Replay(games))
	})
}
