package aggregate

import (
	"testing"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

// result builds a finalized game whose box score gives each player the
// supplied made twos.
func result(id string, hour int, a, b model.Pair, twos map[string]int) GameResult {
	g := model.Game{
		ID:       id,
		PlayedAt: day.Add(time.Duration(hour) * time.Hour),
		SideA:    a,
		SideB:    b,
	}
	box := &boxscore.BoxScore{Lines: map[string]boxscore.StatLine{}}
	for _, pid := range g.Players() {
		box.Lines[pid] = boxscore.StatLine{TwoMade: twos[pid]}
	}
	g.FinalScoreA = 2 * (twos[a[0]] + twos[a[1]])
	g.FinalScoreB = 2 * (twos[b[0]] + twos[b[1]])
	g.WinnerSide = boxscore.WinningSide(g.FinalScoreA, g.FinalScoreB)
	g.Finalized = true
	return GameResult{Game: g, Box: box}
}

func TestStreaks(t *testing.T) {
	ab, cd := model.Pair{"A", "B"}, model.Pair{"C", "D"}
	results := []GameResult{
		result("g1", 1, ab, cd, map[string]int{"A": 20}),
		result("g2", 2, ab, cd, map[string]int{"A": 20}),
		result("g3", 3, ab, cd, map[string]int{"C": 20}),
		result("g4", 4, ab, cd, map[string]int{"B": 20}),
	}

	t.Run("W W L W ends on W1", func(t *testing.T) {
		agg := Compute(results, Options{})
		assert.Equal(t, "W1", agg.Streaks["A"].String())
		assert.Equal(t, "L1", agg.Streaks["C"].String())
		assert.Equal(t, 2, agg.LongestStreaks["A"])
		assert.Equal(t, 1, agg.LongestStreaks["C"])
	})

	t.Run("input order does not matter", func(t *testing.T) {
		reversed := []GameResult{results[3], results[2], results[1], results[0]}
		assert.Equal(t, Compute(results, Options{}), Compute(reversed, Options{}))
	})

	t.Run("extend", func(t *testing.T) {
		var s Streak
		s = s.Extend(Win).Extend(Win)
		assert.Equal(t, Streak{Type: Win, Length: 2}, s)
		assert.Equal(t, Streak{Type: Loss, Length: 1}, s.Extend(Loss))
		assert.Equal(t, "", Streak{}.String())
	})
}

func TestTotals(t *testing.T) {
	ab, cd := model.Pair{"A", "B"}, model.Pair{"C", "D"}
	g1 := result("g1", 1, ab, cd, map[string]int{"A": 12, "B": 8, "C": 9, "D": 9})
	g1.Box.Lines["A"] = boxscore.StatLine{TwoMade: 12, TwoMiss: 4, ThreeMiss: 0, Steals: 2, Blocks: 1}
	g2 := result("g2", 2, ab, cd, map[string]int{"A": 8, "C": 21})

	agg := Compute([]GameResult{g1, g2}, Options{})
	a := agg.Totals["A"]
	require.NotNil(t, a)
	assert.Equal(t, 2, a.GamesPlayed)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 40, a.Points)
	assert.InDelta(t, 20.0, a.PPG(), 1e-9)
	assert.InDelta(t, 1.5, a.StocksPG(), 1e-9)
	require.NotNil(t, a.TwoPct())
	assert.InDelta(t, 20.0/24.0, *a.TwoPct(), 1e-9)
	assert.Nil(t, a.ThreePct())
	assert.Equal(t, []string{"A", "B", "C", "D"}, agg.Order)

	// g1 was decided by 2 points, g2 by 26.
	assert.Equal(t, 1, a.CloseGames)
	assert.Equal(t, 1, a.CloseWins)

	empty := &Totals{}
	assert.Equal(t, 0.0, empty.PPG())
	assert.Nil(t, empty.WinPct())
}

func TestPairs(t *testing.T) {
	ab, cd, ac, bd := model.Pair{"A", "B"}, model.Pair{"C", "D"}, model.Pair{"A", "C"}, model.Pair{"B", "D"}
	results := []GameResult{
		result("g1", 1, ab, cd, map[string]int{"A": 20, "C": 18}),
		result("g2", 2, cd, ab, map[string]int{"D": 20, "B": 10}),
		result("g3", 3, ac, bd, map[string]int{"A": 20}),
	}
	agg := Compute(results, Options{})

	t.Run("teammate key is order independent", func(t *testing.T) {
		rec, ok := agg.Teammates("B", "A")
		require.True(t, ok)
		assert.Equal(t, PairKey("A", "B"), rec.Key)
		assert.Equal(t, 2, rec.Games)
		assert.Equal(t, 1, rec.Wins)
		assert.Equal(t, 1, rec.Losses)
		assert.Equal(t, 40+20, rec.PointsFor)
		assert.Equal(t, 36+40, rec.PointsAgainst)
		assert.Equal(t, (40-36)+(20-40), rec.MarginSum)
	})

	t.Run("head to head flips perspective", func(t *testing.T) {
		ac, ok := agg.Lookup("A", "C")
		require.True(t, ok)
		ca, _ := agg.Lookup("C", "A")
		assert.Equal(t, 2, ac.Games)
		assert.Equal(t, ac.Wins, ca.Losses)
		assert.Equal(t, ac.Losses, ca.Wins)
		assert.Equal(t, ac.MarginSum, -ca.MarginSum)
		assert.Equal(t, "C", ca.Player)
	})

	t.Run("unknown matchup", func(t *testing.T) {
		m, ok := agg.Lookup("A", "Z")
		assert.False(t, ok)
		assert.Equal(t, 0, m.Games)
	})

	t.Run("chemistry ordering", func(t *testing.T) {
		chem := agg.Chemistry()
		require.NotEmpty(t, chem)
		assert.Equal(t, 2, chem[0].Games)
	})

	t.Run("directed splits", func(t *testing.T) {
		with := agg.WithTeammate[DirectedKey("A", "B")]
		require.NotNil(t, with)
		assert.Equal(t, 2, with.GamesPlayed)
		vs := agg.VsOpponent[DirectedKey("A", "D")]
		require.NotNil(t, vs)
		assert.Equal(t, 3, vs.GamesPlayed)
	})
}

func TestLookupAnchor(t *testing.T) {
	agg := &Aggregates{HeadToHead: map[string]*Rivalry{
		PairKey("P1", "P2"): {Key: PairKey("P1", "P2"), Lo: "P1", Hi: "P2", Games: 4, LoWins: 3, HiWins: 1, MarginSum: 12},
	}}
	m, ok := agg.Lookup("P2", "P1")
	require.True(t, ok)
	assert.Equal(t, 1, m.Wins)
	assert.Equal(t, 3, m.Losses)
	assert.Equal(t, -12, m.MarginSum)
}

func TestTopPerformances(t *testing.T) {
	ab, cd := model.Pair{"A", "B"}, model.Pair{"C", "D"}
	results := []GameResult{
		result("g1", 1, ab, cd, map[string]int{"A": 10, "C": 5}),
		result("g2", 2, ab, cd, map[string]int{"C": 10, "A": 3}),
		result("g3", 3, ab, cd, map[string]int{"B": 12}),
	}

	agg := Compute(results, Options{TopN: 3})
	top := agg.TopPerformances[CatPoints]
	require.Len(t, top, 3)
	assert.Equal(t, "B", top[0].PlayerID)
	// A and C are tied at 20; A was folded first.
	assert.Equal(t, "A", top[1].PlayerID)
	assert.Equal(t, "g1", top[1].GameID)
	assert.Equal(t, "C", top[2].PlayerID)
	assert.Equal(t, "B", top[1].Teammate)
	assert.Equal(t, cd, top[1].Opponents)
}

func TestSkipsBadGames(t *testing.T) {
	good := result("g1", 1, model.Pair{"A", "B"}, model.Pair{"C", "D"}, map[string]int{"A": 20})
	bad := result("g2", 2, model.Pair{"A", "B"}, model.Pair{"B", "D"}, map[string]int{"A": 20})
	open := result("g3", 3, model.Pair{"A", "B"}, model.Pair{"C", "D"}, nil)
	open.Game.Finalized = false
	noBox := result("g4", 4, model.Pair{"A", "B"}, model.Pair{"C", "D"}, nil)
	noBox.Box = nil
	noWinner := result("g5", 5, model.Pair{"A", "B"}, model.Pair{"C", "D"}, map[string]int{"C": 20})
	noWinner.Game.WinnerSide = ""

	agg := Compute([]GameResult{good, bad, open, noBox, noWinner}, Options{})
	assert.Equal(t, 4, agg.Skipped)
	assert.Equal(t, 1, agg.Totals["A"].GamesPlayed)
	assert.Equal(t, 0, agg.Totals["A"].Losses)
	assert.Equal(t, "W1", agg.Streaks["A"].String())
}

func TestLongestStreakBoard(t *testing.T) {
	ab, cd := model.Pair{"A", "B"}, model.Pair{"C", "D"}
	results := []GameResult{
		result("g1", 1, ab, cd, map[string]int{"A": 20}),
		result("g2", 2, ab, cd, map[string]int{"C": 20}),
	}
	board := Compute(results, Options{}).LongestStreakBoard(3)
	require.Len(t, board, 3)
	assert.Equal(t, StreakRecord{PlayerID: "A", Length: 1}, board[0])
	assert.Equal(t, StreakRecord{PlayerID: "B", Length: 1}, board[1])
	assert.Equal(t, StreakRecord{PlayerID: "C", Length: 1}, board[2])
}
