package stats_test

import (
	"testing"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/awards"
	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   store.Store
	metrics *metrics.Mock
	svc     *stats.Service
	season  *model.Season
	ids     map[string]string
	now     *time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	now := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)
	s := store.New(db, store.WithClock(func() time.Time { return now }))
	m := metrics.NewMock()
	season, err := s.EnsureDefaultSeason("Driveway 2026")
	require.NoError(t, err)

	f := &fixture{store: s, metrics: m, season: season, ids: map[string]string{}, now: &now}
	for _, name := range []string{"Ann", "Ben", "Cal", "Dee"} {
		p, err := s.AddPlayer(name)
		require.NoError(t, err)
		f.ids[name] = p.ID
	}
	cfg := stats.DefaultConfig()
	cfg.Thresholds = awards.Thresholds{MinGames: 1, ClutchMinGames: 1}
	f.svc = stats.New(s, m, cfg)
	return f
}

// play records a finalized game where each listed player made the given
// number of threes.
func (f *fixture) play(t *testing.T, a, b [2]string, threes map[string]int) *model.Game {
	t.Helper()
	*f.now = f.now.Add(time.Hour)
	g, err := f.store.CreateGame(f.season.ID,
		model.Pair{f.ids[a[0]], f.ids[a[1]]},
		model.Pair{f.ids[b[0]], f.ids[b[1]]})
	require.NoError(t, err)
	scoreA, scoreB := 0, 0
	for name, n := range threes {
		for range n {
			_, err := f.store.AppendEvent(g.ID, f.ids[name], model.ThreeMade, 1)
			require.NoError(t, err)
		}
		if name == a[0] || name == a[1] {
			scoreA += 3 * n
		} else {
			scoreB += 3 * n
		}
	}
	winner := model.SideB
	if scoreA > scoreB {
		winner = model.SideA
	}
	_, err = f.store.FinalizeGame(g.ID, scoreA, scoreB, winner)
	require.NoError(t, err)
	return g
}

func TestSeasonDashboard(t *testing.T) {
	f := setup(t)
	f.play(t, [2]string{"Ann", "Ben"}, [2]string{"Cal", "Dee"}, map[string]int{"Ann": 10, "Cal": 9})
	f.play(t, [2]string{"Ann", "Cal"}, [2]string{"Ben", "Dee"}, map[string]int{"Ann": 14, "Dee": 2})

	// an open game is ignored by the dashboard
	*f.now = f.now.Add(time.Hour)
	_, err := f.store.CreateGame(f.season.ID,
		model.Pair{f.ids["Ann"], f.ids["Ben"]}, model.Pair{f.ids["Cal"], f.ids["Dee"]})
	require.NoError(t, err)

	d, err := f.svc.SeasonDashboard(f.season.ID)
	require.NoError(t, err)
	assert.Equal(t, stats.ScopeSeason, d.Scope)
	assert.Equal(t, 2, d.Games)
	require.Len(t, d.Players, 4)

	top := d.Players[0]
	assert.Equal(t, "Ann", top.Name)
	assert.Equal(t, "W2", top.Streak)
	assert.Equal(t, 2, top.LongestStreak)
	assert.InDelta(t, 36.0, top.PPG, 1e-9)
	assert.Nil(t, top.TwoPct)
	assert.Greater(t, top.Rating, 1000.0)

	mvp, ok := awards.Find(d.Awards, awards.MVP)
	require.True(t, ok)
	assert.Equal(t, f.ids["Ann"], mvp.PlayerID)

	best := d.TopPerformances["points"]
	require.NotEmpty(t, best)
	assert.Equal(t, 42, best[0].Value)
	assert.Equal(t, 1, f.metrics.RecomputeObservations())
}

func TestAllTimeAndHeadToHead(t *testing.T) {
	f := setup(t)
	f.play(t, [2]string{"Ann", "Ben"}, [2]string{"Cal", "Dee"}, map[string]int{"Ann": 14})
	f.play(t, [2]string{"Cal", "Ben"}, [2]string{"Ann", "Dee"}, map[string]int{"Cal": 14})

	d, err := f.svc.AllTimeDashboard()
	require.NoError(t, err)
	assert.Equal(t, stats.ScopeAllTime, d.Scope)
	_, hasClutch := awards.Find(d.Awards, awards.Clutch)
	assert.False(t, hasClutch)

	view, err := f.svc.HeadToHead(f.ids["Cal"], f.ids["Ann"], "")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Matchup.Games)
	assert.Equal(t, 1, view.Matchup.Wins)
	assert.Equal(t, 1, view.Matchup.Losses)
	assert.Nil(t, view.Teammates)

	view, err = f.svc.HeadToHead(f.ids["Ann"], f.ids["Ben"], f.season.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Matchup.Games)
	require.NotNil(t, view.Teammates)
	assert.Equal(t, 1, view.Teammates.Games)

	_, err = f.svc.HeadToHead(f.ids["Ann"], f.ids["Ann"], "")
	assert.ErrorIs(t, err, stats.ErrInvalidPair)
}

func TestGameLog(t *testing.T) {
	f := setup(t)
	first := f.play(t, [2]string{"Ann", "Ben"}, [2]string{"Cal", "Dee"}, map[string]int{"Ann": 14})
	second := f.play(t, [2]string{"Ann", "Ben"}, [2]string{"Cal", "Dee"}, map[string]int{"Dee": 14})

	log, err := f.svc.GameLog(f.season.ID, 0)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, second.ID, log[0].GameID)
	assert.Equal(t, first.ID, log[1].GameID)
	assert.Equal(t, model.SideB, log[0].WinnerSide)

	limited, err := f.svc.GameLog(f.season.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSeasonDashboard_UnknownSeason(t *testing.T) {
	f := setup(t)
	_, err := f.svc.SeasonDashboard("nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
