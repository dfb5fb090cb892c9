package main

import (
	"errors"
	"testing"

	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTools(t *testing.T) (*tools, store.Store) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	s := store.New(db)
	cfg := stats.DefaultConfig()
	return &tools{store: s, stats: stats.New(s, metrics.NewMock(), cfg), rules: cfg.Rules}, s
}

func TestSeasonIDFallsBackToCurrent(t *testing.T) {
	tl, s := setupTools(t)
	_, err := tl.seasonID("")
	assert.Error(t, err)

	season, err := s.EnsureDefaultSeason("Driveway 2026")
	require.NoError(t, err)
	id, err := tl.seasonID("")
	require.NoError(t, err)
	assert.Equal(t, season.ID, id)

	id, err = tl.seasonID("explicit")
	require.NoError(t, err)
	assert.Equal(t, "explicit", id)
}

func TestBoxScore(t *testing.T) {
	tl, s := setupTools(t)
	season, err := s.EnsureDefaultSeason("Driveway 2026")
	require.NoError(t, err)
	var ids []string
	for _, name := range []string{"Ann", "Ben", "Cal", "Dee"} {
		p, err := s.AddPlayer(name)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	g, err := s.CreateGame(season.ID, model.Pair{ids[0], ids[1]}, model.Pair{ids[2], ids[3]})
	require.NoError(t, err)
	_, err = s.AppendEvent(g.ID, ids[2], model.ThreeMade, 1)
	require.NoError(t, err)

	box, err := tl.boxScore(g.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, box.ScoreA)
	assert.Equal(t, 3, box.ScoreB)

	_, err = tl.boxScore("")
	assert.Error(t, err)
	_, err = tl.boxScore("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestToolJSON(t *testing.T) {
	res, _, err := toolJSON(map[string]int{"games": 3}, nil)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.JSONEq(t, `{"games":3}`, res.Content[0].(*mcp.TextContent).Text)

	res, _, err = toolJSON[any](nil, errors.New("boom"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "boom", res.Content[0].(*mcp.TextContent).Text)
}
