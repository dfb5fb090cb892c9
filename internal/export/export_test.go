package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	exporter *Exporter
	season   *model.Season
	ids      map[string]string
	final    *model.Game
	open     *model.Game
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	now := time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC)
	s := store.New(db, store.WithClock(func() time.Time { return now }))
	season, err := s.AddSeason("Summer League", "2026-06-01")
	require.NoError(t, err)

	ids := map[string]string{}
	for _, n := range []string{"Ann", "Ben", "Cal", "Dee"} {
		p, err := s.AddPlayer(n)
		require.NoError(t, err)
		ids[n] = p.ID
	}

	final, err := s.CreateGame(season.ID, model.Pair{ids["Ann"], ids["Ben"]}, model.Pair{ids["Cal"], ids["Dee"]})
	require.NoError(t, err)
	for _, ev := range []struct {
		player string
		stat   model.StatType
	}{{"Ann", model.TwoMade}, {"Ann", model.TwoMade}, {"Cal", model.ThreeMade}, {"Dee", model.Steal}} {
		_, err := s.AppendEvent(final.ID, ids[ev.player], ev.stat, 1)
		require.NoError(t, err)
	}
	ok, err := s.FinalizeGame(final.ID, 4, 3, model.SideA)
	require.NoError(t, err)
	require.True(t, ok)

	open, err := s.CreateGame(season.ID, model.Pair{ids["Ann"], ids["Cal"]}, model.Pair{ids["Ben"], ids["Dee"]})
	require.NoError(t, err)
	_, err = s.AppendEvent(open.ID, ids["Ben"], model.ThreeMade, 1)
	require.NoError(t, err)

	e := New(s, boxscore.DefaultRules(), aggregate.Options{})
	e.now = func() time.Time { return now }
	return &fixture{exporter: e, season: season, ids: ids, final: final, open: open}
}

func readCSV(t *testing.T, data []byte) []map[string]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, h := range header {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows
}

func (f *fixture) write(t *testing.T, file File) (string, []map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	name, err := f.exporter.WriteSeasonFile(&buf, f.season.ID, file)
	require.NoError(t, err)
	return name, readCSV(t, buf.Bytes())
}

func TestSeasonFiles(t *testing.T) {
	f := setup(t)

	t.Run("players", func(t *testing.T) {
		name, rows := f.write(t, FilePlayers)
		assert.Equal(t, "players_2026-07-04.csv", name)
		require.Len(t, rows, 4)
		assert.Equal(t, "true", rows[0]["active"])
	})

	t.Run("games only lists finalized games", func(t *testing.T) {
		name, rows := f.write(t, FileGames)
		assert.Equal(t, "games_Summer_League_2026-07-04.csv", name)
		require.Len(t, rows, 1)
		assert.Equal(t, f.final.ID, rows[0]["game_id"])
		assert.Equal(t, "Ann", rows[0]["sideA_p1_name"])
		assert.Equal(t, "4", rows[0]["final_score_a"])
		assert.Equal(t, "A", rows[0]["winner_side"])
	})

	t.Run("player game stats", func(t *testing.T) {
		_, rows := f.write(t, FilePlayerGameStats)
		require.Len(t, rows, 4)
		ann := rows[0]
		assert.Equal(t, "Ann", ann["player_name"])
		assert.Equal(t, "Ben", ann["teammate_name"])
		assert.Equal(t, "W", ann["result"])
		assert.Equal(t, "4", ann["PTS"])
		assert.Equal(t, "1.0000", ann["2P_PCT"])
		assert.Equal(t, "", ann["3P_PCT"])
		assert.Equal(t, "L", rows[2]["result"])
	})

	t.Run("season totals sorted by scoring", func(t *testing.T) {
		_, rows := f.write(t, FilePlayerSeasonTots)
		require.Len(t, rows, 4)
		var order []string
		for _, r := range rows {
			order = append(order, r["player_name"])
		}
		assert.Equal(t, []string{"Ann", "Cal", "Ben", "Dee"}, order)
		assert.Equal(t, "4.00", rows[0]["PTS_PER_GAME"])
		assert.Equal(t, "1.0000", rows[0]["WIN_PCT"])
		assert.Equal(t, "0.0000", rows[1]["WIN_PCT"])
		assert.Equal(t, "1.00", rows[3]["STL_PER_GAME"])
	})

	t.Run("teammate and opponent splits", func(t *testing.T) {
		_, with := f.write(t, FileWithTeammate)
		require.Len(t, with, 4)
		assert.Equal(t, "Ann", with[0]["player_name"])
		assert.Equal(t, "Ben", with[0]["teammate_name"])

		_, vs := f.write(t, FileVsOpponent)
		require.Len(t, vs, 8)
		assert.Equal(t, "Cal", vs[0]["opponent_name"])
		assert.Equal(t, "Dee", vs[1]["opponent_name"])
	})

	t.Run("unknown file", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := f.exporter.WriteSeasonFile(&buf, f.season.ID, File("secrets"))
		assert.ErrorIs(t, err, ErrUnknownFile)
	})
}

func TestWriteGameFile(t *testing.T) {
	f := setup(t)
	var buf bytes.Buffer
	name, err := f.exporter.WriteGameFile(&buf, f.open.ID)
	require.NoError(t, err)
	assert.Equal(t, "game_2026-07-04_Ann_Cal_vs_Ben_Dee.csv", name)

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 4)
	assert.Equal(t, "Summer League", rows[0]["season_name"])
	assert.Equal(t, "3", rows[0]["final_score_b"])
	assert.Equal(t, "B", rows[0]["winner_side"])
	assert.Equal(t, "L", rows[0]["result"])
}

func TestBackup(t *testing.T) {
	f := setup(t)
	var buf bytes.Buffer
	name, err := f.exporter.WriteBackup(&buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "backup_"))

	var b Backup
	require.NoError(t, json.Unmarshal(buf.Bytes(), &b))
	assert.Len(t, b.Players, 4)
	assert.Len(t, b.Seasons, 1)
	assert.Len(t, b.Games, 2)
	assert.Len(t, b.Events, 5)
	assert.Equal(t, time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC), b.ExportedAt)
}
