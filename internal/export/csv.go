package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/model"
)

// Season is the input of the season CSV writers.
type Season struct {
	Season  model.Season
	Players []model.Player
	// Results holds the season's finalized games with their box scores.
	Results []aggregate.GameResult
	Names   map[string]string
}

func (s *Season) name(id string) string {
	return s.Names[id]
}

var (
	playersHeader = []string{"player_id", "name", "created_at", "active"}
	gamesHeader   = []string{
		"game_id", "season_id", "played_at",
		"sideA_p1_id", "sideA_p1_name", "sideA_p2_id", "sideA_p2_name",
		"sideB_p1_id", "sideB_p1_name", "sideB_p2_id", "sideB_p2_name",
		"final_score_a", "final_score_b", "winner_side",
	}
	lineHeader            = []string{"2PM", "2PMISS", "2PA", "2P_PCT", "3PM", "3PMISS", "3PA", "3P_PCT", "PTS", "AST", "OREB", "DREB", "REB", "STL", "BLK"}
	playerGameStatsHeader = append([]string{
		"season_id", "season_name", "game_id", "played_at",
		"player_id", "player_name", "side",
		"teammate_id", "teammate_name",
		"opp1_id", "opp1_name", "opp2_id", "opp2_name",
		"result",
	}, lineHeader...)
	seasonTotalsHeader = []string{
		"season_id", "season_name", "player_id", "player_name",
		"GP", "W", "L", "WIN_PCT",
		"2PM", "2PMISS", "2PA", "2P_PCT",
		"3PM", "3PMISS", "3PA", "3P_PCT",
		"PTS", "PTS_PER_GAME",
		"AST", "AST_PER_GAME",
		"OREB", "OREB_PER_GAME",
		"DREB", "DREB_PER_GAME",
		"REB", "REB_PER_GAME",
		"STL", "STL_PER_GAME",
		"BLK", "BLK_PER_GAME",
	}
	splitTail  = []string{"GP", "W", "L", "WIN_PCT", "PTS_PER_GAME", "AST_PER_GAME", "REB_PER_GAME", "STL_PER_GAME", "BLK_PER_GAME", "2P_PCT", "3P_PCT"}
	withHeader = append([]string{"season_id", "season_name", "player_id", "player_name", "teammate_id", "teammate_name"}, splitTail...)
	vsHeader   = append([]string{"season_id", "season_name", "player_id", "player_name", "opponent_id", "opponent_name"}, splitTail...)
	gameHeader = append([]string{
		"game_id", "played_at", "season_name",
		"sideA_p1", "sideA_p2", "sideB_p1", "sideB_p2",
		"final_score_a", "final_score_b", "winner_side",
		"player_name", "side", "result",
	}, lineHeader...)
)

func itoa(n int) string { return strconv.Itoa(n) }

// pct renders a fraction with four decimals, or empty when undefined.
func pct(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 4, 64)
}

func perGame(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func result(won bool) string {
	if won {
		return string(aggregate.Win)
	}
	return string(aggregate.Loss)
}

func lineColumns(l boxscore.StatLine) []string {
	return []string{
		itoa(l.TwoMade), itoa(l.TwoMiss), itoa(l.TwoAttempts()), pct(l.TwoPct()),
		itoa(l.ThreeMade), itoa(l.ThreeMiss), itoa(l.ThreeAttempts()), pct(l.ThreePct()),
		itoa(l.Points()), itoa(l.Assists), itoa(l.OffRebounds), itoa(l.DefRebounds), itoa(l.Rebounds()),
		itoa(l.Steals), itoa(l.Blocks),
	}
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WritePlayers writes players.csv.
func WritePlayers(w io.Writer, players []model.Player) error {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{p.ID, p.Name, stamp(p.CreatedAt), strconv.FormatBool(p.Active)})
	}
	return writeAll(w, playersHeader, rows)
}

// WriteGames writes games.csv.
func WriteGames(w io.Writer, s *Season) error {
	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		g := r.Game
		rows = append(rows, []string{
			g.ID, g.SeasonID, stamp(g.PlayedAt),
			g.SideA[0], s.name(g.SideA[0]), g.SideA[1], s.name(g.SideA[1]),
			g.SideB[0], s.name(g.SideB[0]), g.SideB[1], s.name(g.SideB[1]),
			itoa(g.FinalScoreA), itoa(g.FinalScoreB), string(g.WinnerSide),
		})
	}
	return writeAll(w, gamesHeader, rows)
}

// WritePlayerGameStats writes one row per player per game.
func WritePlayerGameStats(w io.Writer, s *Season) error {
	var rows [][]string
	for _, r := range s.Results {
		g := r.Game
		if !g.HasValidRoster() {
			continue
		}
		for _, pid := range g.Players() {
			side, _ := g.SideOf(pid)
			mate := g.Teammate(pid)
			opps := g.Opponents(pid)
			row := []string{
				s.Season.ID, s.Season.Name, g.ID, stamp(g.PlayedAt),
				pid, s.name(pid), string(side),
				mate, s.name(mate),
				opps[0], s.name(opps[0]), opps[1], s.name(opps[1]),
				result(side == g.WinnerSide),
			}
			rows = append(rows, append(row, lineColumns(r.Box.Line(pid))...))
		}
	}
	return writeAll(w, playerGameStatsHeader, rows)
}

// WriteSeasonTotals writes player_season_totals.csv, best scorers first.
func WriteSeasonTotals(w io.Writer, s *Season, agg *aggregate.Aggregates) error {
	totals := agg.OrderedTotals()
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].PPG() > totals[j].PPG() })

	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			s.Season.ID, s.Season.Name, t.PlayerID, s.name(t.PlayerID),
			itoa(t.GamesPlayed), itoa(t.Wins), itoa(t.Losses), pct(t.WinPct()),
			itoa(t.TwoMade), itoa(t.TwoAttempts - t.TwoMade), itoa(t.TwoAttempts), pct(t.TwoPct()),
			itoa(t.ThreeMade), itoa(t.ThreeAttempts - t.ThreeMade), itoa(t.ThreeAttempts), pct(t.ThreePct()),
			itoa(t.Points), perGame(t.PPG()),
			itoa(t.Assists), perGame(t.APG()),
			itoa(t.OffRebounds), perGame(t.PerGame(t.OffRebounds)),
			itoa(t.DefRebounds), perGame(t.PerGame(t.DefRebounds)),
			itoa(t.Rebounds()), perGame(t.RPG()),
			itoa(t.Steals), perGame(t.SPG()),
			itoa(t.Blocks), perGame(t.BPG()),
		})
	}
	return writeAll(w, seasonTotalsHeader, rows)
}

type splitRef struct {
	player, other string
}

// splitOrder lists directed pairs in first-seen order.
func splitOrder(results []aggregate.GameResult, others func(g *model.Game, pid string) []string) []splitRef {
	seen := make(map[string]bool)
	var refs []splitRef
	for i := range results {
		g := &results[i].Game
		if !g.HasValidRoster() {
			continue
		}
		for _, pid := range g.Players() {
			for _, o := range others(g, pid) {
				key := aggregate.DirectedKey(pid, o)
				if !seen[key] {
					seen[key] = true
					refs = append(refs, splitRef{pid, o})
				}
			}
		}
	}
	return refs
}

func writeSplits(w io.Writer, header []string, s *Season, splits map[string]*aggregate.Totals, refs []splitRef) error {
	type entry struct {
		ref splitRef
		t   *aggregate.Totals
	}
	entries := make([]entry, 0, len(refs))
	for _, ref := range refs {
		if t, ok := splits[aggregate.DirectedKey(ref.player, ref.other)]; ok {
			entries = append(entries, entry{ref, t})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].t.GamesPlayed > entries[j].t.GamesPlayed })

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		t := e.t
		rows = append(rows, []string{
			s.Season.ID, s.Season.Name, e.ref.player, s.name(e.ref.player), e.ref.other, s.name(e.ref.other),
			itoa(t.GamesPlayed), itoa(t.Wins), itoa(t.Losses), pct(t.WinPct()),
			perGame(t.PPG()), perGame(t.APG()), perGame(t.RPG()), perGame(t.SPG()), perGame(t.BPG()),
			pct(t.TwoPct()), pct(t.ThreePct()),
		})
	}
	return writeAll(w, header, rows)
}

// WriteWithTeammate writes each player's record alongside each teammate.
func WriteWithTeammate(w io.Writer, s *Season, agg *aggregate.Aggregates) error {
	refs := splitOrder(s.Results, func(g *model.Game, pid string) []string { return []string{g.Teammate(pid)} })
	return writeSplits(w, withHeader, s, agg.WithTeammate, refs)
}

// WriteVsOpponent writes each player's record against each opponent.
func WriteVsOpponent(w io.Writer, s *Season, agg *aggregate.Aggregates) error {
	refs := splitOrder(s.Results, func(g *model.Game, pid string) []string {
		opps := g.Opponents(pid)
		return opps[:]
	})
	return writeSplits(w, vsHeader, s, agg.VsOpponent, refs)
}

// WriteGame writes the box score of a single game, open or finalized.
func WriteGame(w io.Writer, seasonName string, r aggregate.GameResult, names map[string]string) error {
	g := r.Game
	winner := r.Box.WinnerSide
	var rows [][]string
	for _, pid := range g.Players() {
		side, _ := g.SideOf(pid)
		row := []string{
			g.ID, stamp(g.PlayedAt), seasonName,
			names[g.SideA[0]], names[g.SideA[1]], names[g.SideB[0]], names[g.SideB[1]],
			itoa(r.Box.ScoreA), itoa(r.Box.ScoreB), string(winner),
			names[pid], string(side), result(side == winner),
		}
		rows = append(rows, append(row, lineColumns(r.Box.Line(pid))...))
	}
	return writeAll(w, gameHeader, rows)
}
