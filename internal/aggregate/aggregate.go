package aggregate

import (
	"sort"

	"github.com/mauv0809/driveway-hoops/internal/model"
)

// PairKey is order independent: both orderings of p and q give the same key.
func PairKey(p, q string) string {
	lo, hi := sortPair(p, q)
	return lo + "|" + hi
}

// DirectedKey keys a split from player's perspective.
func DirectedKey(player, other string) string {
	return player + "::" + other
}

func sortPair(p, q string) (string, string) {
	if q < p {
		return q, p
	}
	return p, q
}

// Chronological returns a copy of results sorted by played_at, then game id.
func Chronological(results []GameResult) []GameResult {
	sorted := make([]GameResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		gi, gj := sorted[i].Game, sorted[j].Game
		if !gi.PlayedAt.Equal(gj.PlayedAt) {
			return gi.PlayedAt.Before(gj.PlayedAt)
		}
		return gi.ID < gj.ID
	})
	return sorted
}

// Compute folds finalized games into totals, streaks, pair records and
// leaderboards. Open games and games without a 2+2 roster are skipped.
func Compute(results []GameResult, opts Options) *Aggregates {
	opts = opts.withDefaults()
	agg := &Aggregates{
		Totals:          make(map[string]*Totals),
		Streaks:         make(map[string]Streak),
		LongestStreaks:  make(map[string]int),
		TeammatePairs:   make(map[string]*PairRecord),
		HeadToHead:      make(map[string]*Rivalry),
		TopPerformances: make(map[Category][]Performance, len(Categories)),
		WithTeammate:    make(map[string]*Totals),
		VsOpponent:      make(map[string]*Totals),
	}

	for _, r := range Chronological(results) {
		g := r.Game
		if !g.HasResult() || r.Box == nil || !g.HasValidRoster() {
			agg.Skipped++
			continue
		}
		isClose := g.Margin() <= opts.CloseGameMargin

		for _, pid := range g.Players() {
			side, _ := g.SideOf(pid)
			won := side == g.WinnerSide
			line := r.Box.Line(pid)

			agg.totalsFor(pid).add(line, won, isClose)

			result := Loss
			if won {
				result = Win
			}
			streak := agg.Streaks[pid].Extend(result)
			agg.Streaks[pid] = streak
			best := agg.LongestStreaks[pid]
			if streak.Type == Win && streak.Length > best {
				best = streak.Length
			}
			agg.LongestStreaks[pid] = best

			mate := g.Teammate(pid)
			splitFor(agg.WithTeammate, DirectedKey(pid, mate), pid).add(line, won, isClose)
			opps := g.Opponents(pid)
			for _, opp := range opps {
				splitFor(agg.VsOpponent, DirectedKey(pid, opp), pid).add(line, won, isClose)
			}

			for _, c := range Categories {
				agg.TopPerformances[c] = append(agg.TopPerformances[c], Performance{
					PlayerID:  pid,
					GameID:    g.ID,
					Value:     c.Value(line),
					PlayedAt:  g.PlayedAt,
					Teammate:  mate,
					Opponents: opps,
				})
			}
		}

		agg.addTeammates(g, model.SideA)
		agg.addTeammates(g, model.SideB)
		for _, a := range g.SideA {
			for _, b := range g.SideB {
				agg.addRivalry(g, a, b)
			}
		}
	}

	for _, c := range Categories {
		agg.TopPerformances[c] = topN(agg.TopPerformances[c], opts.TopN)
	}
	return agg
}

func (a *Aggregates) totalsFor(pid string) *Totals {
	t, ok := a.Totals[pid]
	if !ok {
		t = &Totals{PlayerID: pid}
		a.Totals[pid] = t
		a.Order = append(a.Order, pid)
	}
	return t
}

func splitFor(m map[string]*Totals, key, pid string) *Totals {
	t, ok := m[key]
	if !ok {
		t = &Totals{PlayerID: pid}
		m[key] = t
	}
	return t
}

func (a *Aggregates) addTeammates(g model.Game, side model.Side) {
	pair := g.Pair(side)
	key := PairKey(pair[0], pair[1])
	rec, ok := a.TeammatePairs[key]
	if !ok {
		lo, hi := sortPair(pair[0], pair[1])
		rec = &PairRecord{Key: key, Players: model.Pair{lo, hi}}
		a.TeammatePairs[key] = rec
	}
	pf, pa := g.FinalScoreA, g.FinalScoreB
	if side == model.SideB {
		pf, pa = pa, pf
	}
	rec.Games++
	if side == g.WinnerSide {
		rec.Wins++
	} else {
		rec.Losses++
	}
	rec.PointsFor += pf
	rec.PointsAgainst += pa
	rec.MarginSum += pf - pa
}

// addRivalry records a game between a (side A) and b (side B).
func (a *Aggregates) addRivalry(g model.Game, pa, pb string) {
	key := PairKey(pa, pb)
	lo, hi := sortPair(pa, pb)
	rec, ok := a.HeadToHead[key]
	if !ok {
		rec = &Rivalry{Key: key, Lo: lo, Hi: hi}
		a.HeadToHead[key] = rec
	}
	loSide := model.SideA
	if lo == pb {
		loSide = model.SideB
	}
	margin := g.FinalScoreA - g.FinalScoreB
	if loSide == model.SideB {
		margin = -margin
	}
	rec.Games++
	if g.WinnerSide == loSide {
		rec.LoWins++
	} else {
		rec.HiWins++
	}
	rec.MarginSum += margin
}

// Lookup returns the head-to-head record from p's perspective against q.
func (a *Aggregates) Lookup(p, q string) (Matchup, bool) {
	rec, ok := a.HeadToHead[PairKey(p, q)]
	if !ok {
		return Matchup{Player: p, Opponent: q}, false
	}
	m := Matchup{Player: p, Opponent: q, Games: rec.Games}
	if p == rec.Lo {
		m.Wins, m.Losses, m.MarginSum = rec.LoWins, rec.HiWins, rec.MarginSum
	} else {
		m.Wins, m.Losses, m.MarginSum = rec.HiWins, rec.LoWins, -rec.MarginSum
	}
	return m, true
}

// Teammates returns the record of p and q playing together.
func (a *Aggregates) Teammates(p, q string) (*PairRecord, bool) {
	rec, ok := a.TeammatePairs[PairKey(p, q)]
	return rec, ok
}

// Chemistry lists teammate pairs by games together, then wins, then key.
func (a *Aggregates) Chemistry() []*PairRecord {
	out := make([]*PairRecord, 0, len(a.TeammatePairs))
	for _, rec := range a.TeammatePairs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// LongestStreakBoard ranks players by longest win streak. Ties keep
// first-seen order.
func (a *Aggregates) LongestStreakBoard(n int) []StreakRecord {
	out := make([]StreakRecord, 0, len(a.Order))
	for _, pid := range a.Order {
		out = append(out, StreakRecord{PlayerID: pid, Length: a.LongestStreaks[pid]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Length > out[j].Length })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// OrderedTotals returns totals in first-seen order.
func (a *Aggregates) OrderedTotals() []*Totals {
	out := make([]*Totals, 0, len(a.Order))
	for _, pid := range a.Order {
		out = append(out, a.Totals[pid])
	}
	return out
}

func topN(perfs []Performance, n int) []Performance {
	sorted := make([]Performance, len(perfs))
	copy(sorted, perfs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
