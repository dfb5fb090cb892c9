package boxscore

import (
	"sort"

	"github.com/mauv0809/driveway-hoops/internal/model"
)

// Compute folds a game's events into a box score. It is pure: events are
// sorted into a copy by (timestamp, id) and never mutated, and every rostered
// player gets a zeroed line even without events.
func Compute(game *model.Game, events []model.StatEvent, rules Rules) *BoxScore {
	box := &BoxScore{Lines: make(map[string]StatLine, 4)}
	for _, pid := range game.Players() {
		box.Lines[pid] = StatLine{}
	}

	for _, ev := range SortEvents(events) {
		line, ok := box.Lines[ev.PlayerID]
		if !ok {
			box.Ignored++
			continue
		}
		delta := ev.Delta
		if delta == 0 {
			delta = 1
		}
		if !line.Add(ev.StatType, delta) {
			box.Ignored++
			continue
		}
		box.Lines[ev.PlayerID] = line
	}

	box.ScoreA = box.sideScore(game.SideA)
	box.ScoreB = box.sideScore(game.SideB)
	box.Lead = box.ScoreA - box.ScoreB
	if box.Lead < 0 {
		box.Lead = -box.Lead
	}
	box.CanFinalize = CanFinalize(box.ScoreA, box.ScoreB, rules)
	box.Tied = box.ScoreA == box.ScoreB
	box.WinnerSide = WinningSide(box.ScoreA, box.ScoreB)
	return box
}

// CanFinalize applies the win condition: the leader has reached the target
// score and leads by at least the margin.
func CanFinalize(scoreA, scoreB int, rules Rules) bool {
	lead := scoreA - scoreB
	if lead < 0 {
		lead = -lead
	}
	return max(scoreA, scoreB) >= rules.TargetScore && lead >= rules.WinMargin
}

// WinningSide returns A only when A is strictly ahead; a tie yields B.
func WinningSide(scoreA, scoreB int) model.Side {
	if scoreA > scoreB {
		return model.SideA
	}
	return model.SideB
}

// Line returns the stat line for playerID, zeroed if the player is unknown.
func (b *BoxScore) Line(playerID string) StatLine {
	return b.Lines[playerID]
}

// Derived returns the derived values for playerID.
func (b *BoxScore) Derived(playerID string) Derived {
	return b.Lines[playerID].Derived()
}

func (b *BoxScore) sideScore(p model.Pair) int {
	return b.Lines[p[0]].Points() + b.Lines[p[1]].Points()
}

// SortEvents returns a copy of events ordered by timestamp, then id.
func SortEvents(events []model.StatEvent) []model.StatEvent {
	sorted := make([]model.StatEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Recent returns up to n events, newest first.
func Recent(events []model.StatEvent, n int) []model.StatEvent {
	sorted := SortEvents(events)
	out := make([]model.StatEvent, 0, min(n, len(sorted)))
	for i := len(sorted) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, sorted[i])
	}
	return out
}
