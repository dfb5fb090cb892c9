package awards

import (
	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/rating"
)

// Kind names an award.
type Kind string

const (
	MVP             Kind = "MVP"
	ScoringChampion Kind = "Scoring Champion"
	DefensiveAnchor Kind = "Defensive Anchor"
	Clutch          Kind = "Clutch Player"
	MostImproved    Kind = "Most Improved"
)

// Thresholds gates eligibility. MostImprovedMinGames of 0 applies no filter.
type Thresholds struct {
	MinGames             int
	ClutchMinGames       int
	MostImprovedMinGames int
}

// DefaultThresholds returns 5 games for most awards and 3 close games for Clutch.
func DefaultThresholds() Thresholds {
	return Thresholds{MinGames: 5, ClutchMinGames: 3}
}

// Award names exactly one player.
type Award struct {
	Kind     Kind    `json:"kind"`
	PlayerID string  `json:"player_id"`
	Value    float64 `json:"value"`
}

// Scope selects which awards are computed.
type Scope int

const (
	ScopeSeason Scope = iota
	ScopeAllTime
)

// Select picks each award independently. Ties go to the player seen first
// in the fold. An award with no eligible player is omitted.
func Select(agg *aggregate.Aggregates, snap *rating.Snapshot, scope Scope, th Thresholds) []Award {
	var out []Award
	if agg == nil || len(agg.Order) == 0 {
		return out
	}

	add := func(kind Kind, eligible func(*aggregate.Totals) bool, value func(*aggregate.Totals) float64) {
		if a, ok := argmax(agg, kind, eligible, value); ok {
			out = append(out, a)
		}
	}
	minGames := func(n int) func(*aggregate.Totals) bool {
		return func(t *aggregate.Totals) bool { return t.GamesPlayed >= n }
	}

	add(MVP, minGames(th.MinGames), func(t *aggregate.Totals) float64 { return snap.Rating(t.PlayerID) })
	add(ScoringChampion, minGames(th.MinGames), (*aggregate.Totals).PPG)
	add(DefensiveAnchor, minGames(th.MinGames), (*aggregate.Totals).StocksPG)
	if scope == ScopeSeason {
		add(Clutch,
			func(t *aggregate.Totals) bool { return t.CloseGames >= th.ClutchMinGames && t.CloseGames > 0 },
			func(t *aggregate.Totals) float64 { return *t.CloseWinPct() },
		)
	}
	add(MostImproved, minGames(th.MostImprovedMinGames), func(t *aggregate.Totals) float64 { return snap.Deltas[t.PlayerID] })
	return out
}

func argmax(agg *aggregate.Aggregates, kind Kind, eligible func(*aggregate.Totals) bool, value func(*aggregate.Totals) float64) (Award, bool) {
	var best Award
	found := false
	for _, t := range agg.OrderedTotals() {
		if !eligible(t) {
			continue
		}
		v := value(t)
		if !found || v > best.Value {
			best = Award{Kind: kind, PlayerID: t.PlayerID, Value: v}
			found = true
		}
	}
	return best, found
}

// Find returns the award of the given kind, if present.
func Find(list []Award, kind Kind) (Award, bool) {
	for _, a := range list {
		if a.Kind == kind {
			return a, true
		}
	}
	return Award{}, false
}
