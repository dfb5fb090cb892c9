package boxscore

import (
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/xorcare/pointer"
)

const (
	// DefaultTargetScore is the score one side must reach before a game can end.
	DefaultTargetScore = 40
	// DefaultWinMargin is the lead required at or above the target score.
	DefaultWinMargin = 3
)

// Rules holds the win condition for a game.
type Rules struct {
	TargetScore int
	WinMargin   int
}

// DefaultRules returns first-to-40, win-by-3.
func DefaultRules() Rules {
	return Rules{TargetScore: DefaultTargetScore, WinMargin: DefaultWinMargin}
}

// StatLine holds one player's counters for one game.
type StatLine struct {
	TwoMade     int `json:"2PM"`
	TwoMiss     int `json:"2PMISS"`
	ThreeMade   int `json:"3PM"`
	ThreeMiss   int `json:"3PMISS"`
	Assists     int `json:"AST"`
	OffRebounds int `json:"OREB"`
	DefRebounds int `json:"DREB"`
	Blocks      int `json:"BLK"`
	Steals      int `json:"STL"`
}

// Derived values computed from a StatLine.
type Derived struct {
	Points        int `json:"points"`
	Rebounds      int `json:"rebounds"`
	TwoAttempts   int `json:"two_attempts"`
	ThreeAttempts int `json:"three_attempts"`
}

// BoxScore is the full per-player breakdown of one game plus team scores.
type BoxScore struct {
	Lines       map[string]StatLine `json:"lines"`
	ScoreA      int                 `json:"score_a"`
	ScoreB      int                 `json:"score_b"`
	Lead        int                 `json:"lead"`
	CanFinalize bool                `json:"can_finalize"`
	WinnerSide  model.Side          `json:"winner_side"`
	// Tied is set when ScoreA == ScoreB; WinnerSide is B in that case.
	Tied bool `json:"tied"`
	// Ignored counts events with an unknown stat type or an unrostered player.
	Ignored int `json:"ignored"`
}

// Add applies delta to the counter for s. It returns false for an unknown type.
func (l *StatLine) Add(s model.StatType, delta int) bool {
	switch s {
	case model.TwoMade:
		l.TwoMade += delta
	case model.TwoMiss:
		l.TwoMiss += delta
	case model.ThreeMade:
		l.ThreeMade += delta
	case model.ThreeMiss:
		l.ThreeMiss += delta
	case model.Assist:
		l.Assists += delta
	case model.OffRebound:
		l.OffRebounds += delta
	case model.DefRebound:
		l.DefRebounds += delta
	case model.Block:
		l.Blocks += delta
	case model.Steal:
		l.Steals += delta
	default:
		return false
	}
	return true
}

// Count returns the counter for s.
func (l StatLine) Count(s model.StatType) int {
	switch s {
	case model.TwoMade:
		return l.TwoMade
	case model.TwoMiss:
		return l.TwoMiss
	case model.ThreeMade:
		return l.ThreeMade
	case model.ThreeMiss:
		return l.ThreeMiss
	case model.Assist:
		return l.Assists
	case model.OffRebound:
		return l.OffRebounds
	case model.DefRebound:
		return l.DefRebounds
	case model.Block:
		return l.Blocks
	case model.Steal:
		return l.Steals
	}
	return 0
}

func (l StatLine) Points() int        { return 2*l.TwoMade + 3*l.ThreeMade }
func (l StatLine) Rebounds() int      { return l.OffRebounds + l.DefRebounds }
func (l StatLine) TwoAttempts() int   { return l.TwoMade + l.TwoMiss }
func (l StatLine) ThreeAttempts() int { return l.ThreeMade + l.ThreeMiss }

// Derived returns points, rebounds and attempts for the line.
func (l StatLine) Derived() Derived {
	return Derived{
		Points:        l.Points(),
		Rebounds:      l.Rebounds(),
		TwoAttempts:   l.TwoAttempts(),
		ThreeAttempts: l.ThreeAttempts(),
	}
}

// TwoPct is nil when there were no two-point attempts.
func (l StatLine) TwoPct() *float64 { return Pct(l.TwoMade, l.TwoAttempts()) }

// ThreePct is nil when there were no three-point attempts.
func (l StatLine) ThreePct() *float64 { return Pct(l.ThreeMade, l.ThreeAttempts()) }

// Pct returns made/attempts, or nil when attempts is not positive.
func Pct(made, attempts int) *float64 {
	if attempts <= 0 {
		return nil
	}
	return pointer.Float64(float64(made) / float64(attempts))
}
