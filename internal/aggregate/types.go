package aggregate

import (
	"fmt"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/model"
)

const (
	DefaultTopN            = 10
	DefaultCloseGameMargin = 5
)

// Options tunes the fold. Zero values fall back to the defaults.
type Options struct {
	TopN            int
	CloseGameMargin int
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.CloseGameMargin <= 0 {
		o.CloseGameMargin = DefaultCloseGameMargin
	}
	return o
}

// GameResult is a finalized game together with its box score.
type GameResult struct {
	Game model.Game
	Box  *boxscore.BoxScore
}

// Totals accumulates one player's counting stats over a set of games.
type Totals struct {
	PlayerID      string `json:"player_id"`
	GamesPlayed   int    `json:"gp"`
	Wins          int    `json:"w"`
	Losses        int    `json:"l"`
	Points        int    `json:"pts"`
	Assists       int    `json:"ast"`
	OffRebounds   int    `json:"oreb"`
	DefRebounds   int    `json:"dreb"`
	Steals        int    `json:"stl"`
	Blocks        int    `json:"blk"`
	TwoMade       int    `json:"2pm"`
	TwoAttempts   int    `json:"2pa"`
	ThreeMade     int    `json:"3pm"`
	ThreeAttempts int    `json:"3pa"`
	CloseGames    int    `json:"close_gp"`
	CloseWins     int    `json:"close_w"`
}

func (t *Totals) add(line boxscore.StatLine, won, isClose bool) {
	t.GamesPlayed++
	if won {
		t.Wins++
	} else {
		t.Losses++
	}
	if isClose {
		t.CloseGames++
		if won {
			t.CloseWins++
		}
	}
	t.Points += line.Points()
	t.Assists += line.Assists
	t.OffRebounds += line.OffRebounds
	t.DefRebounds += line.DefRebounds
	t.Steals += line.Steals
	t.Blocks += line.Blocks
	t.TwoMade += line.TwoMade
	t.TwoAttempts += line.TwoAttempts()
	t.ThreeMade += line.ThreeMade
	t.ThreeAttempts += line.ThreeAttempts()
}

func (t *Totals) Rebounds() int { return t.OffRebounds + t.DefRebounds }
func (t *Totals) Stocks() int   { return t.Steals + t.Blocks }

// PerGame divides by games played, returning 0 when there are none.
func (t *Totals) PerGame(v int) float64 {
	if t.GamesPlayed == 0 {
		return 0
	}
	return float64(v) / float64(t.GamesPlayed)
}

func (t *Totals) PPG() float64      { return t.PerGame(t.Points) }
func (t *Totals) APG() float64      { return t.PerGame(t.Assists) }
func (t *Totals) RPG() float64      { return t.PerGame(t.Rebounds()) }
func (t *Totals) SPG() float64      { return t.PerGame(t.Steals) }
func (t *Totals) BPG() float64      { return t.PerGame(t.Blocks) }
func (t *Totals) StocksPG() float64 { return t.PerGame(t.Stocks()) }

// WinPct is nil when no games were played.
func (t *Totals) WinPct() *float64 { return boxscore.Pct(t.Wins, t.GamesPlayed) }

// CloseWinPct is nil when the player has no close games.
func (t *Totals) CloseWinPct() *float64 { return boxscore.Pct(t.CloseWins, t.CloseGames) }

func (t *Totals) TwoPct() *float64   { return boxscore.Pct(t.TwoMade, t.TwoAttempts) }
func (t *Totals) ThreePct() *float64 { return boxscore.Pct(t.ThreeMade, t.ThreeAttempts) }

// Result is W or L from one player's perspective.
type Result string

const (
	Win  Result = "W"
	Loss Result = "L"
)

// Streak is a run of identical results.
type Streak struct {
	Type   Result `json:"type"`
	Length int    `json:"length"`
}

// Extend returns the streak after one more result.
func (s Streak) Extend(r Result) Streak {
	if s.Type == r && s.Length > 0 {
		return Streak{Type: r, Length: s.Length + 1}
	}
	return Streak{Type: r, Length: 1}
}

// String renders e.g. "W3", or an empty string with no games.
func (s Streak) String() string {
	if s.Length == 0 {
		return ""
	}
	return fmt.Sprintf("%s%d", s.Type, s.Length)
}

// PairRecord is a teammate pair's record when playing on the same side.
type PairRecord struct {
	Key           string     `json:"key"`
	Players       model.Pair `json:"players"`
	Games         int        `json:"gp"`
	Wins          int        `json:"w"`
	Losses        int        `json:"l"`
	PointsFor     int        `json:"pf"`
	PointsAgainst int        `json:"pa"`
	// MarginSum is positive when the pair has outscored opponents overall.
	MarginSum int `json:"margin_sum"`
}

func (p *PairRecord) WinPct() *float64 { return boxscore.Pct(p.Wins, p.Games) }

func (p *PairRecord) AvgMargin() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.MarginSum) / float64(p.Games)
}

// Rivalry is the stored head-to-head record between two players on opposite
// sides, anchored to Lo < Hi.
type Rivalry struct {
	Key    string `json:"key"`
	Lo     string `json:"lo"`
	Hi     string `json:"hi"`
	Games  int    `json:"gp"`
	LoWins int    `json:"lo_wins"`
	HiWins int    `json:"hi_wins"`
	// MarginSum is from Lo's perspective.
	MarginSum int `json:"margin_sum"`
}

// Matchup is a Rivalry seen from one player's side.
type Matchup struct {
	Player    string `json:"player_id"`
	Opponent  string `json:"opponent_id"`
	Games     int    `json:"gp"`
	Wins      int    `json:"w"`
	Losses    int    `json:"l"`
	MarginSum int    `json:"margin_sum"`
}

// Category is a single-game leaderboard category.
type Category string

const (
	CatPoints    Category = "points"
	CatThreeMade Category = "3pm"
	CatTwoMade   Category = "2pm"
	CatRebounds  Category = "rebounds"
	CatAssists   Category = "assists"
	CatSteals    Category = "steals"
	CatBlocks    Category = "blocks"
)

// Categories lists the leaderboard categories in display order.
var Categories = []Category{CatPoints, CatThreeMade, CatTwoMade, CatRebounds, CatAssists, CatSteals, CatBlocks}

// Value extracts the category's value from a stat line.
func (c Category) Value(l boxscore.StatLine) int {
	switch c {
	case CatPoints:
		return l.Points()
	case CatThreeMade:
		return l.ThreeMade
	case CatTwoMade:
		return l.TwoMade
	case CatRebounds:
		return l.Rebounds()
	case CatAssists:
		return l.Assists
	case CatSteals:
		return l.Steals
	case CatBlocks:
		return l.Blocks
	}
	return 0
}

// Performance is one player's value in one game.
type Performance struct {
	PlayerID  string     `json:"player_id"`
	GameID    string     `json:"game_id"`
	Value     int        `json:"value"`
	PlayedAt  time.Time  `json:"played_at"`
	Teammate  string     `json:"teammate_id"`
	Opponents model.Pair `json:"opponent_ids"`
}

// StreakRecord is a player's longest win streak.
type StreakRecord struct {
	PlayerID string `json:"player_id"`
	Length   int    `json:"length"`
}

// Aggregates is the output of one fold over finalized games.
type Aggregates struct {
	Totals map[string]*Totals `json:"totals"`
	// Order lists player ids in the order they were first seen.
	Order           []string                   `json:"order"`
	Streaks         map[string]Streak          `json:"streaks"`
	LongestStreaks  map[string]int             `json:"longest_streaks"`
	TeammatePairs   map[string]*PairRecord     `json:"teammate_pairs"`
	HeadToHead      map[string]*Rivalry        `json:"head_to_head"`
	TopPerformances map[Category][]Performance `json:"top_performances"`
	// WithTeammate and VsOpponent are directed splits keyed by DirectedKey.
	WithTeammate map[string]*Totals `json:"with_teammate"`
	VsOpponent   map[string]*Totals `json:"vs_opponent"`
	// Skipped counts games dropped for a bad roster, a missing winner or a
	// missing box score.
	Skipped int `json:"skipped"`
}
