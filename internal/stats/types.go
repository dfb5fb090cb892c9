package stats

import (
	"errors"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/awards"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/rating"
)

// Scope labels a dashboard.
type Scope string

const (
	ScopeSeason  Scope = "season"
	ScopeAllTime Scope = "all-time"
)

// ErrInvalidPair is returned when a head-to-head query does not name two
// distinct players.
var ErrInvalidPair = errors.New("two distinct players are required")

// GameLogLimit is the number of games shown in a season's game log.
const GameLogLimit = 25

// PlayerRow is one line of a standings table.
type PlayerRow struct {
	PlayerID      string            `json:"player_id"`
	Name          string            `json:"name"`
	Totals        *aggregate.Totals `json:"totals"`
	Rating        float64           `json:"rating"`
	RatingDelta   float64           `json:"rating_delta"`
	Streak        string            `json:"streak"`
	LongestStreak int               `json:"longest_win_streak"`
	PPG           float64           `json:"ppg"`
	RPG           float64           `json:"rpg"`
	APG           float64           `json:"apg"`
	StocksPG      float64           `json:"stocks_pg"`
	WinPct        *float64          `json:"win_pct"`
	TwoPct        *float64          `json:"two_pct"`
	ThreePct      *float64          `json:"three_pct"`
}

// Dashboard is everything shown for a season or for all time.
type Dashboard struct {
	Scope           Scope                                          `json:"scope"`
	Season          *model.Season                                  `json:"season,omitempty"`
	Games           int                                            `json:"games"`
	Players         []PlayerRow                                    `json:"players"`
	Chemistry       []*aggregate.PairRecord                        `json:"chemistry"`
	TopPerformances map[aggregate.Category][]aggregate.Performance `json:"top_performances"`
	LongestStreaks  []aggregate.StreakRecord                       `json:"longest_streaks"`
	Awards          []awards.Award                                 `json:"awards"`
	Names           map[string]string                              `json:"names"`

	Aggregates *aggregate.Aggregates  `json:"-"`
	Ratings    *rating.Snapshot       `json:"-"`
	Results    []aggregate.GameResult `json:"-"`
}

// Name returns a player's display name, or the id when unknown.
func (d *Dashboard) Name(id string) string {
	if n, ok := d.Names[id]; ok && n != "" {
		return n
	}
	return id
}

// HeadToHeadView is the record between two players plus their record as teammates.
type HeadToHeadView struct {
	Matchup   aggregate.Matchup     `json:"matchup"`
	Teammates *aggregate.PairRecord `json:"teammates,omitempty"`
	Names     map[string]string     `json:"names"`
}

// GameLogEntry is one row of a season's game log.
type GameLogEntry struct {
	GameID     string     `json:"game_id"`
	PlayedAt   time.Time  `json:"played_at"`
	SideA      []string   `json:"side_a"`
	SideB      []string   `json:"side_b"`
	ScoreA     int        `json:"score_a"`
	ScoreB     int        `json:"score_b"`
	WinnerSide model.Side `json:"winner_side"`
	Finalized  bool       `json:"finalized"`
}
