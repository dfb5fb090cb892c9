package model

import "time"

// Side identifies one of the two 2-player teams in a game.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Valid reports whether s is A or B.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// Pair is the two player ids that make up one side of a game.
type Pair [2]string

// Player is a club member. Players are archived, never deleted, so historical
// stats stay attributable.
type Player struct {
	ID        string    `json:"player_id" msgpack:"player_id"`
	Name      string    `json:"name" msgpack:"name"`
	Active    bool      `json:"active" msgpack:"active"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}

// Season groups games. Games belong to exactly one season permanently.
type Season struct {
	ID        string `json:"season_id" msgpack:"season_id"`
	Name      string `json:"name" msgpack:"name"`
	StartDate string `json:"start_date" msgpack:"start_date"` // YYYY-MM-DD
	Archived  bool   `json:"archived" msgpack:"archived"`
}

// Game is a single 2-on-2 game. FinalScoreA, FinalScoreB and WinnerSide are
// written once, when the game is finalized.
type Game struct {
	ID          string    `json:"game_id" msgpack:"game_id"`
	SeasonID    string    `json:"season_id" msgpack:"season_id"`
	PlayedAt    time.Time `json:"played_at" msgpack:"played_at"`
	SideA       Pair      `json:"sideA_player_ids" msgpack:"sideA_player_ids"`
	SideB       Pair      `json:"sideB_player_ids" msgpack:"sideB_player_ids"`
	Finalized   bool      `json:"finalized" msgpack:"finalized"`
	FinalScoreA int       `json:"final_score_a" msgpack:"final_score_a"`
	FinalScoreB int       `json:"final_score_b" msgpack:"final_score_b"`
	WinnerSide  Side      `json:"winner_side,omitempty" msgpack:"winner_side"`
	Notes       string    `json:"notes,omitempty" msgpack:"notes"`
}

// StatEvent is one immutable entry in a game's event log.
type StatEvent struct {
	ID        string    `json:"event_id" msgpack:"event_id"`
	GameID    string    `json:"game_id" msgpack:"game_id"`
	PlayerID  string    `json:"player_id" msgpack:"player_id"`
	StatType  StatType  `json:"stat_type" msgpack:"stat_type"`
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
	Delta     int       `json:"delta" msgpack:"delta"`
}
