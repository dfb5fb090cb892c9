package tracker

import (
	"errors"

	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSeasonNotFound  = errors.New("season not found")
	ErrGameFinalized   = errors.New("game is finalized")
	ErrPlayerNotInGame = errors.New("player is not on either roster")
	ErrUnknownStatType = errors.New("unknown stat type")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrTiedScore       = errors.New("cannot finalize a tied game")
	ErrEmptyName       = errors.New("name is required")
	ErrArchivedSeason  = errors.New("season is archived")
	ErrInactivePlayer  = errors.New("player is archived")
)

// DefaultRecentActions is how many events the live view lists.
const DefaultRecentActions = 8

// Tracker runs live games: it records stat events, finalizes results and
// queues every change for remote sync.
type Tracker struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	rules    boxscore.Rules
}

// RecentAction is one entry of a game's recent actions list.
type RecentAction struct {
	Event      model.StatEvent `json:"event"`
	PlayerName string          `json:"player_name"`
}

// GameView is the live state of a game.
type GameView struct {
	Game   *model.Game        `json:"game"`
	Box    *boxscore.BoxScore `json:"box"`
	Recent []RecentAction     `json:"recent"`
	Names  map[string]string  `json:"names"`
}
