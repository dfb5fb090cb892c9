package export

import (
	"errors"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/model"
)

// ErrUnknownFile is returned for a season export name that does not exist.
var ErrUnknownFile = errors.New("unknown export file")

// File names one season export.
type File string

const (
	FilePlayers          File = "players"
	FileGames            File = "games"
	FilePlayerGameStats  File = "player_game_stats"
	FilePlayerSeasonTots File = "player_season_totals"
	FileWithTeammate     File = "with_teammate_summary"
	FileVsOpponent       File = "vs_opponent_summary"

	fileBackup File = "backup"
)

// Files lists every season export.
var Files = []File{FilePlayers, FileGames, FilePlayerGameStats, FilePlayerSeasonTots, FileWithTeammate, FileVsOpponent}

// Backup is a full JSON dump of the local data.
type Backup struct {
	ExportedAt time.Time         `json:"exported_at"`
	Players    []model.Player    `json:"players"`
	Seasons    []model.Season    `json:"seasons"`
	Games      []model.Game      `json:"games"`
	Events     []model.StatEvent `json:"events"`
}

// Store is the read side the exporter needs.
type Store interface {
	ListPlayers(activeOnly bool) ([]model.Player, error)
	ListSeasons(includeArchived bool) ([]model.Season, error)
	GetGame(id string) (*model.Game, error)
	GetSeason(id string) (*model.Season, error)
	ListGamesForSeason(seasonID string, finalizedOnly bool) ([]model.Game, error)
	ListEventsForGame(gameID string) ([]model.StatEvent, error)
}
