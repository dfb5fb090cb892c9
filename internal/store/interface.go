package store

import "github.com/mauv0809/driveway-hoops/internal/model"

// Store is the persistence boundary for players, seasons, games, events and
// the sync outbox.
type Store interface {
	ListPlayers(activeOnly bool) ([]model.Player, error)
	GetPlayer(id string) (*model.Player, error)
	AddPlayer(name string) (*model.Player, error)
	UpdatePlayer(p *model.Player) error
	UpsertPlayer(p *model.Player) error

	ListSeasons(includeArchived bool) ([]model.Season, error)
	GetSeason(id string) (*model.Season, error)
	AddSeason(name, startDate string) (*model.Season, error)
	UpsertSeason(s *model.Season) error
	EnsureDefaultSeason(name string) (*model.Season, error)
	CurrentSeason() (*model.Season, error)

	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error

	CreateGame(seasonID string, sideA, sideB model.Pair) (*model.Game, error)
	GetGame(id string) (*model.Game, error)
	UpdateGame(g *model.Game) error
	FinalizeGame(id string, scoreA, scoreB int, winner model.Side) (bool, error)
	DeleteGame(id string) error
	ListGamesForSeason(seasonID string, finalizedOnly bool) ([]model.Game, error)
	ListAllFinalizedGames() ([]model.Game, error)
	UpsertGame(g *model.Game) error

	AppendEvent(gameID, playerID string, stat model.StatType, delta int) (*model.StatEvent, error)
	GetEvent(id string) (*model.StatEvent, error)
	DeleteEvent(id string) error
	ListEventsForGame(gameID string) ([]model.StatEvent, error)
	UpsertEvent(ev *model.StatEvent) error

	EnqueueOp(kind model.OpKind, payload []byte) (*Op, error)
	ListOps(limit int) ([]Op, error)
	DeleteOp(id string) error
	MarkOpFailed(id, reason string) error
	CountOps() (int, error)
}
