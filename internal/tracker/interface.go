package tracker

import (
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/notifier"
	"github.com/mauv0809/driveway-hoops/internal/store"
)

// Store defines the database operations required by the tracker.
type Store interface {
	ListPlayers(activeOnly bool) ([]model.Player, error)
	GetPlayer(id string) (*model.Player, error)
	AddPlayer(name string) (*model.Player, error)
	UpdatePlayer(p *model.Player) error

	GetSeason(id string) (*model.Season, error)
	AddSeason(name, startDate string) (*model.Season, error)
	UpsertSeason(s *model.Season) error
	CurrentSeason() (*model.Season, error)
	SetSetting(key, value string) error

	CreateGame(seasonID string, sideA, sideB model.Pair) (*model.Game, error)
	GetGame(id string) (*model.Game, error)
	FinalizeGame(id string, scoreA, scoreB int, winner model.Side) (bool, error)
	DeleteGame(id string) error

	AppendEvent(gameID, playerID string, stat model.StatType, delta int) (*model.StatEvent, error)
	GetEvent(id string) (*model.StatEvent, error)
	DeleteEvent(id string) error
	ListEventsForGame(gameID string) ([]model.StatEvent, error)

	EnqueueOp(kind model.OpKind, payload []byte) (*store.Op, error)
}

// Notifier defines the notification operations required by the tracker.
type Notifier interface {
	notifier.Notifier
}
