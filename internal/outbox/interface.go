package outbox

import (
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/store"
)

// OpStore is the outbox side of the store the dispatcher drains.
type OpStore interface {
	ListOps(limit int) ([]store.Op, error)
	DeleteOp(id string) error
	MarkOpFailed(id, reason string) error
	CountOps() (int, error)
}

// MergeStore is the set of idempotent writes the merger applies remote ops with.
type MergeStore interface {
	GetGame(id string) (*model.Game, error)
	GetEvent(id string) (*model.StatEvent, error)
	UpsertPlayer(p *model.Player) error
	UpsertSeason(s *model.Season) error
	UpsertGame(g *model.Game) error
	UpsertEvent(ev *model.StatEvent) error
	DeleteGame(id string) error
	DeleteEvent(id string) error
}
