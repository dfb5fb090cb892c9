package outbox

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/pubsub"
	"github.com/mauv0809/driveway-hoops/internal/store"
)

// NewMerger creates a Merger.
func NewMerger(store MergeStore) *Merger {
	return &Merger{store: store}
}

// Apply writes one remote op locally. Every op is an upsert or a delete, so
// applying the same envelope twice is harmless. Local data is never wiped,
// a finalized game is never reopened and its event log is left untouched.
func (m *Merger) Apply(env Envelope) error {
	var err error
	switch env.Kind {
	case model.OpUpsertPlayer:
		var p model.Player
		if err = decodePayload(env, &p); err == nil {
			err = m.store.UpsertPlayer(&p)
		}
	case model.OpUpsertSeason:
		var s model.Season
		if err = decodePayload(env, &s); err == nil {
			err = m.store.UpsertSeason(&s)
		}
	case model.OpUpsertGame:
		var g model.Game
		if err = decodePayload(env, &g); err == nil {
			err = m.store.UpsertGame(&g)
		}
	case model.OpUpsertEvent:
		var ev model.StatEvent
		if err = decodePayload(env, &ev); err == nil {
			err = m.upsertEvent(env, &ev)
		}
	case model.OpBulkFinalize:
		var bulk model.BulkFinalize
		if err = decodePayload(env, &bulk); err == nil {
			err = m.applyBulk(&bulk)
		}
	case model.OpDeleteGame:
		var ref model.DeleteRef
		if err = decodePayload(env, &ref); err == nil {
			err = ignoreMissing(m.store.DeleteGame(ref.ID))
		}
	case model.OpDeleteEvent:
		var ref model.DeleteRef
		if err = decodePayload(env, &ref); err == nil {
			err = m.deleteEvent(env, ref.ID)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, env.Kind)
	}
	if err != nil {
		return fmt.Errorf("apply %s %s: %w", env.Kind, env.OpID, err)
	}
	log.Debug("Merged remote op", "id", env.OpID, "kind", env.Kind)
	return nil
}

func decodePayload(env Envelope, v any) error {
	if err := pubsub.Decode(env.Payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOp, err)
	}
	return nil
}

// gameFinalized reports whether gameID is finalized locally. A game that is
// not stored yet counts as open.
func (m *Merger) gameFinalized(gameID string) (bool, error) {
	g, err := m.store.GetGame(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return g.Finalized, nil
}

func (m *Merger) upsertEvent(env Envelope, ev *model.StatEvent) error {
	frozen, err := m.gameFinalized(ev.GameID)
	if err != nil {
		return err
	}
	if frozen {
		log.Warn("Dropped remote event for finalized game", "id", env.OpID, "gameID", ev.GameID, "eventID", ev.ID)
		return nil
	}
	return m.store.UpsertEvent(ev)
}

func (m *Merger) deleteEvent(env Envelope, eventID string) error {
	ev, err := m.store.GetEvent(eventID)
	if err != nil {
		return ignoreMissing(err)
	}
	frozen, err := m.gameFinalized(ev.GameID)
	if err != nil {
		return err
	}
	if frozen {
		log.Warn("Dropped remote event delete for finalized game", "id", env.OpID, "gameID", ev.GameID, "eventID", eventID)
		return nil
	}
	return ignoreMissing(m.store.DeleteEvent(eventID))
}

// ApplyMessage decodes a MessagePack envelope and applies it.
func (m *Merger) ApplyMessage(data []byte) (Envelope, error) {
	var env Envelope
	if err := pubsub.Decode(data, &env); err != nil {
		return env, fmt.Errorf("%w: %v", ErrMalformedOp, err)
	}
	return env, m.Apply(env)
}

// applyBulk stores a remotely finalized game with its full log. When the game
// was already finalized here the local log stands.
func (m *Merger) applyBulk(bulk *model.BulkFinalize) error {
	frozen, err := m.gameFinalized(bulk.Game.ID)
	if err != nil {
		return err
	}
	if err := m.store.UpsertGame(&bulk.Game); err != nil {
		return err
	}
	if frozen {
		return nil
	}
	for i := range bulk.Events {
		if err := m.store.UpsertEvent(&bulk.Events[i]); err != nil {
			return err
		}
	}
	return nil
}

func ignoreMissing(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
