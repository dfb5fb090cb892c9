package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/pubsub"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) store.Store {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	now := time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC)
	return store.New(db, store.WithClock(func() time.Time { return now }))
}

func enqueue(t *testing.T, s store.Store, kind model.OpKind, v any) {
	t.Helper()
	payload, err := pubsub.Encode(v)
	require.NoError(t, err)
	_, err = s.EnqueueOp(kind, payload)
	require.NoError(t, err)
}

func TestDrain(t *testing.T) {
	t.Run("without a transport nothing is pushed", func(t *testing.T) {
		s := setupStore(t)
		enqueue(t, s, model.OpUpsertPlayer, model.Player{ID: "p1", Name: "Ann"})
		m := metrics.NewMock()

		res := NewDispatcher(s, nil, m).Drain(context.Background())
		assert.Equal(t, 0, res.Pushed)
		assert.Equal(t, 1, res.Remaining)
		assert.Equal(t, ErrNotConfigured.Error(), res.Note)
		assert.Empty(t, res.Error)
		assert.Equal(t, 1, m.PendingOps())
	})

	t.Run("pushes in creation order and routes finalized games", func(t *testing.T) {
		s := setupStore(t)
		enqueue(t, s, model.OpUpsertPlayer, model.Player{ID: "p1", Name: "Ann"})
		enqueue(t, s, model.OpUpsertEvent, model.StatEvent{ID: "e1"})
		enqueue(t, s, model.OpBulkFinalize, model.BulkFinalize{Game: model.Game{ID: "g1"}})
		ps := pubsub.NewMock()
		m := metrics.NewMock()

		res := NewDispatcher(s, ps, m).Drain(context.Background())
		assert.Equal(t, Result{Pushed: 3, Remaining: 0}, res)

		calls := ps.SendMessageCalls
		require.Len(t, calls, 3)
		assert.Equal(t, pubsub.EventSyncOp, calls[0].Topic)
		assert.Equal(t, model.OpUpsertPlayer, calls[0].Data.(Envelope).Kind)
		assert.Equal(t, model.OpUpsertEvent, calls[1].Data.(Envelope).Kind)
		assert.Equal(t, pubsub.EventGameFinalized, calls[2].Topic)
		assert.Equal(t, 1, m.SyncOpsPushed(string(model.OpBulkFinalize)))
		assert.Equal(t, 0, m.PendingOps())
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		s := setupStore(t)
		enqueue(t, s, model.OpUpsertPlayer, model.Player{ID: "p1"})
		enqueue(t, s, model.OpUpsertPlayer, model.Player{ID: "p2"})
		enqueue(t, s, model.OpUpsertPlayer, model.Player{ID: "p3"})
		ps := pubsub.NewMock()
		sent := 0
		ps.SendMessageFunc = func(pubsub.EventType, any) error {
			sent++
			if sent == 2 {
				return errors.New("broker unavailable")
			}
			return nil
		}
		m := metrics.NewMock()

		res := NewDispatcher(s, ps, m).Drain(context.Background())
		assert.Equal(t, 1, res.Pushed)
		assert.Equal(t, 2, res.Remaining)
		assert.Contains(t, res.Error, "broker unavailable")
		assert.Equal(t, 1, m.SyncOpsFailed())

		ops, err := s.ListOps(0)
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, 1, ops[0].Attempts)
		assert.Contains(t, ops[0].LastError, "broker unavailable")
		assert.Equal(t, 0, ops[1].Attempts)

		ps.SendMessageFunc = nil
		res = NewDispatcher(s, ps, m).Drain(context.Background())
		assert.Equal(t, Result{Pushed: 2, Remaining: 0}, res)
	})
}

func TestMerger(t *testing.T) {
	env := func(t *testing.T, kind model.OpKind, v any) Envelope {
		t.Helper()
		payload, err := pubsub.Encode(v)
		require.NoError(t, err)
		return Envelope{OpID: string(kind), Kind: kind, Payload: payload}
	}
	playedAt := time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC)
	open := model.Game{
		ID:       "g1",
		SeasonID: "s1",
		PlayedAt: playedAt,
		SideA:    model.Pair{"p1", "p2"},
		SideB:    model.Pair{"p3", "p4"},
	}
	final := open
	final.Finalized = true
	final.FinalScoreA, final.FinalScoreB, final.WinnerSide = 40, 35, model.SideA
	events := []model.StatEvent{
		{ID: "e1", GameID: "g1", PlayerID: "p1", StatType: model.TwoMade, Timestamp: playedAt.Add(time.Minute), Delta: 1},
		{ID: "e2", GameID: "g1", PlayerID: "p3", StatType: model.ThreeMade, Timestamp: playedAt.Add(2 * time.Minute), Delta: 1},
	}

	t.Run("applies upserts idempotently", func(t *testing.T) {
		s := setupStore(t)
		m := NewMerger(s)

		for i := 0; i < 2; i++ {
			require.NoError(t, m.Apply(env(t, model.OpUpsertPlayer, model.Player{ID: "p1", Name: "Ann", Active: true})))
			require.NoError(t, m.Apply(env(t, model.OpUpsertSeason, model.Season{ID: "s1", Name: "Summer"})))
			require.NoError(t, m.Apply(env(t, model.OpBulkFinalize, model.BulkFinalize{Game: final, Events: events})))
		}

		p, err := s.GetPlayer("p1")
		require.NoError(t, err)
		assert.Equal(t, "Ann", p.Name)
		got, err := s.ListEventsForGame("g1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("never reopens a finalized game", func(t *testing.T) {
		s := setupStore(t)
		m := NewMerger(s)
		require.NoError(t, m.Apply(env(t, model.OpBulkFinalize, model.BulkFinalize{Game: final, Events: events})))
		require.NoError(t, m.Apply(env(t, model.OpUpsertGame, open)))

		g, err := s.GetGame("g1")
		require.NoError(t, err)
		assert.True(t, g.Finalized)
		assert.Equal(t, 40, g.FinalScoreA)
		assert.Equal(t, model.SideA, g.WinnerSide)
	})

	t.Run("deletes cascade and tolerate missing rows", func(t *testing.T) {
		s := setupStore(t)
		m := NewMerger(s)
		require.NoError(t, m.Apply(env(t, model.OpUpsertGame, open)))
		require.NoError(t, m.Apply(env(t, model.OpUpsertEvent, events[0])))
		require.NoError(t, m.Apply(env(t, model.OpDeleteEvent, model.DeleteRef{ID: "e1"})))
		require.NoError(t, m.Apply(env(t, model.OpDeleteEvent, model.DeleteRef{ID: "e1"})))
		require.NoError(t, m.Apply(env(t, model.OpUpsertEvent, events[1])))
		require.NoError(t, m.Apply(env(t, model.OpDeleteGame, model.DeleteRef{ID: "g1"})))
		require.NoError(t, m.Apply(env(t, model.OpDeleteGame, model.DeleteRef{ID: "g1"})))

		_, err := s.GetGame("g1")
		assert.ErrorIs(t, err, store.ErrNotFound)
		got, err := s.ListEventsForGame("g1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("leaves a finalized game frozen", func(t *testing.T) {
		s := setupStore(t)
		m := NewMerger(s)
		require.NoError(t, m.Apply(env(t, model.OpBulkFinalize, model.BulkFinalize{Game: final, Events: events[:1]})))

		require.NoError(t, m.Apply(env(t, model.OpDeleteEvent, model.DeleteRef{ID: "e1"})))
		require.NoError(t, m.Apply(env(t, model.OpUpsertEvent, events[1])))
		moved := final
		moved.SeasonID = "s2"
		moved.PlayedAt = playedAt.AddDate(0, 0, -30)
		moved.SideA = model.Pair{"p1", "p9"}
		require.NoError(t, m.Apply(env(t, model.OpUpsertGame, moved)))
		require.NoError(t, m.Apply(env(t, model.OpBulkFinalize, model.BulkFinalize{Game: moved, Events: events})))

		g, err := s.GetGame("g1")
		require.NoError(t, err)
		assert.True(t, g.Finalized)
		assert.Equal(t, "s1", g.SeasonID)
		assert.True(t, playedAt.Equal(g.PlayedAt))
		assert.Equal(t, model.Pair{"p1", "p2"}, g.SideA)
		assert.Equal(t, 40, g.FinalScoreA)
		assert.Equal(t, model.SideA, g.WinnerSide)

		got, err := s.ListEventsForGame("g1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "e1", got[0].ID)
	})

	t.Run("open games still take roster and time updates", func(t *testing.T) {
		s := setupStore(t)
		m := NewMerger(s)
		require.NoError(t, m.Apply(env(t, model.OpUpsertGame, open)))
		moved := open
		moved.PlayedAt = playedAt.Add(time.Hour)
		moved.SideB = model.Pair{"p3", "p5"}
		require.NoError(t, m.Apply(env(t, model.OpUpsertGame, moved)))

		g, err := s.GetGame("g1")
		require.NoError(t, err)
		assert.True(t, moved.PlayedAt.Equal(g.PlayedAt))
		assert.Equal(t, model.Pair{"p3", "p5"}, g.SideB)
	})

	t.Run("undecodable payloads are malformed", func(t *testing.T) {
		m := NewMerger(setupStore(t))
		bad := Envelope{OpID: "x", Kind: model.OpUpsertPlayer, Payload: []byte{0xc1, 0xff}}
		assert.ErrorIs(t, m.Apply(bad), ErrMalformedOp)

		data, err := pubsub.Encode(bad)
		require.NoError(t, err)
		_, err = m.ApplyMessage(data)
		assert.ErrorIs(t, err, ErrMalformedOp)
		assert.NotErrorIs(t, err, ErrUnknownOp)
	})

	t.Run("decodes envelopes and rejects unknown kinds", func(t *testing.T) {
		s := setupStore(t)
		m := NewMerger(s)
		data, err := pubsub.Encode(env(t, model.OpUpsertPlayer, model.Player{ID: "p9", Name: "Zed", Active: true}))
		require.NoError(t, err)
		got, err := m.ApplyMessage(data)
		require.NoError(t, err)
		assert.Equal(t, model.OpUpsertPlayer, got.Kind)

		err = m.Apply(Envelope{Kind: "rename_everything"})
		assert.ErrorIs(t, err, ErrUnknownOp)
	})
}
