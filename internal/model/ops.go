package model

// OpKind names a change queued for remote sync.
type OpKind string

const (
	OpUpsertPlayer OpKind = "upsert_player"
	OpUpsertSeason OpKind = "upsert_season"
	OpUpsertGame   OpKind = "upsert_game"
	OpUpsertEvent  OpKind = "upsert_event"
	OpDeleteGame   OpKind = "delete_game"
	OpDeleteEvent  OpKind = "delete_event"
	OpBulkFinalize OpKind = "upsert_bulk_finalize"
)

// OpKinds lists every kind a dispatcher must route.
var OpKinds = []OpKind{OpUpsertPlayer, OpUpsertSeason, OpUpsertGame, OpUpsertEvent, OpDeleteGame, OpDeleteEvent, OpBulkFinalize}

// Valid reports whether k is a known op kind.
func (k OpKind) Valid() bool {
	for _, known := range OpKinds {
		if k == known {
			return true
		}
	}
	return false
}

// BulkFinalize carries a finalized game with its full event log so the
// remote copy can be written in one shot.
type BulkFinalize struct {
	Game   Game        `json:"game" msgpack:"game"`
	Events []StatEvent `json:"events" msgpack:"events"`
}

// DeleteRef identifies a row removed locally.
type DeleteRef struct {
	ID string `json:"id" msgpack:"id"`
}
