package store

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/model"
)

// ErrNotFound is returned when a row with the requested id does not exist.
var ErrNotFound = errors.New("not found")

const (
	// SettingCurrentSeason pins the current season by id.
	SettingCurrentSeason = "current_season_id"
	// SettingAutoExportFinalize toggles the export attached to a finalize recap.
	SettingAutoExportFinalize = "auto_export_finalize"
)

// store handles all database operations.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time

	// lastEventTS and lastOpTS keep event and outbox timestamps strictly
	// increasing per store.
	lastEventTS time.Time
	lastOpTS    time.Time
}

// Op is a queued change waiting to be pushed to the remote copy.
type Op struct {
	ID        string       `json:"op_id"`
	Kind      model.OpKind `json:"kind"`
	Payload   []byte       `json:"payload"`
	CreatedAt time.Time    `json:"created_at"`
	Attempts  int          `json:"attempts"`
	LastError string       `json:"last_error,omitempty"`
}

type scanner interface{ Scan(...any) error }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func unixNano(t time.Time) int64 { return t.UTC().UnixNano() }

func fromUnixNano(n int64) time.Time { return time.Unix(0, n).UTC() }
