package outbox

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/pubsub"
)

var (
	// ErrNotConfigured is reported when no sync transport is set up.
	ErrNotConfigured = errors.New("sync not configured")
	// ErrUnknownOp is returned for an envelope with an unrecognised kind.
	ErrUnknownOp = errors.New("unknown op kind")
	// ErrMalformedOp is returned when a message is not a valid envelope.
	ErrMalformedOp = errors.New("malformed op")
)

// DefaultBatchSize caps how many ops one drain reads.
const DefaultBatchSize = 500

// Envelope is the wire form of an outbox op.
type Envelope struct {
	OpID      string       `msgpack:"op_id" json:"op_id"`
	Kind      model.OpKind `msgpack:"kind" json:"kind"`
	Payload   []byte       `msgpack:"payload" json:"payload"`
	CreatedAt time.Time    `msgpack:"created_at" json:"created_at"`
}

// Result reports the outcome of one drain.
type Result struct {
	Pushed    int    `json:"pushed"`
	Remaining int    `json:"remaining"`
	Error     string `json:"error,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Dispatcher pushes queued ops to the remote copy in creation order.
type Dispatcher struct {
	store     OpStore
	publisher pubsub.PubSubClient
	metrics   metrics.Metrics
	batchSize int

	mu sync.Mutex
}

// Merger applies ops received from the remote copy to the local store.
type Merger struct {
	store MergeStore
}
