package outbox

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/pubsub"
	"github.com/mauv0809/driveway-hoops/internal/store"
)

// NewDispatcher creates a Dispatcher. A nil publisher leaves sync unconfigured.
func NewDispatcher(store OpStore, publisher pubsub.PubSubClient, metrics metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		batchSize: DefaultBatchSize,
	}
}

// Configured reports whether a transport is set.
func (d *Dispatcher) Configured() bool {
	return d.publisher != nil
}

func topicFor(kind model.OpKind) pubsub.EventType {
	if kind == model.OpBulkFinalize {
		return pubsub.EventGameFinalized
	}
	return pubsub.EventSyncOp
}

// Drain publishes pending ops oldest first and deletes each one once it is
// acknowledged. It stops at the first failure so ops are never reordered.
// Concurrent calls are serialised.
func (d *Dispatcher) Drain(ctx context.Context) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	var res Result
	if d.publisher == nil {
		res.Note = ErrNotConfigured.Error()
		return d.finish(&res)
	}

	ops, err := d.store.ListOps(d.batchSize)
	if err != nil {
		res.Error = fmt.Sprintf("failed to list ops: %v", err)
		return d.finish(&res)
	}
	if len(ops) == 0 {
		return d.finish(&res)
	}

	log.Info("Draining outbox", "count", len(ops))
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			res.Error = err.Error()
			break
		}
		if err := d.push(ctx, op); err != nil {
			d.metrics.IncSyncOpsFailed()
			if markErr := d.store.MarkOpFailed(op.ID, err.Error()); markErr != nil {
				log.Error("Failed to mark op as failed", "id", op.ID, "error", markErr)
			}
			log.Error("Failed to push op", "id", op.ID, "kind", op.Kind, "error", err)
			res.Error = err.Error()
			break
		}
		res.Pushed++
	}
	return d.finish(&res)
}

// finish fills in the remaining count and updates the pending gauge.
func (d *Dispatcher) finish(res *Result) Result {
	n, err := d.store.CountOps()
	if err != nil {
		log.Error("Failed to count pending ops", "error", err)
		return *res
	}
	res.Remaining = n
	d.metrics.SetPendingOps(n)
	return *res
}

func (d *Dispatcher) push(ctx context.Context, op store.Op) error {
	env := Envelope{OpID: op.ID, Kind: op.Kind, Payload: op.Payload, CreatedAt: op.CreatedAt}
	if err := d.publisher.SendMessage(ctx, topicFor(op.Kind), env); err != nil {
		return fmt.Errorf("publish %s: %w", op.Kind, err)
	}
	if err := d.store.DeleteOp(op.ID); err != nil {
		return fmt.Errorf("delete op %s: %w", op.ID, err)
	}
	d.metrics.IncSyncOpsPushed(string(op.Kind))
	return nil
}
