package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType names the topic a message is published to.
type EventType string

const (
	// EventSyncOp carries one outbox op to the remote replica.
	EventSyncOp EventType = "hoops-sync-op"
	// EventGameFinalized carries a finalized game with its full event log.
	EventGameFinalized EventType = "hoops-game-finalized"
)
