package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/outbox"
)

// pushMessage is the envelope of a Pub/Sub push subscription delivery.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}

// SyncPushHandler drains the outbox to the remote copy.
func SyncPushHandler(d *outbox.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := d.Drain(r.Context())
		status := http.StatusOK
		if res.Error != "" {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, res)
	}
}

// SyncMergeHandler applies an op delivered by a Pub/Sub push subscription.
func SyncMergeHandler(m *outbox.Merger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received sync message", "body", string(bodyBytes))

		var msg pushMessage
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Skipping merge", "messageID", msg.Message.MessageID)
			w.Write([]byte("OK"))
			return
		}
		env, err := m.ApplyMessage(rawData)
		if err != nil {
			// Pub/Sub redelivers on any non-2xx, so only transient failures get one.
			if errors.Is(err, outbox.ErrUnknownOp) || errors.Is(err, outbox.ErrMalformedOp) {
				log.Warn("Dropping unusable op", "messageID", msg.Message.MessageID, "error", err)
				w.Write([]byte("OK"))
				return
			}
			log.Error("Failed to merge op", "messageID", msg.Message.MessageID, "error", err)
			http.Error(w, "Failed to merge op", http.StatusInternalServerError)
			return
		}
		log.Info("Merged remote op", "opID", env.OpID, "kind", env.Kind)
		w.Write([]byte("OK"))
	}
}
