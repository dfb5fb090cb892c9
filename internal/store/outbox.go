package store

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/samborkent/uuidv7"
)

// EnqueueOp appends an op to the outbox.
func (s *store) EnqueueOp(kind model.OpKind, payload []byte) (*Op, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	if !ts.After(s.lastOpTS) {
		ts = s.lastOpTS.Add(time.Microsecond)
	}
	s.lastOpTS = ts

	op := &Op{ID: uuidv7.New().String(), Kind: kind, Payload: payload, CreatedAt: ts}
	_, err := s.db.Exec("INSERT INTO outbox (id, kind, payload, created_at) VALUES (?, ?, ?, ?)",
		op.ID, string(op.Kind), op.Payload, unixNano(op.CreatedAt))
	if err != nil {
		return nil, err
	}
	log.Debug("Enqueued op", "id", op.ID, "kind", kind)
	return op, nil
}

// ListOps returns pending ops oldest first. A limit of 0 returns all.
func (s *store) ListOps(limit int) ([]Op, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, kind, payload, created_at, attempts, last_error FROM outbox ORDER BY created_at, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ops []Op
	for rows.Next() {
		var op Op
		var kind string
		var created int64
		if err := rows.Scan(&op.ID, &kind, &op.Payload, &created, &op.Attempts, &op.LastError); err != nil {
			log.Error("Failed to scan outbox row", "error", err)
			continue
		}
		op.Kind = model.OpKind(kind)
		op.CreatedAt = fromUnixNano(created)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

func (s *store) DeleteOp(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM outbox WHERE id = ?", id)
	return err
}

// MarkOpFailed bumps the attempt counter and records the last error.
func (s *store) MarkOpFailed(id, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE outbox SET attempts = attempts + 1, last_error = ? WHERE id = ?", reason, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "op", id)
}

func (s *store) CountOps() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow("SELECT COUNT(1) FROM outbox").Scan(&n)
	return n, err
}
