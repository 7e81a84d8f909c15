// Package ledger is the audit trail of finished hands. Every showdown
// appends one record; recent records are queryable per room. It never
// resumes in-flight hands.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultRecentLimit = 50

var ErrNotFound = errors.New("not found")

// HandRecord is one resolved hand.
type HandRecord struct {
	RoomID   uuid.UUID   `json:"room_id"`
	HandNo   uint32      `json:"hand_no"`
	Pot      int64       `json:"pot"`
	Winners  []uuid.UUID `json:"winners"`
	HandType string      `json:"hand_type"`
	PlayedAt time.Time   `json:"played_at"`
}

// Service persists hand records. Stores are best-effort: a failed write
// is logged by the store and never propagates into the room's tick.
type Service interface {
	RecordHand(ctx context.Context, rec HandRecord)
	ListRecent(ctx context.Context, roomID uuid.UUID, limit int) ([]HandRecord, error)
	Close() error
}

type noopService struct{}

func (noopService) RecordHand(_ context.Context, _ HandRecord) {}

func (noopService) ListRecent(_ context.Context, _ uuid.UUID, _ int) ([]HandRecord, error) {
	return []HandRecord{}, nil
}

func (noopService) Close() error { return nil }

// NewService selects a store by mode: "memory" keeps nothing, "sqlite"
// opens the local file at path, "postgres" dials dsn. The returned
// label names the active store for startup logging.
func NewService(mode, dsn, path string) (Service, string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "memory":
		return noopService{}, "memory-noop", nil
	case "local", "sqlite":
		s, err := NewSQLiteService(path)
		if err != nil {
			return nil, "", err
		}
		return s, "sqlite", nil
	case "postgres":
		s, err := NewPostgresService(dsn)
		if err != nil {
			return nil, "", err
		}
		return s, "postgres", nil
	}
	return nil, "", errors.New("unknown ledger mode " + mode)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > defaultRecentLimit {
		return defaultRecentLimit
	}
	return limit
}
