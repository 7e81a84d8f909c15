package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	_ "modernc.org/sqlite"
)

const defaultSQLitePath = "minipoker_hands.db"

type SQLiteService struct {
	db *sql.DB
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		dbPath = defaultSQLitePath
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS hand_history (
    room_id    TEXT    NOT NULL,
    hand_no    INTEGER NOT NULL,
    pot        INTEGER NOT NULL,
    winners    TEXT    NOT NULL,
    hand_type  TEXT    NOT NULL,
    played_at  TIMESTAMP NOT NULL,
    PRIMARY KEY (room_id, hand_no)
)`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteService{db: db}, nil
}

func (s *SQLiteService) RecordHand(ctx context.Context, rec HandRecord) {
	winners, err := json.Marshal(rec.Winners)
	if err != nil {
		log.Error().Err(err).Str("room", rec.RoomID.String()).Msg("ledger: marshal winners")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO hand_history (room_id, hand_no, pot, winners, hand_type, played_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (room_id, hand_no) DO NOTHING
`, rec.RoomID.String(), rec.HandNo, rec.Pot, string(winners), rec.HandType, rec.PlayedAt.UTC())
	if err != nil {
		log.Error().Err(err).
			Str("room", rec.RoomID.String()).
			Uint32("hand", rec.HandNo).
			Msg("ledger: record hand")
	}
}

func (s *SQLiteService) ListRecent(ctx context.Context, roomID uuid.UUID, limit int) ([]HandRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, `
SELECT room_id, hand_no, pot, winners, hand_type, played_at
FROM hand_history
WHERE room_id = ?
ORDER BY hand_no DESC
LIMIT ?
`, roomID.String(), clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHandRows(rows)
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func scanHandRows(rows *sql.Rows) ([]HandRecord, error) {
	out := []HandRecord{}
	for rows.Next() {
		var (
			rec     HandRecord
			roomID  string
			winners string
		)
		if err := rows.Scan(&roomID, &rec.HandNo, &rec.Pot, &winners, &rec.HandType, &rec.PlayedAt); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(roomID)
		if err != nil {
			return nil, fmt.Errorf("corrupt room id %q: %w", roomID, err)
		}
		rec.RoomID = id
		if err := json.Unmarshal([]byte(winners), &rec.Winners); err != nil {
			return nil, fmt.Errorf("corrupt winners column: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
