package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSQLiteRoundTrip(t *testing.T) {
	svc, err := NewSQLiteService(":memory:")
	if err != nil {
		t.Skipf("cannot open in-memory sqlite: %v", err)
	}
	defer svc.Close()

	room := uuid.New()
	winner := uuid.New()
	ctx := context.Background()

	for hand := uint32(1); hand <= 3; hand++ {
		svc.RecordHand(ctx, HandRecord{
			RoomID:   room,
			HandNo:   hand,
			Pot:      int64(hand) * 100,
			Winners:  []uuid.UUID{winner},
			HandType: "Two Pair",
			PlayedAt: time.Now(),
		})
	}
	// Duplicate hand numbers are ignored, not errors.
	svc.RecordHand(ctx, HandRecord{RoomID: room, HandNo: 1, Pot: 999, Winners: []uuid.UUID{winner}, HandType: "Pair", PlayedAt: time.Now()})

	recs, err := svc.ListRecent(ctx, room, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	if recs[0].HandNo != 3 || recs[0].Pot != 300 {
		t.Fatalf("newest first expected, got %+v", recs[0])
	}
	if recs[2].Pot != 100 {
		t.Fatalf("duplicate insert overwrote hand 1: %+v", recs[2])
	}
	if len(recs[0].Winners) != 1 || recs[0].Winners[0] != winner {
		t.Fatalf("winners column wrong: %+v", recs[0].Winners)
	}

	other, err := svc.ListRecent(ctx, uuid.New(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("foreign room leaked records: %+v", other)
	}
}

func TestNewServiceModes(t *testing.T) {
	svc, label, err := NewService("memory", "", "")
	if err != nil || label != "memory-noop" {
		t.Fatalf("memory mode: %v %s", err, label)
	}
	svc.RecordHand(context.Background(), HandRecord{})
	recs, err := svc.ListRecent(context.Background(), uuid.New(), 5)
	if err != nil || len(recs) != 0 {
		t.Fatalf("noop store should be empty: %v %v", recs, err)
	}

	if _, _, err := NewService("bogus", "", ""); err == nil {
		t.Fatal("unknown mode should fail")
	}
}
