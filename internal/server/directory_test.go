package server

import (
	"errors"
	"testing"
	"time"

	"github.com/amitjaew/mini-poker/internal/codec"
	"github.com/amitjaew/mini-poker/internal/ledger"
	"github.com/amitjaew/mini-poker/internal/room"
	"github.com/amitjaew/mini-poker/poker"

	"github.com/google/uuid"
)

func testDirectory(t *testing.T) *Directory {
	t.Helper()
	rec, _, err := ledger.NewService("memory", "", "")
	if err != nil {
		t.Fatal(err)
	}
	d := NewDirectory(room.Config{
		TickInterval: 10 * time.Millisecond,
		MailboxSize:  32,
		Game:         poker.Config{MaxPlayers: 4, TurnDuration: 3, Seed: 11},
	}, rec)
	t.Cleanup(d.Shutdown)
	return d
}

func TestCreateAndListRooms(t *testing.T) {
	d := testDirectory(t)

	if infos, err := d.ListRooms(); err != nil || len(infos) != 0 {
		t.Fatalf("fresh directory: %v %v", infos, err)
	}

	a, err := d.CreateRoom()
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.CreateRoom()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("room ids collide")
	}

	infos, err := d.ListRooms()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("listed %d rooms, want 2", len(infos))
	}
	for _, info := range infos {
		if info.Players != 0 || info.Step == "" {
			t.Fatalf("bad room info: %+v", info)
		}
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	d := testDirectory(t)

	out := make(chan codec.ServerMessage, 8)
	if _, err := d.Join(uuid.New(), uuid.New(), out); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestJoinAndLeave(t *testing.T) {
	d := testDirectory(t)

	id, err := d.CreateRoom()
	if err != nil {
		t.Fatal(err)
	}
	player := uuid.New()
	out := make(chan codec.ServerMessage, 64)
	rm, err := d.Join(id, player, out)
	if err != nil {
		t.Fatal(err)
	}
	if rm == nil || rm.ID != id {
		t.Fatalf("joined wrong room: %v", rm)
	}

	infos, err := d.ListRooms()
	if err != nil {
		t.Fatal(err)
	}
	if infos[0].Players != 1 {
		t.Fatalf("players = %d, want 1", infos[0].Players)
	}

	if err := d.Leave(id, player); err != nil {
		t.Fatal(err)
	}

	// The emptied room retires and the directory prunes it.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		infos, err = d.ListRooms()
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("retired room still listed: %+v", infos)
}

func TestShutdownStopsRooms(t *testing.T) {
	rec, _, err := ledger.NewService("memory", "", "")
	if err != nil {
		t.Fatal(err)
	}
	d := NewDirectory(room.Config{
		TickInterval: 10 * time.Millisecond,
		Game:         poker.Config{MaxPlayers: 4, TurnDuration: 3},
	}, rec)

	if _, err := d.CreateRoom(); err != nil {
		t.Fatal(err)
	}
	d.Shutdown()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := d.ListRooms(); errors.Is(err, ErrDirectoryClosed) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("directory still serving after shutdown")
}
