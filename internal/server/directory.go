// Package server holds the room directory actor and the HTTP surface
// in front of it.
package server

import (
	"errors"
	"sync"

	"github.com/amitjaew/mini-poker/internal/codec"
	"github.com/amitjaew/mini-poker/internal/ledger"
	"github.com/amitjaew/mini-poker/internal/room"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrDirectoryClosed  = errors.New("directory closed")
	errMethodNotAllowed = errors.New("method not allowed")
	errBadRoomID        = errors.New("missing or malformed room id")
	errBadPlayerID      = errors.New("malformed player id")
)

// RoomInfo is one row of the room listing.
type RoomInfo struct {
	ID      uuid.UUID `json:"id"`
	Players int       `json:"players"`
	Step    string    `json:"step"`
}

type cmdType int

const (
	cmdCreate cmdType = iota
	cmdList
	cmdJoin
	cmdGet
	cmdRetire
	cmdShutdown
)

type command struct {
	typ      cmdType
	roomID   uuid.UUID
	playerID uuid.UUID
	outbound chan<- codec.ServerMessage

	created chan uuid.UUID
	listed  chan []RoomInfo
	fetched chan *room.Room
	reply   chan error
}

// Directory owns the live room set. All map access happens on the
// actor goroutine; callers talk to it through the mailbox.
type Directory struct {
	roomCfg room.Config
	rec     ledger.Service

	rooms map[uuid.UUID]*room.Room

	cmds     chan command
	done     chan struct{}
	stopOnce sync.Once
}

func NewDirectory(roomCfg room.Config, rec ledger.Service) *Directory {
	d := &Directory{
		roomCfg: roomCfg,
		rec:     rec,
		rooms:   make(map[uuid.UUID]*room.Room),
		cmds:    make(chan command, 32),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Directory) run() {
	for {
		select {
		case cmd := <-d.cmds:
			d.handle(cmd)
		case <-d.done:
			for _, r := range d.rooms {
				r.Stop()
			}
			log.Info().Msg("directory stopped")
			return
		}
	}
}

func (d *Directory) handle(cmd command) {
	switch cmd.typ {
	case cmdCreate:
		r, err := room.New(d.roomCfg, d.rec, d.retire)
		if err != nil {
			cmd.reply <- err
			return
		}
		d.rooms[r.ID] = r
		log.Info().Str("room", r.ID.String()).Msg("room created")
		cmd.created <- r.ID
		cmd.reply <- nil

	case cmdList:
		out := make([]RoomInfo, 0, len(d.rooms))
		for id, r := range d.rooms {
			snap := r.Snapshot()
			out = append(out, RoomInfo{ID: id, Players: len(snap.Players), Step: snap.Step.String()})
		}
		cmd.listed <- out

	case cmdJoin:
		r, ok := d.rooms[cmd.roomID]
		if !ok || r.Closed() {
			cmd.reply <- ErrRoomNotFound
			return
		}
		if err := r.Submit(room.Event{
			Type:     room.EventJoin,
			PlayerID: cmd.playerID,
			Outbound: cmd.outbound,
		}); err != nil {
			cmd.reply <- err
			return
		}
		cmd.fetched <- r
		cmd.reply <- nil

	case cmdGet:
		r, ok := d.rooms[cmd.roomID]
		if !ok || r.Closed() {
			r = nil
		}
		cmd.fetched <- r

	case cmdRetire:
		delete(d.rooms, cmd.roomID)
		log.Info().Str("room", cmd.roomID.String()).Msg("room retired")

	case cmdShutdown:
		d.stopOnce.Do(func() { close(d.done) })
	}
}

// retire is handed to each room; it runs on the room's goroutine after
// the actor exits, so it goes back through the mailbox.
func (d *Directory) retire(id uuid.UUID) {
	select {
	case d.cmds <- command{typ: cmdRetire, roomID: id}:
	case <-d.done:
	}
}

// CreateRoom spins up a new room actor and returns its id.
func (d *Directory) CreateRoom() (uuid.UUID, error) {
	cmd := command{
		typ:     cmdCreate,
		created: make(chan uuid.UUID, 1),
		reply:   make(chan error, 1),
	}
	if err := d.submit(cmd); err != nil {
		return uuid.Nil, err
	}
	select {
	case err := <-cmd.reply:
		if err != nil {
			return uuid.Nil, err
		}
		return <-cmd.created, nil
	case <-d.done:
		return uuid.Nil, ErrDirectoryClosed
	}
}

// ListRooms snapshots the live room set.
func (d *Directory) ListRooms() ([]RoomInfo, error) {
	cmd := command{typ: cmdList, listed: make(chan []RoomInfo, 1)}
	if err := d.submit(cmd); err != nil {
		return nil, err
	}
	select {
	case out := <-cmd.listed:
		return out, nil
	case <-d.done:
		return nil, ErrDirectoryClosed
	}
}

// Join seats a player in an existing room and hands back the room so
// the session can submit into its mailbox. An unknown or retired room
// id is ErrRoomNotFound; it is never silently ignored.
func (d *Directory) Join(roomID, playerID uuid.UUID, outbound chan<- codec.ServerMessage) (*room.Room, error) {
	cmd := command{
		typ:      cmdJoin,
		roomID:   roomID,
		playerID: playerID,
		outbound: outbound,
		fetched:  make(chan *room.Room, 1),
		reply:    make(chan error, 1),
	}
	if err := d.submit(cmd); err != nil {
		return nil, err
	}
	select {
	case err := <-cmd.reply:
		if err != nil {
			return nil, err
		}
		return <-cmd.fetched, nil
	case <-d.done:
		return nil, ErrDirectoryClosed
	}
}

// Leave forwards an explicit departure to the player's room. The room
// is resolved on the actor; the leave itself is serialized by the
// room's own mailbox.
func (d *Directory) Leave(roomID, playerID uuid.UUID) error {
	r, err := d.lookup(roomID)
	if err != nil {
		return err
	}
	return r.Submit(room.Event{Type: room.EventLeave, PlayerID: playerID})
}

func (d *Directory) lookup(roomID uuid.UUID) (*room.Room, error) {
	cmd := command{typ: cmdGet, roomID: roomID, fetched: make(chan *room.Room, 1)}
	if err := d.submit(cmd); err != nil {
		return nil, err
	}
	select {
	case r := <-cmd.fetched:
		if r == nil {
			return nil, ErrRoomNotFound
		}
		return r, nil
	case <-d.done:
		return nil, ErrDirectoryClosed
	}
}

func (d *Directory) submit(cmd command) error {
	select {
	case d.cmds <- cmd:
		return nil
	case <-d.done:
		return ErrDirectoryClosed
	}
}

// Shutdown stops the directory and every room it owns.
func (d *Directory) Shutdown() {
	select {
	case d.cmds <- command{typ: cmdShutdown}:
	case <-d.done:
	}
}
