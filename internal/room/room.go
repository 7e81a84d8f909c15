// Package room hosts one table per goroutine: a mailbox of player
// events plus a periodic driver that advances the poker step machine.
package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amitjaew/mini-poker/internal/codec"
	"github.com/amitjaew/mini-poker/internal/ledger"
	"github.com/amitjaew/mini-poker/poker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
)

type EventType int

const (
	EventJoin EventType = iota
	EventAction
	EventLeave
	EventClose
)

// Event is one message into the room actor. Outbound is the joining
// session's server-message channel; Response, when set, carries the
// handler's verdict back to the submitter.
type Event struct {
	Type     EventType
	PlayerID uuid.UUID
	Action   poker.Action
	Outbound chan<- codec.ServerMessage
	Response chan error
}

var ErrRoomClosed = errors.New("room closed")

type Config struct {
	TickInterval time.Duration
	MailboxSize  int
	Game         poker.Config
}

// Room is the actor owning one game. All state behind mu is touched
// only by handlers and the tick, each holding the lock for the whole
// logical operation.
type Room struct {
	ID uuid.UUID

	mu       sync.RWMutex
	closed   bool
	stopOnce sync.Once

	game    *poker.Game
	viewers map[uuid.UUID]chan<- codec.ServerMessage

	rec ledger.Service

	events chan Event
	done   chan struct{}

	tickInterval time.Duration

	// onRetire runs once, after the actor goroutine exits.
	onRetire func(id uuid.UUID)
}

func New(cfg Config, rec ledger.Service, onRetire func(id uuid.UUID)) (*Room, error) {
	game, err := poker.NewGame(cfg.Game)
	if err != nil {
		return nil, err
	}
	if cfg.MailboxSize <= 0 {
		cfg.MailboxSize = 100
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	r := &Room{
		ID:           uuid.New(),
		game:         game,
		viewers:      make(map[uuid.UUID]chan<- codec.ServerMessage),
		rec:          rec,
		events:       make(chan Event, cfg.MailboxSize),
		done:         make(chan struct{}),
		tickInterval: cfg.TickInterval,
		onRetire:     onRetire,
	}
	go r.run()
	return r, nil
}

func (r *Room) run() {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case event := <-r.events:
			err := r.handleEvent(event)
			if event.Response != nil {
				event.Response <- err
			}
		case <-ticker.C:
			r.tick()
		case <-r.done:
			log.Info().Str("room", r.ID.String()).Msg("room actor stopped")
			if r.onRetire != nil {
				r.onRetire(r.ID)
			}
			return
		}
	}
}

// Submit sends an event into the mailbox and waits for the handler's
// verdict.
func (r *Room) Submit(e Event) error {
	if e.Response == nil {
		e.Response = make(chan error, 1)
	}

	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return ErrRoomClosed
	}

	select {
	case r.events <- e:
	case <-r.done:
		return ErrRoomClosed
	}

	select {
	case err := <-e.Response:
		return err
	case <-r.done:
		return ErrRoomClosed
	}
}

func (r *Room) handleEvent(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed && e.Type != EventClose {
		return ErrRoomClosed
	}

	switch e.Type {
	case EventJoin:
		return r.handleJoin(e.PlayerID, e.Outbound)
	case EventLeave:
		return r.handleLeave(e.PlayerID)
	case EventAction:
		return r.handleAction(e.PlayerID, e.Action)
	case EventClose:
		r.stopLocked()
		return nil
	default:
		return fmt.Errorf("unknown event type: %d", e.Type)
	}
}

func (r *Room) handleJoin(id uuid.UUID, outbound chan<- codec.ServerMessage) error {
	if outbound == nil {
		return errors.New("join without outbound channel")
	}
	if err := r.game.AddPlayer(id); err != nil {
		// A reconnecting player keeps their seat; only swap the channel.
		if !errors.Is(err, poker.ErrPlayerExists) {
			return err
		}
	}
	r.viewers[id] = outbound
	log.Info().Str("room", r.ID.String()).Str("player", id.String()).Msg("player joined")
	return nil
}

func (r *Room) handleLeave(id uuid.UUID) error {
	if ch, ok := r.viewers[id]; ok {
		trySend(r.ID, id, ch, codec.TerminateMessage())
		delete(r.viewers, id)
	}
	if !r.game.RemovePlayer(id) {
		return poker.ErrUnknownPlayer
	}
	log.Info().Str("room", r.ID.String()).Str("player", id.String()).Msg("player left")
	if r.game.PlayerCount() == 0 {
		r.stopLocked()
	}
	return nil
}

func (r *Room) handleAction(id uuid.UUID, a poker.Action) error {
	err := r.game.SubmitAction(id, a)
	if errors.Is(err, poker.ErrOutOfTurn) {
		// Late or eager frames are expected; drop them quietly.
		log.Debug().Str("room", r.ID.String()).Str("player", id.String()).Msg("out-of-turn action dropped")
		return nil
	}
	return err
}

// tick advances the game one step and fans the new state out to every
// viewer, each seeing only their own hole cards.
func (r *Room) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	result := r.game.Tick()
	snap := r.game.Snapshot()

	type viewer struct {
		id uuid.UUID
		ch chan<- codec.ServerMessage
	}
	targets := make([]viewer, 0, len(r.viewers))
	for id, ch := range r.viewers {
		targets = append(targets, viewer{id: id, ch: ch})
	}
	iter.ForEach(targets, func(v *viewer) {
		trySend(r.ID, v.id, v.ch, codec.StateMessage(r.ID, snap, v.id))
	})

	if result != nil {
		r.recordHand(result)
		broadcast := codec.ShowdownMessage(r.ID, result)
		iter.ForEach(targets, func(v *viewer) {
			trySend(r.ID, v.id, v.ch, broadcast)
		})
	}
}

func (r *Room) recordHand(result *poker.HandResult) {
	rec := ledger.HandRecord{
		RoomID:   r.ID,
		HandNo:   result.HandNo,
		Pot:      result.Pot,
		PlayedAt: time.Now(),
	}
	for _, pr := range result.Results {
		if pr.Winner {
			rec.Winners = append(rec.Winners, pr.PlayerID)
			rec.HandType = pr.Value.Type.String()
		}
	}
	// Store writes can stall on a degraded database; they never run on
	// the actor loop.
	go r.rec.RecordHand(context.Background(), rec)
}

// Snapshot exposes the game state for the directory's room listing.
func (r *Room) Snapshot() poker.Snapshot {
	return r.game.Snapshot()
}

func (r *Room) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Stop shuts down the room actor.
func (r *Room) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Room) stopLocked() {
	r.closed = true
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

// trySend never blocks the actor: a saturated or abandoned viewer
// channel drops the message.
func trySend(roomID, playerID uuid.UUID, ch chan<- codec.ServerMessage, msg codec.ServerMessage) {
	select {
	case ch <- msg:
	default:
		log.Warn().
			Str("room", roomID.String()).
			Str("player", playerID.String()).
			Str("type", msg.Type).
			Msg("outbound channel full, message dropped")
	}
}
