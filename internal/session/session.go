// Package session bridges one websocket to one seat in a room: a read
// pump feeding the room's mailbox and a write pump draining the room's
// outbound channel.
package session

import (
	"errors"
	"time"

	"github.com/amitjaew/mini-poker/internal/codec"
	"github.com/amitjaew/mini-poker/internal/room"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	readLimit     = 65536
	pongWait      = 60 * time.Second
	pingInterval  = 30 * time.Second
	writeDeadline = 10 * time.Second
)

type Session struct {
	PlayerID uuid.UUID

	conn     *websocket.Conn
	room     *room.Room
	outbound chan codec.ServerMessage
}

// New wires an upgraded connection to a room seat. The outbound
// channel must be the one the seat was joined with.
func New(playerID uuid.UUID, conn *websocket.Conn, r *room.Room, outbound chan codec.ServerMessage) *Session {
	return &Session{
		PlayerID: playerID,
		conn:     conn,
		room:     r,
		outbound: outbound,
	}
}

// Run pumps until the socket or the room goes away. It blocks, so the
// HTTP handler can simply call it and return.
func (s *Session) Run() {
	go s.writePump()
	s.readPump()
}

func (s *Session) readPump() {
	defer func() {
		// Socket gone, player gone. Explicit departure is the only
		// thing allowed to remove a seat.
		if err := s.room.Submit(room.Event{Type: room.EventLeave, PlayerID: s.PlayerID}); err != nil && !errors.Is(err, room.ErrRoomClosed) {
			log.Warn().Err(err).Str("player", s.PlayerID.String()).Msg("leave on disconnect")
		}
		s.conn.Close()
	}()

	s.conn.SetReadLimit(readLimit)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("player", s.PlayerID.String()).Msg("read error")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		action, err := codec.ParseClientMessage(data)
		if err != nil {
			// Bad frames bounce back to the client, never to the room.
			s.trySend(codec.ErrorMessage(err))
			continue
		}
		if err := s.room.Submit(room.Event{
			Type:     room.EventAction,
			PlayerID: s.PlayerID,
			Action:   action,
		}); err != nil {
			if errors.Is(err, room.ErrRoomClosed) {
				return
			}
			s.trySend(codec.ErrorMessage(err))
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.outbound:
			s.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := codec.Encode(msg)
			if err != nil {
				log.Error().Err(err).Str("player", s.PlayerID.String()).Msg("encode outbound")
				continue
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
			if msg.Type == codec.TypeTerminate {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend drops rather than blocks when the session's own channel is
// saturated; the write pump is the sole consumer.
func (s *Session) trySend(msg codec.ServerMessage) {
	select {
	case s.outbound <- msg:
	default:
		log.Warn().Str("player", s.PlayerID.String()).Msg("outbound full, error frame dropped")
	}
}
