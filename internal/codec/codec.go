// Package codec frames the websocket wire protocol: JSON client
// messages into typed engine actions, engine snapshots and results into
// per-viewer server messages.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amitjaew/mini-poker/card"
	"github.com/amitjaew/mini-poker/poker"

	"github.com/google/uuid"
)

// ClientMessage is the single inbound frame shape.
//
//	{"type":"action","action":"raise","amount":50}
//	{"type":"action","action":"fold"}
type ClientMessage struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Amount int64  `json:"amount,omitempty"`
}

// ParseClientMessage decodes one inbound frame into an engine action.
// Anything malformed is an error for the caller to echo back; it must
// never reach the room.
func ParseClientMessage(data []byte) (poker.Action, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return poker.Action{}, fmt.Errorf("malformed frame: %w", err)
	}
	if msg.Type != "action" {
		return poker.Action{}, fmt.Errorf("unknown message type %q", msg.Type)
	}
	switch strings.ToLower(msg.Action) {
	case "fold":
		return poker.Action{Type: poker.ActionFold}, nil
	case "check":
		return poker.Action{Type: poker.ActionCheck}, nil
	case "call":
		return poker.Action{Type: poker.ActionCall}, nil
	case "raise":
		if msg.Amount <= 0 {
			return poker.Action{}, fmt.Errorf("raise requires a positive amount")
		}
		return poker.Action{Type: poker.ActionRaise, Amount: msg.Amount}, nil
	}
	return poker.Action{}, fmt.Errorf("unknown action %q", msg.Action)
}

// ServerMessage is the outbound frame envelope. Exactly one payload
// field is set, matching Type.
type ServerMessage struct {
	Type     string           `json:"type"`
	State    *StatePayload    `json:"state,omitempty"`
	Showdown *ShowdownPayload `json:"showdown,omitempty"`
	Error    string           `json:"error,omitempty"`
}

const (
	TypeState     = "state"
	TypeShowdown  = "showdown"
	TypeError     = "error"
	TypeTerminate = "terminate"
)

type CardPayload struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func toCard(c card.Card) CardPayload {
	return CardPayload{
		Rank: strings.ToLower(c.Rank.String()),
		Suit: strings.ToLower(c.Suit.String()),
	}
}

func toCards(cs []card.Card) []CardPayload {
	out := make([]CardPayload, len(cs))
	for i, c := range cs {
		out[i] = toCard(c)
	}
	return out
}

type PlayerPayload struct {
	ID     uuid.UUID     `json:"id"`
	Active bool          `json:"active"`
	Bet    int64         `json:"bet"`
	Hole   []CardPayload `json:"hole,omitempty"`
}

type StatePayload struct {
	Room       uuid.UUID       `json:"room"`
	Hand       uint32          `json:"hand"`
	Step       string          `json:"step"`
	Community  []CardPayload   `json:"community"`
	BetFloor   int64           `json:"bet_floor"`
	Pot        int64           `json:"pot"`
	SmallBlind *uuid.UUID      `json:"small_blind,omitempty"`
	BigBlind   *uuid.UUID      `json:"big_blind,omitempty"`
	Acting     *uuid.UUID      `json:"acting,omitempty"`
	TurnTicks  int             `json:"turn_ticks,omitempty"`
	Players    []PlayerPayload `json:"players"`
}

// StateMessage renders one snapshot for one viewer. Only the viewer's
// own hole cards are included; everyone else's stay hidden until the
// showdown message reveals them.
func StateMessage(roomID uuid.UUID, s poker.Snapshot, viewer uuid.UUID) ServerMessage {
	p := &StatePayload{
		Room:      roomID,
		Hand:      s.Hand,
		Step:      s.Step.String(),
		Community: toCards(s.Community),
		BetFloor:  s.BetFloor,
		Pot:       s.Pot,
		Players:   make([]PlayerPayload, 0, len(s.Players)),
	}
	if s.SmallBlind.Valid {
		id := s.SmallBlind.UUID
		p.SmallBlind = &id
	}
	if s.BigBlind.Valid {
		id := s.BigBlind.UUID
		p.BigBlind = &id
	}
	if s.ActingID.Valid {
		id := s.ActingID.UUID
		p.Acting = &id
		p.TurnTicks = s.TurnTicks
	}
	for _, ps := range s.Players {
		pp := PlayerPayload{ID: ps.ID, Active: ps.Active, Bet: ps.Bet}
		if ps.ID == viewer {
			pp.Hole = toCards(ps.Hole)
		}
		p.Players = append(p.Players, pp)
	}
	return ServerMessage{Type: TypeState, State: p}
}

type ShowdownResult struct {
	PlayerID uuid.UUID     `json:"player_id"`
	Hole     []CardPayload `json:"hole"`
	Hand     string        `json:"hand"`
	Ranks    []string      `json:"ranks"`
	Winner   bool          `json:"winner"`
	Won      int64         `json:"won"`
}

type ShowdownPayload struct {
	Room      uuid.UUID        `json:"room"`
	Hand      uint32           `json:"hand"`
	Pot       int64            `json:"pot"`
	Community []CardPayload    `json:"community"`
	Results   []ShowdownResult `json:"results"`
}

// ShowdownMessage renders a resolved hand. Hole cards of every seat
// that reached showdown are public here.
func ShowdownMessage(roomID uuid.UUID, r *poker.HandResult) ServerMessage {
	p := &ShowdownPayload{
		Room:      roomID,
		Hand:      r.HandNo,
		Pot:       r.Pot,
		Community: toCards(r.Community),
		Results:   make([]ShowdownResult, 0, len(r.Results)),
	}
	for _, pr := range r.Results {
		ranks := make([]string, len(pr.Value.Ranks))
		for i, rk := range pr.Value.Ranks {
			ranks[i] = strings.ToLower(rk.String())
		}
		p.Results = append(p.Results, ShowdownResult{
			PlayerID: pr.PlayerID,
			Hole:     toCards(pr.Hole),
			Hand:     pr.Value.Type.String(),
			Ranks:    ranks,
			Winner:   pr.Winner,
			Won:      pr.Won,
		})
	}
	return ServerMessage{Type: TypeShowdown, Showdown: p}
}

// ErrorMessage wraps a client-facing failure.
func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Error: err.Error()}
}

// TerminateMessage tells the session to close its socket after flushing.
func TerminateMessage() ServerMessage {
	return ServerMessage{Type: TypeTerminate}
}

// Encode marshals an outbound frame.
func Encode(msg ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}
