package poker

import (
	"github.com/amitjaew/mini-poker/card"

	"github.com/google/uuid"
)

// PlayerSnapshot is a deep copy of one seat. Hole always carries the
// real cards; viewer-side redaction is the codec's job, not the
// engine's.
type PlayerSnapshot struct {
	ID     uuid.UUID
	Active bool
	Bet    int64
	Hole   []card.Card
}

// Snapshot is a point-in-time copy of the room, safe to read after the
// lock is released.
type Snapshot struct {
	Hand       uint32
	Step       Step
	Community  []card.Card
	BetFloor   int64
	Pot        int64
	BlindIndex int
	SmallBlind uuid.NullUUID
	BigBlind   uuid.NullUUID
	ActingID   uuid.NullUUID
	TurnTicks  int
	Players    []PlayerSnapshot
}

// Snapshot copies the full room state under the lock.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Hand:       g.handNo,
		Step:       g.step,
		Community:  append([]card.Card{}, g.community...),
		BetFloor:   g.betFloor,
		BlindIndex: g.blindIndex,
		TurnTicks:  g.turnTicks,
		Players:    make([]PlayerSnapshot, 0, len(g.players)),
	}
	if n := len(g.players); n >= 2 && g.handNo > 0 {
		// The pointer marks the big blind; the small blind precedes it.
		s.BigBlind = uuid.NullUUID{UUID: g.players[g.blindIndex%n].ID, Valid: true}
		s.SmallBlind = uuid.NullUUID{UUID: g.players[(g.blindIndex-1+n)%n].ID, Valid: true}
	}
	if g.step.Betting() && g.turnSeat >= 0 {
		s.ActingID = uuid.NullUUID{UUID: g.players[g.turnSeat].ID, Valid: true}
	}
	for _, p := range g.players {
		s.Pot += p.Bet
		s.Players = append(s.Players, PlayerSnapshot{
			ID:     p.ID,
			Active: p.Active,
			Bet:    p.Bet,
			Hole:   append([]card.Card{}, p.hole...),
		})
	}
	return s
}

// PlayerShowdown is one seat's line in a hand result.
type PlayerShowdown struct {
	PlayerID uuid.UUID
	Hole     []card.Card
	Value    HandValue
	Winner   bool
	Won      int64
}

// HandResult reports a resolved hand: the pot, the board and every
// surviving seat's evaluated hand.
type HandResult struct {
	HandNo    uint32
	Pot       int64
	Community []card.Card
	Results   []PlayerShowdown
}
