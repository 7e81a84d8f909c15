package poker

import (
	"github.com/amitjaew/mini-poker/card"

	"github.com/google/uuid"
)

// Player is the per-seat state the room owns for one player. It lives
// for the player's whole membership; hole cards and bets are cleared
// per hand, not reallocated.
type Player struct {
	ID     uuid.UUID
	Active bool
	Bet    int64

	hole    []card.Card
	pending Action
}

func newPlayer(id uuid.UUID) *Player {
	return &Player{
		ID:   id,
		hole: make([]card.Card, 0, 2),
	}
}

func (p *Player) Hole() []card.Card { return p.hole }

// resetForHand arms the seat for a fresh hand at the Blind step.
func (p *Player) resetForHand() {
	p.Active = true
	p.Bet = 0
	p.hole = p.hole[:0]
	p.pending = Action{}
}

func (p *Player) clearPending() {
	p.pending = Action{}
}

func (p *Player) takePending() Action {
	a := p.pending
	p.pending = Action{}
	return a
}
