package poker

import (
	"math/rand"
	"sync"
	"time"

	"github.com/amitjaew/mini-poker/card"

	"github.com/google/uuid"
)

// Game owns one room's state and sequences it through the poker step
// cycle. Every exported method takes the state lock for the whole
// logical operation; the lock is never held across anything that could
// block on another goroutine.
type Game struct {
	cfg Config
	rng *rand.Rand

	mu sync.Mutex

	// seats, in join order
	players []*Player
	byID    map[uuid.UUID]*Player

	// hand state
	handNo     uint32
	step       Step
	deck       []card.Card
	community  []card.Card
	dealOffset int
	blindIndex int
	betFloor   int64

	// betting-round cursor
	turnSeat  int
	turnTicks int
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		byID:      make(map[uuid.UUID]*Player, cfg.MaxPlayers),
		step:      StepBlind,
		community: make([]card.Card, 0, 5),
		turnSeat:  -1,
	}, nil
}

// AddPlayer registers a seat. The player sits out until the next Blind
// step activates everyone seated.
func (g *Game) AddPlayer(id uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.byID[id]; ok {
		return ErrPlayerExists
	}
	if len(g.players) >= g.cfg.MaxPlayers {
		return ErrRoomFull
	}
	p := newPlayer(id)
	g.players = append(g.players, p)
	g.byID[id] = p
	return nil
}

// RemovePlayer drops a seat. Only explicit disconnect/terminate events
// reach here; the periodic driver never removes anyone.
func (g *Game) RemovePlayer(id uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.byID[id]
	if !ok {
		return false
	}
	delete(g.byID, id)

	seat := -1
	for i, q := range g.players {
		if q == p {
			seat = i
			break
		}
	}
	g.players = append(g.players[:seat], g.players[seat+1:]...)

	if len(g.players) == 0 {
		g.blindIndex = 0
		g.turnSeat = -1
		return true
	}
	if g.blindIndex > seat {
		g.blindIndex--
	}
	g.blindIndex %= len(g.players)

	if g.step.Betting() {
		switch {
		case g.turnSeat == seat:
			// The acting seat left; hand their turn to the next one.
			g.turnSeat--
			g.advanceTurn()
		case g.turnSeat > seat:
			g.turnSeat--
		}
	}
	return true
}

// PlayerCount reports the number of seated players.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// SubmitAction routes an action into the player's pending slot. It is
// accepted only while the betting round is waiting on that player;
// everything else is reported as out of turn so the caller can drop it.
func (g *Game) SubmitAction(id uuid.UUID, a Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.byID[id]
	if !ok {
		return ErrUnknownPlayer
	}
	if !g.step.Betting() || g.turnSeat < 0 || g.players[g.turnSeat] != p {
		return ErrOutOfTurn
	}
	p.pending = a
	return nil
}

// Tick advances the machine by one discrete time unit: instantaneous
// steps (Blind, deals, Showdown) complete in one tick, betting rounds
// consume one tick per waiting slice of the acting player's budget.
// A non-nil HandResult means the hand just resolved at Showdown.
func (g *Game) Tick() *HandResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.step == StepBlind:
		g.stepBlind()
	case g.step == StepPreFlop:
		g.stepPreFlop()
	case g.step.Betting():
		g.tickBetting()
	case g.step == StepFlop:
		g.dealCommunity(3)
		g.enterStep(g.step.next())
	case g.step == StepTurn, g.step == StepRiver:
		g.dealCommunity(1)
		g.enterStep(g.step.next())
	case g.step == StepShowdown:
		return g.stepShowdown()
	}
	return nil
}

// stepBlind starts a hand: fresh shuffled deck, cleared board, every
// seated player active, blind pointer advanced one seat. The machine
// idles here while fewer than two players are seated.
func (g *Game) stepBlind() {
	if len(g.players) < 2 {
		return
	}
	g.handNo++
	g.deck = card.NewDeck()
	card.Shuffle(g.deck, g.rng)
	g.community = g.community[:0]
	g.dealOffset = 0
	g.betFloor = 0
	for _, p := range g.players {
		p.resetForHand()
	}
	g.blindIndex = (g.blindIndex + 1) % len(g.players)
	g.enterStep(StepPreFlop)
}

// stepPreFlop deals two sequential deck cards to each active player in
// seat order.
func (g *Game) stepPreFlop() {
	g.dealOffset = 0
	for _, p := range g.players {
		if !p.Active {
			continue
		}
		for i := 0; i < 2; i++ {
			c := g.deck[g.dealOffset]
			c.Owner = card.OwnerPlayer
			p.hole = append(p.hole, c)
			g.dealOffset++
		}
	}
	g.enterStep(g.step.next())
}

func (g *Game) dealCommunity(n int) {
	for i := 0; i < n; i++ {
		c := g.deck[g.dealOffset]
		c.Owner = card.OwnerCommunity
		g.community = append(g.community, c)
		g.dealOffset++
	}
}

// enterStep moves to the next step; betting rounds arm the seat cursor
// and clear every pending action on entry.
func (g *Game) enterStep(s Step) {
	g.step = s
	for _, p := range g.players {
		p.clearPending()
	}
	if !s.Betting() {
		g.turnSeat = -1
		return
	}
	if g.activeCount() <= 1 {
		// Uncontested; nothing to bet over.
		g.turnSeat = -1
		g.enterStep(s.next())
		return
	}
	g.turnSeat = g.firstActive()
	g.turnTicks = g.cfg.TurnDuration
}

// tickBetting consumes one tick of the acting player's turn. Effects:
// Fold deactivates; Call matches the floor; Check passes only at the
// floor and lifts the floor when the bet exceeds it; Raise lifts floor
// and bet by the amount. An exhausted budget is an implicit fold.
func (g *Game) tickBetting() {
	p := g.players[g.turnSeat]
	a := p.takePending()

	switch a.Type {
	case ActionFold:
		p.Active = false
		g.advanceTurn()
	case ActionCall:
		p.Bet = g.betFloor
		g.advanceTurn()
	case ActionCheck:
		if p.Bet == g.betFloor {
			g.advanceTurn()
		} else if p.Bet > g.betFloor {
			g.betFloor = p.Bet
			g.advanceTurn()
		} else {
			// Below the floor a check is not terminal; the clock runs on.
			g.spendTick(p)
		}
	case ActionRaise:
		g.betFloor += a.Amount
		p.Bet += a.Amount
		g.advanceTurn()
	default:
		g.spendTick(p)
	}
}

func (g *Game) spendTick(p *Player) {
	g.turnTicks--
	if g.turnTicks <= 0 {
		// Timeout folds the seat out of the hand.
		p.Active = false
		g.advanceTurn()
	}
}

// advanceTurn hands the cursor to the next active seat. At the end of a
// full seat-order pass the round closes when at most one player is
// still active or every active bet sits at the floor; otherwise a new
// pass begins.
func (g *Game) advanceTurn() {
	for i := g.turnSeat + 1; i < len(g.players); i++ {
		if g.players[i].Active {
			g.turnSeat = i
			g.turnTicks = g.cfg.TurnDuration
			return
		}
	}

	if g.activeCount() <= 1 || g.allAtFloor() {
		g.enterStep(g.step.next())
		return
	}
	g.turnSeat = g.firstActive()
	g.turnTicks = g.cfg.TurnDuration
}

func (g *Game) firstActive() int {
	for i, p := range g.players {
		if p.Active {
			return i
		}
	}
	return -1
}

func (g *Game) activeCount() int {
	n := 0
	for _, p := range g.players {
		if p.Active {
			n++
		}
	}
	return n
}

func (g *Game) allAtFloor() bool {
	for _, p := range g.players {
		if p.Active && p.Bet != g.betFloor {
			return false
		}
	}
	return true
}

// stepShowdown evaluates every remaining player's seven cards, splits
// the pot among the best hands and restarts the cycle at Blind.
func (g *Game) stepShowdown() *HandResult {
	res := &HandResult{
		HandNo:    g.handNo,
		Community: append([]card.Card{}, g.community...),
	}
	for _, p := range g.players {
		res.Pot += p.Bet
	}

	var best HandValue
	for _, p := range g.players {
		if !p.Active || len(p.hole) != 2 {
			continue
		}
		pool := make([]card.Card, 0, 7)
		pool = append(pool, p.hole...)
		pool = append(pool, g.community...)
		value, err := Evaluate(pool, TexasHoldem)
		if err != nil {
			// Deal bookkeeping broke a room invariant; skip the seat.
			continue
		}
		pr := PlayerShowdown{
			PlayerID: p.ID,
			Hole:     append([]card.Card{}, p.hole...),
			Value:    value,
		}
		if len(res.Results) == 0 || value.Compare(best) > 0 {
			best = value
		}
		res.Results = append(res.Results, pr)
	}

	winners := 0
	for i := range res.Results {
		if res.Results[i].Value.Compare(best) == 0 {
			res.Results[i].Winner = true
			winners++
		}
	}
	if winners > 0 {
		share := res.Pot / int64(winners)
		rem := res.Pot - share*int64(winners)
		for i := range res.Results {
			if !res.Results[i].Winner {
				continue
			}
			res.Results[i].Won = share
			if rem > 0 {
				// Remainder goes to the earliest winning seat.
				res.Results[i].Won += rem
				rem = 0
			}
		}
	}

	g.enterStep(StepBlind)
	return res
}
