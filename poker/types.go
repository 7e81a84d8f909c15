package poker

import "fmt"

// HandType 牌型等级，数值越大越强
type HandType int

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var handTypeNames = map[HandType]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (t HandType) String() string {
	if s, ok := handTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("HandType(%d)", int(t))
}

// Variant selects the table game and with it the evaluator pool size.
type Variant int

const (
	TexasHoldem Variant = iota
	Omaha
)

// PoolSize is the exact card count the evaluator expects for a variant.
func (v Variant) PoolSize() int {
	switch v {
	case Omaha:
		return 10
	default:
		return 7
	}
}

func (v Variant) String() string {
	switch v {
	case TexasHoldem:
		return "Texas Holdem Poker"
	case Omaha:
		return "Omaha Poker"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ActionType 玩家动作类型
type ActionType int

const (
	ActionNone ActionType = iota
	ActionFold
	ActionCheck
	ActionCall
	ActionRaise
)

var actionTypeNames = map[ActionType]string{
	ActionNone:  "NONE",
	ActionFold:  "FOLD",
	ActionCheck: "CHECK",
	ActionCall:  "CALL",
	ActionRaise: "RAISE",
}

func (a ActionType) String() string {
	if s, ok := actionTypeNames[a]; ok {
		return s
	}
	return fmt.Sprintf("ActionType(%d)", int(a))
}

// Action is a tagged player action. Amount is meaningful only for
// ActionRaise and ignored for every other type.
type Action struct {
	Type   ActionType
	Amount int64
}

// Step is one stage of the per-hand cycle. The cycle is fixed:
// Blind, PreFlop, betting, Flop, betting, Turn, betting, River,
// betting, Showdown, then back to Blind for the next hand.
type Step int

const (
	StepBlind Step = iota
	StepPreFlop
	StepPreFlopBetting
	StepFlop
	StepFlopBetting
	StepTurn
	StepTurnBetting
	StepRiver
	StepRiverBetting
	StepShowdown
)

var stepNames = map[Step]string{
	StepBlind:          "blind",
	StepPreFlop:        "preflop",
	StepPreFlopBetting: "preflop-betting",
	StepFlop:           "flop",
	StepFlopBetting:    "flop-betting",
	StepTurn:           "turn",
	StepTurnBetting:    "turn-betting",
	StepRiver:          "river",
	StepRiverBetting:   "river-betting",
	StepShowdown:       "showdown",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Betting reports whether the step is one of the four betting rounds.
func (s Step) Betting() bool {
	switch s {
	case StepPreFlopBetting, StepFlopBetting, StepTurnBetting, StepRiverBetting:
		return true
	}
	return false
}

func (s Step) next() Step {
	if s == StepShowdown {
		return StepBlind
	}
	return s + 1
}
