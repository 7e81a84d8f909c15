package card

import "fmt"

// Rank is the ordinal face value of a card, Two (0) through Ace (12).
// Ordering is purely numeric and total.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// RankCount is the number of distinct ranks in a deck.
const RankCount = 13

func (r Rank) String() string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

func (r Rank) short() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r)+2)
	}
}

// Suit identifies one of the four suits. Suits carry no ordering
// semantics beyond equality.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// SuitCount is the number of suits in a deck.
const SuitCount = 4

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

func (s Suit) symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	return "?"
}

// Owner tags where a card was dealt: a player's hole or the shared
// community board. It is metadata only; evaluation ignores it.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerCommunity
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "Player"
	case OwnerCommunity:
		return "Community"
	}
	return fmt.Sprintf("Owner(%d)", int(o))
}

// Card is an immutable playing card. Cards compare only by rank.
type Card struct {
	Rank  Rank
	Suit  Suit
	Owner Owner
}

func (c Card) String() string {
	return c.Rank.short() + c.Suit.symbol()
}

// Less orders cards by rank alone; suit never participates.
func (c Card) Less(o Card) bool {
	return c.Rank < o.Rank
}

// EqualRank reports rank equality regardless of suit or owner.
func (c Card) EqualRank(o Card) bool {
	return c.Rank == o.Rank
}
