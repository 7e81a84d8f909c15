package card

import "math/rand"

// DeckSize is the number of cards in a full deck.
const DeckSize = RankCount * SuitCount

// NewDeck enumerates the full 52-card deck in canonical order: suits
// Clubs through Spades, ranks Two through Ace within each suit. The
// order is deterministic so shuffles are reproducible from a seed.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Suit(0); s < SuitCount; s++ {
		for r := Rank(0); r < RankCount; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle permutes deck in place using the supplied source. Callers own
// the RNG so hands can be replayed deterministically in tests.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
