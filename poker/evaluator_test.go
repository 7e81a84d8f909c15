package poker

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/amitjaew/mini-poker/card"

	ph "github.com/paulhankin/poker"
)

func c(r card.Rank, s card.Suit) card.Card {
	return card.Card{Rank: r, Suit: s}
}

func TestEvaluatePoolSize(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 4, 5, 6, 8, 9} {
		pool := make([]card.Card, n)
		for i := range pool {
			pool[i] = c(card.Rank(i%card.RankCount), card.Suit(i%card.SuitCount))
		}
		_, err := Evaluate(pool, TexasHoldem)
		var sizeErr *PoolSizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("pool of %d: expected PoolSizeError, got %v", n, err)
		}
		if sizeErr.Want != 7 || sizeErr.Got != n {
			t.Fatalf("pool of %d: bad error fields %+v", n, sizeErr)
		}
	}
	if _, err := Evaluate(make([]card.Card, 7), Omaha); err == nil {
		t.Fatal("omaha with 7 cards should fail")
	}
}

func TestEvaluateRoyalFlush(t *testing.T) {
	pool := []card.Card{
		c(card.Ace, card.Spades), c(card.King, card.Spades), c(card.Queen, card.Spades),
		c(card.Jack, card.Spades), c(card.Ten, card.Spades),
		c(card.Two, card.Clubs), c(card.Three, card.Clubs),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	if v.Type != RoyalFlush {
		t.Fatalf("expected royal flush, got %s", v.Type)
	}
}

func TestEvaluateStraightFlushNotRoyal(t *testing.T) {
	pool := []card.Card{
		c(card.Nine, card.Hearts), c(card.Eight, card.Hearts), c(card.Seven, card.Hearts),
		c(card.Six, card.Hearts), c(card.Five, card.Hearts),
		c(card.Ace, card.Clubs), c(card.Ace, card.Diamonds),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	if v.Type != StraightFlush {
		t.Fatalf("expected straight flush, got %s", v.Type)
	}
	if v.Ranks[0] != card.Nine {
		t.Fatalf("expected nine-high, got %v", v.Ranks)
	}
}

func TestEvaluateFullHouseTwoTriples(t *testing.T) {
	pool := []card.Card{
		c(card.Ace, card.Spades), c(card.Ace, card.Hearts), c(card.Ace, card.Clubs),
		c(card.Ten, card.Spades), c(card.Ten, card.Hearts), c(card.Ten, card.Diamonds),
		c(card.King, card.Clubs),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	if v.Type != FullHouse {
		t.Fatalf("expected full house, got %s", v.Type)
	}
	want := [5]card.Rank{card.Ace, card.Ace, card.Ace, card.Ten, card.Ten}
	if v.Ranks != want {
		t.Fatalf("ranks = %v, want %v", v.Ranks, want)
	}
}

func TestEvaluateFullHouseKeepsHighestPair(t *testing.T) {
	pool := []card.Card{
		c(card.Ace, card.Spades), c(card.Ace, card.Hearts), c(card.Ace, card.Clubs),
		c(card.King, card.Spades), c(card.King, card.Hearts),
		c(card.Queen, card.Clubs), c(card.Queen, card.Diamonds),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]card.Rank{card.Ace, card.Ace, card.Ace, card.King, card.King}
	if v.Type != FullHouse || v.Ranks != want {
		t.Fatalf("got %s %v, want full house %v", v.Type, v.Ranks, want)
	}
}

func TestEvaluateWheelIsLowestStraight(t *testing.T) {
	wheel := []card.Card{
		c(card.Ace, card.Spades), c(card.Two, card.Hearts), c(card.Three, card.Clubs),
		c(card.Four, card.Diamonds), c(card.Five, card.Spades),
		c(card.Nine, card.Hearts), c(card.Jack, card.Clubs),
	}
	v, err := Evaluate(wheel, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	if v.Type != Straight {
		t.Fatalf("expected straight, got %s", v.Type)
	}
	if v.Ranks[0] != card.Five {
		t.Fatalf("wheel should lead with five, got %v", v.Ranks)
	}

	sixHigh := []card.Card{
		c(card.Two, card.Spades), c(card.Three, card.Hearts), c(card.Four, card.Clubs),
		c(card.Five, card.Diamonds), c(card.Six, card.Spades),
		c(card.King, card.Hearts), c(card.King, card.Clubs),
	}
	w, err := Evaluate(sixHigh, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	if w.Type != Straight || v.Compare(w) >= 0 {
		t.Fatalf("wheel %v should lose to six-high straight %v", v.Ranks, w.Ranks)
	}
}

func TestEvaluateFourOfAKindKicker(t *testing.T) {
	pool := []card.Card{
		c(card.Seven, card.Spades), c(card.Seven, card.Hearts),
		c(card.Seven, card.Clubs), c(card.Seven, card.Diamonds),
		c(card.Queen, card.Spades), c(card.Four, card.Hearts), c(card.Two, card.Clubs),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]card.Rank{card.Seven, card.Seven, card.Seven, card.Seven, card.Queen}
	if v.Type != FourOfAKind || v.Ranks != want {
		t.Fatalf("got %s %v, want quads %v", v.Type, v.Ranks, want)
	}
}

func TestEvaluateFlushTopFive(t *testing.T) {
	pool := []card.Card{
		c(card.Ace, card.Clubs), c(card.Jack, card.Clubs), c(card.Nine, card.Clubs),
		c(card.Six, card.Clubs), c(card.Four, card.Clubs), c(card.Two, card.Clubs),
		c(card.King, card.Hearts),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]card.Rank{card.Ace, card.Jack, card.Nine, card.Six, card.Four}
	if v.Type != Flush || v.Ranks != want {
		t.Fatalf("got %s %v, want flush %v", v.Type, v.Ranks, want)
	}
}

func TestEvaluateTwoPairKicker(t *testing.T) {
	pool := []card.Card{
		c(card.King, card.Spades), c(card.King, card.Hearts),
		c(card.Nine, card.Clubs), c(card.Nine, card.Diamonds),
		c(card.Five, card.Spades), c(card.Five, card.Hearts),
		c(card.Ace, card.Clubs),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	// Three pairs: best two plus the best remaining card.
	want := [5]card.Rank{card.King, card.King, card.Nine, card.Nine, card.Ace}
	if v.Type != TwoPair || v.Ranks != want {
		t.Fatalf("got %s %v, want two pair %v", v.Type, v.Ranks, want)
	}
}

func TestEvaluatePairKickers(t *testing.T) {
	pool := []card.Card{
		c(card.Eight, card.Spades), c(card.Eight, card.Hearts),
		c(card.Ace, card.Clubs), c(card.Queen, card.Diamonds),
		c(card.Ten, card.Spades), c(card.Four, card.Hearts), c(card.Two, card.Clubs),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]card.Rank{card.Eight, card.Eight, card.Ace, card.Queen, card.Ten}
	if v.Type != Pair || v.Ranks != want {
		t.Fatalf("got %s %v, want pair %v", v.Type, v.Ranks, want)
	}
}

func TestEvaluateHighCard(t *testing.T) {
	pool := []card.Card{
		c(card.Ace, card.Spades), c(card.Jack, card.Hearts), c(card.Nine, card.Clubs),
		c(card.Seven, card.Diamonds), c(card.Five, card.Spades),
		c(card.Three, card.Hearts), c(card.Two, card.Clubs),
	}
	v, err := Evaluate(pool, TexasHoldem)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]card.Rank{card.Ace, card.Jack, card.Nine, card.Seven, card.Five}
	if v.Type != HighCard || v.Ranks != want {
		t.Fatalf("got %s %v, want high card %v", v.Type, v.Ranks, want)
	}
}

func TestEvaluateOmahaTwoFlushSuits(t *testing.T) {
	// Two 5-card suits in one pool: the royal in spades must not be
	// masked by the junk flush in clubs.
	pool := []card.Card{
		c(card.Ace, card.Spades), c(card.King, card.Spades), c(card.Queen, card.Spades),
		c(card.Jack, card.Spades), c(card.Ten, card.Spades),
		c(card.Seven, card.Clubs), c(card.Six, card.Clubs), c(card.Four, card.Clubs),
		c(card.Three, card.Clubs), c(card.Two, card.Clubs),
	}
	v, err := Evaluate(pool, Omaha)
	if err != nil {
		t.Fatal(err)
	}
	if v.Type != RoyalFlush {
		t.Fatalf("expected royal flush, got %s %v", v.Type, v.Ranks)
	}
}

func TestEvaluateOmahaTwoQuads(t *testing.T) {
	pool := []card.Card{
		c(card.Ace, card.Spades), c(card.Ace, card.Hearts), c(card.Ace, card.Diamonds), c(card.Ace, card.Clubs),
		c(card.King, card.Spades), c(card.King, card.Hearts), c(card.King, card.Diamonds), c(card.King, card.Clubs),
		c(card.Queen, card.Spades), c(card.Jack, card.Spades),
	}
	v, err := Evaluate(pool, Omaha)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]card.Rank{card.Ace, card.Ace, card.Ace, card.Ace, card.King}
	if v.Type != FourOfAKind || v.Ranks != want {
		t.Fatalf("got %s %v, want quads %v", v.Type, v.Ranks, want)
	}
}

func TestEvaluateOmahaFlushYieldsToQuads(t *testing.T) {
	pool := []card.Card{
		c(card.King, card.Spades), c(card.King, card.Hearts), c(card.King, card.Diamonds), c(card.King, card.Clubs),
		c(card.Jack, card.Hearts), c(card.Nine, card.Hearts), c(card.Seven, card.Hearts),
		c(card.Three, card.Hearts), c(card.Two, card.Hearts),
		c(card.Ace, card.Spades),
	}
	v, err := Evaluate(pool, Omaha)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]card.Rank{card.King, card.King, card.King, card.King, card.Ace}
	if v.Type != FourOfAKind || v.Ranks != want {
		t.Fatalf("got %s %v, want quads %v", v.Type, v.Ranks, want)
	}
}

func toPH(c card.Card) ph.Card {
	suits := [card.SuitCount]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}
	r := ph.Rank(int(c.Rank) + 2)
	if c.Rank == card.Ace {
		r = ph.Rank(1)
	}
	pc, _ := ph.MakeCard(suits[c.Suit], r)
	return pc
}

// Random pools, compared pairwise against an independent evaluator.
// The two libraries agree on hand ordering even though the score
// encodings differ.
func TestEvaluateCrossCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		deck := card.NewDeck()
		card.Shuffle(deck, rng)
		a, b := deck[:7], deck[7:14]

		va, err := Evaluate(a, TexasHoldem)
		if err != nil {
			t.Fatal(err)
		}
		vb, err := Evaluate(b, TexasHoldem)
		if err != nil {
			t.Fatal(err)
		}

		var pa, pb [7]ph.Card
		for i := 0; i < 7; i++ {
			pa[i] = toPH(a[i])
			pb[i] = toPH(b[i])
		}
		sa, sb := ph.Eval7(&pa), ph.Eval7(&pb)

		got := va.Compare(vb)
		want := 0
		if sa > sb {
			want = 1
		} else if sa < sb {
			want = -1
		}
		if got != want {
			t.Fatalf("trial %d: %v (%s %v) vs %v (%s %v): Compare=%d, reference=%d",
				trial, a, va.Type, va.Ranks, b, vb.Type, vb.Ranks, got, want)
		}
	}
}
