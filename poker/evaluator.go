package poker

import (
	"sort"

	"github.com/amitjaew/mini-poker/card"
)

// HandValue is an evaluated hand: a category plus five tie-break ranks
// ordered most significant first. Two values compare by category, then
// by the ranks lexicographically. Suit never participates.
type HandValue struct {
	Type  HandType
	Ranks [5]card.Rank
}

// Compare returns -1, 0 or 1 as v is weaker than, equal to or stronger
// than o.
func (v HandValue) Compare(o HandValue) int {
	if v.Type != o.Type {
		if v.Type < o.Type {
			return -1
		}
		return 1
	}
	for i := 0; i < 5; i++ {
		if v.Ranks[i] != o.Ranks[i] {
			if v.Ranks[i] < o.Ranks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Evaluate classifies a card pool into one of the ten hand categories
// and produces its tie-break vector. The pool must hold exactly the
// variant's size (7 for Texas Hold'em); any other cardinality fails
// with *PoolSizeError. Duplicate cards are a caller invariant and are
// not checked.
//
// For Omaha the cardinality is validated (10) and the pool is evaluated
// flat; the 2-hole/3-board combination rule is intentionally not
// implemented.
func Evaluate(pool []card.Card, variant Variant) (HandValue, error) {
	if len(pool) != variant.PoolSize() {
		return HandValue{}, &PoolSizeError{Variant: variant, Want: variant.PoolSize(), Got: len(pool)}
	}

	cards := make([]card.Card, len(pool))
	copy(cards, pool)
	sort.Slice(cards, func(i, j int) bool { return cards[j].Less(cards[i]) })

	// Rank histogram, collected high to low.
	var count [card.RankCount]int
	for _, c := range cards {
		count[c.Rank]++
	}
	var quad card.Rank = -1
	triples := make([]card.Rank, 0, 2)
	pairs := make([]card.Rank, 0, 3)
	for r := card.Rank(card.RankCount - 1); r >= 0; r-- {
		switch count[r] {
		case 4:
			// Ten-card pools can hold two quads; the first seen,
			// scanning high to low, is the one that plays.
			if quad < 0 {
				quad = r
			}
		case 3:
			triples = append(triples, r)
		case 2:
			pairs = append(pairs, r)
		}
	}
	hasFullHouse := len(triples) >= 2 || (len(triples) == 1 && len(pairs) >= 1)

	// Flush scan. A ten-card pool can hold two 5-card suits, so every
	// qualifying suit is evaluated and the best result kept. A straight
	// flush beats everything; a plain flush still yields to quads and
	// full houses, which a 7-card pool cannot pair with a flush but a
	// 10-card one can.
	var suitCount [card.SuitCount]int
	for _, c := range cards {
		suitCount[c.Suit]++
	}
	var bestFlush HandValue
	haveFlush := false
	for s := card.Suit(0); s < card.SuitCount; s++ {
		if suitCount[s] < 5 {
			continue
		}
		flushRanks := make([]card.Rank, 0, suitCount[s])
		for _, c := range cards {
			if c.Suit == s {
				flushRanks = append(flushRanks, c.Rank)
			}
		}
		var v HandValue
		if run, ok := straightRun(flushRanks); ok {
			v = HandValue{Type: StraightFlush, Ranks: run}
			if run[0] == card.Ace {
				v.Type = RoyalFlush
			}
		} else {
			v.Type = Flush
			copy(v.Ranks[:], flushRanks[:5])
		}
		if !haveFlush || v.Compare(bestFlush) > 0 {
			bestFlush = v
			haveFlush = true
		}
	}
	if haveFlush && (bestFlush.Type != Flush || (quad < 0 && !hasFullHouse)) {
		return bestFlush, nil
	}

	if quad >= 0 {
		v := HandValue{Type: FourOfAKind, Ranks: [5]card.Rank{quad, quad, quad, quad}}
		v.Ranks[4] = bestKicker(cards, quad)
		return v, nil
	}

	// Two triples: the larger plays as the set, the smaller as the pair
	// (only two of its three cards can count).
	if len(triples) >= 2 {
		return fullHouse(triples[0], triples[1]), nil
	}
	if hasFullHouse {
		return fullHouse(triples[0], pairs[0]), nil
	}

	allRanks := make([]card.Rank, len(cards))
	for i, c := range cards {
		allRanks[i] = c.Rank
	}
	if run, ok := straightRun(allRanks); ok {
		return HandValue{Type: Straight, Ranks: run}, nil
	}

	if len(triples) == 1 {
		v := HandValue{Type: ThreeOfAKind, Ranks: [5]card.Rank{triples[0], triples[0], triples[0]}}
		kickers(cards, v.Ranks[3:], triples[0])
		return v, nil
	}
	if len(pairs) >= 2 {
		v := HandValue{Type: TwoPair, Ranks: [5]card.Rank{pairs[0], pairs[0], pairs[1], pairs[1]}}
		kickers(cards, v.Ranks[4:], pairs[0], pairs[1])
		return v, nil
	}
	if len(pairs) == 1 {
		v := HandValue{Type: Pair, Ranks: [5]card.Rank{pairs[0], pairs[0]}}
		kickers(cards, v.Ranks[2:], pairs[0])
		return v, nil
	}

	var v HandValue
	v.Type = HighCard
	copy(v.Ranks[:], allRanks[:5])
	return v, nil
}

func fullHouse(three, pair card.Rank) HandValue {
	return HandValue{Type: FullHouse, Ranks: [5]card.Rank{three, three, three, pair, pair}}
}

// straightRun finds the highest run of 5 consecutive values in ranks
// (sorted descending, duplicates allowed) and returns it most
// significant first. The wheel (Ace,5,4,3,2) is a valid low straight;
// its vector leads with Five so it compares below every other straight.
func straightRun(ranks []card.Rank) ([5]card.Rank, bool) {
	var run [5]card.Rank
	streak := 0
	for i := 0; i+1 < len(ranks); i++ {
		delta := ranks[i] - ranks[i+1]
		switch delta {
		case 0:
			continue
		case 1:
			streak++
		default:
			streak = 0
		}
		if streak == 4 {
			top := ranks[i+1] + 4
			for j := 0; j < 5; j++ {
				run[j] = top - card.Rank(j)
			}
			return run, true
		}
	}
	// Wheel: Ace plays low under Five.
	if len(ranks) > 0 && ranks[0] == card.Ace && ranks[len(ranks)-1] == card.Two && streak == 3 {
		run = [5]card.Rank{card.Five, card.Four, card.Three, card.Two, card.Ace}
		return run, true
	}
	return run, false
}

// kickers fills dst with the highest ranks in cards not excluded,
// most significant first. cards must be sorted descending.
func kickers(cards []card.Card, dst []card.Rank, exclude ...card.Rank) {
	n := 0
	for _, c := range cards {
		skip := false
		for _, ex := range exclude {
			if c.Rank == ex {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		dst[n] = c.Rank
		n++
		if n == len(dst) {
			return
		}
	}
}

func bestKicker(cards []card.Card, exclude card.Rank) card.Rank {
	for _, c := range cards {
		if c.Rank != exclude {
			return c.Rank
		}
	}
	return 0
}
