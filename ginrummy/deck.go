package ginrummy

import "math/rand"

// GinCards is a partition of the 52-card universe into the two players'
// hands, the discard pile, and the stock. The four components are always
// disjoint and their union is the full 52 cards.
type GinCards struct {
	Player1Hand []Card `json:"player1Hand"`
	Player2Hand []Card `json:"player2Hand"`
	DiscardPile []Card `json:"discardPile"`
	Deck        []Card `json:"deck"`
}

// OrderedDeck returns the 52 cards in canonical enumeration order
// (suit-major, then rank).
func OrderedDeck() []Card {
	return allCards()
}

// ShuffledDeck returns a uniform random permutation of OrderedDeck using
// the supplied RNG. The RNG is always caller-supplied: the core never
// reads global math/rand state, so games are reproducible in tests.
func ShuffledDeck(rng *rand.Rand) []Card {
	deck := OrderedDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Deal deals n cards to each player from a shuffled deck, turns one card
// face-up onto the discard pile, and leaves the remainder as stock. n is
// typically cards_dealt (10).
func Deal(n int, rng *rand.Rand) GinCards {
	deck := ShuffledDeck(rng)

	cards := GinCards{
		Player1Hand: append([]Card{}, deck[:n]...),
		Player2Hand: append([]Card{}, deck[n:2*n]...),
	}
	rest := deck[2*n:]
	if len(rest) > 0 {
		cards.DiscardPile = []Card{rest[0]}
		cards.Deck = append([]Card{}, rest[1:]...)
	} else {
		cards.Deck = []Card{}
	}
	return cards
}
