package ginrummy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedDeckIs52UniqueCards(t *testing.T) {
	deck := OrderedDeck()
	require.Len(t, deck, 52)

	seen := map[int]bool{}
	for _, c := range deck {
		require.False(t, seen[c.ID()], "duplicate card %s", c)
		seen[c.ID()] = true
	}
}

func TestShuffledDeckIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	shuffled := ShuffledDeck(rng)
	require.Len(t, shuffled, 52)

	ids := map[int]bool{}
	for _, c := range shuffled {
		ids[c.ID()] = true
	}
	require.Len(t, ids, 52)
}

func TestDealPartitionsAllCards(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cards := Deal(10, rng)

	require.Len(t, cards.Player1Hand, 10)
	require.Len(t, cards.Player2Hand, 10)
	require.Len(t, cards.DiscardPile, 1)
	require.Len(t, cards.Deck, 31)

	total := map[int]bool{}
	for _, group := range [][]Card{cards.Player1Hand, cards.Player2Hand, cards.DiscardPile, cards.Deck} {
		for _, c := range group {
			require.False(t, total[c.ID()], "card %s dealt twice", c)
			total[c.ID()] = true
		}
	}
	require.Len(t, total, 52)
}
