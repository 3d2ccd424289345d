package ginrummy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func cards(codes ...string) []Card {
	out := make([]Card, 0, len(codes))
	for _, c := range codes {
		out = append(out, MustCard(c))
	}
	return out
}

func cardSet(t *testing.T, cs []Card) map[int]bool {
	t.Helper()
	m := map[int]bool{}
	for _, c := range cs {
		m[c.ID()] = true
	}
	return m
}

// TestSplitMeldsPreservesMultiset covers invariant 1: melds ∪ unmelded
// equals the input hand exactly, for random 10- and 11-card hands.
func TestSplitMeldsPreservesMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 25; trial++ {
		size := 10
		if trial%2 == 1 {
			size = 11
		}
		deck := ShuffledDeck(rng)
		hand := append([]Card{}, deck[:size]...)

		split, err := SplitMelds(hand, nil)
		require.NoError(t, err)

		got := map[int]bool{}
		for _, m := range split.Melds {
			for _, c := range m.Cards {
				require.False(t, got[c.ID()], "card %s appears in two melds", c)
				got[c.ID()] = true
			}
		}
		for _, c := range split.Unmelded {
			require.False(t, got[c.ID()], "card %s in both a meld and unmelded", c)
			got[c.ID()] = true
		}
		require.Equal(t, cardSet(t, hand), got)

		// invariant 2: no worse than the degenerate split.
		require.LessOrEqual(t, split.Deadwood, handDeadwood(hand))
	}
}

// TestSplitMeldsLegalMelds covers invariant 4: every returned meld has
// size >= 3, sets share a rank with distinct suits, runs share a suit
// with consecutive ranks (ace wrap allowed at exactly one end).
func TestSplitMeldsLegalMelds(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	for trial := 0; trial < 25; trial++ {
		deck := ShuffledDeck(rng)
		hand := append([]Card{}, deck[:10]...)

		split, err := SplitMelds(hand, nil)
		require.NoError(t, err)

		for _, m := range split.Melds {
			require.GreaterOrEqual(t, len(m.Cards), 3)
			require.True(t, isValidMeld(m), "invalid meld %v", m.Cards)
		}
	}
}

func TestGinDetectionScenario(t *testing.T) {
	hand := cards("Ac", "Ad", "Ah", "2s", "2d", "2h", "3c", "3d", "3h", "4c")
	split, err := SplitMelds(hand, nil)
	require.NoError(t, err)

	require.Equal(t, 4, split.Deadwood)
	require.Equal(t, cards("4c"), split.Unmelded)
	require.Len(t, split.Melds, 3)
	for _, m := range split.Melds {
		require.Equal(t, MeldTypeSet, m.Type)
		require.Len(t, m.Cards, 3)
	}
}

func TestPerfectGinScenario(t *testing.T) {
	hand := cards("2c", "3c", "4c", "5c", "6h", "6d", "6s", "9h", "9d", "9s")
	split, err := SplitMelds(hand, nil)
	require.NoError(t, err)

	require.Equal(t, 0, split.Deadwood)
	require.Empty(t, split.Unmelded)
	require.Len(t, split.Melds, 3)

	sizes := map[int]int{}
	for _, m := range split.Melds {
		sizes[len(m.Cards)]++
	}
	require.Equal(t, map[int]int{4: 1, 3: 2}, sizes)
}

func TestAceHighRunScenario(t *testing.T) {
	hand := cards("Qs", "Ks", "As", "2h", "3h", "4h", "7c", "7d", "7h", "9c")
	split, err := SplitMelds(hand, nil)
	require.NoError(t, err)

	require.Equal(t, 9, split.Deadwood)
	require.Equal(t, cards("9c"), split.Unmelded)
	require.Len(t, split.Melds, 3)

	var run Meld
	for _, m := range split.Melds {
		if m.Type == MeldTypeRun && len(m.Cards) == 3 && m.Cards[0].Suit == Spades {
			run = m
		}
	}
	require.Equal(t, cards("Qs", "Ks", "As"), run.Cards)
}

func TestFindRunsExcludesDoubleAceWindow(t *testing.T) {
	// An Ace contributes both domain 0 and domain 13; no generated run
	// window may span both, since that would use the single physical
	// Ace at both ends.
	hand := cards("Ac", "2c", "3c", "4c", "5c", "6c", "7c", "8c", "9c", "Tc", "Jc")
	for _, m := range findRuns(hand) {
		aceCount := 0
		for _, c := range m.Cards {
			if c.Rank == Ace {
				aceCount++
			}
		}
		require.LessOrEqual(t, aceCount, 1)
	}
}

func TestSplitMeldsRejectsMalformedHand(t *testing.T) {
	_, err := SplitMelds(nil, nil)
	require.ErrorIs(t, err, ErrMalformedHand)

	dup := cards("2c", "2c", "3c")
	_, err = SplitMelds(dup, nil)
	require.ErrorIs(t, err, ErrMalformedHand)
}

func TestSplitMeldsWithChosenMeldsValidates(t *testing.T) {
	hand := cards("2c", "3c", "4c", "9h", "9d", "9s", "Kc", "Kd", "Ks", "7c")
	chosen := []Meld{
		{Type: MeldTypeRun, Cards: cards("2c", "3c", "4c")},
		{Type: MeldTypeSet, Cards: cards("9h", "9d", "9s")},
	}
	split, err := SplitMelds(hand, chosen)
	require.NoError(t, err)
	require.Equal(t, 10+10+10+7, split.Deadwood)

	_, err = SplitMelds(hand, []Meld{{Type: MeldTypeSet, Cards: cards("2c", "3c", "4c")}})
	require.ErrorIs(t, err, ErrInvalidMeld)

	_, err = SplitMelds(hand, []Meld{{Type: MeldTypeSet, Cards: cards("5h", "5d", "5s")}})
	require.ErrorIs(t, err, ErrInvalidMeld)
}

func TestCardFromIDInverseOnUniverse(t *testing.T) {
	for id := 0; id <= 51; id++ {
		c, err := CardFromID(id)
		require.NoError(t, err)
		require.Equal(t, id, c.ID())
	}
}
