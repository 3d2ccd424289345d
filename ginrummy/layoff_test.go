package ginrummy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayoffScenario(t *testing.T) {
	oppMelds := []Meld{
		{Type: MeldTypeSet, Cards: cards("7c", "7d", "7h")},
		{Type: MeldTypeRun, Cards: cards("9s", "Ts", "Js")},
	}

	hand := cards("7s", "Qs", "8c")
	result, err := LayoffDeadwood(hand, oppMelds, false)
	require.NoError(t, err)

	require.Equal(t, 8, result.Deadwood)
	require.Equal(t, cards("8c"), result.Unmelded)

	laidOffIDs := cardSet(t, result.LaidOff)
	require.True(t, laidOffIDs[MustCard("7s").ID()])
	require.True(t, laidOffIDs[MustCard("Qs").ID()])
	require.Len(t, result.LaidOff, 2)
}

func TestLayoffNoEligibleCards(t *testing.T) {
	oppMelds := []Meld{
		{Type: MeldTypeSet, Cards: cards("7c", "7d", "7h")},
	}
	hand := cards("2c", "5d", "9h")
	result, err := LayoffDeadwood(hand, oppMelds, false)
	require.NoError(t, err)

	require.Empty(t, result.LaidOff)
	require.Equal(t, handDeadwood(hand), result.Deadwood)
}

func TestLayoffFourSetTakesNoLayoff(t *testing.T) {
	oppMelds := []Meld{
		{Type: MeldTypeSet, Cards: cards("7c", "7d", "7h", "7s")},
	}
	setRanks, runs, err := classifyOpponentMelds(oppMelds)
	require.NoError(t, err)
	require.Empty(t, setRanks)
	require.Empty(t, runs)
}

func TestLayoffStopOnZeroShortCircuits(t *testing.T) {
	oppMelds := []Meld{
		{Type: MeldTypeRun, Cards: cards("2c", "3c", "4c", "5c")},
	}
	hand := cards("6c")
	result, err := LayoffDeadwood(hand, oppMelds, true)
	require.NoError(t, err)
	require.Equal(t, 0, result.Deadwood)
	require.Equal(t, cards("6c"), result.LaidOff)
}
