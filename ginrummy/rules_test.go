package ginrummy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	require.Equal(t, 10, r.CardsDealt)
	require.Equal(t, 2, r.EndCardsInDeck)
	require.Equal(t, 10, r.KnockThreshold)
	require.Equal(t, 20, r.GinBonus)
	require.Equal(t, 30, r.BigGinBonus)
	require.Equal(t, 20, r.UndercutBonus)
}

func TestLoadRulesOverridesOnlySetFields(t *testing.T) {
	r, err := LoadRules([]byte("knockThreshold: 7\nginBonus: 25\n"))
	require.NoError(t, err)

	require.Equal(t, 7, r.KnockThreshold)
	require.Equal(t, 25, r.GinBonus)
	require.Equal(t, 10, r.CardsDealt)
	require.Equal(t, 30, r.BigGinBonus)
}

func TestLoadRulesMalformedYAML(t *testing.T) {
	_, err := LoadRules([]byte("not: valid: yaml: at: all"))
	require.Error(t, err)
}
