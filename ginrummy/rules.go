package ginrummy

import "gopkg.in/yaml.v3"

// Rules collects the house-rule constants a game is played under. The
// zero value is not usable; construct with DefaultRules and override
// via WithRules, or load a variant from YAML with LoadRules.
type Rules struct {
	CardsDealt     int `yaml:"cardsDealt"`
	EndCardsInDeck int `yaml:"endCardsInDeck"`
	KnockThreshold int `yaml:"knockThreshold"`
	GinBonus       int `yaml:"ginBonus"`
	BigGinBonus    int `yaml:"bigGinBonus"`
	UndercutBonus  int `yaml:"undercutBonus"`

	// MaxTurns is a safety bound only, not a rule of the game: the
	// source repository carried a max_turns=40 cap in one revision and
	// dropped it in others. Zero disables the bound.
	MaxTurns int `yaml:"maxTurns"`
}

// DefaultRules returns the standard Gin Rummy constants from §4.4.4.
func DefaultRules() Rules {
	return Rules{
		CardsDealt:     10,
		EndCardsInDeck: 2,
		KnockThreshold: 10,
		GinBonus:       20,
		BigGinBonus:    30,
		UndercutBonus:  20,
		MaxTurns:       0,
	}
}

// LoadRules parses a YAML document of house-rule overrides. Any field
// left unset in the document keeps its DefaultRules() value.
func LoadRules(data []byte) (Rules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, err
	}
	return rules, nil
}
