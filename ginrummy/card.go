package ginrummy

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Rank is one of the thirteen ordinal card ranks, Ace through King.
type Rank int

const (
	Ace Rank = iota
	Two
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
)

var rankRunes = [...]byte{'A', '2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K'}

var rankNames = [...]string{
	"ace", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "jack", "queen", "king",
}

// RankFromByte parses a single rank character, one of A23456789TJQK.
func RankFromByte(b byte) (Rank, error) {
	for r, rb := range rankRunes {
		if rb == b {
			return Rank(r), nil
		}
	}
	return 0, fmt.Errorf("%w: rank byte %q", ErrInvalidRank, b)
}

// Byte returns the single-character rank code used by the string codec.
func (r Rank) Byte() byte {
	return rankRunes[r]
}

func (r Rank) String() string {
	return r.Name()
}

// Name returns the title-cased English name of the rank, e.g. "Queen".
func (r Rank) Name() string {
	if r < Ace || r > King {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return titleCaser.String(rankNames[r])
}

// Index returns (r+12) mod 13, so Two maps to 0 and Ace maps to 12 — the
// ordering used for consecutive-rank tests when finding runs.
func (r Rank) Index() int {
	return int(r+12) % 13
}

// DeadwoodValue returns the scoring face value of the rank: Ace = 1,
// 2 through 9 at face, and 10/Jack/Queen/King all worth 10.
func (r Rank) DeadwoodValue() int {
	switch {
	case r == Ace:
		return 1
	case r >= Ten:
		return 10
	default:
		return int(r) + 1
	}
}

// Suit is one of the four card suits. There is no game-semantic ordering
// between suits; the enumeration order below is used only for
// deterministic tie-breaking.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitRunes = [...]byte{'c', 'd', 'h', 's'}
var suitNames = [...]string{"clubs", "diamonds", "hearts", "spades"}

// SuitFromByte parses a single suit character, one of cdhs.
func SuitFromByte(b byte) (Suit, error) {
	for s, sb := range suitRunes {
		if sb == b {
			return Suit(s), nil
		}
	}
	return 0, fmt.Errorf("%w: suit byte %q", ErrInvalidSuit, b)
}

// Byte returns the single-character suit code used by the string codec.
func (s Suit) Byte() byte {
	return suitRunes[s]
}

func (s Suit) String() string {
	return s.Name()
}

// Name returns the title-cased English name of the suit, e.g. "Spades".
func (s Suit) Name() string {
	if s < Clubs || s > Spades {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return titleCaser.String(suitNames[s])
}

// Card is a (Rank, Suit) pair. The zero value is the Ace of Clubs, which
// is a legitimate card — callers that need an "absent card" sentinel
// should use a *Card or a bool alongside it, following the teacher's
// Pile.TopCard idiom of returning (Card, error) instead.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a Card from a rank and suit, validating both ranges.
func NewCard(r Rank, s Suit) (Card, error) {
	if r < Ace || r > King {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, int(r))
	}
	if s < Clubs || s > Spades {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSuit, int(s))
	}
	return Card{Rank: r, Suit: s}, nil
}

// CardFromID is the inverse of Card.ID: a bijection on 0..51.
func CardFromID(id int) (Card, error) {
	if id < 0 || id > 51 {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidCardID, id)
	}
	suitIdx := id % 4
	rankIdx := (id/4 + 1) % 13
	return Card{Rank: Rank(rankIdx), Suit: Suit(suitIdx)}, nil
}

// CardFromString parses the two-character wire form, e.g. "Th", "As".
func CardFromString(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
	}
	r, err := RankFromByte(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
	}
	suit, err := SuitFromByte(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardCode, s)
	}
	return Card{Rank: r, Suit: suit}, nil
}

// MustCard parses a two-character card code, panicking on failure. It is
// meant for table-driven tests and package-level fixtures, not runtime
// input parsing.
func MustCard(s string) Card {
	c, err := CardFromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ID returns the stable identifier in 0..51: id = suit_index +
// 4*((rank_index+12) mod 13). 2c has id 0; As has id 51.
func (c Card) ID() int {
	return int(c.Suit) + 4*c.Rank.Index()
}

// String renders the two-character wire form, e.g. "Th".
func (c Card) String() string {
	return string([]byte{c.Rank.Byte(), c.Suit.Byte()})
}

// MarshalText implements encoding.TextMarshaler so Card (and map[Card]...)
// serialize to/from JSON as the two-character wire string rather than as
// a {rank,suit} object.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := CardFromString(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Less implements the total order from §3: by rank (Ace low) then by
// suit. Note this is the raw rank ordinal, not the Index() transform used
// for run-finding: Ace sorts before Two here.
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit < other.Suit
}

// allCards returns the 52-card universe in canonical enumeration order
// (suit-major, then rank), used by ordered_deck and by the HUD's
// full-universe walk.
func allCards() []Card {
	cards := make([]Card, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := Ace; r <= King; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return cards
}
