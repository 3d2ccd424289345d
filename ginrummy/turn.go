package ginrummy

import (
	"fmt"
	"strings"
)

// GinTurn is one of the ten turn-phase states of the game FSM.
type GinTurn string

const (
	P1DrawsFirst    GinTurn = "P1_DRAWS_FIRST"
	P2DrawsFirst    GinTurn = "P2_DRAWS_FIRST"
	P1DrawsFromDeck GinTurn = "P1_DRAWS_FROM_DECK"
	P2DrawsFromDeck GinTurn = "P2_DRAWS_FROM_DECK"
	P1Draws         GinTurn = "P1_DRAWS"
	P2Draws         GinTurn = "P2_DRAWS"
	P1Discards      GinTurn = "P1_DISCARDS"
	P2Discards      GinTurn = "P2_DISCARDS"
	P1MayKnock      GinTurn = "P1_MAY_KNOCK"
	P2MayKnock      GinTurn = "P2_MAY_KNOCK"
)

// GinAction is one of the six actions a caller may submit via DoAction.
type GinAction string

const (
	ActionPass            GinAction = "PASS"
	ActionKnock           GinAction = "KNOCK"
	ActionDontKnock       GinAction = "DONT_KNOCK"
	ActionPickFromDeck    GinAction = "PICK_FROM_DECK"
	ActionPickFromDiscard GinAction = "PICK_FROM_DISCARD"
	ActionDiscardCard     GinAction = "DISCARD_CARD"
)

// GinEnding is the terminal condition a completed hand ends in.
type GinEnding string

const (
	EndingP1Knocks        GinEnding = "P1_KNOCKS"
	EndingP2Knocks        GinEnding = "P2_KNOCKS"
	EndingP1Gins          GinEnding = "P1_GINS"
	EndingP2Gins          GinEnding = "P2_GINS"
	EndingP1BigGins       GinEnding = "P1_BIG_GINS"
	EndingP2BigGins       GinEnding = "P2_BIG_GINS"
	EndingPlayedToTheWall GinEnding = "PLAYED_TO_THE_WALL"
)

// firstTurnPass implements the §4.4.2 first-turn protocol. firstTurn is
// the game's fixed starting offer (whichever player was offered the
// discard pick first). A P1_DRAWS_FIRST/P2_DRAWS_FIRST state is reached
// twice across a hand's opening: once as the initial offer to firstTurn,
// and once as the second offer to the other player after the first
// passed — firstTurn is what disambiguates which of the two this call
// sees, since the two offers pass to different destinations.
func firstTurnPass(turn, firstTurn GinTurn) (GinTurn, error) {
	switch turn {
	case P1DrawsFirst:
		if firstTurn == P1DrawsFirst {
			return P2DrawsFirst, nil
		}
		return P2DrawsFromDeck, nil
	case P2DrawsFirst:
		if firstTurn == P2DrawsFirst {
			return P1DrawsFirst, nil
		}
		return P1DrawsFromDeck, nil
	default:
		return "", fmt.Errorf("%w: PASS from %s", ErrIllegalAction, turn)
	}
}

// advanceAfterDraw handles PICK_FROM_DECK / PICK_FROM_DISCARD: the
// acting player always proceeds to their own discard phase.
func advanceAfterDraw(turn GinTurn, fromDiscard bool) (GinTurn, error) {
	switch turn {
	case P1DrawsFirst:
		if !fromDiscard {
			return "", fmt.Errorf("%w: must pick from discard on the first turn", ErrIllegalAction)
		}
		return P1Discards, nil
	case P2DrawsFirst:
		if !fromDiscard {
			return "", fmt.Errorf("%w: must pick from discard on the first turn", ErrIllegalAction)
		}
		return P2Discards, nil
	case P1DrawsFromDeck:
		if fromDiscard {
			return "", fmt.Errorf("%w: must pick from the stock", ErrIllegalAction)
		}
		return P1Discards, nil
	case P2DrawsFromDeck:
		if fromDiscard {
			return "", fmt.Errorf("%w: must pick from the stock", ErrIllegalAction)
		}
		return P2Discards, nil
	case P1Draws:
		return P1Discards, nil
	case P2Draws:
		return P2Discards, nil
	default:
		return "", fmt.Errorf("%w: draw from %s", ErrIllegalAction, turn)
	}
}

// advanceAfterDiscard handles DISCARD_CARD: the acting player may knock
// if their post-discard deadwood is low enough, else play passes to the
// opponent's normal draw phase.
func advanceAfterDiscard(turn GinTurn, deadwood int, knockThreshold int) (GinTurn, error) {
	switch turn {
	case P1Discards:
		if deadwood <= knockThreshold {
			return P1MayKnock, nil
		}
		return P2Draws, nil
	case P2Discards:
		if deadwood <= knockThreshold {
			return P2MayKnock, nil
		}
		return P1Draws, nil
	default:
		return "", fmt.Errorf("%w: discard from %s", ErrIllegalAction, turn)
	}
}

// advanceAfterDontKnock handles DONT_KNOCK: play passes to the
// opponent's normal draw phase (subject to the wall check the caller
// performs separately).
func advanceAfterDontKnock(turn GinTurn) (GinTurn, error) {
	switch turn {
	case P1MayKnock:
		return P2Draws, nil
	case P2MayKnock:
		return P1Draws, nil
	default:
		return "", fmt.Errorf("%w: DONT_KNOCK from %s", ErrIllegalAction, turn)
	}
}

// String renders a human-readable description, e.g. "P1 Gins" for
// EndingP1Gins.
func (e GinEnding) String() string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(string(e), "_", " ")))
}

// activePlayer returns 1 or 2 for the player whose action is expected in
// the given turn state.
func activePlayer(turn GinTurn) int {
	switch turn {
	case P1DrawsFirst, P1DrawsFromDeck, P1Draws, P1Discards, P1MayKnock:
		return 1
	default:
		return 2
	}
}
