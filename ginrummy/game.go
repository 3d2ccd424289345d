package ginrummy

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"
)

// GameState is the central struct of this package: it holds both
// players' hands, the stock, the discard pile, the public visibility
// map, and the current turn phase, and applies actions through
// DoAction.
type GameState struct {
	Rules Rules `json:"rules"`

	// FirstTurn is the turn state the hand started in, chosen once at
	// construction (P1_DRAWS_FIRST or P2_DRAWS_FIRST).
	FirstTurn GinTurn `json:"firstTurn"`

	Turn GinTurn `json:"turn"`

	Player1Hand []Card `json:"player1Hand"`
	Player2Hand []Card `json:"player2Hand"`
	DiscardPile []Card `json:"discardPile"`
	Deck        []Card `json:"deck"`

	// Revealed tracks, per player, the cards they have publicly picked
	// from the discard pile and not yet discarded back — the basis of
	// the PLAYER_1/PLAYER_2 public hud tags.
	Revealed map[int][]Card `json:"revealed"`

	IsComplete   bool       `json:"isComplete"`
	Ending       *GinEnding `json:"ending,omitempty"`
	Player1Score int        `json:"player1Score"`
	Player2Score int        `json:"player2Score"`

	ActionLog []LoggedAction `json:"actionLog"`

	turnsPlayed int
	rng         *rand.Rand
	logger      zerolog.Logger
}

// LoggedAction is one entry of the hand's action audit trail, in the
// style of the teacher's ActionLog.
type LoggedAction struct {
	Player int       `json:"player"`
	Action GinAction `json:"action"`
	Card   *Card     `json:"card,omitempty"`
	Turn   GinTurn   `json:"turn"`
}

// GameOption configures a GameState at construction time, following the
// teacher's functional-option pattern (WithMaxPoints generalized here to
// WithRules / WithFirstTurn / WithRNG / WithLogger).
type GameOption func(*GameState)

// WithRules overrides the default house rules.
func WithRules(r Rules) GameOption {
	return func(g *GameState) { g.Rules = r }
}

// WithFirstTurn pins which player is offered the first-turn pass,
// instead of choosing it randomly. Useful for deterministic tests.
func WithFirstTurn(t GinTurn) GameOption {
	return func(g *GameState) { g.FirstTurn = t }
}

// WithRNG supplies the random source used to shuffle and deal, and (if
// FirstTurn is not also pinned) to choose the first-turn player. The
// core never reads global math/rand state.
func WithRNG(rng *rand.Rand) GameOption {
	return func(g *GameState) { g.rng = rng }
}

// WithLogger attaches a structured logger; the zero value logs nothing.
func WithLogger(logger zerolog.Logger) GameOption {
	return func(g *GameState) { g.logger = logger }
}

// NewGame deals a fresh hand and returns a ready-to-play GameState.
func NewGame(opts ...GameOption) *GameState {
	g := &GameState{
		Rules:    DefaultRules(),
		Revealed: map[int][]Card{1: {}, 2: {}},
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	if g.FirstTurn == "" {
		if g.rng.Intn(2) == 0 {
			g.FirstTurn = P1DrawsFirst
		} else {
			g.FirstTurn = P2DrawsFirst
		}
	}
	g.Turn = g.FirstTurn

	cards := Deal(g.Rules.CardsDealt, g.rng)
	g.Player1Hand = cards.Player1Hand
	g.Player2Hand = cards.Player2Hand
	g.DiscardPile = cards.DiscardPile
	g.Deck = cards.Deck

	g.logger.Info().Str("firstTurn", string(g.FirstTurn)).Int("cardsDealt", g.Rules.CardsDealt).Msg("new hand dealt")

	return g
}

func otherPlayer(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}

func (g *GameState) handOf(player int) []Card {
	if player == 1 {
		return g.Player1Hand
	}
	return g.Player2Hand
}

func (g *GameState) setHand(player int, hand []Card) {
	if player == 1 {
		g.Player1Hand = hand
	} else {
		g.Player2Hand = hand
	}
}

func (g *GameState) addCardToHand(player int, card Card) {
	g.setHand(player, append(g.handOf(player), card))
}

func indexOfCard(hand []Card, card Card) int {
	for i, c := range hand {
		if c.ID() == card.ID() {
			return i
		}
	}
	return -1
}

func removeCard(cards []Card, card Card) []Card {
	idx := indexOfCard(cards, card)
	if idx < 0 {
		return cards
	}
	return append(append([]Card{}, cards[:idx]...), cards[idx+1:]...)
}

// DoAction dispatches a single action against the current turn state,
// per §4.4.6. card is required for DISCARD_CARD; melds are the knocker's
// declared melds for KNOCK (nil lets the solver pick the
// deadwood-minimizing split) and are ignored otherwise.
func (g *GameState) DoAction(player int, action GinAction, card *Card, melds []Meld) error {
	if g.IsComplete {
		return fmt.Errorf("%w: trying to run %s", ErrGameAlreadyComplete, action)
	}
	if player != activePlayer(g.Turn) {
		return errNotYourTurn
	}

	var err error
	switch action {
	case ActionPass:
		err = g.applyFirstTurnPass()
	case ActionPickFromDeck:
		err = g.drawCard(false)
	case ActionPickFromDiscard:
		err = g.drawCard(true)
	case ActionDiscardCard:
		if card == nil {
			err = fmt.Errorf("%w: DISCARD_CARD requires a card", ErrIllegalAction)
		} else {
			err = g.discardCard(*card)
		}
	case ActionKnock:
		err = g.decideKnock(true, melds)
	case ActionDontKnock:
		err = g.decideKnock(false, nil)
	default:
		err = fmt.Errorf("%w: unknown action %s", ErrIllegalAction, action)
	}

	if err != nil {
		g.logger.Debug().Str("action", string(action)).Str("turn", string(g.Turn)).Err(err).Msg("action rejected")
		return err
	}

	g.ActionLog = append(g.ActionLog, LoggedAction{Player: player, Action: action, Card: card, Turn: g.Turn})
	g.turnsPlayed++
	g.logger.Info().Str("action", string(action)).Str("turn", string(g.Turn)).Int("turnsPlayed", g.turnsPlayed).Msg("action applied")
	return nil
}

// applyFirstTurnPass implements PASS. When the chain lands on a
// *_DRAWS_FROM_DECK state, the stock draw happens immediately: there is
// no separate action for it, since the pass itself committed the player
// to drawing from the stock.
func (g *GameState) applyFirstTurnPass() error {
	next, err := firstTurnPass(g.Turn, g.FirstTurn)
	if err != nil {
		return err
	}
	g.Turn = next
	if g.Turn == P1DrawsFromDeck || g.Turn == P2DrawsFromDeck {
		return g.drawCard(false)
	}
	return nil
}

func (g *GameState) drawCard(fromDiscard bool) error {
	next, err := advanceAfterDraw(g.Turn, fromDiscard)
	if err != nil {
		return err
	}

	player := activePlayer(g.Turn)
	var card Card
	if fromDiscard {
		if len(g.DiscardPile) == 0 {
			return fmt.Errorf("%w: discard pile is empty", ErrIllegalAction)
		}
		card = g.DiscardPile[len(g.DiscardPile)-1]
		g.DiscardPile = g.DiscardPile[:len(g.DiscardPile)-1]
		g.Revealed[player] = append(g.Revealed[player], card)
	} else {
		if len(g.Deck) == 0 {
			return fmt.Errorf("%w: stock is empty", ErrIllegalAction)
		}
		card = g.Deck[0]
		g.Deck = g.Deck[1:]
	}

	g.addCardToHand(player, card)
	g.Turn = next

	return g.checkBigGin(player)
}

// checkBigGin implements the big-gin-on-draw detection flagged in
// §4.4.3: the source reserves P1_BIG_GINS/P2_BIG_GINS but never fires
// them. Every draw checks the acting player's 11-card hand for a
// zero-deadwood split.
func (g *GameState) checkBigGin(player int) error {
	hand := g.handOf(player)
	if len(hand) != g.Rules.CardsDealt+1 {
		return nil
	}
	split, err := SplitMelds(hand, nil)
	if err != nil {
		return err
	}
	if split.Deadwood != 0 {
		return nil
	}

	ending := EndingP1BigGins
	if player == 2 {
		ending = EndingP2BigGins
	}
	opponentSplit, err := SplitMelds(g.handOf(otherPlayer(player)), nil)
	if err != nil {
		return err
	}
	g.finish(ending, opponentSplit.Deadwood)
	return nil
}

func (g *GameState) discardCard(card Card) error {
	player := activePlayer(g.Turn)
	hand := g.handOf(player)
	idx := indexOfCard(hand, card)
	if idx < 0 {
		return fmt.Errorf("%w: %s not in hand", ErrIllegalAction, card)
	}

	newHand := append(append([]Card{}, hand[:idx]...), hand[idx+1:]...)
	g.setHand(player, newHand)
	g.DiscardPile = append(g.DiscardPile, card)
	g.Revealed[player] = removeCard(g.Revealed[player], card)

	split, err := SplitMelds(newHand, nil)
	if err != nil {
		return err
	}

	if split.Deadwood == 0 {
		ending := EndingP1Gins
		if player == 2 {
			ending = EndingP2Gins
		}
		opponentSplit, err := SplitMelds(g.handOf(otherPlayer(player)), nil)
		if err != nil {
			return err
		}
		g.finish(ending, opponentSplit.Deadwood)
		return nil
	}

	next, err := advanceAfterDiscard(g.Turn, split.Deadwood, g.Rules.KnockThreshold)
	if err != nil {
		return err
	}
	g.Turn = next

	if next != P1MayKnock && next != P2MayKnock {
		g.checkWall()
	}
	return nil
}

func (g *GameState) decideKnock(knock bool, melds []Meld) error {
	player := activePlayer(g.Turn)

	if !knock {
		next, err := advanceAfterDontKnock(g.Turn)
		if err != nil {
			return err
		}
		g.Turn = next
		g.checkWall()
		return nil
	}

	if g.Turn != P1MayKnock && g.Turn != P2MayKnock {
		return fmt.Errorf("%w: KNOCK from %s", ErrIllegalAction, g.Turn)
	}

	split, err := SplitMelds(g.handOf(player), melds)
	if err != nil {
		return err
	}
	if split.Deadwood > g.Rules.KnockThreshold {
		return fmt.Errorf("%w: cannot knock with deadwood %d", ErrIllegalAction, split.Deadwood)
	}

	layoff, err := LayoffDeadwood(g.handOf(otherPlayer(player)), split.Melds, true)
	if err != nil {
		return err
	}

	ending := EndingP1Knocks
	if player == 2 {
		ending = EndingP2Knocks
	}
	g.finishKnock(ending, player, split.Deadwood, layoff.Deadwood)
	return nil
}

func (g *GameState) checkWall() {
	if len(g.Deck) <= g.Rules.EndCardsInDeck {
		g.finish(EndingPlayedToTheWall, 0)
		return
	}
	if g.Rules.MaxTurns > 0 && g.turnsPlayed >= g.Rules.MaxTurns {
		g.finish(EndingPlayedToTheWall, 0)
	}
}

// finish ends the hand for the gin/big-gin/wall endings, where only the
// non-acting player (or neither, for the wall) scores.
func (g *GameState) finish(ending GinEnding, opponentDeadwood int) {
	g.IsComplete = true
	e := ending
	g.Ending = &e

	var bonus int
	switch ending {
	case EndingP1Gins, EndingP2Gins:
		bonus = g.Rules.GinBonus
	case EndingP1BigGins, EndingP2BigGins:
		bonus = g.Rules.BigGinBonus
	case EndingPlayedToTheWall:
		g.logger.Info().Str("ending", string(ending)).Msg("hand complete")
		return
	}

	score := opponentDeadwood + bonus
	switch ending {
	case EndingP1Gins, EndingP1BigGins:
		g.Player2Score = score
	case EndingP2Gins, EndingP2BigGins:
		g.Player1Score = score
	}

	g.logger.Info().Str("ending", string(ending)).Int("p1Score", g.Player1Score).Int("p2Score", g.Player2Score).Msg("hand complete")
}

// finishKnock applies the knock/undercut scoring table from §4.4.4.
func (g *GameState) finishKnock(ending GinEnding, knocker, knockerDeadwood, opponentDeadwood int) {
	g.IsComplete = true
	e := ending
	g.Ending = &e

	opponent := otherPlayer(knocker)
	if opponentDeadwood <= knockerDeadwood {
		score := knockerDeadwood - opponentDeadwood + g.Rules.UndercutBonus
		g.setScore(opponent, score)
	} else {
		score := opponentDeadwood - knockerDeadwood
		g.setScore(opponent, score)
	}

	g.logger.Info().Str("ending", string(ending)).Int("p1Score", g.Player1Score).Int("p2Score", g.Player2Score).Msg("hand complete")
}

func (g *GameState) setScore(player, score int) {
	if player == 1 {
		g.Player1Score = score
	} else {
		g.Player2Score = score
	}
}

// PublicHud returns the player-agnostic visibility map (§4.4.5).
func (g *GameState) PublicHud() map[Card]GinHud {
	return buildPublicHud(g.DiscardPile, g.Revealed)
}

// PlayerHud returns the per-viewer projection of PublicHud for the
// given player (1 or 2).
func (g *GameState) PlayerHud(viewer int) map[Card]GinHud {
	return playerHud(g.PublicHud(), g.handOf(viewer), viewer)
}

// Describe renders a short human-readable status line, e.g. "Hand
// complete: P1 Gins" or "P1 May Knock".
func (g *GameState) Describe() string {
	if g.IsComplete {
		return fmt.Sprintf("Hand complete: %s", g.Ending.String())
	}
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(string(g.Turn), "_", " ")))
}
