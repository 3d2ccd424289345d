package ginrummy

import (
	"fmt"
	"sort"
)

// MeldType distinguishes a set (same rank, distinct suits) from a run
// (same suit, consecutive ranks).
type MeldType string

const (
	MeldTypeSet MeldType = "set"
	MeldTypeRun MeldType = "run"
)

// Meld is a legal grouping of three or more cards: a set or a run.
type Meld struct {
	Type  MeldType `json:"type"`
	Cards []Card   `json:"cards"`
}

func (m Meld) mask() uint64 {
	return cardMask(m.Cards)
}

// SplitHand is the result of partitioning a hand into melds and
// deadwood, as returned by SplitMelds and enumerated by CandidateMelds.
type SplitHand struct {
	Deadwood int    `json:"deadwood"`
	Melds    []Meld `json:"melds"`
	Unmelded []Card `json:"unmelded"`
}

func cardMask(cards []Card) uint64 {
	var m uint64
	for _, c := range cards {
		m |= 1 << uint(c.ID())
	}
	return m
}

func validateHand(hand []Card) error {
	if len(hand) < 1 || len(hand) > 11 {
		return fmt.Errorf("%w: size %d", ErrMalformedHand, len(hand))
	}
	seen := make(map[int]bool, len(hand))
	for _, c := range hand {
		if seen[c.ID()] {
			return fmt.Errorf("%w: duplicate card %s", ErrMalformedHand, c)
		}
		seen[c.ID()] = true
	}
	return nil
}

// findSets partitions hand by rank: a rank with exactly 3 cards yields
// one 3-set; a rank with 4 cards yields the 4-set plus all four 3-card
// subsets (since a knocker may prefer to keep one card free for a run).
func findSets(hand []Card) []Meld {
	byRank := map[Rank][]Card{}
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}

	var melds []Meld
	for _, cards := range byRank {
		switch len(cards) {
		case 3:
			melds = append(melds, newSetMeld(cards))
		case 4:
			melds = append(melds, newSetMeld(cards))
			for skip := range cards {
				sub := make([]Card, 0, 3)
				for i, c := range cards {
					if i != skip {
						sub = append(sub, c)
					}
				}
				melds = append(melds, newSetMeld(sub))
			}
		}
	}
	return melds
}

func newSetMeld(cards []Card) Meld {
	cp := append([]Card{}, cards...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Suit < cp[j].Suit })
	return Meld{Type: MeldTypeSet, Cards: cp}
}

// findRuns partitions hand by suit and expands aces into both their
// low (domain 0) and high (domain 13) positions, per the ace-duality
// design note: a rank-domain value runs 0 (Ace-low) .. 12 (King) .. 13
// (Ace-high), with 1..12 coinciding with the raw Two..King rank ordinal.
// Every contiguous sub-run of length 3..13 within a maximal consecutive
// run is emitted; length-14 windows are excluded since they would use
// the single physical Ace at both ends.
func findRuns(hand []Card) []Meld {
	bySuit := map[Suit]map[int]Card{}
	for _, c := range hand {
		if bySuit[c.Suit] == nil {
			bySuit[c.Suit] = map[int]Card{}
		}
		if c.Rank == Ace {
			bySuit[c.Suit][0] = c
			bySuit[c.Suit][13] = c
		} else {
			bySuit[c.Suit][int(c.Rank)] = c
		}
	}

	var melds []Meld
	for _, domain := range bySuit {
		keys := make([]int, 0, len(domain))
		for k := range domain {
			keys = append(keys, k)
		}
		sort.Ints(keys)

		i := 0
		for i < len(keys) {
			j := i
			for j+1 < len(keys) && keys[j+1] == keys[j]+1 {
				j++
			}
			lo, hi := keys[i], keys[j]
			maxLen := hi - lo + 1
			if maxLen > 13 {
				maxLen = 13
			}
			for length := 3; length <= maxLen; length++ {
				for start := lo; start+length-1 <= hi; start++ {
					end := start + length - 1
					cards := make([]Card, 0, length)
					for d := start; d <= end; d++ {
						cards = append(cards, domain[d])
					}
					melds = append(melds, Meld{Type: MeldTypeRun, Cards: cards})
				}
			}
			i = j + 1
		}
	}
	return melds
}

// candidateMeldList builds and deterministically orders the full set of
// candidate melds (sets and runs) extractable from hand, used both by
// CandidateMelds and by the layoff solver.
func candidateMeldList(hand []Card) []Meld {
	melds := append(findSets(hand), findRuns(hand)...)
	sort.Slice(melds, func(i, j int) bool {
		if len(melds[i].Cards) != len(melds[j].Cards) {
			return len(melds[i].Cards) > len(melds[j].Cards)
		}
		return melds[i].Cards[0].Less(melds[j].Cards[0])
	})
	return melds
}

func handDeadwood(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.Rank.DeadwoodValue()
	}
	return total
}

// CandidateMelds enumerates candidate SplitHands for hand: every
// disjoint combination of 1, 2, or 3 candidate melds (a 10- or 11-card
// hand cannot support 4 disjoint melds of size >= 3), plus the
// degenerate all-unmelded candidate. If maxDeadwood is non-nil,
// candidates whose deadwood exceeds it are discarded. If stopOnGin is
// true, the first zero-deadwood candidate found short-circuits the
// search and is returned alone.
func CandidateMelds(hand []Card, maxDeadwood *int, stopOnGin bool) ([]SplitHand, error) {
	if err := validateHand(hand); err != nil {
		return nil, err
	}

	melds := candidateMeldList(hand)
	var results []SplitHand

	for k := 1; k <= 3 && k <= len(melds); k++ {
		gin, sh := combineMelds(hand, melds, k, maxDeadwood, stopOnGin)
		if gin {
			return []SplitHand{sh[0]}, nil
		}
		results = append(results, sh...)
	}

	deadwood := handDeadwood(hand)
	degenerate := SplitHand{Deadwood: deadwood, Unmelded: append([]Card{}, hand...)}
	if maxDeadwood == nil || deadwood <= *maxDeadwood {
		if deadwood == 0 && stopOnGin {
			return []SplitHand{degenerate}, nil
		}
		results = append(results, degenerate)
	}

	return results, nil
}

// combineMelds enumerates all k-subsets of melds (by index), rejecting
// overlapping subsets, and returns (true, [gin candidate]) if stopOnGin
// short-circuits on a zero-deadwood find, else (false, all qualifying
// candidates for this k).
func combineMelds(hand []Card, melds []Meld, k int, maxDeadwood *int, stopOnGin bool) (bool, []SplitHand) {
	var results []SplitHand
	combo := make([]int, k)

	var recurse func(start, depth int) bool
	recurse = func(start, depth int) bool {
		if depth == k {
			var mask uint64
			overlap := false
			for _, idx := range combo {
				m := melds[idx].mask()
				if mask&m != 0 {
					overlap = true
					break
				}
				mask |= m
			}
			if overlap {
				return false
			}

			unmelded := make([]Card, 0, len(hand))
			deadwood := 0
			for _, c := range hand {
				if mask&(1<<uint(c.ID())) == 0 {
					unmelded = append(unmelded, c)
					deadwood += c.Rank.DeadwoodValue()
				}
			}
			if maxDeadwood != nil && deadwood > *maxDeadwood {
				return false
			}

			chosen := make([]Meld, k)
			for i, idx := range combo {
				chosen[i] = melds[idx]
			}
			sh := SplitHand{Deadwood: deadwood, Melds: chosen, Unmelded: unmelded}

			if deadwood == 0 && stopOnGin {
				results = []SplitHand{sh}
				return true
			}
			results = append(results, sh)
			return false
		}

		for i := start; i < len(melds); i++ {
			combo[depth] = i
			if recurse(i+1, depth+1) {
				return true
			}
		}
		return false
	}

	gin := recurse(0, 0)
	return gin, results
}

// SplitMelds is the meld solver's public entry point. With chosen == nil
// it searches for the deadwood-minimizing partition of hand. With chosen
// non-nil, it trusts the caller's melds and only validates and computes
// deadwood — no search is performed.
func SplitMelds(hand []Card, chosen []Meld) (SplitHand, error) {
	if err := validateHand(hand); err != nil {
		return SplitHand{}, err
	}

	if chosen != nil {
		return splitWithChosenMelds(hand, chosen)
	}

	candidates, err := CandidateMelds(hand, nil, true)
	if err != nil {
		return SplitHand{}, err
	}
	return sortSplitHand(selectBest(candidates)), nil
}

func splitWithChosenMelds(hand []Card, chosen []Meld) (SplitHand, error) {
	handIDs := make(map[int]bool, len(hand))
	for _, c := range hand {
		handIDs[c.ID()] = true
	}

	var mask uint64
	for _, m := range chosen {
		if !isValidMeld(m) {
			return SplitHand{}, fmt.Errorf("%w: %v", ErrInvalidMeld, m.Cards)
		}
		mm := m.mask()
		if mask&mm != 0 {
			return SplitHand{}, fmt.Errorf("%w: overlapping melds", ErrInvalidMeld)
		}
		for _, c := range m.Cards {
			if !handIDs[c.ID()] {
				return SplitHand{}, fmt.Errorf("%w: card %s not in hand", ErrInvalidMeld, c)
			}
		}
		mask |= mm
	}

	unmelded := make([]Card, 0, len(hand))
	deadwood := 0
	for _, c := range hand {
		if mask&(1<<uint(c.ID())) == 0 {
			unmelded = append(unmelded, c)
			deadwood += c.Rank.DeadwoodValue()
		}
	}

	return sortSplitHand(SplitHand{Deadwood: deadwood, Melds: append([]Meld{}, chosen...), Unmelded: unmelded}), nil
}

// isValidMeld checks that m is a legal set (3 or 4 cards, one rank,
// distinct suits) or run (>=3 cards, one suit, consecutive ranks with
// ace-duality respected at exactly one end).
func isValidMeld(m Meld) bool {
	switch m.Type {
	case MeldTypeSet:
		if len(m.Cards) != 3 && len(m.Cards) != 4 {
			return false
		}
		rank := m.Cards[0].Rank
		seenSuits := map[Suit]bool{}
		for _, c := range m.Cards {
			if c.Rank != rank || seenSuits[c.Suit] {
				return false
			}
			seenSuits[c.Suit] = true
		}
		return true
	case MeldTypeRun:
		if len(m.Cards) < 3 {
			return false
		}
		suit := m.Cards[0].Suit
		for _, c := range m.Cards {
			if c.Suit != suit {
				return false
			}
		}
		return isConsecutiveRunDomain(m.Cards)
	default:
		return false
	}
}

// isConsecutiveRunDomain checks that cards, interpreted as a same-suit
// run, form a contiguous sequence in the 0..13 ace-duality domain with
// the ace (if present) resolved consistently at exactly one end.
func isConsecutiveRunDomain(cards []Card) bool {
	hasAce := false
	nonAce := make([]int, 0, len(cards))
	for _, c := range cards {
		if c.Rank == Ace {
			if hasAce {
				return false
			}
			hasAce = true
		} else {
			nonAce = append(nonAce, int(c.Rank))
		}
	}
	sort.Ints(nonAce)
	for i := 1; i < len(nonAce); i++ {
		if nonAce[i] != nonAce[i-1]+1 {
			return false
		}
	}
	if !hasAce {
		return len(nonAce) == len(cards)
	}
	if len(nonAce) == 0 {
		return len(cards) == 1
	}
	// Ace must sit immediately below the lowest non-ace rank (low) or
	// immediately above the highest (high, i.e. the non-ace ranks reach
	// King).
	return nonAce[0] == int(Two) || nonAce[len(nonAce)-1] == int(King)
}

// selectBest applies the tie-break rule: minimum deadwood, then
// lexicographic on (-number_of_melds, -largest_meld_size,
// smallest_card_in_unmelded).
func selectBest(candidates []SplitHand) SplitHand {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if splitHandBetter(c, best) {
			best = c
		}
	}
	return best
}

func splitHandBetter(a, b SplitHand) bool {
	if a.Deadwood != b.Deadwood {
		return a.Deadwood < b.Deadwood
	}
	if len(a.Melds) != len(b.Melds) {
		return len(a.Melds) > len(b.Melds)
	}
	if la, lb := largestMeldSize(a.Melds), largestMeldSize(b.Melds); la != lb {
		return la > lb
	}
	as, aok := smallestCard(a.Unmelded)
	bs, bok := smallestCard(b.Unmelded)
	if !aok || !bok {
		return false
	}
	return as.Less(bs)
}

func largestMeldSize(melds []Meld) int {
	max := 0
	for _, m := range melds {
		if len(m.Cards) > max {
			max = len(m.Cards)
		}
	}
	return max
}

func smallestCard(cards []Card) (Card, bool) {
	if len(cards) == 0 {
		return Card{}, false
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Less(best) {
			best = c
		}
	}
	return best, true
}

// sortSplitHand orders melds by descending size then by the
// smallest-card rule, sorts unmelded cards ascending, and leaves each
// meld's internal card order as constructed (sets are suit-sorted and
// runs are domain-ordered at construction time, which already places a
// trailing ace-high last).
func sortSplitHand(sh SplitHand) SplitHand {
	melds := append([]Meld{}, sh.Melds...)
	sort.Slice(melds, func(i, j int) bool {
		if len(melds[i].Cards) != len(melds[j].Cards) {
			return len(melds[i].Cards) > len(melds[j].Cards)
		}
		si, _ := smallestCard(melds[i].Cards)
		sj, _ := smallestCard(melds[j].Cards)
		return si.Less(sj)
	})

	unmelded := append([]Card{}, sh.Unmelded...)
	sort.Slice(unmelded, func(i, j int) bool { return unmelded[i].Less(unmelded[j]) })

	return SplitHand{Deadwood: sh.Deadwood, Melds: melds, Unmelded: unmelded}
}
