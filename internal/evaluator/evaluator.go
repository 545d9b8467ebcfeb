// Package evaluator ranks 5-to-7 card Texas Hold'em hands.
//
// The approach mirrors the classic lookup-free evaluators in this family:
// count rank frequencies into a 13-slot table, build a suit/rank presence
// bitmap, and walk hand categories from strongest to weakest, picking the
// first that matches. Straight detection (including the wheel) runs on a
// bitmap so both regular straights and straight flushes share one routine.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-table/internal/deck"
)

// Category is a poker hand category; higher values are stronger hands.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is the comparable result of evaluating a hand: a category plus up to
// five tie-breaking rank indices (0=Two .. 12=Ace), most significant first,
// unused slots left at -1 so they never outrank a real kicker of rank Two.
type Score struct {
	Category    Category
	Tiebreakers [5]int
	Description string
}

// CompareScores returns -1 if a is weaker than b, 0 if equal, 1 if stronger.
// The comparison is total: category first, then tiebreakers in order.
func CompareScores(a, b Score) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	for i := range a.Tiebreakers {
		if a.Tiebreakers[i] != b.Tiebreakers[i] {
			if a.Tiebreakers[i] < b.Tiebreakers[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Evaluate scores the best 5-card hand obtainable from 5 to 7 cards.
func Evaluate(cards []deck.Card) Score {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("evaluator: Evaluate requires 5-7 cards, got %d", len(cards)))
	}

	var rankCounts [13]int
	var suitRankMask [4]uint16
	var rankMask uint16

	for _, c := range cards {
		idx := c.Rank.Index()
		rankCounts[idx]++
		rankMask |= 1 << uint(idx)
		suitRankMask[c.Suit] |= 1 << uint(idx)
	}

	for suit := range suitRankMask {
		mask := suitRankMask[suit]
		if bitCount(mask) < 5 {
			continue
		}
		if high, ok := straightHigh(mask); ok {
			return score(StraightFlush, []int{high}, nil)
		}
		top := topRanksFromMask(mask, 5)
		return score(Flush, top, nil)
	}

	fours := ranksWithCount(rankCounts, 4)
	threes := ranksWithCount(rankCounts, 3)
	pairs := ranksWithCount(rankCounts, 2)

	if len(fours) > 0 {
		quad := fours[0]
		kicker := highestExcluding(rankMask, quad)
		return score(FourOfAKind, []int{quad, kicker}, nil)
	}

	if len(threes) > 0 {
		trips := threes[0]
		var pairRank int
		found := false
		if len(threes) > 1 {
			pairRank, found = threes[1], true
		} else if len(pairs) > 0 {
			pairRank, found = pairs[0], true
		}
		if found {
			return score(FullHouse, []int{trips, pairRank}, nil)
		}
	}

	if high, ok := straightHigh(rankMask); ok {
		return score(Straight, []int{high}, nil)
	}

	if len(threes) > 0 {
		trips := threes[0]
		kickers := topExcluding(rankMask, 2, trips)
		return score(ThreeOfAKind, append([]int{trips}, kickers...), nil)
	}

	if len(pairs) >= 2 {
		hi, lo := pairs[0], pairs[1]
		kicker := highestExcluding(rankMask, hi, lo)
		return score(TwoPair, []int{hi, lo, kicker}, nil)
	}

	if len(pairs) == 1 {
		kickers := topExcluding(rankMask, 3, pairs[0])
		return score(OnePair, append([]int{pairs[0]}, kickers...), nil)
	}

	top := topRanksFromMask(rankMask, 5)
	return score(HighCard, top, nil)
}

// score packs a category and an ordered rank list into a Score, generating a
// human-readable description from the ranks actually used.
func score(cat Category, ranks []int, _ []int) Score {
	var s Score
	s.Category = cat
	for i := range s.Tiebreakers {
		s.Tiebreakers[i] = -1
	}
	for i, r := range ranks {
		if i >= len(s.Tiebreakers) {
			break
		}
		s.Tiebreakers[i] = r
	}
	s.Description = describe(cat, ranks)
	return s
}

func describe(cat Category, ranks []int) string {
	name := func(idx int) string {
		return rankName(idx)
	}
	switch cat {
	case StraightFlush:
		if ranks[0] == rankIdxFive {
			return "Straight Flush, Five high"
		}
		return fmt.Sprintf("Straight Flush, %s high", name(ranks[0]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %ss", name(ranks[0]))
	case FullHouse:
		return fmt.Sprintf("Full House, %ss full of %ss", name(ranks[0]), name(ranks[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", name(ranks[0]))
	case Straight:
		if ranks[0] == rankIdxFive {
			return "Straight, Five high"
		}
		return fmt.Sprintf("Straight, %s high", name(ranks[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %ss", name(ranks[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %ss and %ss", name(ranks[0]), name(ranks[1]))
	case OnePair:
		return fmt.Sprintf("Pair of %ss", name(ranks[0]))
	default:
		return fmt.Sprintf("High Card, %s", name(ranks[0]))
	}
}

const rankIdxFive = 3 // deck.Five.Index()

func rankName(idx int) string {
	r := deck.Rank(idx + int(deck.Two))
	switch r {
	case deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine:
		return r.String()
	case deck.Ten:
		return "Ten"
	case deck.Jack:
		return "Jack"
	case deck.Queen:
		return "Queen"
	case deck.King:
		return "King"
	case deck.Ace:
		return "Ace"
	}
	return "?"
}

func bitCount(mask uint16) int {
	n := 0
	for mask != 0 {
		n += int(mask & 1)
		mask >>= 1
	}
	return n
}

// straightHigh finds the highest 5-consecutive-bit run in mask, including the
// wheel (A-2-3-4-5), returning the top-of-straight rank index and whether a
// straight was found. The wheel reports index 3 (Five), per spec §4.2.
func straightHigh(mask uint16) (int, bool) {
	const wheel = uint16(1<<12 | 1<<0 | 1<<1 | 1<<2 | 1<<3) // A,2,3,4,5
	for top := 12; top >= 4; top-- {
		run := uint16(0x1F) << uint(top-4)
		if mask&run == run {
			return top, true
		}
	}
	if mask&wheel == wheel {
		return 3, true
	}
	return 0, false
}

func ranksWithCount(counts [13]int, n int) []int {
	var out []int
	for rank := 12; rank >= 0; rank-- {
		if counts[rank] == n {
			out = append(out, rank)
		}
	}
	return out
}

func topRanksFromMask(mask uint16, n int) []int {
	var out []int
	for rank := 12; rank >= 0 && len(out) < n; rank-- {
		if mask&(1<<uint(rank)) != 0 {
			out = append(out, rank)
		}
	}
	return out
}

func highestExcluding(mask uint16, exclude ...int) int {
	for _, e := range exclude {
		mask &^= 1 << uint(e)
	}
	for rank := 12; rank >= 0; rank-- {
		if mask&(1<<uint(rank)) != 0 {
			return rank
		}
	}
	return 0
}

func topExcluding(mask uint16, n int, exclude ...int) []int {
	for _, e := range exclude {
		mask &^= 1 << uint(e)
	}
	return topRanksFromMask(mask, n)
}

// String renders a Score as a human-readable string, primarily for logs
// and the hand-result view projected to clients.
func (s Score) String() string {
	return s.Description
}

// sortDescending returns a copy of ranks ordered from highest to lowest.
func sortDescending(ranks []int) []int {
	sorted := append([]int(nil), ranks...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted
}
