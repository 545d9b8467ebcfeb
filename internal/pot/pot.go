// Package pot builds ordered side pots from per-seat contributions and fold
// eligibility, following the layered construction in the engine spec.
package pot

import "sort"

// Pot is one layer of the pot structure: an amount and the seats eligible to
// win it.
type Pot struct {
	Amount   int
	Eligible []int
}

// Build constructs the ordered list of pots from each seat's cumulative
// contribution this hand and whether it is still eligible (did not fold).
// Only seats with a positive contribution participate; folded seats still
// count toward pot amounts but never appear in Eligible.
//
// Construction is layered (spec §4.3): repeatedly take the smallest
// remaining contribution among contributing seats, form a pot of that
// layer's width times the number of contributors, and subtract it out. A
// layer with no eligible seats (everyone who reached it folded) carries its
// amount forward onto the next non-empty layer; if there is no next layer,
// the amount is forfeited.
func Build(contributions map[int]int, eligible map[int]bool) []Pot {
	seats := make([]int, 0, len(contributions))
	for seat, amt := range contributions {
		if amt > 0 {
			seats = append(seats, seat)
		}
	}
	sort.Ints(seats)

	rem := make(map[int]int, len(seats))
	for _, s := range seats {
		rem[s] = contributions[s]
	}

	var pots []Pot
	var carry int

	for {
		contributing := make([]int, 0, len(seats))
		for _, s := range seats {
			if rem[s] > 0 {
				contributing = append(contributing, s)
			}
		}
		if len(contributing) == 0 {
			break
		}

		layer := rem[contributing[0]]
		for _, s := range contributing {
			if rem[s] < layer {
				layer = rem[s]
			}
		}

		amount := layer*len(contributing) + carry
		carry = 0

		var elig []int
		for _, s := range contributing {
			if eligible[s] {
				elig = append(elig, s)
			}
		}

		if len(elig) == 0 {
			carry = amount
		} else {
			pots = append(pots, Pot{Amount: amount, Eligible: elig})
		}

		for _, s := range contributing {
			rem[s] -= layer
		}
	}

	// A positive carry surviving past the last layer means the final layer
	// had no eligible seats and there is no further layer to absorb it;
	// those chips are forfeited to the house rather than returned to any
	// pot (§4.3).
	return pots
}

// Total sums the amounts across all pots, for chip-conservation checks.
func Total(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}
