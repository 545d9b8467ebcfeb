package table

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
	"github.com/lox/holdem-table/internal/pot"
)

// PostShowdownIdleDelay is how long a hand stays in PhaseShowdown — hole
// cards revealed, pot awarded — before the table returns to idle.
const PostShowdownIdleDelay = 2500 * time.Millisecond

// Table is the single shared, authoritative state for one table: its seats,
// owner, dealer button, and (while a hand is live) the active Hand. Every
// mutating method assumes it is called from the single serialized writer
// (spec §5) — Table itself holds no lock, because there must never be a
// second caller to contend with.
type Table struct {
	Seats        [NSeats]Seat
	Owner        string
	DealerButton int // -1 until the first hand is dealt
	Hand         *Hand

	rng    *rand.Rand
	logger *log.Logger
	clock  quartz.Clock

	History *History

	// OnIdleTimeout, when set, is called instead of FinishHand once the
	// post-showdown delay elapses — the server wires this to push the
	// transition through its own single-writer command queue rather than
	// letting the clock's goroutine mutate Table directly.
	OnIdleTimeout func()
}

// NewTable builds an idle table. rng drives shuffling and is reused (not
// reseeded) across hands, the way a real process-lifetime RNG would be;
// tests that need reproducible deals pass a seeded *rand.Rand. clock drives
// the post-showdown idle timer; pass quartz.NewMock(t) in tests, nil for a
// real wall-clock table.
func NewTable(rng *rand.Rand, clock quartz.Clock, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.Default()
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Table{
		DealerButton: -1,
		rng:          rng,
		clock:        clock,
		logger:       logger.WithPrefix("table"),
		History:      newHistory(20),
	}
}

// GetTotalChips sums every seat's stack plus the live hand's pot, for chip
// conservation checks (spec §3 invariant 1, §8).
func (t *Table) GetTotalChips() int {
	total := 0
	for _, s := range t.Seats {
		total += s.Stack
	}
	if t.Hand != nil {
		total += t.Hand.PotTotal
	}
	return total
}

// snapshotStacks captures every seat's current stack, used to roll back a
// hand that aborts on an internal invariant violation (spec §7).
func (t *Table) snapshotStacks() map[int]int {
	snap := make(map[int]int, NSeats)
	for i := range t.Seats {
		snap[i] = t.Seats[i].Stack
	}
	return snap
}

func (t *Table) restoreStacks(snap map[int]int) {
	for i, stack := range snap {
		t.Seats[i].Stack = stack
	}
}

// abortHand logs a fatal internal condition, restores stacks from the
// pre-hand snapshot, and returns the table to idle (spec §7: internal
// invariant violations are programming errors, not user-facing rejections).
func (t *Table) abortHand(reason string) {
	t.logger.Error("aborting hand on internal invariant violation", "reason", reason)
	if t.Hand != nil {
		t.restoreStacks(t.Hand.preHandStacks)
	}
	t.Hand = nil
}

// recoverToIdle is deferred by every exported mutator that can reach a
// programming-error panic (e.g. drawing from an empty deck). It converts the
// panic into the same abort-to-idle path as a detected invariant violation,
// so a bug in street/deal bookkeeping degrades to a reset table instead of
// taking the single writer down (spec §7).
func (t *Table) recoverToIdle() {
	if r := recover(); r != nil {
		t.abortHand(fmt.Sprintf("panic: %v", r))
	}
}

// evaluateShowdown runs the Evaluator over every non-folded active seat and
// returns their scores keyed by seat.
func (t *Table) evaluateShowdown() map[int]evaluator.Score {
	h := t.Hand
	scores := make(map[int]evaluator.Score, len(h.ActiveSeats))
	for _, seat := range h.ActiveSeats {
		if h.Folded[seat] {
			continue
		}
		hole := h.HoleCards[seat]
		cards := append([]deck.Card{hole[0], hole[1]}, h.Community...)
		scores[seat] = evaluator.Evaluate(cards)
	}
	return scores
}

// distributePots awards every pot's amount to the best-scoring eligible
// seat(s) among pots, splitting ties evenly with any remainder handed out one
// chip per winner, starting from the earliest winner after the dealer button
// (a conventional, deterministic odd-chip rule; spec §4.3 does not specify one).
func (t *Table) distributePots(pots []pot.Pot, scores map[int]evaluator.Score) map[int]int {
	won := make(map[int]int)
	for _, p := range pots {
		if len(p.Eligible) == 0 {
			continue
		}
		best := p.Eligible[0]
		for _, seat := range p.Eligible[1:] {
			if evaluator.CompareScores(scores[seat], scores[best]) > 0 {
				best = seat
			}
		}
		var winners []int
		for _, seat := range p.Eligible {
			if evaluator.CompareScores(scores[seat], scores[best]) == 0 {
				winners = append(winners, seat)
			}
		}
		share := p.Amount / len(winners)
		remainder := p.Amount % len(winners)
		order := t.orderFromDealer(winners)
		for i, seat := range order {
			amt := share
			if i < remainder {
				amt++
			}
			won[seat] += amt
			t.Seats[seat].Stack += amt
		}
	}
	return won
}

// orderFromDealer returns seats sorted starting just after the dealer
// button, wrapping around — used to assign odd chips deterministically.
func (t *Table) orderFromDealer(seats []int) []int {
	button := t.DealerButton
	if button < 0 {
		button = 0
	}
	out := make([]int, len(seats))
	copy(out, seats)
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			distI := ((out[i] - button - 1) + NSeats) % NSeats
			distJ := ((out[j] - button - 1) + NSeats) % NSeats
			if distJ < distI {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}
