package table

import (
	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/pot"
)

// Phase identifies where a hand is in the preflop→showdown state machine
// (spec §4.5). The zero value, PhaseIdle, is also the state of a table that
// has never dealt a hand.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreflop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreflop:
		return "preflop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// Hand is the ephemeral state that exists only while a hand is being played.
// It is discarded (t.Hand = nil) once the table returns to idle.
type Hand struct {
	Deck      *deck.Deck
	Community []deck.Card
	Phase     Phase

	HoleCards map[int][2]deck.Card
	Folded    [NSeats]bool

	// ActiveSeats lists, in seating order starting at the seat left of the
	// dealer button, every seat dealt into this hand. It never changes once
	// the hand starts, even as seats fold or go all-in.
	ActiveSeats []int

	Contributions  map[int]int // cumulative chips put in this hand, per seat
	CurrentBets    map[int]int // chips put in during the current street
	ActedThisRound map[int]bool
	PotTotal       int
	LastPotTotal   int // PotTotal just before showdown distribution, kept for display

	TurnSeat      int // -1 once no seat owes an action
	MinRaise      int
	LastAggressor int // -1 if nobody has raised yet this street

	DealerSeat int
	SBSeat     int
	BBSeat     int

	preHandStacks map[int]int
}

// wasDealt reports whether seatIdx received hole cards this hand.
func (h *Hand) wasDealt(seatIdx int) bool {
	_, ok := h.HoleCards[seatIdx]
	return ok
}

func (h *Hand) activeUnfolded() []int {
	var out []int
	for _, s := range h.ActiveSeats {
		if !h.Folded[s] {
			out = append(out, s)
		}
	}
	return out
}

// StartHand transitions the table from idle to preflop: it validates
// preconditions, rotates the dealer button, shuffles, posts blinds, deals
// hole cards, and sets the first seat to act (spec §4.5).
func (t *Table) StartHand(clientRef string) error {
	defer t.recoverToIdle()
	if t.Owner == "" || t.Owner != clientRef {
		return ErrNotOwner
	}
	if t.Hand != nil && t.Hand.Phase != PhaseIdle {
		return ErrHandInProgress
	}
	occupied := t.occupiedSeatsWithChips()
	if len(occupied) < 2 {
		return ErrNotEnoughPlayers
	}

	t.DealerButton = t.advanceDealerButton(occupied)

	d := deck.New()
	d.Shuffle(t.rng)

	order := t.seatOrderFromDealer(occupied)

	h := &Hand{
		Deck:           d,
		Phase:          PhasePreflop,
		HoleCards:      make(map[int][2]deck.Card, len(order)),
		ActiveSeats:    order,
		Contributions:  make(map[int]int, len(order)),
		CurrentBets:    make(map[int]int, len(order)),
		ActedThisRound: make(map[int]bool, len(order)),
		LastAggressor:  -1,
		MinRaise:       BigBlind,
		DealerSeat:     t.DealerButton,
		preHandStacks:  t.snapshotStacks(),
	}
	t.Hand = h

	// Deal two cards to each seat, one card at a time around the table,
	// starting at the seat left of the dealer, matching a real deal.
	for round := 0; round < 2; round++ {
		for _, seat := range order {
			card := d.Draw()
			hole := h.HoleCards[seat]
			hole[round] = card
			h.HoleCards[seat] = hole
		}
	}

	// Multiway, order[0] (left of the dealer) is the small blind and
	// order[1] the big blind. Heads-up, the dealer (last in order) posts the
	// small blind and order[0] the big blind — the supplemented heads-up rule.
	h.SBSeat, h.BBSeat = order[0], order[1]
	if len(order) == 2 {
		h.SBSeat, h.BBSeat = t.DealerButton, order[0]
	}

	t.postBlind(h.SBSeat, SmallBlind)
	t.postBlind(h.BBSeat, BigBlind)

	if len(order) == 2 {
		h.TurnSeat = h.SBSeat
	} else {
		h.TurnSeat = t.nextSeatToAct(h.BBSeat)
	}

	return nil
}

// advanceDealerButton returns the next occupied-with-chips seat strictly
// after the current button, wrapping to the first occupied seat if there is
// no current button yet.
func (t *Table) advanceDealerButton(occupied []int) int {
	if t.DealerButton < 0 {
		return occupied[0]
	}
	return t.nextOccupiedWithChipsFromSet(t.DealerButton, occupied)
}

func (t *Table) nextOccupiedWithChipsFromSet(from int, occupied []int) int {
	for i := 1; i <= NSeats; i++ {
		idx := (from + i) % NSeats
		for _, o := range occupied {
			if o == idx {
				return idx
			}
		}
	}
	return occupied[0]
}

// seatOrderFromDealer returns occupied seats in clockwise order starting
// immediately after the dealer button.
func (t *Table) seatOrderFromDealer(occupied []int) []int {
	out := make([]int, 0, len(occupied))
	for i := 1; i <= NSeats; i++ {
		idx := (t.DealerButton + i) % NSeats
		for _, o := range occupied {
			if o == idx {
				out = append(out, idx)
			}
		}
	}
	return out
}

func (t *Table) postBlind(seat, amount int) int {
	s := &t.Seats[seat]
	posted := amount
	if posted > s.Stack {
		posted = s.Stack
	}
	s.Stack -= posted
	t.Hand.Contributions[seat] += posted
	t.Hand.CurrentBets[seat] += posted
	t.Hand.PotTotal += posted
	return posted
}

// nextSeatToAct returns the next active, non-folded, non-all-in seat after
// `from`, wrapping through ActiveSeats order, or -1 if none remain.
func (t *Table) nextSeatToAct(from int) int {
	h := t.Hand
	n := len(h.ActiveSeats)
	start := indexOf(h.ActiveSeats, from)
	if start < 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		seat := h.ActiveSeats[(start+i)%n]
		if !h.Folded[seat] && t.Seats[seat].Stack > 0 {
			return seat
		}
	}
	return -1
}

func indexOf(seats []int, target int) int {
	for i, s := range seats {
		if s == target {
			return i
		}
	}
	return -1
}

// checkFoldWin awards the pot uncontested if exactly one seat remains
// unfolded (spec §8 scenario 5: immediate award, no showdown reveal).
func (t *Table) checkFoldWin() {
	h := t.Hand
	remaining := h.activeUnfolded()
	if len(remaining) != 1 {
		return
	}
	winner := remaining[0]
	pots := pot.Build(h.Contributions, oneSeatEligible(h.Contributions, winner))
	amount := pot.Total(pots)
	t.Seats[winner].Stack += amount
	t.History.record(t.snapshotForHistory(map[int]int{winner: amount}, nil))
	t.Hand = nil
}

func oneSeatEligible(contributions map[int]int, winner int) map[int]bool {
	elig := make(map[int]bool, len(contributions))
	for seat := range contributions {
		elig[seat] = seat == winner
	}
	return elig
}

// isBettingComplete reports whether every live seat (not folded, not
// all-in) has acted this street and matched the street's current bet. The
// preflop big-blind option falls out of this naturally: ActedThisRound
// starts false for every seat including the blinds, so the big blind is
// still "pending" even though its CurrentBet already equals the street max,
// until it explicitly checks or raises.
func (t *Table) isBettingComplete() bool {
	h := t.Hand
	maxBet := 0
	for _, bet := range h.CurrentBets {
		if bet > maxBet {
			maxBet = bet
		}
	}
	for _, seat := range h.ActiveSeats {
		if h.Folded[seat] || t.Seats[seat].Stack == 0 {
			continue
		}
		if h.CurrentBets[seat] != maxBet || !h.ActedThisRound[seat] {
			return false
		}
	}
	return true
}

// advanceStreet moves the hand from its current phase to the next,
// dealing community cards as needed, or resolves showdown on the river
// (spec §4.5). It resets per-street betting state.
func (t *Table) advanceStreet() {
	h := t.Hand
	for seat := range h.CurrentBets {
		h.CurrentBets[seat] = 0
	}
	for seat := range h.ActedThisRound {
		h.ActedThisRound[seat] = false
	}
	h.LastAggressor = -1
	h.MinRaise = BigBlind

	switch h.Phase {
	case PhasePreflop:
		h.Deck.Draw() // burn
		h.Community = append(h.Community, h.Deck.Draw(), h.Deck.Draw(), h.Deck.Draw())
		h.Phase = PhaseFlop
	case PhaseFlop:
		h.Deck.Draw()
		h.Community = append(h.Community, h.Deck.Draw())
		h.Phase = PhaseTurn
	case PhaseTurn:
		h.Deck.Draw()
		h.Community = append(h.Community, h.Deck.Draw())
		h.Phase = PhaseRiver
	case PhaseRiver:
		t.runShowdown()
		return
	default:
		t.abortHand("advanceStreet called outside a betting phase")
		return
	}

	if len(h.activeUnfolded()) <= 1 {
		t.checkFoldWin()
		return
	}

	// If every remaining seat is all-in, there is no more betting to do:
	// keep dealing straight through to showdown (spec: all-in seats run the
	// board out with no further action).
	if t.noBettingPossible() {
		t.advanceStreet()
		return
	}

	h.TurnSeat = t.firstToActPostflop()
}

// noBettingPossible reports whether fewer than two unfolded seats still
// have chips behind, meaning no further action is possible this hand.
func (t *Table) noBettingPossible() bool {
	canAct := 0
	for _, seat := range t.Hand.ActiveSeats {
		if !t.Hand.Folded[seat] && t.Seats[seat].Stack > 0 {
			canAct++
		}
	}
	return canAct < 2
}

// firstToActPostflop is the first active, non-folded, non-all-in seat
// after the dealer button — the small blind in a multiway hand, the big
// blind heads-up (spec's supplemented heads-up rule).
func (t *Table) firstToActPostflop() int {
	return t.nextSeatToAct(t.Hand.DealerSeat)
}

// runShowdown evaluates every unfolded hand, builds side pots, and awards
// them, then returns the table to idle.
func (t *Table) runShowdown() {
	h := t.Hand
	h.Phase = PhaseShowdown
	scores := t.evaluateShowdown()

	eligible := make(map[int]bool, len(h.Contributions))
	for seat := range h.Contributions {
		eligible[seat] = !h.Folded[seat]
	}
	pots := pot.Build(h.Contributions, eligible)
	won := t.distributePots(pots, scores)
	h.LastPotTotal = h.PotTotal
	h.PotTotal = 0 // already moved into winners' stacks; avoid double-counting in GetTotalChips

	t.History.record(t.snapshotForHistory(won, scores))
	// The hand is left in PhaseShowdown, not cleared, so the View
	// projection keeps revealing cards until the idle timer fires (spec's
	// showdown-to-idle transition is a timed UI beat, not an instantaneous
	// state change).
	t.clock.AfterFunc(PostShowdownIdleDelay, t.fireIdleTimeout)
}

// fireIdleTimeout is the clock callback scheduled by runShowdown.
func (t *Table) fireIdleTimeout() {
	if t.OnIdleTimeout != nil {
		t.OnIdleTimeout()
		return
	}
	t.FinishHand()
}

// FinishHand returns the table to idle after a completed showdown. It is a
// no-op if no hand is in the showdown phase; called directly by tests or
// via fireIdleTimeout once the post-showdown display delay elapses.
func (t *Table) FinishHand() {
	if t.Hand != nil && t.Hand.Phase == PhaseShowdown {
		t.Hand = nil
	}
}
