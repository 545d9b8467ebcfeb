package table

// ActionKind is the set of moves a seat can make on its turn (spec §4.6).
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionBet   ActionKind = "bet"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "all-in"
)

// Action applies one seat's move to the current hand. amount is the seat's
// intended total current-street bet after a bet/raise (i.e. "raise to
// amount"), and is ignored for fold/check/call/all-in.
func (t *Table) Action(clientRef string, kind ActionKind, amount int) error {
	defer t.recoverToIdle()
	seatIdx := t.seatOf(clientRef)
	if seatIdx < 0 {
		return ErrNotSeated
	}
	if t.Hand == nil || !isBettingPhase(t.Hand.Phase) {
		return ErrNotInBettingPhase
	}
	h := t.Hand
	if h.TurnSeat != seatIdx {
		return ErrNotYourTurn
	}
	if h.Folded[seatIdx] {
		return ErrAlreadyFolded
	}

	var err error
	switch kind {
	case ActionFold:
		err = t.applyFold(seatIdx)
	case ActionCheck:
		err = t.applyCheck(seatIdx)
	case ActionCall:
		err = t.applyCall(seatIdx)
	case ActionBet, ActionRaise:
		err = t.applyBetOrRaise(seatIdx, amount)
	case ActionAllIn:
		err = t.applyAllIn(seatIdx)
	default:
		return ErrUnknownAction
	}
	if err != nil {
		return err
	}

	t.afterAction(seatIdx)
	return nil
}

func isBettingPhase(p Phase) bool {
	switch p {
	case PhasePreflop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	default:
		return false
	}
}

func (t *Table) maxBet() int {
	max := 0
	for _, bet := range t.Hand.CurrentBets {
		if bet > max {
			max = bet
		}
	}
	return max
}

func (t *Table) applyFold(seatIdx int) error {
	h := t.Hand
	h.Folded[seatIdx] = true
	h.ActedThisRound[seatIdx] = true
	return nil
}

func (t *Table) applyCheck(seatIdx int) error {
	h := t.Hand
	if h.CurrentBets[seatIdx] != t.maxBet() {
		return ErrCannotCheck
	}
	h.ActedThisRound[seatIdx] = true
	return nil
}

func (t *Table) applyCall(seatIdx int) error {
	h := t.Hand
	owed := t.maxBet() - h.CurrentBets[seatIdx]
	if owed < 0 {
		owed = 0
	}
	stack := &t.Seats[seatIdx].Stack
	if owed > *stack {
		owed = *stack // calling all-in for less than the full bet
	}
	*stack -= owed
	h.CurrentBets[seatIdx] += owed
	h.Contributions[seatIdx] += owed
	h.PotTotal += owed
	h.ActedThisRound[seatIdx] = true
	return nil
}

// applyBetOrRaise raises the seat's current-street bet to `amount` (a total,
// not a delta). A full bet/raise must be at least minRaise above the
// current street max (or at least BigBlind if there is no bet yet) and
// reopens action for every other live seat. A short all-in below that
// threshold is accepted but does not change MinRaise or reopen action for
// seats that already matched the previous bet (spec §8 scenario 6).
func (t *Table) applyBetOrRaise(seatIdx int, amount int) error {
	h := t.Hand
	stack := &t.Seats[seatIdx].Stack
	already := h.CurrentBets[seatIdx]
	maxBefore := t.maxBet()

	if amount <= maxBefore {
		return ErrInvalidAmount
	}
	delta := amount - already
	if delta <= 0 || delta > *stack {
		return ErrInsufficientChips
	}

	minFullRaiseTo := maxBefore + h.MinRaise
	isFullRaise := amount >= minFullRaiseTo
	isAllIn := delta == *stack

	if !isFullRaise && !isAllIn {
		return ErrRaiseBelowMinimum
	}

	*stack -= delta
	h.CurrentBets[seatIdx] = amount
	h.Contributions[seatIdx] += delta
	h.PotTotal += delta

	if isFullRaise {
		h.MinRaise = amount - maxBefore
		h.LastAggressor = seatIdx
		for _, seat := range h.ActiveSeats {
			if seat != seatIdx && !h.Folded[seat] && t.Seats[seat].Stack > 0 {
				h.ActedThisRound[seat] = false
			}
		}
	} else {
		// Short all-in raise: seats that still owe chips to match the new
		// max must act again, but MinRaise is untouched, so none of them
		// can re-raise on the strength of this bet alone.
		for _, seat := range h.ActiveSeats {
			if seat != seatIdx && !h.Folded[seat] && t.Seats[seat].Stack > 0 && h.CurrentBets[seat] < amount {
				h.ActedThisRound[seat] = false
			}
		}
	}
	h.ActedThisRound[seatIdx] = true
	return nil
}

// applyAllIn shoves the seat's entire remaining stack: a call if it does
// not cover the current max bet, otherwise a bet/raise to the seat's total
// stack-backed amount.
func (t *Table) applyAllIn(seatIdx int) error {
	h := t.Hand
	stack := t.Seats[seatIdx].Stack
	total := h.CurrentBets[seatIdx] + stack
	if total <= t.maxBet() {
		return t.applyCall(seatIdx)
	}
	return t.applyBetOrRaise(seatIdx, total)
}

// afterAction runs the round/street progression after any legal action:
// award by fold, close the betting round, or hand the turn to the next
// live seat.
func (t *Table) afterAction(actedSeat int) {
	h := t.Hand
	if len(h.activeUnfolded()) <= 1 {
		t.checkFoldWin()
		return
	}
	if t.isBettingComplete() {
		t.advanceStreet()
		return
	}
	h.TurnSeat = t.nextSeatToAct(actedSeat)
}
