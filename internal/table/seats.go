package table

// NSeats is the number of fixed seat slots at the table.
const NSeats = 6

// MinBuyIn and MaxBuyIn bound a sit request's buy-in (clamped, not rejected).
const (
	MinBuyIn = 100
	MaxBuyIn = 1_000_000
)

// SmallBlind and BigBlind are the fixed forced bets for every hand.
const (
	SmallBlind = 10
	BigBlind   = 20
)

// Seat is one of the table's fixed slots. An empty seat has ClientRef == "".
// Only the engine ever mutates Stack once a seat is occupied; UI-side
// requests never adjust it directly (spec §4.4).
type Seat struct {
	ClientRef   string
	DisplayName string
	Stack       int
}

// Occupied reports whether a client currently holds this seat.
func (s *Seat) Occupied() bool {
	return s != nil && s.ClientRef != ""
}

// Sit seats clientRef with the given buy-in, clamped to [MinBuyIn, MaxBuyIn].
// It fails if the seat is already occupied.
func (t *Table) Sit(seatIdx int, clientRef, displayName string, buyIn int) error {
	if seatIdx < 0 || seatIdx >= NSeats {
		return ErrInvalidSeat
	}
	seat := &t.Seats[seatIdx]
	if seat.Occupied() {
		return ErrSeatOccupied
	}
	if buyIn < MinBuyIn {
		buyIn = MinBuyIn
	}
	if buyIn > MaxBuyIn {
		buyIn = MaxBuyIn
	}
	seat.ClientRef = clientRef
	seat.DisplayName = displayName
	seat.Stack = buyIn
	return nil
}

// Stand frees the seat held by clientRef. If a hand is in progress the seat
// is folded for the remainder of the hand; chips already committed stay in
// the pot (spec §4.4, §5).
func (t *Table) Stand(clientRef string) error {
	idx := t.seatOf(clientRef)
	if idx < 0 {
		return ErrNotSeated
	}
	t.foldIfMidHand(idx)
	if t.Owner == clientRef {
		t.Owner = ""
	}
	t.Seats[idx] = Seat{}
	return nil
}

// Kick is the owner-only equivalent of Stand, applied to an arbitrary seat.
func (t *Table) Kick(ownerRef string, seatIdx int) error {
	if t.Owner == "" || t.Owner != ownerRef {
		return ErrNotOwner
	}
	if seatIdx < 0 || seatIdx >= NSeats {
		return ErrInvalidSeat
	}
	seat := &t.Seats[seatIdx]
	if !seat.Occupied() {
		return ErrInvalidSeat
	}
	t.foldIfMidHand(seatIdx)
	if t.Owner == seat.ClientRef {
		t.Owner = ""
	}
	*seat = Seat{}
	return nil
}

// ClaimOwner makes clientRef the owner, replacing any previous owner. The
// caller must hold a seat (spec §4.4 describes owner as a driving client;
// §6 "become owner" has no seat precondition in the wire table, but an
// unseated owner could start hands for a table they aren't even playing at,
// so this implementation requires a seat — an Open Question decision
// recorded in DESIGN.md).
func (t *Table) ClaimOwner(clientRef string) error {
	if t.seatOf(clientRef) < 0 {
		return ErrNotSeated
	}
	t.Owner = clientRef
	return nil
}

// SetUsername records a display name for clientRef's current seat.
func (t *Table) SetUsername(clientRef, name string) error {
	idx := t.seatOf(clientRef)
	if idx < 0 {
		return ErrNotSeated
	}
	t.Seats[idx].DisplayName = name
	return nil
}

func (t *Table) seatOf(clientRef string) int {
	for i := range t.Seats {
		if t.Seats[i].ClientRef == clientRef {
			return i
		}
	}
	return -1
}

// foldIfMidHand marks seatIdx folded if a hand is in progress and the seat
// was dealt into it. It never touches contributions already committed.
func (t *Table) foldIfMidHand(seatIdx int) {
	if t.Hand == nil || t.Hand.Phase == PhaseIdle || t.Hand.Phase == PhaseShowdown {
		return
	}
	if !t.Hand.wasDealt(seatIdx) {
		return
	}
	if !t.Hand.Folded[seatIdx] {
		t.Hand.Folded[seatIdx] = true
		t.Hand.ActedThisRound[seatIdx] = true
		wasTurn := t.Hand.TurnSeat == seatIdx
		if len(t.Hand.activeUnfolded()) <= 1 {
			t.checkFoldWin()
			return
		}
		if wasTurn {
			if t.isBettingComplete() {
				t.advanceStreet()
			} else {
				t.Hand.TurnSeat = t.nextSeatToAct(seatIdx)
			}
		}
	}
}

// occupiedSeatsWithChips returns seat indices, in seat order, of occupied
// seats with a positive stack — the population eligible to be dealt in.
func (t *Table) occupiedSeatsWithChips() []int {
	var out []int
	for i := range t.Seats {
		if t.Seats[i].Occupied() && t.Seats[i].Stack > 0 {
			out = append(out, i)
		}
	}
	return out
}

// nextOccupied returns the next occupied seat clockwise from (from+1),
// wrapping around, or -1 if no seat is occupied.
func (t *Table) nextOccupied(from int) int {
	for i := 1; i <= NSeats; i++ {
		idx := (from + i) % NSeats
		if t.Seats[idx].Occupied() {
			return idx
		}
	}
	return -1
}

// nextOccupiedWithChips is nextOccupied restricted to seats with Stack > 0.
func (t *Table) nextOccupiedWithChips(from int) int {
	for i := 1; i <= NSeats; i++ {
		idx := (from + i) % NSeats
		if t.Seats[idx].Occupied() && t.Seats[idx].Stack > 0 {
			return idx
		}
	}
	return -1
}
