package table

import "github.com/lox/holdem-table/internal/deck"

// SeatView is one seat as a particular viewer should see it: hole cards are
// present only for the viewer's own seat, or for any seat that reached
// showdown without folding (spec §4.7).
type SeatView struct {
	Occupied    bool          `json:"occupied"`
	ClientRef   string        `json:"clientRef,omitempty"`
	DisplayName string        `json:"displayName,omitempty"`
	Stack       int           `json:"stack"`
	CurrentBet  int           `json:"currentBet"`
	Contributed int           `json:"contributed"`
	Folded      bool          `json:"folded"`
	HasCards    bool          `json:"hasCards"`
	Hole        *[2]deck.Card `json:"hole,omitempty"`
	IsTurn      bool          `json:"isTurn"`
	IsDealer    bool          `json:"isDealer"`
}

// TableView is the complete state projected to one viewer.
type TableView struct {
	Seats        [NSeats]SeatView `json:"seats"`
	Owner        string           `json:"owner,omitempty"`
	OwnerPresent bool             `json:"ownerPresent"`
	Phase        string           `json:"phase"`
	Community    []deck.Card      `json:"community"`
	PotTotal     int              `json:"potTotal"`
	TurnSeat     int              `json:"turnSeat"`
	MinRaise     int              `json:"minRaise"`
	DealerButton int              `json:"dealerButton"`
	SmallBlind   int              `json:"smallBlind"`
	BigBlind     int              `json:"bigBlind"`
}

// View projects table state for viewerRef, a client reference that may or
// may not hold a seat. viewerRef == "" yields a pure-spectator view: no hole
// cards before showdown (it owns none), and at showdown only those of the
// seats that did not fold.
func (t *Table) View(viewerRef string) TableView {
	v := TableView{
		Owner:        t.Owner,
		OwnerPresent: t.Owner != "",
		Phase:        PhaseIdle.String(),
		TurnSeat:     -1,
		DealerButton: t.DealerButton,
		SmallBlind:   SmallBlind,
		BigBlind:     BigBlind,
	}

	h := t.Hand
	if h != nil {
		v.Phase = h.Phase.String()
		v.Community = h.Community
		v.PotTotal = h.PotTotal
		if h.Phase == PhaseShowdown {
			v.PotTotal = h.LastPotTotal
		}
		v.TurnSeat = h.TurnSeat
		v.MinRaise = h.MinRaise
	} else {
		v.TurnSeat = -1
	}

	for i := range t.Seats {
		seat := &t.Seats[i]
		sv := SeatView{
			Occupied:    seat.Occupied(),
			ClientRef:   seat.ClientRef,
			DisplayName: seat.DisplayName,
			Stack:       seat.Stack,
			IsDealer:    i == t.DealerButton,
		}
		if h != nil {
			sv.IsTurn = h.TurnSeat == i
			sv.Folded = h.Folded[i]
			sv.CurrentBet = h.CurrentBets[i]
			sv.Contributed = h.Contributions[i]
			if hole, dealt := h.HoleCards[i]; dealt {
				sv.HasCards = true
				if t.revealsHole(i, seat.ClientRef, viewerRef) {
					cards := hole
					sv.Hole = &cards
				}
			}
		}
		v.Seats[i] = sv
	}

	return v
}

// revealsHole reports whether seatIdx's hole cards should be sent to
// viewerRef: always to the seat's own occupant, and to everyone once that
// seat reaches an unfolded showdown.
func (t *Table) revealsHole(seatIdx int, ownerRef, viewerRef string) bool {
	if viewerRef != "" && viewerRef == ownerRef {
		return true
	}
	h := t.Hand
	if h == nil {
		return false
	}
	return h.Phase == PhaseShowdown && !h.Folded[seatIdx]
}
