package table

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func seatThree(t *testing.T, tb *Table) {
	t.Helper()
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 1000))
	require.NoError(t, tb.Sit(2, "carol", "Carol", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))
}

func TestStartHandRejectsNonOwner(t *testing.T) {
	tb := newTestTable(t)
	seatThree(t, tb)
	require.ErrorIs(t, tb.StartHand("bob"), ErrNotOwner)
}

func TestStartHandRejectsTooFewPlayers(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))
	require.ErrorIs(t, tb.StartHand("alice"), ErrNotEnoughPlayers)
}

func TestStartHandRejectsWhileHandInProgress(t *testing.T) {
	tb := newTestTable(t)
	seatThree(t, tb)
	require.NoError(t, tb.StartHand("alice"))
	require.ErrorIs(t, tb.StartHand("alice"), ErrHandInProgress)
}

func TestStartHandPostsBlindsAndDealsTwoEach(t *testing.T) {
	tb := newTestTable(t)
	seatThree(t, tb)
	require.NoError(t, tb.StartHand("alice"))

	require.Equal(t, PhasePreflop, tb.Hand.Phase)
	require.Len(t, tb.Hand.ActiveSeats, 3)
	for _, seat := range tb.Hand.ActiveSeats {
		require.True(t, tb.Hand.wasDealt(seat))
	}
	require.Equal(t, SmallBlind, tb.Hand.CurrentBets[tb.Hand.SBSeat])
	require.Equal(t, BigBlind, tb.Hand.CurrentBets[tb.Hand.BBSeat])
	require.Equal(t, SmallBlind+BigBlind, tb.Hand.PotTotal)

	// UTG (seat after BB) acts first in a 3-handed hand.
	require.Equal(t, tb.nextSeatToAct(tb.Hand.BBSeat), tb.Hand.TurnSeat)
}

func TestDealerButtonAdvancesEachHandToNextOccupiedSeat(t *testing.T) {
	tb := newTestTable(t)
	seatThree(t, tb)
	require.NoError(t, tb.StartHand("alice"))
	first := tb.DealerButton

	// Fold everyone but one to cleanly end the hand.
	for len(tb.Hand.activeUnfolded()) > 1 {
		seat := tb.Hand.TurnSeat
		clientRef := tb.Seats[seat].ClientRef
		require.NoError(t, tb.Action(clientRef, ActionFold, 0))
	}
	require.Nil(t, tb.Hand)

	require.NoError(t, tb.StartHand("alice"))
	second := tb.DealerButton
	require.NotEqual(t, first, second)
}

func TestHeadsUpDealerIsSmallBlindAndActsFirstPreflop(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))
	require.NoError(t, tb.StartHand("alice"))

	require.Equal(t, tb.DealerButton, tb.Hand.SBSeat)
	require.Equal(t, tb.Hand.SBSeat, tb.Hand.TurnSeat)
}

func TestHeadsUpBigBlindActsFirstPostflop(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))
	require.NoError(t, tb.StartHand("alice"))

	sbRef := tb.Seats[tb.Hand.SBSeat].ClientRef
	bbRef := tb.Seats[tb.Hand.BBSeat].ClientRef

	require.NoError(t, tb.Action(sbRef, ActionCall, 0))
	require.NoError(t, tb.Action(bbRef, ActionCheck, 0))

	require.Equal(t, PhaseFlop, tb.Hand.Phase)
	require.Equal(t, tb.Hand.BBSeat, tb.Hand.TurnSeat)
}

func TestChipConservationAcrossWholeHand(t *testing.T) {
	tb := NewTable(rand.New(rand.NewSource(7)), nil, nil)
	seatThree(t, tb)
	before := tb.GetTotalChips()
	require.NoError(t, tb.StartHand("alice"))

	for tb.Hand != nil && tb.Hand.Phase != PhaseShowdown {
		seat := tb.Hand.TurnSeat
		clientRef := tb.Seats[seat].ClientRef
		require.NoError(t, tb.Action(clientRef, ActionCall, 0))
		require.Equal(t, before, tb.GetTotalChips())
	}
	require.Equal(t, before, tb.GetTotalChips())
}
