package table

import (
	"math/rand"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
)

func TestShortStackAllInBlindPostsWhatItHas(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 1000))
	require.NoError(t, tb.Sit(2, "carol", "Carol", 5))
	tb.Seats[2].Stack = 5 // less than a big blind; Sit clamps a buy-in up to MinBuyIn
	require.NoError(t, tb.ClaimOwner("alice"))
	require.NoError(t, tb.StartHand("alice"))

	var shortStackSeat int
	for i, s := range tb.Seats {
		if s.ClientRef == "carol" {
			shortStackSeat = i
		}
	}
	if tb.Hand.SBSeat == shortStackSeat || tb.Hand.BBSeat == shortStackSeat {
		posted := tb.Hand.CurrentBets[shortStackSeat]
		require.Equal(t, 5, posted)
		require.Zero(t, tb.Seats[shortStackSeat].Stack)
	}
}

func TestSidePotsSplitCorrectlyAtUnevenStacksThroughShowdown(t *testing.T) {
	tb := NewTable(rand.New(rand.NewSource(99)), quartz.NewMock(t), nil)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 100))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 500))
	require.NoError(t, tb.Sit(2, "carol", "Carol", 500))
	require.NoError(t, tb.ClaimOwner("alice"))

	before := tb.GetTotalChips()
	require.NoError(t, tb.StartHand("alice"))

	for tb.Hand != nil && tb.Hand.Phase != PhaseShowdown {
		seat := tb.Hand.TurnSeat
		ref := tb.Seats[seat].ClientRef
		require.NoError(t, tb.Action(ref, ActionAllIn, 0))
	}

	require.NotNil(t, tb.Hand)
	require.Equal(t, PhaseShowdown, tb.Hand.Phase)
	require.Equal(t, before, tb.GetTotalChips())

	total := 0
	for _, s := range tb.Seats {
		total += s.Stack
	}
	require.Equal(t, before, total)
}

func TestIdleTimerReturnsTableToIdleAfterShowdown(t *testing.T) {
	clock := quartz.NewMock(t)
	tb := NewTable(rand.New(rand.NewSource(3)), clock, nil)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))
	require.NoError(t, tb.StartHand("alice"))

	for tb.Hand != nil && tb.Hand.Phase != PhaseShowdown {
		seat := tb.Hand.TurnSeat
		ref := tb.Seats[seat].ClientRef
		require.NoError(t, tb.Action(ref, ActionCall, 0))
	}
	require.NotNil(t, tb.Hand)

	clock.Advance(PostShowdownIdleDelay).MustWait(t.Context())

	require.Nil(t, tb.Hand)
}

func TestActionRecoversFromPanicAndResetsToIdle(t *testing.T) {
	tb := threeSeatedHand(t)
	before := tb.GetTotalChips()

	// Force an internal invariant violation: an empty deck mid-hand is a
	// programming error the engine is never supposed to reach in real play.
	tb.Hand.Deck = deck.FromCards(nil)
	for tb.Hand != nil && len(tb.Hand.activeUnfolded()) > 1 {
		seat := tb.Hand.TurnSeat
		ref := tb.Seats[seat].ClientRef
		_ = tb.Action(ref, ActionCall, 0)
	}

	require.Nil(t, tb.Hand)
	require.Equal(t, before, tb.GetTotalChips())
}

func TestAbortHandRestoresPreHandStacks(t *testing.T) {
	tb := threeSeatedHand(t)
	snap := tb.Hand.preHandStacks
	tb.Seats[0].Stack = 0 // simulate corruption

	tb.abortHand("simulated invariant violation")

	require.Nil(t, tb.Hand)
	require.Equal(t, snap[0], tb.Seats[0].Stack)
}
