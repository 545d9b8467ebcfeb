package table

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	return NewTable(rand.New(rand.NewSource(42)), nil, nil)
}

func TestSitClampsOutOfRangeBuyIn(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1))
	require.Equal(t, MinBuyIn, tb.Seats[0].Stack)

	require.NoError(t, tb.Sit(1, "bob", "Bob", 10_000_000))
	require.Equal(t, MaxBuyIn, tb.Seats[1].Stack)
}

func TestSitRejectsOccupiedSeat(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.ErrorIs(t, tb.Sit(0, "bob", "Bob", 1000), ErrSeatOccupied)
}

func TestSitRejectsInvalidSeat(t *testing.T) {
	tb := newTestTable(t)
	require.ErrorIs(t, tb.Sit(NSeats, "alice", "Alice", 1000), ErrInvalidSeat)
	require.ErrorIs(t, tb.Sit(-1, "alice", "Alice", 1000), ErrInvalidSeat)
}

func TestStandFreesSeatAndClearsOwner(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))

	require.NoError(t, tb.Stand("alice"))
	require.False(t, tb.Seats[0].Occupied())
	require.Empty(t, tb.Owner)
}

func TestKickRequiresOwner(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))

	require.ErrorIs(t, tb.Kick("bob", 1), ErrNotOwner)
	require.NoError(t, tb.Kick("alice", 1))
	require.False(t, tb.Seats[1].Occupied())
}

func TestClaimOwnerRequiresSeat(t *testing.T) {
	tb := newTestTable(t)
	require.ErrorIs(t, tb.ClaimOwner("ghost"), ErrNotSeated)

	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))
	require.Equal(t, "alice", tb.Owner)
}

func TestStandMidHandFoldsAndAwardsRemainingPlayer(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.Sit(0, "alice", "Alice", 1000))
	require.NoError(t, tb.Sit(1, "bob", "Bob", 1000))
	require.NoError(t, tb.ClaimOwner("alice"))
	require.NoError(t, tb.StartHand("alice"))

	require.NoError(t, tb.Stand("alice"))

	require.Nil(t, tb.Hand)
	require.False(t, tb.Seats[0].Occupied())
	// Bob wins both blinds uncontested (alice's 990 remaining stack leaves
	// the table with her seat, not the pot — she folded, not all-in).
	require.Equal(t, 1010, tb.Seats[1].Stack)
}
