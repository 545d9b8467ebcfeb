package table

// ActionError is a closed set of string-tagged rejections a client command
// can receive (spec §7). All of them are recoverable: the command is
// rejected and table state is left unchanged.
type ActionError string

func (e ActionError) Error() string { return string(e) }

const (
	ErrNotSeated         ActionError = "not-seated"
	ErrNotOwner          ActionError = "not-owner"
	ErrNotYourTurn       ActionError = "not-your-turn"
	ErrAlreadyFolded     ActionError = "already-folded"
	ErrInvalidSeat       ActionError = "invalid-seat"
	ErrSeatOccupied      ActionError = "seat-occupied"
	ErrNoUsername        ActionError = "no-username"
	ErrNotEnoughPlayers  ActionError = "not-enough-players"
	ErrNotInBettingPhase ActionError = "not-in-betting-phase"
	ErrInvalidAmount     ActionError = "invalid-amount"
	ErrRaiseBelowMinimum ActionError = "raise-below-minimum"
	ErrInsufficientChips ActionError = "insufficient-chips"
	ErrCannotCheck       ActionError = "cannot-check"
	ErrUnknownAction     ActionError = "unknown-action"

	// ErrHandInProgress guards StartHand against being invoked while a hand
	// is already live; the spec's wire-level error list has no entry for it
	// because a well-behaved client never sends start-hand outside idle, but
	// the engine still rejects it defensively rather than trusting callers.
	ErrHandInProgress ActionError = "hand-in-progress"
)
