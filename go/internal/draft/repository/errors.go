package repository

import "errors"

// Sentinel errors surfaced by conditional updates. Concurrency losses
// (ErrTurnConflict, ErrBudgetConflict, ErrAuctionResolved) mean the store
// found the expected prior value already changed; the caller should refetch
// before retrying. The rest are precondition violations and are never worth
// an automatic retry.
var (
	ErrNotFound           = errors.New("not found")
	ErrTurnConflict       = errors.New("turn already advanced by a concurrent writer")
	ErrBudgetConflict     = errors.New("budget changed under a concurrent writer")
	ErrAuctionResolved    = errors.New("auction already resolved")
	ErrDraftNotActive     = errors.New("draft is not in progress")
	ErrInsufficientBudget = errors.New("insufficient budget remaining")
	ErrEntityTaken        = errors.New("entity already picked in this draft")
	ErrRosterFull         = errors.New("team already holds its full entity count")
	ErrAuctionActive      = errors.New("another auction is already active")
	ErrAuctionClosed      = errors.New("auction is closed or past its end")
	ErrBidTooLow          = errors.New("bid does not exceed the current bid")
	ErrNoPicks            = errors.New("draft has no picks to undo")
	ErrNotTailPick        = errors.New("only the most recent pick can be undone")
	ErrTeamNameTaken      = errors.New("team name already taken in this draft")
)
