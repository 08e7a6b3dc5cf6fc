package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types carried on draft_outbox rows. Subscribers treat every event as
// a "something changed" signal and refetch authoritative state; payloads are
// informational only.
const (
	TypeDraftStarted    = "DraftStarted"
	TypeDraftPaused     = "DraftPaused"
	TypeDraftResumed    = "DraftResumed"
	TypeDraftCompleted  = "DraftCompleted"
	TypeDraftCancelled  = "DraftCancelled"
	TypeDraftReset      = "DraftReset"
	TypeTeamJoined      = "TeamJoined"
	TypeOrderShuffled   = "OrderShuffled"
	TypePickMade        = "PickMade"
	TypePickUndone      = "PickUndone"
	TypeTurnSkipped     = "TurnSkipped"
	TypeAuctionStarted  = "AuctionStarted"
	TypeBidPlaced       = "BidPlaced"
	TypeAuctionExtended = "AuctionExtended"
	TypeAuctionResolved = "AuctionResolved"
	TypeBudgetAdjusted  = "BudgetAdjusted"
)

// PickMadePayload is the payload for a PickMade event.
type PickMadePayload struct {
	PickID     uuid.UUID  `json:"pick_id"`
	TeamID     uuid.UUID  `json:"team_id"`
	EntityID   string     `json:"entity_id"`
	EntityName string     `json:"entity_name"`
	Cost       int64      `json:"cost"`
	PickOrder  int        `json:"pick_order"`
	Round      int        `json:"round"`
	MadeBy     *uuid.UUID `json:"made_by,omitempty"`
	NextTurn   int        `json:"next_turn"`
	Completed  bool       `json:"completed"`
}

// PickUndonePayload is the payload for a PickUndone event.
type PickUndonePayload struct {
	PickID      uuid.UUID `json:"pick_id"`
	TeamID      uuid.UUID `json:"team_id"`
	EntityID    string    `json:"entity_id"`
	Cost        int64     `json:"cost"`
	RevertedTo  int       `json:"reverted_to_turn"`
}

// TurnSkippedPayload is the payload for a TurnSkipped event.
type TurnSkippedPayload struct {
	TeamID   uuid.UUID `json:"team_id"`
	Turn     int       `json:"turn"`
	NextTurn int       `json:"next_turn"`
	Reason   string    `json:"reason"`
}

// DraftStartedPayload is the payload for a DraftStarted event.
type DraftStartedPayload struct {
	DraftType  string    `json:"draft_type"`
	StartedAt  time.Time `json:"started_at"`
	TeamCount  int       `json:"team_count"`
	TotalTurns int       `json:"total_turns"`
}

// AuctionStartedPayload is the payload for an AuctionStarted event.
type AuctionStartedPayload struct {
	AuctionID   uuid.UUID `json:"auction_id"`
	EntityID    string    `json:"entity_id"`
	EntityName  string    `json:"entity_name"`
	NominatedBy uuid.UUID `json:"nominated_by"`
	StartingBid int64     `json:"starting_bid"`
	AuctionEnd  time.Time `json:"auction_end"`
}

// BidPlacedPayload is the payload for a BidPlaced event.
type BidPlacedPayload struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
	Amount    int64     `json:"amount"`
}

// AuctionResolvedPayload is the payload for an AuctionResolved event.
type AuctionResolvedPayload struct {
	AuctionID  uuid.UUID  `json:"auction_id"`
	EntityID   string     `json:"entity_id"`
	WinnerID   *uuid.UUID `json:"winner_id,omitempty"`
	WinningBid int64      `json:"winning_bid"`
	PickID     *uuid.UUID `json:"pick_id,omitempty"`
	Completed  bool       `json:"completed"`
}

// BudgetAdjustedPayload is the audit payload for an administrative budget
// override.
type BudgetAdjustedPayload struct {
	TeamID     uuid.UUID `json:"team_id"`
	OldBudget  int64     `json:"old_budget"`
	NewBudget  int64     `json:"new_budget"`
	AdjustedBy uuid.UUID `json:"adjusted_by"`
}
