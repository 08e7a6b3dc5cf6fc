package models

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus defines the lifecycle status of an auction lot.
type AuctionStatus string

const (
	AuctionStatusActive    AuctionStatus = "ACTIVE"
	AuctionStatusCompleted AuctionStatus = "COMPLETED"
	AuctionStatusCancelled AuctionStatus = "CANCELLED"
)

// Auction is a single nominated lot. At most one ACTIVE auction exists per
// draft, enforced by the store. CurrentBidderID is nil until the first bid.
type Auction struct {
	ID              uuid.UUID     `json:"id"`
	DraftID         uuid.UUID     `json:"draft_id"`
	EntityID        string        `json:"entity_id"`
	EntityName      string        `json:"entity_name"`
	NominatedBy     uuid.UUID     `json:"nominated_by"`
	CurrentBid      int64         `json:"current_bid"`
	CurrentBidderID *uuid.UUID    `json:"current_bidder_id,omitempty"`
	AuctionEnd      time.Time     `json:"auction_end"`
	Status          AuctionStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`
}

// Bid is an immutable audit record of one accepted bid.
type Bid struct {
	ID        uuid.UUID `json:"id"`
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
