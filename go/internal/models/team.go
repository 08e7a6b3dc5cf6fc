package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is a drafting team within a single draft. DraftOrder is nil while the
// draft is in setup and becomes a value in 1..teamCount once the order is
// assigned; BudgetRemaining never goes below zero.
type Team struct {
	ID              uuid.UUID `json:"id"`
	DraftID         uuid.UUID `json:"draft_id"`
	Name            string    `json:"name"`
	DraftOrder      *int      `json:"draft_order,omitempty"`
	BudgetRemaining int64     `json:"budget_remaining"`
	CreatedAt       time.Time `json:"created_at"`
}
