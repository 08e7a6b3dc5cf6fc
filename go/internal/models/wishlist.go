package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry is one ranked entity on a team's auto-pick wishlist.
// Lower rank means higher priority.
type WishlistEntry struct {
	ID         uuid.UUID `json:"id"`
	TeamID     uuid.UUID `json:"team_id"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	Rank       int       `json:"rank"`
	CreatedAt  time.Time `json:"created_at"`
}
