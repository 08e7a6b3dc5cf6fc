package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a connected user in a draft. TeamID is nil for spectators.
type Participant struct {
	ID          uuid.UUID  `json:"id"`
	DraftID     uuid.UUID  `json:"draft_id"`
	DisplayName string     `json:"display_name"`
	TeamID      *uuid.UUID `json:"team_id,omitempty"`
	IsHost      bool       `json:"is_host"`
	LastSeenAt  time.Time  `json:"last_seen_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
