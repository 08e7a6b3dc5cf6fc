package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick is a committed acquisition of one entity by one team. PickOrder is
// dense and strictly increasing within a draft; Round is derived from
// PickOrder and the team count at commit time. MadeBy records the invoking
// participant, which differs from the team owner on proxy picks.
type Pick struct {
	ID         uuid.UUID  `json:"id"`
	DraftID    uuid.UUID  `json:"draft_id"`
	TeamID     uuid.UUID  `json:"team_id"`
	EntityID   string     `json:"entity_id"`
	EntityName string     `json:"entity_name"`
	Cost       int64      `json:"cost"`
	PickOrder  int        `json:"pick_order"`
	Round      int        `json:"round"`
	MadeBy     *uuid.UUID `json:"made_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
