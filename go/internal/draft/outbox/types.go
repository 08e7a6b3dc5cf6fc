package outbox

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/db"
)

// OutboxEvent is one draft_outbox row on its way to the message bus.
// Payload is nil for bare change signals.
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	DraftID   uuid.UUID       `json:"draft_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func eventFromRow(row db.DraftOutbox) OutboxEvent {
	event := OutboxEvent{
		ID:        row.ID,
		DraftID:   row.DraftID,
		EventType: row.EventType,
	}
	if row.Payload.Valid {
		event.Payload = row.Payload.RawMessage
	}
	return event
}
