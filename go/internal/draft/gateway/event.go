package gateway

import (
	"encoding/json"
	"time"
)

// DraftEvent is the wire shape pushed to websocket clients. Data carries the
// outbox payload verbatim; clients treat every event as a change signal and
// refetch authoritative state over the HTTP API.
type DraftEvent struct {
	Type      string          `json:"type"`
	DraftID   string          `json:"draft_id"`
	EventID   string          `json:"event_id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}
