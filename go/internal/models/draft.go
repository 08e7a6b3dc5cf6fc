package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftType defines the acquisition protocol of a draft.
type DraftType string

const (
	DraftTypeSnake   DraftType = "SNAKE"
	DraftTypeAuction DraftType = "AUCTION"
)

// DraftStatus defines the lifecycle status of a draft.
type DraftStatus string

const (
	DraftStatusNotStarted DraftStatus = "NOT_STARTED"
	DraftStatusInProgress DraftStatus = "IN_PROGRESS"
	DraftStatusPaused     DraftStatus = "PAUSED"
	DraftStatusCompleted  DraftStatus = "COMPLETED"
	DraftStatusCancelled  DraftStatus = "CANCELLED"
)

// draftStatusTransitions lists the allowed administrative transitions.
// Undo's COMPLETED to IN_PROGRESS revert happens beneath this table as part
// of the pick rollback, and reset back to NOT_STARTED is its own operation.
var draftStatusTransitions = map[DraftStatus][]DraftStatus{
	DraftStatusNotStarted: {DraftStatusInProgress, DraftStatusCancelled},
	DraftStatusInProgress: {DraftStatusPaused, DraftStatusCompleted, DraftStatusCancelled},
	DraftStatusPaused:     {DraftStatusInProgress, DraftStatusCompleted, DraftStatusCancelled},
	DraftStatusCompleted:  {},
	DraftStatusCancelled:  {},
}

// CanTransitionTo reports whether next is a legal move from s. Same-status
// moves are allowed so repeated administrative calls stay idempotent.
func (s DraftStatus) CanTransitionTo(next DraftStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range draftStatusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// DraftSettings holds JSONB configuration for drafts.
type DraftSettings struct {
	EntitiesPerTeam     int   `json:"entities_per_team"`
	TimeLimitSec        int   `json:"time_limit_sec"`
	BudgetPerTeam       int64 `json:"budget_per_team"`
	AllowUndo           bool  `json:"allow_undo"`
	AllowProxyPicks     bool  `json:"allow_proxy_picks"`
	AuctionDurationSec  int   `json:"auction_duration_sec,omitempty"` // auction
	PendingTimeLimitSec *int  `json:"pending_time_limit_sec,omitempty"`
}

// Draft represents a draft instance. CurrentTurn is nil until the draft
// starts and is a 1-based index into the snake turn sequence afterwards.
type Draft struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	FormatID      string        `json:"format_id"`
	DraftType     DraftType     `json:"draft_type"`
	Status        DraftStatus   `json:"status"`
	MaxTeams      int           `json:"max_teams"`
	CurrentTurn   *int          `json:"current_turn,omitempty"`
	CurrentRound  int           `json:"current_round"`
	Settings      DraftSettings `json:"settings"`
	OrderShuffled bool          `json:"order_shuffled"`
	TurnStartedAt *time.Time    `json:"turn_started_at,omitempty"`
	NextDeadline  *time.Time    `json:"next_deadline,omitempty"`
	StartedAt     *time.Time    `json:"started_at,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TotalTurns is the length of the full snake turn sequence for the given
// team count.
func (d *Draft) TotalTurns(teamCount int) int {
	return teamCount * d.Settings.EntitiesPerTeam
}
