package draft

import "errors"

// Precondition errors raised before any store mutation is attempted.
var (
	ErrNotHost          = errors.New("operation requires the draft host")
	ErrNotYourTurn      = errors.New("team is not on the clock")
	ErrNoTeam           = errors.New("participant is a spectator with no team")
	ErrNotNominator     = errors.New("team does not hold the nomination right")
	ErrUndoDisabled     = errors.New("undo is disabled for this draft")
	ErrProxyDisabled    = errors.New("proxy picks are disabled for this draft")
	ErrWrongDraftType   = errors.New("operation does not apply to this draft type")
	ErrDraftFull        = errors.New("draft already has its maximum team count")
	ErrNotEnoughTeams   = errors.New("draft needs at least two teams to start")
	ErrUnassignedTeams  = errors.New("every team needs at least one participant")
	ErrInvalidOrder     = errors.New("draft order is not a permutation of 1..teamCount")
	ErrEntityIneligible = errors.New("entity failed legality validation")
)

// IneligibleEntityError wraps ErrEntityIneligible with the validator's reason.
type IneligibleEntityError struct {
	EntityID string
	Reason   string
}

func (e *IneligibleEntityError) Error() string {
	return "entity " + e.EntityID + " is ineligible: " + e.Reason
}

func (e *IneligibleEntityError) Unwrap() error {
	return ErrEntityIneligible
}
