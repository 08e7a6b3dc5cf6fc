package draft

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
)

// UndoLastPick reverses the draft's most recent pick: the pick row is
// deleted, its cost credited back, and the turn counter stepped back by one.
// Host-only, gated on the draft's undo flag, and strictly tail-only:
// ExpectPickID, when set, must name the current tail.
func (a *App) UndoLastPick(ctx context.Context, actorID, draftID uuid.UUID, expectPickID *uuid.UUID) (*repository.UndoLastPickResult, error) {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.Settings.AllowUndo {
		return nil, ErrUndoDisabled
	}

	teamCount, err := a.teamRepo.CountTeams(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if teamCount == 0 {
		return nil, repository.ErrNoPicks
	}

	result, err := a.pickRepo.UndoLastPick(ctx, repository.UndoLastPickRequest{
		DraftID:      draftID,
		ExpectPickID: expectPickID,
		NextDeadline: a.turnDeadline(draft.Settings),
		TeamCount:    teamCount,
	})
	if err != nil {
		return nil, err
	}

	a.log.Info().
		Str("draft_id", draftID.String()).
		Str("pick_id", result.Pick.ID.String()).
		Int("reverted_turn", result.RevertedTurn).
		Msg("pick undone")
	a.wake()
	return result, nil
}
