package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// PickRequest is one attempt to commit a pick. ExpectedTurn is the turn the
// caller believes is current; a stale value is rejected as a turn conflict so
// retried submissions never double-commit.
type PickRequest struct {
	DraftID      uuid.UUID
	ActorID      uuid.UUID
	EntityID     string
	EntityName   string
	ExpectedTurn int
}

// MakePick commits a pick for the acting participant's own team.
func (a *App) MakePick(ctx context.Context, req PickRequest) (*repository.CommitPickResult, error) {
	participant, err := a.participantRepo.GetParticipant(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	if participant.TeamID == nil {
		return nil, ErrNoTeam
	}
	return a.commitPick(ctx, req, *participant.TeamID, &req.ActorID)
}

// ProxyPick commits a pick on behalf of the currently due team. Only the
// host may invoke it, and only when the draft allows proxy picks; the host is
// recorded as the acting participant, the due team as the beneficiary.
func (a *App) ProxyPick(ctx context.Context, req PickRequest) (*repository.CommitPickResult, error) {
	draft, err := a.requireHost(ctx, req.ActorID, req.DraftID)
	if err != nil {
		return nil, err
	}
	if !draft.Settings.AllowProxyPicks {
		return nil, ErrProxyDisabled
	}
	if draft.Status != models.DraftStatusInProgress || draft.CurrentTurn == nil {
		return nil, repository.ErrDraftNotActive
	}

	teams, err := a.teamRepo.ListTeams(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	order := baseOrder(teams)
	if order == nil {
		return nil, ErrInvalidOrder
	}
	due := teamForTurn(order, *draft.CurrentTurn)
	return a.commitPick(ctx, req, due, &req.ActorID)
}

// commitPick runs the shared validation and turn math, then hands the fully
// resolved request to the store's atomic commit. Every precondition checked
// here is re-checked (or subsumed by a conditional update) inside the
// transaction; the early checks only exist to fail fast with a precise
// reason.
func (a *App) commitPick(ctx context.Context, req PickRequest, teamID uuid.UUID, madeBy *uuid.UUID) (*repository.CommitPickResult, error) {
	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.DraftType != models.DraftTypeSnake {
		return nil, ErrWrongDraftType
	}
	if draft.Status != models.DraftStatusInProgress || draft.CurrentTurn == nil {
		return nil, repository.ErrDraftNotActive
	}
	if *draft.CurrentTurn != req.ExpectedTurn {
		return nil, repository.ErrTurnConflict
	}

	teams, err := a.teamRepo.ListTeams(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	order := baseOrder(teams)
	if order == nil {
		return nil, ErrInvalidOrder
	}
	if teamForTurn(order, req.ExpectedTurn) != teamID {
		return nil, ErrNotYourTurn
	}

	verdict, err := a.validator.Validate(ctx, req.EntityID, draft.FormatID)
	if err != nil {
		return nil, fmt.Errorf("validator unavailable: %w", err)
	}
	if !verdict.Legal {
		return nil, &IneligibleEntityError{EntityID: req.EntityID, Reason: verdict.Reason}
	}

	teamCount := len(order)
	totalTurns := draft.TotalTurns(teamCount)
	completed := req.ExpectedTurn >= totalTurns
	nextTurn := req.ExpectedTurn + 1
	round := (req.ExpectedTurn-1)/teamCount + 1
	nextRound := round
	if !completed {
		nextRound = (nextTurn-1)/teamCount + 1
	}

	settings := applyPendingTimer(draft.Settings)
	var deadline *time.Time
	if !completed {
		deadline = a.turnDeadline(settings)
	}

	result, err := a.pickRepo.CommitPick(ctx, repository.CommitPickRequest{
		DraftID:      req.DraftID,
		TeamID:       teamID,
		MadeBy:       madeBy,
		EntityID:     req.EntityID,
		EntityName:   req.EntityName,
		Cost:         verdict.Cost,
		ExpectedTurn: req.ExpectedTurn,
		Round:        round,
		NextTurn:     nextTurn,
		NextRound:    nextRound,
		Completed:    completed,
		Settings:     settings,
		NextDeadline: deadline,
		EntityCap:    settings.EntitiesPerTeam,
	})
	if err != nil {
		return nil, err
	}

	a.log.Info().
		Str("draft_id", req.DraftID.String()).
		Str("team_id", teamID.String()).
		Str("entity_id", req.EntityID).
		Int("turn", req.ExpectedTurn).
		Bool("completed", completed).
		Msg("pick committed")
	a.wake()
	return result, nil
}
