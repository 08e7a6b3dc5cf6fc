package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/db"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// CommitPickRequest carries one fully validated pick commit. The caller has
// already resolved the acting team, validated the entity, and computed the
// post-commit turn state; the repository's job is to apply it atomically or
// not at all.
type CommitPickRequest struct {
	DraftID      uuid.UUID
	TeamID       uuid.UUID
	MadeBy       *uuid.UUID
	EntityID     string
	EntityName   string
	Cost         int64
	ExpectedTurn int
	Round        int
	NextTurn     int
	NextRound    int
	Completed    bool
	Settings     models.DraftSettings
	NextDeadline *time.Time
	EntityCap    int
}

type CommitPickResult struct {
	Pick            models.Pick
	BudgetRemaining int64
	NextTurn        int
	Completed       bool
}

// CommitPick is the single all-or-nothing pick procedure: advance the turn
// (CAS on current_turn), insert the pick, debit the budget, enforce the
// roster cap, and emit the PickMade event, all in one transaction with
// exactly one winner per expected turn.
//
// The turn CAS runs first: it takes the draft row lock, so every concurrent
// committer for the same draft serializes behind it and the loser observes
// the already-advanced turn.
func (r *Repository) CommitPick(ctx context.Context, req CommitPickRequest) (*CommitPickResult, error) {
	settingsBytes, err := marshalSettings(req.Settings)
	if err != nil {
		return nil, err
	}

	nextStatus := db.DraftStatusINPROGRESS
	if req.Completed {
		nextStatus = db.DraftStatusCOMPLETED
	}

	pickID := uuid.New()
	var result CommitPickResult

	err = r.inTx(ctx, func(q *db.Queries) error {
		rows, err := q.AdvanceDraftTurn(ctx, db.AdvanceDraftTurnParams{
			NextTurn:     int32(req.NextTurn),
			NextRound:    int32(req.NextRound),
			NextStatus:   nextStatus,
			Settings:     settingsBytes,
			NextDeadline: sqlutil.ToSqlTime(req.NextDeadline),
			ID:           req.DraftID,
			ExpectedTurn: int32(req.ExpectedTurn),
		})
		if err != nil {
			return fmt.Errorf("failed to advance turn: %w", err)
		}
		if rows == 0 {
			return ErrTurnConflict
		}

		// Pick order is count-based, not turn-based: skipped turns leave no
		// gaps in the sequence. The turn CAS above holds the draft row lock,
		// so the count cannot move underneath us.
		count, err := q.CountPicksByDraft(ctx, req.DraftID)
		if err != nil {
			return fmt.Errorf("failed to count picks: %w", err)
		}
		pickOrder := int(count) + 1

		rows, err = q.InsertPick(ctx, db.InsertPickParams{
			ID:         pickID,
			DraftID:    req.DraftID,
			TeamID:     req.TeamID,
			EntityID:   req.EntityID,
			EntityName: req.EntityName,
			Cost:       req.Cost,
			PickOrder:  int32(pickOrder),
			Round:      int32(req.Round),
			MadeBy:     sqlutil.ToNullUUID(req.MadeBy),
		})
		if err != nil {
			return fmt.Errorf("failed to insert pick: %w", err)
		}
		if rows == 0 {
			return ErrEntityTaken
		}

		count, err = q.CountPicksByTeam(ctx, req.TeamID)
		if err != nil {
			return fmt.Errorf("failed to count team picks: %w", err)
		}
		if int(count) > req.EntityCap {
			return ErrRosterFull
		}

		rows, err = q.DebitTeamBudget(ctx, db.DebitTeamBudgetParams{
			Amount: req.Cost,
			ID:     req.TeamID,
		})
		if err != nil {
			return fmt.Errorf("failed to debit budget: %w", err)
		}
		if rows == 0 {
			return ErrInsufficientBudget
		}

		team, err := q.GetTeam(ctx, req.TeamID)
		if err != nil {
			return fmt.Errorf("failed to reload team: %w", err)
		}

		committed, err := q.GetLastPickForDraft(ctx, req.DraftID)
		if err != nil {
			return fmt.Errorf("failed to reload pick: %w", err)
		}

		result = CommitPickResult{
			Pick:            *dbPickToModel(committed),
			BudgetRemaining: team.BudgetRemaining,
			NextTurn:        req.NextTurn,
			Completed:       req.Completed,
		}

		return insertOutboxEvent(ctx, q, req.DraftID, events.TypePickMade, events.PickMadePayload{
			PickID:     committed.ID,
			TeamID:     req.TeamID,
			EntityID:   req.EntityID,
			EntityName: req.EntityName,
			Cost:       req.Cost,
			PickOrder:  int(committed.PickOrder),
			Round:      int(committed.Round),
			MadeBy:     req.MadeBy,
			NextTurn:   req.NextTurn,
			Completed:  req.Completed,
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SkipTurnRequest advances the turn with no pick, guarded by the same
// current_turn CAS as CommitPick.
type SkipTurnRequest struct {
	DraftID      uuid.UUID
	TeamID       uuid.UUID
	ExpectedTurn int
	NextTurn     int
	NextRound    int
	Completed    bool
	Settings     models.DraftSettings
	NextDeadline *time.Time
	Reason       string
}

func (r *Repository) SkipTurn(ctx context.Context, req SkipTurnRequest) error {
	settingsBytes, err := marshalSettings(req.Settings)
	if err != nil {
		return err
	}

	nextStatus := db.DraftStatusINPROGRESS
	if req.Completed {
		nextStatus = db.DraftStatusCOMPLETED
	}

	return r.inTx(ctx, func(q *db.Queries) error {
		rows, err := q.AdvanceDraftTurn(ctx, db.AdvanceDraftTurnParams{
			NextTurn:     int32(req.NextTurn),
			NextRound:    int32(req.NextRound),
			NextStatus:   nextStatus,
			Settings:     settingsBytes,
			NextDeadline: sqlutil.ToSqlTime(req.NextDeadline),
			ID:           req.DraftID,
			ExpectedTurn: int32(req.ExpectedTurn),
		})
		if err != nil {
			return fmt.Errorf("failed to advance turn: %w", err)
		}
		if rows == 0 {
			return ErrTurnConflict
		}
		return insertOutboxEvent(ctx, q, req.DraftID, events.TypeTurnSkipped, events.TurnSkippedPayload{
			TeamID:   req.TeamID,
			Turn:     req.ExpectedTurn,
			NextTurn: req.NextTurn,
			Reason:   req.Reason,
		})
	})
}

// UndoLastPickRequest reverses the tail pick. ExpectPickID, when set, must
// match the current tail or the undo fails.
type UndoLastPickRequest struct {
	DraftID      uuid.UUID
	ExpectPickID *uuid.UUID
	NextDeadline *time.Time
	TeamCount    int
}

type UndoLastPickResult struct {
	Pick         models.Pick
	RevertedTurn int
}

// UndoLastPick deletes the most recent pick, credits its cost back, and
// steps the turn counter back by one (floored at 1), reverting COMPLETED to
// IN_PROGRESS when the undone pick was the final one. The draft row lock is
// taken first so a racing CommitPick cannot slip a new tail in underneath.
func (r *Repository) UndoLastPick(ctx context.Context, req UndoLastPickRequest) (*UndoLastPickResult, error) {
	var result UndoLastPickResult

	err := r.inTx(ctx, func(q *db.Queries) error {
		draft, err := q.GetDraftForUpdate(ctx, req.DraftID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock draft: %w", err)
		}

		tail, err := q.GetLastPickForDraft(ctx, req.DraftID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoPicks
			}
			return fmt.Errorf("failed to load tail pick: %w", err)
		}
		if req.ExpectPickID != nil && *req.ExpectPickID != tail.ID {
			return ErrNotTailPick
		}

		rows, err := q.DeletePick(ctx, tail.ID)
		if err != nil {
			return fmt.Errorf("failed to delete pick: %w", err)
		}
		if rows == 0 {
			return ErrNoPicks
		}

		if err := q.CreditTeamBudget(ctx, db.CreditTeamBudgetParams{
			Amount: tail.Cost,
			ID:     tail.TeamID,
		}); err != nil {
			return fmt.Errorf("failed to credit budget: %w", err)
		}

		// One undo steps the turn counter back exactly one, regardless of how
		// many timeout skips sit between the tail pick and the current turn.
		turn := 1
		if draft.CurrentTurn.Valid {
			turn = int(draft.CurrentTurn.Int32) - 1
		}
		if turn < 1 {
			turn = 1
		}
		round := (turn-1)/req.TeamCount + 1

		rows, err = q.RevertDraftTurn(ctx, db.RevertDraftTurnParams{
			Turn:         int32(turn),
			Round:        int32(round),
			NextDeadline: sqlutil.ToSqlTime(req.NextDeadline),
			ID:           req.DraftID,
		})
		if err != nil {
			return fmt.Errorf("failed to revert turn: %w", err)
		}
		if rows == 0 {
			return ErrDraftNotActive
		}

		result = UndoLastPickResult{
			Pick:         *dbPickToModel(tail),
			RevertedTurn: turn,
		}

		return insertOutboxEvent(ctx, q, req.DraftID, events.TypePickUndone, events.PickUndonePayload{
			PickID:     tail.ID,
			TeamID:     tail.TeamID,
			EntityID:   tail.EntityID,
			Cost:       tail.Cost,
			RevertedTo: turn,
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *Repository) GetPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	picks, err := r.queries.GetPicksByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks: %w", err)
	}
	result := make([]models.Pick, len(picks))
	for i, p := range picks {
		result[i] = *dbPickToModel(p)
	}
	return result, nil
}

func (r *Repository) CountPicksByDraft(ctx context.Context, draftID uuid.UUID) (int, error) {
	count, err := r.queries.CountPicksByDraft(ctx, draftID)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return int(count), nil
}

func (r *Repository) CountPicksByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	count, err := r.queries.CountPicksByTeam(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to count team picks: %w", err)
	}
	return int(count), nil
}

func dbPickToModel(p db.Pick) *models.Pick {
	return &models.Pick{
		ID:         p.ID,
		DraftID:    p.DraftID,
		TeamID:     p.TeamID,
		EntityID:   p.EntityID,
		EntityName: p.EntityName,
		Cost:       p.Cost,
		PickOrder:  int(p.PickOrder),
		Round:      int(p.Round),
		MadeBy:     sqlutil.FromNullUUID(p.MadeBy),
		CreatedAt:  p.CreatedAt,
	}
}

func marshalSettings(settings models.DraftSettings) ([]byte, error) {
	bytes, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft settings: %w", err)
	}
	return bytes, nil
}
