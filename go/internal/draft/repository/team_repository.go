package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mcdev12/draftroom/go/internal/draft/db"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

const pqUniqueViolation = "23505"

// CreateTeam inserts a team seeded with the draft's full budget and emits a
// TeamJoined event. Duplicate names within a draft map to ErrTeamNameTaken
// via the unique constraint.
func (r *Repository) CreateTeam(ctx context.Context, draftID uuid.UUID, name string, budget int64) (*models.Team, error) {
	var team models.Team

	err := r.inTx(ctx, func(q *db.Queries) error {
		created, err := q.CreateTeam(ctx, db.CreateTeamParams{
			ID:              uuid.New(),
			DraftID:         draftID,
			Name:            name,
			BudgetRemaining: budget,
		})
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
				return ErrTeamNameTaken
			}
			return fmt.Errorf("failed to create team: %w", err)
		}
		team = *dbTeamToModel(created)
		return insertOutboxEvent(ctx, q, draftID, events.TypeTeamJoined, nil)
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *Repository) GetTeam(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	team, err := r.queries.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return dbTeamToModel(team), nil
}

func (r *Repository) ListTeams(ctx context.Context, draftID uuid.UUID) ([]models.Team, error) {
	teams, err := r.queries.ListTeamsByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	result := make([]models.Team, len(teams))
	for i, t := range teams {
		result[i] = *dbTeamToModel(t)
	}
	return result, nil
}

func (r *Repository) CountTeams(ctx context.Context, draftID uuid.UUID) (int, error) {
	count, err := r.queries.CountTeamsByDraft(ctx, draftID)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return int(count), nil
}

func (r *Repository) DeleteTeam(ctx context.Context, draftID, teamID uuid.UUID) error {
	rows, err := r.queries.DeleteTeam(ctx, db.DeleteTeamParams{
		ID:      teamID,
		DraftID: draftID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTeamBudget is an audited administrative override. The old and new values
// are recorded on the BudgetAdjusted event.
func (r *Repository) SetTeamBudget(ctx context.Context, draftID, teamID, adjustedBy uuid.UUID, newBudget int64) (*models.Team, error) {
	var team models.Team

	err := r.inTx(ctx, func(q *db.Queries) error {
		current, err := q.GetTeam(ctx, teamID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load team: %w", err)
		}

		rows, err := q.SetTeamBudget(ctx, db.SetTeamBudgetParams{
			BudgetRemaining: newBudget,
			ID:              teamID,
		})
		if err != nil {
			return fmt.Errorf("failed to set budget: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		updated := current
		updated.BudgetRemaining = newBudget
		team = *dbTeamToModel(updated)

		return insertOutboxEvent(ctx, q, draftID, events.TypeBudgetAdjusted, events.BudgetAdjustedPayload{
			TeamID:     teamID,
			OldBudget:  current.BudgetRemaining,
			NewBudget:  newBudget,
			AdjustedBy: adjustedBy,
		})
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func dbTeamToModel(t db.Team) *models.Team {
	return &models.Team{
		ID:              t.ID,
		DraftID:         t.DraftID,
		Name:            t.Name,
		DraftOrder:      sqlutil.FromSqlInt32(t.DraftOrder),
		BudgetRemaining: t.BudgetRemaining,
		CreatedAt:       t.CreatedAt,
	}
}
