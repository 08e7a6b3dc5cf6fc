package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/db"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// CreateParticipant registers a user in a draft room. TeamID nil means
// spectator.
func (r *Repository) CreateParticipant(ctx context.Context, draftID uuid.UUID, displayName string, teamID *uuid.UUID, isHost bool) (*models.Participant, error) {
	participant, err := r.queries.CreateParticipant(ctx, db.CreateParticipantParams{
		ID:          uuid.New(),
		DraftID:     draftID,
		DisplayName: displayName,
		TeamID:      sqlutil.ToNullUUID(teamID),
		IsHost:      isHost,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return dbParticipantToModel(participant), nil
}

func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	participant, err := r.queries.GetParticipant(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return dbParticipantToModel(participant), nil
}

func (r *Repository) ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error) {
	participants, err := r.queries.ListParticipantsByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	result := make([]models.Participant, len(participants))
	for i, p := range participants {
		result[i] = *dbParticipantToModel(p)
	}
	return result, nil
}

func (r *Repository) AssignParticipantTeam(ctx context.Context, participantID uuid.UUID, teamID *uuid.UUID) error {
	if err := r.queries.AssignParticipantTeam(ctx, db.AssignParticipantTeamParams{
		TeamID: sqlutil.ToNullUUID(teamID),
		ID:     participantID,
	}); err != nil {
		return fmt.Errorf("failed to assign participant team: %w", err)
	}
	return nil
}

// TouchParticipant bumps last_seen_at for presence tracking.
func (r *Repository) TouchParticipant(ctx context.Context, participantID uuid.UUID) error {
	if err := r.queries.TouchParticipant(ctx, participantID); err != nil {
		return fmt.Errorf("failed to touch participant: %w", err)
	}
	return nil
}

func dbParticipantToModel(p db.Participant) *models.Participant {
	return &models.Participant{
		ID:          p.ID,
		DraftID:     p.DraftID,
		DisplayName: p.DisplayName,
		TeamID:      sqlutil.FromNullUUID(p.TeamID),
		IsHost:      p.IsHost,
		LastSeenAt:  p.LastSeenAt,
		CreatedAt:   p.CreatedAt,
	}
}
