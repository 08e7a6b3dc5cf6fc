package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/db"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// UpsertWishlistEntry adds or re-ranks one entity on a team's wishlist.
func (r *Repository) UpsertWishlistEntry(ctx context.Context, teamID uuid.UUID, entityID, entityName string, rank int) (*models.WishlistEntry, error) {
	entry, err := r.queries.UpsertWishlistEntry(ctx, db.UpsertWishlistEntryParams{
		TeamID:     teamID,
		EntityID:   entityID,
		EntityName: entityName,
		Rank:       int32(rank),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert wishlist entry: %w", err)
	}
	return dbWishlistEntryToModel(entry), nil
}

func (r *Repository) DeleteWishlistEntry(ctx context.Context, teamID uuid.UUID, entityID string) error {
	rows, err := r.queries.DeleteWishlistEntry(ctx, db.DeleteWishlistEntryParams{
		TeamID:   teamID,
		EntityID: entityID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ListWishlist(ctx context.Context, teamID uuid.UUID) ([]models.WishlistEntry, error) {
	entries, err := r.queries.ListWishlistByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return wishlistEntriesToModels(entries), nil
}

// ListViableWishlist returns the team's wishlist filtered to entities nobody
// in the draft has picked yet, highest priority first.
func (r *Repository) ListViableWishlist(ctx context.Context, draftID, teamID uuid.UUID) ([]models.WishlistEntry, error) {
	entries, err := r.queries.ListViableWishlistByTeam(ctx, db.ListViableWishlistByTeamParams{
		TeamID:  teamID,
		DraftID: draftID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list viable wishlist: %w", err)
	}
	return wishlistEntriesToModels(entries), nil
}

func wishlistEntriesToModels(entries []db.WishlistEntry) []models.WishlistEntry {
	result := make([]models.WishlistEntry, len(entries))
	for i, e := range entries {
		result[i] = *dbWishlistEntryToModel(e)
	}
	return result
}

func dbWishlistEntryToModel(e db.WishlistEntry) *models.WishlistEntry {
	return &models.WishlistEntry{
		ID:         e.ID,
		TeamID:     e.TeamID,
		EntityID:   e.EntityID,
		EntityName: e.EntityName,
		Rank:       int(e.Rank),
		CreatedAt:  e.CreatedAt,
	}
}
