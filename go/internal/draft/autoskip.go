package draft

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// NextDeadline exposes the earliest persisted deadline (snake turn or
// auction end) to the scheduler. Nil means nothing is scheduled.
func (a *App) NextDeadline(ctx context.Context) (*repository.NextDeadline, error) {
	return a.repo.FetchNextDeadline(ctx)
}

// DueTurnDrafts lists in-progress snake drafts whose turn deadline has
// passed.
func (a *App) DueTurnDrafts(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	return a.repo.FetchDraftsDueForTurn(ctx, limit)
}

// DueAuctions lists live lots past their end time on in-progress drafts.
func (a *App) DueAuctions(ctx context.Context, limit int) ([]repository.DueAuction, error) {
	return a.auctionRepo.FetchAuctionsDueForResolution(ctx, limit)
}

// HandleDueTurn fires when a snake turn's time budget has elapsed: walk the
// due team's wishlist for the first viable entity and commit it as a normal
// pick, else advance the turn with no pick. Everything that means "the draft
// moved on" (vanished, paused, completed, turn already advanced) is a silent
// no-op; only genuinely unexpected failures propagate.
func (a *App) HandleDueTurn(ctx context.Context, draftID uuid.UUID) error {
	draft, err := a.repo.GetDraft(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if draft.DraftType != models.DraftTypeSnake ||
		draft.Status != models.DraftStatusInProgress ||
		draft.CurrentTurn == nil {
		return nil
	}
	if draft.NextDeadline == nil || a.clock.Now().Before(*draft.NextDeadline) {
		return nil
	}

	teams, err := a.teamRepo.ListTeams(ctx, draftID)
	if err != nil {
		return err
	}
	order := baseOrder(teams)
	if order == nil {
		return nil
	}

	turn := *draft.CurrentTurn
	dueTeamID := teamForTurn(order, turn)
	var dueTeam *models.Team
	for i := range teams {
		if teams[i].ID == dueTeamID {
			dueTeam = &teams[i]
			break
		}
	}
	if dueTeam == nil {
		return nil
	}

	if committed, err := a.tryWishlistPick(ctx, draft, dueTeam, turn); err != nil || committed {
		return err
	}
	return a.skipTurn(ctx, draft, dueTeamID, turn, len(order))
}

// tryWishlistPick walks the team's viable wishlist in priority order and
// commits the first entity the team can still take. Losing the turn race
// counts as committed: someone else moved the draft on.
func (a *App) tryWishlistPick(ctx context.Context, draft *models.Draft, team *models.Team, turn int) (bool, error) {
	picks, err := a.pickRepo.CountPicksByTeam(ctx, team.ID)
	if err != nil {
		return false, err
	}
	if picks >= draft.Settings.EntitiesPerTeam {
		return false, nil
	}

	entries, err := a.wishlistRepo.ListViableWishlist(ctx, draft.ID, team.ID)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		verdict, err := a.validator.Validate(ctx, entry.EntityID, draft.FormatID)
		if err != nil {
			a.log.Warn().Err(err).
				Str("draft_id", draft.ID.String()).
				Str("entity_id", entry.EntityID).
				Msg("validator unavailable during auto-pick, skipping entry")
			continue
		}
		if !verdict.Legal || verdict.Cost > team.BudgetRemaining {
			continue
		}

		_, err = a.commitPick(ctx, PickRequest{
			DraftID:      draft.ID,
			EntityID:     entry.EntityID,
			EntityName:   entry.EntityName,
			ExpectedTurn: turn,
		}, team.ID, nil)
		switch {
		case err == nil:
			a.log.Info().
				Str("draft_id", draft.ID.String()).
				Str("team_id", team.ID.String()).
				Str("entity_id", entry.EntityID).
				Msg("auto-pick committed from wishlist")
			return true, nil
		case errors.Is(err, repository.ErrTurnConflict) || errors.Is(err, repository.ErrDraftNotActive):
			return true, nil
		case errors.Is(err, repository.ErrEntityTaken),
			errors.Is(err, repository.ErrInsufficientBudget),
			errors.Is(err, ErrEntityIneligible):
			continue
		case errors.Is(err, repository.ErrRosterFull):
			return false, nil
		default:
			return false, err
		}
	}
	return false, nil
}

// skipTurn advances the turn with no pick. A lost turn race means the skip
// is stale and drops silently.
func (a *App) skipTurn(ctx context.Context, draft *models.Draft, teamID uuid.UUID, turn, teamCount int) error {
	totalTurns := draft.TotalTurns(teamCount)
	completed := turn >= totalTurns
	nextTurn := turn + 1
	nextRound := (turn-1)/teamCount + 1
	if !completed {
		nextRound = (nextTurn-1)/teamCount + 1
	}

	settings := applyPendingTimer(draft.Settings)
	var deadline *time.Time
	if !completed {
		deadline = a.turnDeadline(settings)
	}

	err := a.pickRepo.SkipTurn(ctx, repository.SkipTurnRequest{
		DraftID:      draft.ID,
		TeamID:       teamID,
		ExpectedTurn: turn,
		NextTurn:     nextTurn,
		NextRound:    nextRound,
		Completed:    completed,
		Settings:     settings,
		NextDeadline: deadline,
		Reason:       "turn time limit elapsed",
	})
	if errors.Is(err, repository.ErrTurnConflict) || errors.Is(err, repository.ErrDraftNotActive) {
		return nil
	}
	if err != nil {
		return err
	}

	a.log.Info().
		Str("draft_id", draft.ID.String()).
		Str("team_id", teamID.String()).
		Int("turn", turn).
		Msg("turn skipped on timeout")
	a.wake()
	return nil
}

// HandleDueAuction resolves one expired lot on behalf of the scheduler.
// Already-resolved and vanished lots are silent no-ops.
func (a *App) HandleDueAuction(ctx context.Context, draftID, auctionID uuid.UUID) error {
	_, err := a.ResolveAuction(ctx, draftID, auctionID)
	if errors.Is(err, repository.ErrAuctionResolved) ||
		errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrDraftNotActive) {
		return nil
	}
	return err
}
