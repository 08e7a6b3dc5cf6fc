package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// budgetConflictRetries bounds how often a resolution is replayed when the
// winner's budget moved between the read and the compare-and-swap debit.
const budgetConflictRetries = 3

// NominateRequest opens an auction lot for one entity. StartingBid acts as a
// reserve price: the first accepted bid must exceed it.
type NominateRequest struct {
	DraftID     uuid.UUID
	ActorID     uuid.UUID
	EntityID    string
	EntityName  string
	StartingBid int64
}

// Nominate opens a lot. The nomination right rotates round-robin over the
// draft order, indexed by total picks made so far, so one nomination happens
// per completed lot regardless of which team won it.
func (a *App) Nominate(ctx context.Context, req NominateRequest) (*models.Auction, error) {
	teamID, err := a.requireTeam(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.DraftType != models.DraftTypeAuction {
		return nil, ErrWrongDraftType
	}
	if draft.Status != models.DraftStatusInProgress {
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
	totalPicks, err := a.pickRepo.CountPicksByDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if nominatorForPickCount(order, totalPicks) != teamID {
		return nil, ErrNotNominator
	}

	verdict, err := a.validator.Validate(ctx, req.EntityID, draft.FormatID)
	if err != nil {
		return nil, fmt.Errorf("validator unavailable: %w", err)
	}
	if !verdict.Legal {
		return nil, &IneligibleEntityError{EntityID: req.EntityID, Reason: verdict.Reason}
	}

	startingBid := req.StartingBid
	if startingBid < 1 {
		startingBid = 1
	}
	if verdict.Cost > startingBid {
		startingBid = verdict.Cost
	}

	end := a.clock.Now().UTC().Add(time.Duration(draft.Settings.AuctionDurationSec) * time.Second)
	auction, err := a.auctionRepo.CreateAuction(ctx, repository.CreateAuctionRequest{
		DraftID:     req.DraftID,
		EntityID:    req.EntityID,
		EntityName:  req.EntityName,
		NominatedBy: teamID,
		StartingBid: startingBid,
		AuctionEnd:  end,
	})
	if err != nil {
		return nil, err
	}

	a.log.Info().
		Str("draft_id", req.DraftID.String()).
		Str("auction_id", auction.ID.String()).
		Str("entity_id", req.EntityID).
		Int64("starting_bid", startingBid).
		Msg("entity nominated")
	a.wake()
	return auction, nil
}

// PlaceBid submits a bid for the acting participant's team. The bid must
// strictly exceed the current bid and fit the team's remaining budget.
func (a *App) PlaceBid(ctx context.Context, actorID, auctionID uuid.UUID, amount int64) (*models.Auction, error) {
	teamID, err := a.requireTeam(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if amount < 1 {
		return nil, repository.ErrBidTooLow
	}
	auction, err := a.auctionRepo.PlaceBid(ctx, auctionID, teamID, amount)
	if err != nil {
		return nil, err
	}
	a.log.Debug().
		Str("auction_id", auctionID.String()).
		Str("team_id", teamID.String()).
		Int64("amount", amount).
		Msg("bid placed")
	return auction, nil
}

// ExtendAuction pushes a live lot's end out by extendSec seconds. Host-only.
func (a *App) ExtendAuction(ctx context.Context, actorID, draftID, auctionID uuid.UUID, extendSec int) (*models.Auction, error) {
	if _, err := a.requireHost(ctx, actorID, draftID); err != nil {
		return nil, err
	}
	if extendSec < 1 {
		return nil, fmt.Errorf("extension must be positive")
	}
	auction, err := a.auctionRepo.ExtendAuction(ctx, auctionID, extendSec)
	if err != nil {
		return nil, err
	}
	a.wake()
	return auction, nil
}

// GetActiveAuction returns the draft's live lot, if any.
func (a *App) GetActiveAuction(ctx context.Context, draftID uuid.UUID) (*models.Auction, error) {
	return a.auctionRepo.GetActiveAuction(ctx, draftID)
}

// ListBids returns the accepted-bid audit trail for a lot.
func (a *App) ListBids(ctx context.Context, auctionID uuid.UUID) ([]models.Bid, error) {
	return a.auctionRepo.ListBids(ctx, auctionID)
}

// ResolveAuction closes an expired lot and converts the winning bid into a
// pick. A budget conflict (the winner's budget moved between read and debit)
// rolls the whole resolution back; it is replayed a bounded number of times
// against fresh state.
func (a *App) ResolveAuction(ctx context.Context, draftID, auctionID uuid.UUID) (*repository.ResolveAuctionResult, error) {
	draft, err := a.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	teamCount, err := a.teamRepo.CountTeams(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if teamCount == 0 {
		return nil, ErrNotEnoughTeams
	}
	totalTurns := draft.TotalTurns(teamCount)

	var result *repository.ResolveAuctionResult
	for attempt := 0; attempt < budgetConflictRetries; attempt++ {
		result, err = a.auctionRepo.ResolveAuction(ctx, draftID, auctionID, totalTurns, teamCount, nil)
		if !errors.Is(err, repository.ErrBudgetConflict) {
			break
		}
		a.log.Warn().
			Str("auction_id", auctionID.String()).
			Int("attempt", attempt+1).
			Msg("auction resolution lost a budget race, retrying")
	}
	if err != nil {
		return nil, err
	}

	a.log.Info().
		Str("draft_id", draftID.String()).
		Str("auction_id", auctionID.String()).
		Bool("sold", result.Pick != nil).
		Bool("completed", result.Completed).
		Msg("auction resolved")
	a.wake()
	return result, nil
}
