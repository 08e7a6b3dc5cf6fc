package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/draft/db"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// CreateAuctionRequest opens a new lot. The store rejects it when another
// auction is still active for the draft.
type CreateAuctionRequest struct {
	DraftID     uuid.UUID
	EntityID    string
	EntityName  string
	NominatedBy uuid.UUID
	StartingBid int64
	AuctionEnd  time.Time
}

func (r *Repository) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*models.Auction, error) {
	auctionID := uuid.New()
	var auction models.Auction

	err := r.inTx(ctx, func(q *db.Queries) error {
		taken, err := q.EntityPicked(ctx, db.EntityPickedParams{
			DraftID:  req.DraftID,
			EntityID: req.EntityID,
		})
		if err != nil {
			return fmt.Errorf("failed to check entity: %w", err)
		}
		if taken {
			return ErrEntityTaken
		}

		rows, err := q.CreateAuction(ctx, db.CreateAuctionParams{
			ID:          auctionID,
			DraftID:     req.DraftID,
			EntityID:    req.EntityID,
			EntityName:  req.EntityName,
			NominatedBy: req.NominatedBy,
			StartingBid: req.StartingBid,
			AuctionEnd:  req.AuctionEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to create auction: %w", err)
		}
		if rows == 0 {
			return ErrAuctionActive
		}

		created, err := q.GetAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("failed to reload auction: %w", err)
		}
		auction = *dbAuctionToModel(created)

		if err := updateDeadlineFromAuction(ctx, q, req.DraftID, created.AuctionEnd); err != nil {
			return err
		}

		return insertOutboxEvent(ctx, q, req.DraftID, events.TypeAuctionStarted, events.AuctionStartedPayload{
			AuctionID:   auctionID,
			EntityID:    req.EntityID,
			EntityName:  req.EntityName,
			NominatedBy: req.NominatedBy,
			StartingBid: req.StartingBid,
			AuctionEnd:  created.AuctionEnd,
		})
	})
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// PlaceBid applies one bid as a single conditional update. When the update
// touches zero rows the auction is refetched inside the transaction to
// classify which precondition failed.
func (r *Repository) PlaceBid(ctx context.Context, auctionID, teamID uuid.UUID, amount int64) (*models.Auction, error) {
	var auction models.Auction

	err := r.inTx(ctx, func(q *db.Queries) error {
		bidder := uuid.NullUUID{UUID: teamID, Valid: true}
		rows, err := q.PlaceBid(ctx, db.PlaceBidParams{
			Amount: amount,
			TeamID: bidder,
			ID:     auctionID,
		})
		if err != nil {
			return fmt.Errorf("failed to place bid: %w", err)
		}
		if rows == 0 {
			return r.classifyBidFailure(ctx, q, auctionID, teamID, amount)
		}

		if err := q.InsertBid(ctx, db.InsertBidParams{
			ID:        uuid.New(),
			AuctionID: auctionID,
			TeamID:    teamID,
			Amount:    amount,
		}); err != nil {
			return fmt.Errorf("failed to record bid: %w", err)
		}

		updated, err := q.GetAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("failed to reload auction: %w", err)
		}
		auction = *dbAuctionToModel(updated)

		return insertOutboxEvent(ctx, q, updated.DraftID, events.TypeBidPlaced, events.BidPlacedPayload{
			AuctionID: auctionID,
			TeamID:    teamID,
			Amount:    amount,
		})
	})
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *Repository) classifyBidFailure(ctx context.Context, q *db.Queries, auctionID, teamID uuid.UUID, amount int64) error {
	auction, err := q.GetAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to inspect auction: %w", err)
	}
	if auction.Status != db.AuctionStatusACTIVE || !auction.AuctionEnd.After(time.Now()) {
		return ErrAuctionClosed
	}
	if auction.CurrentBid >= amount {
		return ErrBidTooLow
	}

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to inspect team: %w", err)
	}
	if team.BudgetRemaining < amount {
		return ErrInsufficientBudget
	}
	return ErrBidTooLow
}

// ExtendAuction pushes the active lot's end time out by extendSec seconds and
// refreshes the draft's scheduler deadline.
func (r *Repository) ExtendAuction(ctx context.Context, auctionID uuid.UUID, extendSec int) (*models.Auction, error) {
	var auction models.Auction

	err := r.inTx(ctx, func(q *db.Queries) error {
		extended, err := q.ExtendAuction(ctx, db.ExtendAuctionParams{
			Secs: int32(extendSec),
			ID:   auctionID,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAuctionClosed
			}
			return fmt.Errorf("failed to extend auction: %w", err)
		}
		auction = *dbAuctionToModel(extended)

		if err := updateDeadlineFromAuction(ctx, q, extended.DraftID, extended.AuctionEnd); err != nil {
			return err
		}

		return insertOutboxEvent(ctx, q, extended.DraftID, events.TypeAuctionExtended, nil)
	})
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// ResolveAuctionResult reports what the resolution transaction did. Pick is
// nil when the lot closed with no bids.
type ResolveAuctionResult struct {
	Auction   models.Auction
	Pick      *models.Pick
	Completed bool
}

// ResolveAuction closes an expired lot: the winning bidder (if any) is
// debited and awarded a pick, and the draft's pick counter advances. The
// draft row lock serializes resolution against bids and other resolvers; a
// lot already resolved returns ErrAuctionResolved so duplicate timer fires
// are harmless.
//
// The budget debit is a compare-and-swap on the bidder's budget as observed
// inside the transaction. A mismatch rolls everything back with
// ErrBudgetConflict and the caller may retry.
func (r *Repository) ResolveAuction(ctx context.Context, draftID, auctionID uuid.UUID, totalTurns int, teamCount int, nextDeadline *time.Time) (*ResolveAuctionResult, error) {
	var result ResolveAuctionResult

	err := r.inTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetDraftForUpdate(ctx, draftID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock draft: %w", err)
		}

		auction, err := q.CompleteAuction(ctx, auctionID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAuctionResolved
			}
			return fmt.Errorf("failed to complete auction: %w", err)
		}
		result.Auction = *dbAuctionToModel(auction)

		winner := sqlutil.FromNullUUID(auction.CurrentBidderID)
		if winner == nil {
			// No bids: the lot lapses and the draft does not advance.
			if err := q.ClearNextDeadline(ctx, draftID); err != nil {
				return fmt.Errorf("failed to clear deadline: %w", err)
			}
			return insertOutboxEvent(ctx, q, draftID, events.TypeAuctionResolved, events.AuctionResolvedPayload{
				AuctionID:  auctionID,
				EntityID:   auction.EntityID,
				WinningBid: 0,
			})
		}

		team, err := q.GetTeam(ctx, *winner)
		if err != nil {
			return fmt.Errorf("failed to load winner: %w", err)
		}
		rows, err := q.DebitTeamBudgetCAS(ctx, db.DebitTeamBudgetCASParams{
			Amount:   auction.CurrentBid,
			ID:       *winner,
			Expected: team.BudgetRemaining,
		})
		if err != nil {
			return fmt.Errorf("failed to debit winner: %w", err)
		}
		if rows == 0 {
			return ErrBudgetConflict
		}

		count, err := q.CountPicksByDraft(ctx, draftID)
		if err != nil {
			return fmt.Errorf("failed to count picks: %w", err)
		}
		pickOrder := int(count) + 1
		round := (pickOrder-1)/teamCount + 1

		pickID := uuid.New()
		rows, err = q.InsertPick(ctx, db.InsertPickParams{
			ID:         pickID,
			DraftID:    draftID,
			TeamID:     *winner,
			EntityID:   auction.EntityID,
			EntityName: auction.EntityName,
			Cost:       auction.CurrentBid,
			PickOrder:  int32(pickOrder),
			Round:      int32(round),
		})
		if err != nil {
			return fmt.Errorf("failed to insert pick: %w", err)
		}
		if rows == 0 {
			return ErrEntityTaken
		}

		completed := pickOrder >= totalTurns
		status := db.DraftStatusINPROGRESS
		deadline := sqlutil.ToSqlTime(nextDeadline)
		if completed {
			status = db.DraftStatusCOMPLETED
			deadline = sql.NullTime{}
		}
		rows, err = q.SetDraftProgress(ctx, db.SetDraftProgressParams{
			Turn:         int32(pickOrder + 1),
			Round:        int32(round),
			Status:       status,
			NextDeadline: deadline,
			ID:           draftID,
		})
		if err != nil {
			return fmt.Errorf("failed to advance draft progress: %w", err)
		}
		if rows == 0 {
			// Draft left IN_PROGRESS between the due fetch and this
			// transaction (paused or cancelled). Roll the whole resolution
			// back; the lot stays ACTIVE for a later fire.
			return ErrDraftNotActive
		}

		pick, err := q.GetLastPickForDraft(ctx, draftID)
		if err != nil {
			return fmt.Errorf("failed to reload pick: %w", err)
		}
		result.Pick = dbPickToModel(pick)
		result.Completed = completed

		return insertOutboxEvent(ctx, q, draftID, events.TypeAuctionResolved, events.AuctionResolvedPayload{
			AuctionID:  auctionID,
			EntityID:   auction.EntityID,
			WinnerID:   winner,
			WinningBid: auction.CurrentBid,
			PickID:     &pickID,
			Completed:  completed,
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *Repository) GetActiveAuction(ctx context.Context, draftID uuid.UUID) (*models.Auction, error) {
	auction, err := r.queries.GetActiveAuctionByDraft(ctx, draftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active auction: %w", err)
	}
	return dbAuctionToModel(auction), nil
}

func (r *Repository) GetAuction(ctx context.Context, auctionID uuid.UUID) (*models.Auction, error) {
	auction, err := r.queries.GetAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return dbAuctionToModel(auction), nil
}

func (r *Repository) ListBids(ctx context.Context, auctionID uuid.UUID) ([]models.Bid, error) {
	bids, err := r.queries.ListBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	result := make([]models.Bid, len(bids))
	for i, b := range bids {
		result[i] = models.Bid{
			ID:        b.ID,
			AuctionID: b.AuctionID,
			TeamID:    b.TeamID,
			Amount:    b.Amount,
			CreatedAt: b.CreatedAt,
		}
	}
	return result, nil
}

func (r *Repository) FetchAuctionsDueForResolution(ctx context.Context, limit int) ([]DueAuction, error) {
	rows, err := r.queries.FetchAuctionsDueForResolution(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due auctions: %w", err)
	}
	due := make([]DueAuction, len(rows))
	for i, row := range rows {
		due[i] = DueAuction{AuctionID: row.ID, DraftID: row.DraftID}
	}
	return due, nil
}

// DueAuction identifies an expired ACTIVE lot awaiting resolution.
type DueAuction struct {
	AuctionID uuid.UUID
	DraftID   uuid.UUID
}

func updateDeadlineFromAuction(ctx context.Context, q *db.Queries, draftID uuid.UUID, end time.Time) error {
	if err := q.UpdateNextDeadline(ctx, db.UpdateNextDeadlineParams{
		NextDeadline: sql.NullTime{Time: end, Valid: true},
		ID:           draftID,
	}); err != nil {
		return fmt.Errorf("failed to update deadline: %w", err)
	}
	return nil
}

func dbAuctionToModel(a db.Auction) *models.Auction {
	return &models.Auction{
		ID:              a.ID,
		DraftID:         a.DraftID,
		EntityID:        a.EntityID,
		EntityName:      a.EntityName,
		NominatedBy:     a.NominatedBy,
		CurrentBid:      a.CurrentBid,
		CurrentBidderID: sqlutil.FromNullUUID(a.CurrentBidderID),
		AuctionEnd:      a.AuctionEnd,
		Status:          models.AuctionStatus(a.Status),
		CreatedAt:       a.CreatedAt,
		ResolvedAt:      sqlutil.FromSqlTime(a.ResolvedAt),
	}
}
