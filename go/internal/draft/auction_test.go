package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
	"github.com/mcdev12/draftroom/go/internal/models"
)

func TestNominationRightRotates(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	// Second team does not hold the first nomination right.
	_, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[1].ID],
		EntityID: "e1", EntityName: "Entity One",
	})
	require.ErrorIs(t, err, ErrNotNominator)

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), auction.CurrentBid)
	assert.Nil(t, auction.CurrentBidderID)
	assert.Equal(t, env.clock.Now().UTC().Add(20*time.Second), auction.AuctionEnd)

	// Only one lot may be live at a time.
	_, err = env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e2", EntityName: "Entity Two",
	})
	require.ErrorIs(t, err, repository.ErrAuctionActive)

	// After the first lot sells, the right moves to the second team.
	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[1].ID], auction.ID, 6)
	require.NoError(t, err)
	env.clock.Advance(21 * time.Second)
	_, err = env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.NoError(t, err)

	_, err = env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e2", EntityName: "Entity Two",
	})
	require.ErrorIs(t, err, ErrNotNominator)
	_, err = env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[1].ID],
		EntityID: "e2", EntityName: "Entity Two",
	})
	require.NoError(t, err)
}

func TestResolveAuctionOnPausedDraftRollsBack(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 5,
	})
	require.NoError(t, err)
	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[1].ID], auction.ID, 6)
	require.NoError(t, err)

	// The draft pauses after the lot was fetched as due but before it
	// resolves. Nothing may be debited or awarded.
	require.NoError(t, env.app.PauseDraft(ctx, sd.hostID, sd.draft.ID))
	env.clock.Advance(21 * time.Second)

	_, err = env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.ErrorIs(t, err, repository.ErrDraftNotActive)
	// The scheduler path drops the same conflict silently.
	require.NoError(t, env.app.HandleDueAuction(ctx, sd.draft.ID, auction.ID))

	live, err := env.store.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusActive, live.Status)

	team, err := env.store.GetTeam(ctx, sd.teams[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), team.BudgetRemaining)

	picks, err := env.app.ListPicks(ctx, sd.draft.ID)
	require.NoError(t, err)
	assert.Empty(t, picks)

	// After resuming, the lot resolves normally.
	require.NoError(t, env.app.ResumeDraft(ctx, sd.hostID, sd.draft.ID))
	result, err := env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Pick)
	assert.Equal(t, sd.teams[1].ID, result.Pick.TeamID)
}

func TestPlaceBidRejections(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 10,
	})
	require.NoError(t, err)

	bidder := sd.actors[sd.teams[1].ID]

	// The reserve must be strictly exceeded.
	_, err = env.app.PlaceBid(ctx, bidder, auction.ID, 10)
	require.ErrorIs(t, err, repository.ErrBidTooLow)

	// A bid past the team's budget is rejected.
	_, err = env.app.PlaceBid(ctx, bidder, auction.ID, 101)
	require.ErrorIs(t, err, repository.ErrInsufficientBudget)

	updated, err := env.app.PlaceBid(ctx, bidder, auction.ID, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(11), updated.CurrentBid)
	require.NotNil(t, updated.CurrentBidderID)
	assert.Equal(t, sd.teams[1].ID, *updated.CurrentBidderID)

	// Equal to current loses.
	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[0].ID], auction.ID, 11)
	require.ErrorIs(t, err, repository.ErrBidTooLow)

	// Bids after the end time are rejected.
	env.clock.Advance(time.Minute)
	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[0].ID], auction.ID, 12)
	require.ErrorIs(t, err, repository.ErrAuctionClosed)
}

func TestResolveAuctionDebitsWinnerAndAdvances(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 5,
	})
	require.NoError(t, err)

	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[1].ID], auction.ID, 30)
	require.NoError(t, err)

	env.clock.Advance(21 * time.Second)
	result, err := env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Pick)
	assert.Equal(t, sd.teams[1].ID, result.Pick.TeamID)
	assert.Equal(t, int64(30), result.Pick.Cost)
	assert.Equal(t, 1, result.Pick.PickOrder)
	assert.False(t, result.Completed)

	team, err := env.store.GetTeam(ctx, sd.teams[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), team.BudgetRemaining)

	// Second resolution of the same lot is a conflict.
	_, err = env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.ErrorIs(t, err, repository.ErrAuctionResolved)
}

func TestResolveAuctionWithNoBidsLapses(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 5,
	})
	require.NoError(t, err)

	env.clock.Advance(21 * time.Second)
	result, err := env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.NoError(t, err)
	assert.Nil(t, result.Pick)
	assert.False(t, result.Completed)

	picks, err := env.app.ListPicks(ctx, sd.draft.ID)
	require.NoError(t, err)
	assert.Empty(t, picks)

	// The lapsed entity may be renominated; the right has not moved.
	_, err = env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 1,
	})
	require.NoError(t, err)
}

func TestResolveAuctionRetriesBudgetConflict(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 5,
	})
	require.NoError(t, err)
	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[1].ID], auction.ID, 8)
	require.NoError(t, err)

	env.clock.Advance(21 * time.Second)

	// Two lost races are retried away; the third attempt lands.
	env.store.budgetConflicts = 2
	result, err := env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Pick)
}

func TestResolveAuctionGivesUpAfterRetryBudget(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 5,
	})
	require.NoError(t, err)
	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[1].ID], auction.ID, 8)
	require.NoError(t, err)

	env.clock.Advance(21 * time.Second)

	env.store.budgetConflicts = budgetConflictRetries
	_, err = env.app.ResolveAuction(ctx, sd.draft.ID, auction.ID)
	require.ErrorIs(t, err, repository.ErrBudgetConflict)
}

func TestExtendAuction(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One", StartingBid: 5,
	})
	require.NoError(t, err)

	_, err = env.app.ExtendAuction(ctx, sd.actors[sd.teams[1].ID], sd.draft.ID, auction.ID, 30)
	require.ErrorIs(t, err, ErrNotHost)

	extended, err := env.app.ExtendAuction(ctx, sd.hostID, sd.draft.ID, auction.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, auction.AuctionEnd.Add(30*time.Second), extended.AuctionEnd)
}

func TestNominateRaisesReserveToValidatorCost(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())

	env.validator.set("pricey", Verdict{Legal: true, Cost: 40})

	auction, err := env.app.Nominate(context.Background(), NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "pricey", EntityName: "Pricey", StartingBid: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), auction.CurrentBid)
}

func TestNominateOnSnakeDraftRejected(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeSnake, 2, snakeSettings())

	_, err := env.app.Nominate(context.Background(), NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One",
	})
	require.ErrorIs(t, err, ErrWrongDraftType)
}
