package draft

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/models"
)

func TestHandleDueTurnBeforeDeadlineIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeSnake, 2, snakeSettings())
	ctx := context.Background()

	require.NoError(t, env.app.HandleDueTurn(ctx, sd.draft.ID))

	draft, err := env.store.GetDraft(ctx, sd.draft.ID)
	require.NoError(t, err)
	require.NotNil(t, draft.CurrentTurn)
	assert.Equal(t, 1, *draft.CurrentTurn)
	picks, err := env.app.ListPicks(ctx, sd.draft.ID)
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestHandleDueTurnSkipsOnEmptyWishlist(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeSnake, 2, snakeSettings())
	ctx := context.Background()

	env.clock.Advance(31 * time.Second)
	require.NoError(t, env.app.HandleDueTurn(ctx, sd.draft.ID))

	draft, err := env.store.GetDraft(ctx, sd.draft.ID)
	require.NoError(t, err)
	require.NotNil(t, draft.CurrentTurn)
	assert.Equal(t, 2, *draft.CurrentTurn)
	require.NotNil(t, draft.NextDeadline)
	assert.Equal(t, env.clock.Now().UTC().Add(30*time.Second), *draft.NextDeadline)

	picks, err := env.app.ListPicks(ctx, sd.draft.ID)
	require.NoError(t, err)
	assert.Empty(t, picks)

	team, err := env.store.GetTeam(ctx, sd.teams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), team.BudgetRemaining)
}

func TestHandleDueTurnAutoPicksFirstViableEntry(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeSnake, 2, snakeSettings())
	ctx := context.Background()

	actor := sd.actors[sd.teams[0].ID]
	env.validator.set("banned", Verdict{Legal: false, Reason: "not legal in format"})
	env.validator.set("pricey", Verdict{Legal: true, Cost: 150})
	env.validator.set("gem", Verdict{Legal: true, Cost: 3})

	_, err := env.app.UpsertWishlistEntry(ctx, actor, "banned", "Banned", 1)
	require.NoError(t, err)
	_, err = env.app.UpsertWishlistEntry(ctx, actor, "pricey", "Pricey", 2)
	require.NoError(t, err)
	_, err = env.app.UpsertWishlistEntry(ctx, actor, "gem", "Gem", 3)
	require.NoError(t, err)

	env.clock.Advance(31 * time.Second)
	require.NoError(t, env.app.HandleDueTurn(ctx, sd.draft.ID))

	picks, err := env.app.ListPicks(ctx, sd.draft.ID)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "gem", picks[0].EntityID)
	assert.Equal(t, sd.teams[0].ID, picks[0].TeamID)
	assert.Nil(t, picks[0].MadeBy)

	team, err := env.store.GetTeam(ctx, sd.teams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(97), team.BudgetRemaining)

	draft, err := env.store.GetDraft(ctx, sd.draft.ID)
	require.NoError(t, err)
	require.NotNil(t, draft.CurrentTurn)
	assert.Equal(t, 2, *draft.CurrentTurn)
}

func TestHandleDueTurnSkipsWithoutWishlistWalkWhenRosterFull(t *testing.T) {
	env := newTestEnv(t)
	settings := snakeSettings()
	settings.EntitiesPerTeam = 1
	sd := seedDraft(t, env, models.DraftTypeSnake, 2, settings)
	ctx := context.Background()

	actor := sd.actors[sd.teams[0].ID]
	_, err := env.app.UpsertWishlistEntry(ctx, actor, "gem", "Gem", 1)
	require.NoError(t, err)

	// A pick credited to the due team outside the turn sequence leaves its
	// roster at capacity while the turn still points at it.
	env.store.mu.Lock()
	env.store.picks[sd.draft.ID] = append(env.store.picks[sd.draft.ID], models.Pick{
		ID:         uuid.New(),
		DraftID:    sd.draft.ID,
		TeamID:     sd.teams[0].ID,
		EntityID:   "stray",
		EntityName: "Stray",
		PickOrder:  1,
		Round:      1,
		CreatedAt:  env.clock.Now(),
	})
	env.store.mu.Unlock()

	env.clock.Advance(31 * time.Second)
	require.NoError(t, env.app.HandleDueTurn(ctx, sd.draft.ID))

	picks, err := env.app.ListPicks(ctx, sd.draft.ID)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "stray", picks[0].EntityID)

	draft, err := env.store.GetDraft(ctx, sd.draft.ID)
	require.NoError(t, err)
	require.NotNil(t, draft.CurrentTurn)
	assert.Equal(t, 2, *draft.CurrentTurn)
}

func TestHandleDueTurnToleratesVanishedDraft(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.app.HandleDueTurn(context.Background(), uuid.New()))
}

func TestHandleDueTurnIgnoresPausedAndAuctionDrafts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	paused := seedDraft(t, env, models.DraftTypeSnake, 2, snakeSettings())
	require.NoError(t, env.app.PauseDraft(ctx, paused.hostID, paused.draft.ID))

	auction := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	_, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: auction.draft.ID, ActorID: auction.actors[auction.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One",
	})
	require.NoError(t, err)

	env.clock.Advance(time.Minute)
	require.NoError(t, env.app.HandleDueTurn(ctx, paused.draft.ID))
	require.NoError(t, env.app.HandleDueTurn(ctx, auction.draft.ID))

	pausedDraft, err := env.store.GetDraft(ctx, paused.draft.ID)
	require.NoError(t, err)
	require.NotNil(t, pausedDraft.CurrentTurn)
	assert.Equal(t, 1, *pausedDraft.CurrentTurn)

	auctionPicks, err := env.app.ListPicks(ctx, auction.draft.ID)
	require.NoError(t, err)
	assert.Empty(t, auctionPicks)
}

func TestDueListingsFollowTheClock(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeSnake, 2, snakeSettings())
	ctx := context.Background()

	due, err := env.app.DueTurnDrafts(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	next, err := env.app.NextDeadline(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, sd.draft.ID, next.DraftID)

	env.clock.Advance(31 * time.Second)
	due, err = env.app.DueTurnDrafts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, sd.draft.ID, due[0])
}

func TestHandleDueAuctionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	sd := seedDraft(t, env, models.DraftTypeAuction, 2, auctionSettings())
	ctx := context.Background()

	auction, err := env.app.Nominate(ctx, NominateRequest{
		DraftID: sd.draft.ID, ActorID: sd.actors[sd.teams[0].ID],
		EntityID: "e1", EntityName: "Entity One",
	})
	require.NoError(t, err)
	_, err = env.app.PlaceBid(ctx, sd.actors[sd.teams[1].ID], auction.ID, 4)
	require.NoError(t, err)

	env.clock.Advance(21 * time.Second)

	due, err := env.app.DueAuctions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, auction.ID, due[0].AuctionID)

	require.NoError(t, env.app.HandleDueAuction(ctx, sd.draft.ID, auction.ID))
	require.NoError(t, env.app.HandleDueAuction(ctx, sd.draft.ID, auction.ID))

	picks, err := env.app.ListPicks(ctx, sd.draft.ID)
	require.NoError(t, err)
	assert.Len(t, picks, 1)
}
