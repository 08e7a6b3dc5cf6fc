package draft

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/draft/repository"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// DraftRepository defines what the app layer needs from the draft repository.
type DraftRepository interface {
	CreateDraft(ctx context.Context, req repository.CreateDraftRequest) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	UpdateDraftSettings(ctx context.Context, id uuid.UUID, settings models.DraftSettings) (*models.Draft, error)
	StartDraft(ctx context.Context, id uuid.UUID, deadline *time.Time, payload events.DraftStartedPayload) (bool, error)
	PauseDraft(ctx context.Context, id uuid.UUID) error
	ResumeDraft(ctx context.Context, id uuid.UUID, deadline *time.Time) error
	CompleteDraft(ctx context.Context, id uuid.UUID) error
	CancelDraft(ctx context.Context, id uuid.UUID) error
	ResetDraft(ctx context.Context, id uuid.UUID, budgetPerTeam int64) error
	AssignDraftOrder(ctx context.Context, draftID uuid.UUID, orders map[uuid.UUID]int) error
	FetchNextDeadline(ctx context.Context) (*repository.NextDeadline, error)
	FetchDraftsDueForTurn(ctx context.Context, limit int32) ([]uuid.UUID, error)
}

// PickRepository defines what the app layer needs from the pick repository.
type PickRepository interface {
	CommitPick(ctx context.Context, req repository.CommitPickRequest) (*repository.CommitPickResult, error)
	SkipTurn(ctx context.Context, req repository.SkipTurnRequest) error
	UndoLastPick(ctx context.Context, req repository.UndoLastPickRequest) (*repository.UndoLastPickResult, error)
	GetPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error)
	CountPicksByDraft(ctx context.Context, draftID uuid.UUID) (int, error)
	CountPicksByTeam(ctx context.Context, teamID uuid.UUID) (int, error)
}

// AuctionRepository defines what the app layer needs from the auction repository.
type AuctionRepository interface {
	CreateAuction(ctx context.Context, req repository.CreateAuctionRequest) (*models.Auction, error)
	PlaceBid(ctx context.Context, auctionID, teamID uuid.UUID, amount int64) (*models.Auction, error)
	ExtendAuction(ctx context.Context, auctionID uuid.UUID, extendSec int) (*models.Auction, error)
	ResolveAuction(ctx context.Context, draftID, auctionID uuid.UUID, totalTurns int, teamCount int, nextDeadline *time.Time) (*repository.ResolveAuctionResult, error)
	GetActiveAuction(ctx context.Context, draftID uuid.UUID) (*models.Auction, error)
	GetAuction(ctx context.Context, auctionID uuid.UUID) (*models.Auction, error)
	ListBids(ctx context.Context, auctionID uuid.UUID) ([]models.Bid, error)
	FetchAuctionsDueForResolution(ctx context.Context, limit int) ([]repository.DueAuction, error)
}

// TeamRepository defines what the app layer needs from the team repository.
type TeamRepository interface {
	CreateTeam(ctx context.Context, draftID uuid.UUID, name string, budget int64) (*models.Team, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, draftID uuid.UUID) ([]models.Team, error)
	CountTeams(ctx context.Context, draftID uuid.UUID) (int, error)
	DeleteTeam(ctx context.Context, draftID, teamID uuid.UUID) error
	SetTeamBudget(ctx context.Context, draftID, teamID, adjustedBy uuid.UUID, newBudget int64) (*models.Team, error)
}

// ParticipantRepository defines what the app layer needs from the participant repository.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, draftID uuid.UUID, displayName string, teamID *uuid.UUID, isHost bool) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error)
	AssignParticipantTeam(ctx context.Context, participantID uuid.UUID, teamID *uuid.UUID) error
	TouchParticipant(ctx context.Context, participantID uuid.UUID) error
}

// WishlistRepository defines what the app layer needs from the wishlist repository.
type WishlistRepository interface {
	UpsertWishlistEntry(ctx context.Context, teamID uuid.UUID, entityID, entityName string, rank int) (*models.WishlistEntry, error)
	DeleteWishlistEntry(ctx context.Context, teamID uuid.UUID, entityID string) error
	ListWishlist(ctx context.Context, teamID uuid.UUID) ([]models.WishlistEntry, error)
	ListViableWishlist(ctx context.Context, draftID, teamID uuid.UUID) ([]models.WishlistEntry, error)
}

// Waker pokes the scheduler loop after a deadline-affecting mutation so it
// re-reads the earliest deadline instead of sleeping through it.
type Waker interface {
	Wake()
}

// App handles draft business logic. It owns no clock service beyond reading
// "now" from the injected clock; all timer firing is the orchestrator's job.
type App struct {
	repo            DraftRepository
	pickRepo        PickRepository
	auctionRepo     AuctionRepository
	teamRepo        TeamRepository
	participantRepo ParticipantRepository
	wishlistRepo    WishlistRepository
	validator       EntityValidator
	clock           clockwork.Clock
	rng             *rand.Rand
	waker           Waker
	log             zerolog.Logger
}

// NewApp creates a new draft App.
func NewApp(
	repo DraftRepository,
	pickRepo PickRepository,
	auctionRepo AuctionRepository,
	teamRepo TeamRepository,
	participantRepo ParticipantRepository,
	wishlistRepo WishlistRepository,
	validator EntityValidator,
	clock clockwork.Clock,
	logger zerolog.Logger,
) *App {
	return &App{
		repo:            repo,
		pickRepo:        pickRepo,
		auctionRepo:     auctionRepo,
		teamRepo:        teamRepo,
		participantRepo: participantRepo,
		wishlistRepo:    wishlistRepo,
		validator:       validator,
		clock:           clock,
		rng:             rand.New(rand.NewSource(clock.Now().UnixNano())),
		waker:           nil,
		log:             logger.With().Str("component", "draft_app").Logger(),
	}
}

// SetWaker wires the scheduler once it exists; the orchestrator is
// constructed after the App.
func (a *App) SetWaker(w Waker) {
	a.waker = w
}

func (a *App) wake() {
	if a.waker != nil {
		a.waker.Wake()
	}
}

// CreateDraft creates a new draft with validated settings.
func (a *App) CreateDraft(ctx context.Context, req repository.CreateDraftRequest) (*models.Draft, error) {
	if err := validateCreateDraftRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	draft, err := a.repo.CreateDraft(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	a.log.Info().
		Str("draft_id", draft.ID.String()).
		Str("draft_type", string(draft.DraftType)).
		Msg("draft created")
	return draft, nil
}

func validateCreateDraftRequest(req repository.CreateDraftRequest) error {
	if req.Name == "" {
		return fmt.Errorf("draft name is required")
	}
	if req.FormatID == "" {
		return fmt.Errorf("format id is required")
	}
	if req.DraftType != models.DraftTypeSnake && req.DraftType != models.DraftTypeAuction {
		return fmt.Errorf("unknown draft type %q", req.DraftType)
	}
	if req.MaxTeams < 2 {
		return fmt.Errorf("max teams must be at least 2")
	}
	return validateSettings(req.DraftType, req.Settings)
}

func validateSettings(draftType models.DraftType, s models.DraftSettings) error {
	if s.EntitiesPerTeam < 1 {
		return fmt.Errorf("entities per team must be at least 1")
	}
	if s.TimeLimitSec < 0 {
		return fmt.Errorf("turn time limit cannot be negative")
	}
	if draftType == models.DraftTypeAuction {
		if s.BudgetPerTeam < 1 {
			return fmt.Errorf("auction drafts require a positive budget")
		}
		if s.AuctionDurationSec < 1 {
			return fmt.Errorf("auction drafts require a positive auction duration")
		}
	}
	return nil
}

// GetDraft returns a draft by ID.
func (a *App) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	return a.repo.GetDraft(ctx, id)
}

// UpdateDraftSettings replaces the settings of a draft still in setup.
func (a *App) UpdateDraftSettings(ctx context.Context, actorID, draftID uuid.UUID, settings models.DraftSettings) (*models.Draft, error) {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusNotStarted {
		return nil, repository.ErrDraftNotActive
	}
	if err := validateSettings(draft.DraftType, settings); err != nil {
		return nil, fmt.Errorf("invalid draft settings: %w", err)
	}
	return a.repo.UpdateDraftSettings(ctx, draftID, settings)
}

// JoinOutcome discriminates the join protocol's result variants.
type JoinOutcome string

const (
	JoinOutcomeJoined    JoinOutcome = "JOINED"
	JoinOutcomeSpectator JoinOutcome = "SPECTATOR"
	JoinOutcomeRejected  JoinOutcome = "REJECTED"
)

// JoinResult is the explicit variant result of JoinDraft. Team is set only
// for JOINED; Reason only for REJECTED.
type JoinResult struct {
	Outcome     JoinOutcome
	Team        *models.Team
	Participant *models.Participant
	Reason      string
}

// JoinRequest describes one user entering a draft room. An empty TeamName or
// Spectate=true yields a spectator.
type JoinRequest struct {
	DraftID     uuid.UUID
	DisplayName string
	TeamName    string
	Spectate    bool
}

// JoinDraft admits a user to a draft. The first participant to join becomes
// the host. Team creation is only possible while the draft is in setup; a
// join against a running draft degrades to spectator instead of failing.
func (a *App) JoinDraft(ctx context.Context, req JoinRequest) (*JoinResult, error) {
	if req.DisplayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.Status == models.DraftStatusCancelled {
		return &JoinResult{Outcome: JoinOutcomeRejected, Reason: "draft is cancelled"}, nil
	}

	existing, err := a.participantRepo.ListParticipants(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	isHost := len(existing) == 0

	if req.Spectate || req.TeamName == "" || draft.Status != models.DraftStatusNotStarted {
		participant, err := a.participantRepo.CreateParticipant(ctx, req.DraftID, req.DisplayName, nil, isHost)
		if err != nil {
			return nil, err
		}
		return &JoinResult{Outcome: JoinOutcomeSpectator, Participant: participant}, nil
	}

	count, err := a.teamRepo.CountTeams(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if count >= draft.MaxTeams {
		return &JoinResult{Outcome: JoinOutcomeRejected, Reason: "draft already has its maximum team count"}, nil
	}

	team, err := a.teamRepo.CreateTeam(ctx, req.DraftID, req.TeamName, draft.Settings.BudgetPerTeam)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNameTaken) {
			return &JoinResult{Outcome: JoinOutcomeRejected, Reason: "team name already taken"}, nil
		}
		return nil, err
	}

	participant, err := a.participantRepo.CreateParticipant(ctx, req.DraftID, req.DisplayName, &team.ID, isHost)
	if err != nil {
		return nil, err
	}

	a.log.Info().
		Str("draft_id", req.DraftID.String()).
		Str("team_id", team.ID.String()).
		Bool("host", isHost).
		Msg("team joined draft")
	return &JoinResult{Outcome: JoinOutcomeJoined, Team: team, Participant: participant}, nil
}

// StartDraft transitions a draft from setup to in-progress. Requirements: at
// least two teams, every team backed by at least one participant, and a valid
// order assignment (shuffled automatically once when none was set manually).
// A second start call on a running draft is a no-op.
func (a *App) StartDraft(ctx context.Context, actorID, draftID uuid.UUID) (*models.Draft, error) {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status == models.DraftStatusInProgress {
		return draft, nil
	}
	if draft.Status != models.DraftStatusNotStarted {
		return nil, repository.ErrDraftNotActive
	}

	teams, err := a.teamRepo.ListTeams(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	participants, err := a.participantRepo.ListParticipants(ctx, draftID)
	if err != nil {
		return nil, err
	}
	backed := make(map[uuid.UUID]bool, len(teams))
	for _, p := range participants {
		if p.TeamID != nil {
			backed[*p.TeamID] = true
		}
	}
	for _, t := range teams {
		if !backed[t.ID] {
			return nil, ErrUnassignedTeams
		}
	}

	if !validOrderAssignment(teams) {
		if draft.OrderShuffled {
			return nil, ErrInvalidOrder
		}
		if err := a.repo.AssignDraftOrder(ctx, draftID, shuffleOrder(teams, a.rng)); err != nil {
			return nil, err
		}
	}

	deadline := a.turnDeadline(draft.Settings)
	started, err := a.repo.StartDraft(ctx, draftID, deadline, events.DraftStartedPayload{
		DraftType:  string(draft.DraftType),
		StartedAt:  a.clock.Now().UTC(),
		TeamCount:  len(teams),
		TotalTurns: draft.TotalTurns(len(teams)),
	})
	if err != nil {
		return nil, err
	}
	if started {
		a.log.Info().
			Str("draft_id", draftID.String()).
			Int("teams", len(teams)).
			Msg("draft started")
		a.wake()
	}
	return a.repo.GetDraft(ctx, draftID)
}

// PauseDraft freezes the turn clock. A live auction keeps its end time but
// is not resolved while the draft is paused.
func (a *App) PauseDraft(ctx context.Context, actorID, draftID uuid.UUID) error {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return err
	}
	if !draft.Status.CanTransitionTo(models.DraftStatusPaused) {
		return repository.ErrDraftNotActive
	}
	if err := a.repo.PauseDraft(ctx, draftID); err != nil {
		return err
	}
	a.log.Info().Str("draft_id", draftID.String()).Msg("draft paused")
	return nil
}

// ResumeDraft returns a paused draft to in-progress with a fresh full turn
// timer.
func (a *App) ResumeDraft(ctx context.Context, actorID, draftID uuid.UUID) error {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return err
	}
	if !draft.Status.CanTransitionTo(models.DraftStatusInProgress) {
		return repository.ErrDraftNotActive
	}
	if err := a.repo.ResumeDraft(ctx, draftID, a.turnDeadline(draft.Settings)); err != nil {
		return err
	}
	a.log.Info().Str("draft_id", draftID.String()).Msg("draft resumed")
	a.wake()
	return nil
}

// EndDraft force-completes a draft regardless of remaining turns.
func (a *App) EndDraft(ctx context.Context, actorID, draftID uuid.UUID) error {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return err
	}
	if !draft.Status.CanTransitionTo(models.DraftStatusCompleted) {
		return repository.ErrDraftNotActive
	}
	if err := a.repo.CompleteDraft(ctx, draftID); err != nil {
		return err
	}
	a.log.Info().Str("draft_id", draftID.String()).Msg("draft completed by host")
	return nil
}

// CancelDraft soft-retires a draft.
func (a *App) CancelDraft(ctx context.Context, actorID, draftID uuid.UUID) error {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return err
	}
	if !draft.Status.CanTransitionTo(models.DraftStatusCancelled) {
		return repository.ErrDraftNotActive
	}
	if err := a.repo.CancelDraft(ctx, draftID); err != nil {
		return err
	}
	a.log.Info().Str("draft_id", draftID.String()).Msg("draft cancelled")
	return nil
}

// ResetDraft wipes picks, auctions, and budgets and returns the draft to
// setup. Teams and participants survive.
func (a *App) ResetDraft(ctx context.Context, actorID, draftID uuid.UUID) error {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return err
	}
	if err := a.repo.ResetDraft(ctx, draftID, draft.Settings.BudgetPerTeam); err != nil {
		return err
	}
	a.log.Info().Str("draft_id", draftID.String()).Msg("draft reset")
	return nil
}

// ShuffleOrder randomizes the draft order. Only valid during setup.
func (a *App) ShuffleOrder(ctx context.Context, actorID, draftID uuid.UUID) ([]models.Team, error) {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusNotStarted {
		return nil, repository.ErrDraftNotActive
	}
	teams, err := a.teamRepo.ListTeams(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}
	if err := a.repo.AssignDraftOrder(ctx, draftID, shuffleOrder(teams, a.rng)); err != nil {
		return nil, err
	}
	return a.teamRepo.ListTeams(ctx, draftID)
}

// AdjustTeamBudget is the audited administrative override exempt from the
// cost-linkage invariant.
func (a *App) AdjustTeamBudget(ctx context.Context, actorID, draftID, teamID uuid.UUID, newBudget int64) (*models.Team, error) {
	if _, err := a.requireHost(ctx, actorID, draftID); err != nil {
		return nil, err
	}
	if newBudget < 0 {
		return nil, fmt.Errorf("budget cannot be negative")
	}
	team, err := a.teamRepo.SetTeamBudget(ctx, draftID, teamID, actorID, newBudget)
	if err != nil {
		return nil, err
	}
	a.log.Info().
		Str("draft_id", draftID.String()).
		Str("team_id", teamID.String()).
		Int64("new_budget", newBudget).
		Msg("team budget adjusted by host")
	return team, nil
}

// SetTurnTimer queues a turn time limit change. For a running draft the new
// limit takes effect on the next turn advance so the current turn's clock is
// never rewritten under the acting team.
func (a *App) SetTurnTimer(ctx context.Context, actorID, draftID uuid.UUID, timeLimitSec int) (*models.Draft, error) {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return nil, err
	}
	if timeLimitSec < 0 {
		return nil, fmt.Errorf("turn time limit cannot be negative")
	}

	settings := draft.Settings
	if draft.Status == models.DraftStatusNotStarted {
		settings.TimeLimitSec = timeLimitSec
		settings.PendingTimeLimitSec = nil
	} else {
		settings.PendingTimeLimitSec = &timeLimitSec
	}
	return a.repo.UpdateDraftSettings(ctx, draftID, settings)
}

// SetUndoAllowed toggles the undo flag.
func (a *App) SetUndoAllowed(ctx context.Context, actorID, draftID uuid.UUID, allowed bool) (*models.Draft, error) {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return nil, err
	}
	settings := draft.Settings
	settings.AllowUndo = allowed
	return a.repo.UpdateDraftSettings(ctx, draftID, settings)
}

// SetProxyPicksAllowed toggles host proxy picking.
func (a *App) SetProxyPicksAllowed(ctx context.Context, actorID, draftID uuid.UUID, allowed bool) (*models.Draft, error) {
	draft, err := a.requireHost(ctx, actorID, draftID)
	if err != nil {
		return nil, err
	}
	settings := draft.Settings
	settings.AllowProxyPicks = allowed
	return a.repo.UpdateDraftSettings(ctx, draftID, settings)
}

// Heartbeat records participant presence.
func (a *App) Heartbeat(ctx context.Context, participantID uuid.UUID) error {
	return a.participantRepo.TouchParticipant(ctx, participantID)
}

// ListTeams returns a draft's teams ordered by draft order.
func (a *App) ListTeams(ctx context.Context, draftID uuid.UUID) ([]models.Team, error) {
	return a.teamRepo.ListTeams(ctx, draftID)
}

// ListParticipants returns a draft's participants.
func (a *App) ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error) {
	return a.participantRepo.ListParticipants(ctx, draftID)
}

// ListPicks returns a draft's picks in pick order.
func (a *App) ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	return a.pickRepo.GetPicksByDraft(ctx, draftID)
}

// UpsertWishlistEntry adds or re-ranks a wishlist entity for the actor's team.
func (a *App) UpsertWishlistEntry(ctx context.Context, actorID uuid.UUID, entityID, entityName string, rank int) (*models.WishlistEntry, error) {
	teamID, err := a.requireTeam(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if rank < 1 {
		return nil, fmt.Errorf("rank must be at least 1")
	}
	return a.wishlistRepo.UpsertWishlistEntry(ctx, teamID, entityID, entityName, rank)
}

// DeleteWishlistEntry removes a wishlist entity for the actor's team.
func (a *App) DeleteWishlistEntry(ctx context.Context, actorID uuid.UUID, entityID string) error {
	teamID, err := a.requireTeam(ctx, actorID)
	if err != nil {
		return err
	}
	return a.wishlistRepo.DeleteWishlistEntry(ctx, teamID, entityID)
}

// ListWishlist returns the actor's team wishlist in rank order.
func (a *App) ListWishlist(ctx context.Context, actorID uuid.UUID) ([]models.WishlistEntry, error) {
	teamID, err := a.requireTeam(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return a.wishlistRepo.ListWishlist(ctx, teamID)
}

// requireHost loads the draft and verifies the actor is its host.
func (a *App) requireHost(ctx context.Context, actorID, draftID uuid.UUID) (*models.Draft, error) {
	draft, err := a.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	participant, err := a.participantRepo.GetParticipant(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if participant.DraftID != draftID || !participant.IsHost {
		return nil, ErrNotHost
	}
	return draft, nil
}

// requireTeam resolves the actor's team, rejecting spectators.
func (a *App) requireTeam(ctx context.Context, actorID uuid.UUID) (uuid.UUID, error) {
	participant, err := a.participantRepo.GetParticipant(ctx, actorID)
	if err != nil {
		return uuid.Nil, err
	}
	if participant.TeamID == nil {
		return uuid.Nil, ErrNoTeam
	}
	return *participant.TeamID, nil
}

// turnDeadline computes the next turn's absolute deadline, nil when turns
// are untimed.
func (a *App) turnDeadline(settings models.DraftSettings) *time.Time {
	if settings.TimeLimitSec <= 0 {
		return nil
	}
	t := a.clock.Now().UTC().Add(time.Duration(settings.TimeLimitSec) * time.Second)
	return &t
}

// applyPendingTimer folds a queued turn timer change into the settings that
// accompany a turn advance.
func applyPendingTimer(settings models.DraftSettings) models.DraftSettings {
	if settings.PendingTimeLimitSec != nil {
		settings.TimeLimitSec = *settings.PendingTimeLimitSec
		settings.PendingTimeLimitSec = nil
	}
	return settings
}
