package draft

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/draft/repository"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// fakeStore is an in-memory stand-in for the Postgres repository that keeps
// the same conditional-update semantics: turn advances are compare-and-swap
// on the current turn, entity uniqueness is draft-wide, and budget debits
// fail rather than going negative.
type fakeStore struct {
	mu           sync.Mutex
	clock        clockwork.Clock
	drafts       map[uuid.UUID]*models.Draft
	teams        map[uuid.UUID]*models.Team
	participants map[uuid.UUID]*models.Participant
	picks        map[uuid.UUID][]models.Pick
	auctions     map[uuid.UUID]*models.Auction
	bids         map[uuid.UUID][]models.Bid
	wishlists    map[uuid.UUID][]models.WishlistEntry

	// budgetConflicts injects ErrBudgetConflict into the next N auction
	// resolutions to exercise the retry path.
	budgetConflicts int
}

func newFakeStore(clock clockwork.Clock) *fakeStore {
	return &fakeStore{
		clock:        clock,
		drafts:       make(map[uuid.UUID]*models.Draft),
		teams:        make(map[uuid.UUID]*models.Team),
		participants: make(map[uuid.UUID]*models.Participant),
		picks:        make(map[uuid.UUID][]models.Pick),
		auctions:     make(map[uuid.UUID]*models.Auction),
		bids:         make(map[uuid.UUID][]models.Bid),
		wishlists:    make(map[uuid.UUID][]models.WishlistEntry),
	}
}

func copyDraft(d *models.Draft) *models.Draft {
	cp := *d
	if d.CurrentTurn != nil {
		v := *d.CurrentTurn
		cp.CurrentTurn = &v
	}
	if d.NextDeadline != nil {
		v := *d.NextDeadline
		cp.NextDeadline = &v
	}
	if d.Settings.PendingTimeLimitSec != nil {
		v := *d.Settings.PendingTimeLimitSec
		cp.Settings.PendingTimeLimitSec = &v
	}
	return &cp
}

func copyTeam(t *models.Team) *models.Team {
	cp := *t
	if t.DraftOrder != nil {
		v := *t.DraftOrder
		cp.DraftOrder = &v
	}
	return &cp
}

// --- DraftRepository ---

func (s *fakeStore) CreateDraft(ctx context.Context, req repository.CreateDraftRequest) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &models.Draft{
		ID:        req.ID,
		Name:      req.Name,
		FormatID:  req.FormatID,
		DraftType: req.DraftType,
		Status:    models.DraftStatusNotStarted,
		MaxTeams:  req.MaxTeams,
		Settings:  req.Settings,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	s.drafts[d.ID] = d
	return copyDraft(d), nil
}

func (s *fakeStore) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyDraft(d), nil
}

func (s *fakeStore) UpdateDraftSettings(ctx context.Context, id uuid.UUID, settings models.DraftSettings) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d.Settings = settings
	return copyDraft(d), nil
}

func (s *fakeStore) StartDraft(ctx context.Context, id uuid.UUID, deadline *time.Time, payload events.DraftStartedPayload) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if d.Status != models.DraftStatusNotStarted {
		return false, nil
	}
	turn := 1
	now := s.clock.Now()
	d.Status = models.DraftStatusInProgress
	d.CurrentTurn = &turn
	d.CurrentRound = 1
	d.NextDeadline = deadline
	d.TurnStartedAt = &now
	d.StartedAt = &now
	return true, nil
}

func (s *fakeStore) PauseDraft(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if d.Status != models.DraftStatusInProgress {
		return repository.ErrDraftNotActive
	}
	d.Status = models.DraftStatusPaused
	d.NextDeadline = nil
	return nil
}

func (s *fakeStore) ResumeDraft(ctx context.Context, id uuid.UUID, deadline *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if d.Status != models.DraftStatusPaused {
		return repository.ErrDraftNotActive
	}
	d.Status = models.DraftStatusInProgress
	d.NextDeadline = deadline
	return nil
}

func (s *fakeStore) CompleteDraft(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := s.clock.Now()
	d.Status = models.DraftStatusCompleted
	d.CompletedAt = &now
	d.NextDeadline = nil
	return nil
}

func (s *fakeStore) CancelDraft(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Status = models.DraftStatusCancelled
	d.NextDeadline = nil
	return nil
}

func (s *fakeStore) ResetDraft(ctx context.Context, id uuid.UUID, budgetPerTeam int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Status = models.DraftStatusNotStarted
	d.CurrentTurn = nil
	d.CurrentRound = 0
	d.NextDeadline = nil
	d.StartedAt = nil
	d.CompletedAt = nil
	s.picks[id] = nil
	for aid, a := range s.auctions {
		if a.DraftID == id {
			delete(s.auctions, aid)
		}
	}
	for _, t := range s.teams {
		if t.DraftID == id {
			t.BudgetRemaining = budgetPerTeam
		}
	}
	return nil
}

func (s *fakeStore) AssignDraftOrder(ctx context.Context, draftID uuid.UUID, orders map[uuid.UUID]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftID]
	if !ok {
		return repository.ErrNotFound
	}
	for teamID, slot := range orders {
		t, ok := s.teams[teamID]
		if !ok {
			return repository.ErrNotFound
		}
		v := slot
		t.DraftOrder = &v
	}
	d.OrderShuffled = true
	return nil
}

func (s *fakeStore) FetchNextDeadline(ctx context.Context) (*repository.NextDeadline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next *repository.NextDeadline
	consider := func(draftID uuid.UUID, t time.Time) {
		if next == nil || t.Before(*next.Deadline) {
			dl := t
			next = &repository.NextDeadline{DraftID: draftID, Deadline: &dl}
		}
	}
	for _, d := range s.drafts {
		if d.Status == models.DraftStatusInProgress && d.NextDeadline != nil {
			consider(d.ID, *d.NextDeadline)
		}
	}
	for _, a := range s.auctions {
		d := s.drafts[a.DraftID]
		if a.Status == models.AuctionStatusActive && d != nil && d.Status == models.DraftStatusInProgress {
			consider(a.DraftID, a.AuctionEnd)
		}
	}
	return next, nil
}

func (s *fakeStore) FetchDraftsDueForTurn(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	var due []uuid.UUID
	for _, d := range s.drafts {
		if d.DraftType == models.DraftTypeSnake &&
			d.Status == models.DraftStatusInProgress &&
			d.NextDeadline != nil && !now.Before(*d.NextDeadline) {
			due = append(due, d.ID)
		}
	}
	if int32(len(due)) > limit {
		due = due[:limit]
	}
	return due, nil
}

// --- PickRepository ---

func (s *fakeStore) CommitPick(ctx context.Context, req repository.CommitPickRequest) (*repository.CommitPickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[req.DraftID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if d.Status != models.DraftStatusInProgress || d.CurrentTurn == nil || *d.CurrentTurn != req.ExpectedTurn {
		return nil, repository.ErrTurnConflict
	}
	for _, p := range s.picks[req.DraftID] {
		if p.EntityID == req.EntityID {
			return nil, repository.ErrEntityTaken
		}
	}
	teamPicks := 0
	for _, p := range s.picks[req.DraftID] {
		if p.TeamID == req.TeamID {
			teamPicks++
		}
	}
	if teamPicks+1 > req.EntityCap {
		return nil, repository.ErrRosterFull
	}
	team, ok := s.teams[req.TeamID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if team.BudgetRemaining < req.Cost {
		return nil, repository.ErrInsufficientBudget
	}

	team.BudgetRemaining -= req.Cost
	pick := models.Pick{
		ID:         uuid.New(),
		DraftID:    req.DraftID,
		TeamID:     req.TeamID,
		EntityID:   req.EntityID,
		EntityName: req.EntityName,
		Cost:       req.Cost,
		PickOrder:  len(s.picks[req.DraftID]) + 1,
		Round:      req.Round,
		MadeBy:     req.MadeBy,
		CreatedAt:  s.clock.Now(),
	}
	s.picks[req.DraftID] = append(s.picks[req.DraftID], pick)

	s.advanceTurn(d, req.NextTurn, req.NextRound, req.Completed, req.Settings, req.NextDeadline)
	return &repository.CommitPickResult{
		Pick:            pick,
		BudgetRemaining: team.BudgetRemaining,
		NextTurn:        req.NextTurn,
		Completed:       req.Completed,
	}, nil
}

func (s *fakeStore) advanceTurn(d *models.Draft, nextTurn, nextRound int, completed bool, settings models.DraftSettings, deadline *time.Time) {
	now := s.clock.Now()
	d.Settings = settings
	d.CurrentTurn = &nextTurn
	d.CurrentRound = nextRound
	d.NextDeadline = deadline
	d.TurnStartedAt = &now
	if completed {
		d.Status = models.DraftStatusCompleted
		d.CompletedAt = &now
		d.NextDeadline = nil
	}
}

func (s *fakeStore) SkipTurn(ctx context.Context, req repository.SkipTurnRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[req.DraftID]
	if !ok {
		return repository.ErrNotFound
	}
	if d.Status != models.DraftStatusInProgress || d.CurrentTurn == nil || *d.CurrentTurn != req.ExpectedTurn {
		return repository.ErrTurnConflict
	}
	s.advanceTurn(d, req.NextTurn, req.NextRound, req.Completed, req.Settings, req.NextDeadline)
	return nil
}

func (s *fakeStore) UndoLastPick(ctx context.Context, req repository.UndoLastPickRequest) (*repository.UndoLastPickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[req.DraftID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	picks := s.picks[req.DraftID]
	if len(picks) == 0 {
		return nil, repository.ErrNoPicks
	}
	tail := picks[len(picks)-1]
	if req.ExpectPickID != nil && *req.ExpectPickID != tail.ID {
		return nil, repository.ErrNotTailPick
	}
	s.picks[req.DraftID] = picks[:len(picks)-1]
	if team, ok := s.teams[tail.TeamID]; ok {
		team.BudgetRemaining += tail.Cost
	}
	reverted := 1
	if d.CurrentTurn != nil {
		reverted = *d.CurrentTurn - 1
	}
	if reverted < 1 {
		reverted = 1
	}
	d.Status = models.DraftStatusInProgress
	d.CompletedAt = nil
	d.CurrentTurn = &reverted
	d.CurrentRound = (reverted-1)/req.TeamCount + 1
	d.NextDeadline = req.NextDeadline
	return &repository.UndoLastPickResult{Pick: tail, RevertedTurn: reverted}, nil
}

func (s *fakeStore) GetPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Pick(nil), s.picks[draftID]...), nil
}

func (s *fakeStore) CountPicksByDraft(ctx context.Context, draftID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.picks[draftID]), nil
}

func (s *fakeStore) CountPicksByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, picks := range s.picks {
		for _, p := range picks {
			if p.TeamID == teamID {
				count++
			}
		}
	}
	return count, nil
}

// --- AuctionRepository ---

func (s *fakeStore) CreateAuction(ctx context.Context, req repository.CreateAuctionRequest) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.picks[req.DraftID] {
		if p.EntityID == req.EntityID {
			return nil, repository.ErrEntityTaken
		}
	}
	for _, a := range s.auctions {
		if a.DraftID == req.DraftID && a.Status == models.AuctionStatusActive {
			return nil, repository.ErrAuctionActive
		}
	}
	auction := &models.Auction{
		ID:          uuid.New(),
		DraftID:     req.DraftID,
		EntityID:    req.EntityID,
		EntityName:  req.EntityName,
		NominatedBy: req.NominatedBy,
		CurrentBid:  req.StartingBid,
		AuctionEnd:  req.AuctionEnd,
		Status:      models.AuctionStatusActive,
		CreatedAt:   s.clock.Now(),
	}
	s.auctions[auction.ID] = auction
	if d, ok := s.drafts[req.DraftID]; ok {
		end := req.AuctionEnd
		d.NextDeadline = &end
	}
	cp := *auction
	return &cp, nil
}

func (s *fakeStore) PlaceBid(ctx context.Context, auctionID, teamID uuid.UUID, amount int64) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[auctionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if a.Status != models.AuctionStatusActive || !s.clock.Now().Before(a.AuctionEnd) {
		return nil, repository.ErrAuctionClosed
	}
	if amount <= a.CurrentBid {
		return nil, repository.ErrBidTooLow
	}
	team, ok := s.teams[teamID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if team.BudgetRemaining < amount {
		return nil, repository.ErrInsufficientBudget
	}
	a.CurrentBid = amount
	tid := teamID
	a.CurrentBidderID = &tid
	s.bids[auctionID] = append(s.bids[auctionID], models.Bid{
		ID:        uuid.New(),
		AuctionID: auctionID,
		TeamID:    teamID,
		Amount:    amount,
		CreatedAt: s.clock.Now(),
	})
	cp := *a
	return &cp, nil
}

func (s *fakeStore) ExtendAuction(ctx context.Context, auctionID uuid.UUID, extendSec int) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[auctionID]
	if !ok || a.Status != models.AuctionStatusActive {
		return nil, repository.ErrAuctionClosed
	}
	a.AuctionEnd = a.AuctionEnd.Add(time.Duration(extendSec) * time.Second)
	if d, ok := s.drafts[a.DraftID]; ok {
		end := a.AuctionEnd
		d.NextDeadline = &end
	}
	cp := *a
	return &cp, nil
}

func (s *fakeStore) ResolveAuction(ctx context.Context, draftID, auctionID uuid.UUID, totalTurns int, teamCount int, nextDeadline *time.Time) (*repository.ResolveAuctionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[auctionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if a.Status != models.AuctionStatusActive {
		return nil, repository.ErrAuctionResolved
	}
	d, ok := s.drafts[draftID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if a.CurrentBidderID != nil && d.Status != models.DraftStatusInProgress {
		return nil, repository.ErrDraftNotActive
	}

	if a.CurrentBidderID != nil && s.budgetConflicts > 0 {
		s.budgetConflicts--
		return nil, repository.ErrBudgetConflict
	}

	now := s.clock.Now()
	a.Status = models.AuctionStatusCompleted
	a.ResolvedAt = &now

	result := &repository.ResolveAuctionResult{Auction: *a}
	if a.CurrentBidderID == nil {
		d.NextDeadline = nil
		return result, nil
	}

	team := s.teams[*a.CurrentBidderID]
	if team.BudgetRemaining < a.CurrentBid {
		return nil, repository.ErrInsufficientBudget
	}
	team.BudgetRemaining -= a.CurrentBid

	pickOrder := len(s.picks[draftID]) + 1
	round := (pickOrder-1)/teamCount + 1
	pick := models.Pick{
		ID:         uuid.New(),
		DraftID:    draftID,
		TeamID:     *a.CurrentBidderID,
		EntityID:   a.EntityID,
		EntityName: a.EntityName,
		Cost:       a.CurrentBid,
		PickOrder:  pickOrder,
		Round:      round,
		CreatedAt:  now,
	}
	s.picks[draftID] = append(s.picks[draftID], pick)

	completed := pickOrder >= totalTurns
	next := pickOrder + 1
	d.CurrentTurn = &next
	d.CurrentRound = round
	if completed {
		d.Status = models.DraftStatusCompleted
		d.CompletedAt = &now
		d.NextDeadline = nil
	} else {
		d.NextDeadline = nextDeadline
	}

	result.Pick = &pick
	result.Completed = completed
	return result, nil
}

func (s *fakeStore) GetActiveAuction(ctx context.Context, draftID uuid.UUID) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.auctions {
		if a.DraftID == draftID && a.Status == models.AuctionStatusActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) GetAuction(ctx context.Context, auctionID uuid.UUID) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[auctionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeStore) ListBids(ctx context.Context, auctionID uuid.UUID) ([]models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bid(nil), s.bids[auctionID]...), nil
}

func (s *fakeStore) FetchAuctionsDueForResolution(ctx context.Context, limit int) ([]repository.DueAuction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	var due []repository.DueAuction
	for _, a := range s.auctions {
		d := s.drafts[a.DraftID]
		if a.Status == models.AuctionStatusActive &&
			d != nil && d.Status == models.DraftStatusInProgress &&
			!now.Before(a.AuctionEnd) {
			due = append(due, repository.DueAuction{AuctionID: a.ID, DraftID: a.DraftID})
		}
	}
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// --- TeamRepository ---

func (s *fakeStore) CreateTeam(ctx context.Context, draftID uuid.UUID, name string, budget int64) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.DraftID == draftID && t.Name == name {
			return nil, repository.ErrTeamNameTaken
		}
	}
	team := &models.Team{
		ID:              uuid.New(),
		DraftID:         draftID,
		Name:            name,
		BudgetRemaining: budget,
		CreatedAt:       s.clock.Now(),
	}
	s.teams[team.ID] = team
	return copyTeam(team), nil
}

func (s *fakeStore) GetTeam(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyTeam(t), nil
}

func (s *fakeStore) ListTeams(ctx context.Context, draftID uuid.UUID) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var teams []models.Team
	for _, t := range s.teams {
		if t.DraftID == draftID {
			teams = append(teams, *copyTeam(t))
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		oi, oj := teams[i].DraftOrder, teams[j].DraftOrder
		if oi != nil && oj != nil && *oi != *oj {
			return *oi < *oj
		}
		if (oi == nil) != (oj == nil) {
			return oj == nil
		}
		return teams[i].Name < teams[j].Name
	})
	return teams, nil
}

func (s *fakeStore) CountTeams(ctx context.Context, draftID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.teams {
		if t.DraftID == draftID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) DeleteTeam(ctx context.Context, draftID, teamID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok || t.DraftID != draftID {
		return repository.ErrNotFound
	}
	delete(s.teams, teamID)
	return nil
}

func (s *fakeStore) SetTeamBudget(ctx context.Context, draftID, teamID, adjustedBy uuid.UUID, newBudget int64) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok || t.DraftID != draftID {
		return nil, repository.ErrNotFound
	}
	t.BudgetRemaining = newBudget
	return copyTeam(t), nil
}

// --- ParticipantRepository ---

func (s *fakeStore) CreateParticipant(ctx context.Context, draftID uuid.UUID, displayName string, teamID *uuid.UUID, isHost bool) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Participant{
		ID:          uuid.New(),
		DraftID:     draftID,
		DisplayName: displayName,
		TeamID:      teamID,
		IsHost:      isHost,
		LastSeenAt:  s.clock.Now(),
		CreatedAt:   s.clock.Now(),
	}
	s.participants[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s *fakeStore) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Participant
	for _, p := range s.participants {
		if p.DraftID == draftID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeStore) AssignParticipantTeam(ctx context.Context, participantID uuid.UUID, teamID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[participantID]
	if !ok {
		return repository.ErrNotFound
	}
	p.TeamID = teamID
	return nil
}

func (s *fakeStore) TouchParticipant(ctx context.Context, participantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[participantID]
	if !ok {
		return repository.ErrNotFound
	}
	p.LastSeenAt = s.clock.Now()
	return nil
}

// --- WishlistRepository ---

func (s *fakeStore) UpsertWishlistEntry(ctx context.Context, teamID uuid.UUID, entityID, entityName string, rank int) (*models.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.wishlists[teamID]
	for i := range entries {
		if entries[i].EntityID == entityID {
			entries[i].EntityName = entityName
			entries[i].Rank = rank
			cp := entries[i]
			return &cp, nil
		}
	}
	entry := models.WishlistEntry{
		ID:         uuid.New(),
		TeamID:     teamID,
		EntityID:   entityID,
		EntityName: entityName,
		Rank:       rank,
		CreatedAt:  s.clock.Now(),
	}
	s.wishlists[teamID] = append(entries, entry)
	cp := entry
	return &cp, nil
}

func (s *fakeStore) DeleteWishlistEntry(ctx context.Context, teamID uuid.UUID, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.wishlists[teamID]
	for i := range entries {
		if entries[i].EntityID == entityID {
			s.wishlists[teamID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeStore) ListWishlist(ctx context.Context, teamID uuid.UUID) ([]models.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.WishlistEntry(nil), s.wishlists[teamID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (s *fakeStore) ListViableWishlist(ctx context.Context, draftID, teamID uuid.UUID) ([]models.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := make(map[string]bool)
	for _, p := range s.picks[draftID] {
		taken[p.EntityID] = true
	}
	var out []models.WishlistEntry
	for _, e := range s.wishlists[teamID] {
		if !taken[e.EntityID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

// --- test doubles ---

// fakeValidator returns canned verdicts per entity. Unknown entities are
// legal at the default cost.
type fakeValidator struct {
	mu          sync.Mutex
	verdicts    map[string]Verdict
	err         error
	defaultCost int64
}

func newFakeValidator() *fakeValidator {
	return &fakeValidator{verdicts: make(map[string]Verdict), defaultCost: 1}
}

func (v *fakeValidator) set(entityID string, verdict Verdict) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.verdicts[entityID] = verdict
}

func (v *fakeValidator) Validate(ctx context.Context, entityID, formatID string) (*Verdict, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return nil, v.err
	}
	if verdict, ok := v.verdicts[entityID]; ok {
		return &verdict, nil
	}
	return &Verdict{Legal: true, Cost: v.defaultCost}, nil
}

type fakeWaker struct {
	mu    sync.Mutex
	wakes int
}

func (w *fakeWaker) Wake() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.wakes++
}

func (w *fakeWaker) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wakes
}
