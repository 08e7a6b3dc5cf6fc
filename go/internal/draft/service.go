package draft

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// Service exposes the draft app over HTTP/JSON.
type Service struct {
	app *App
	log zerolog.Logger
}

// NewService creates the HTTP service.
func NewService(app *App, logger zerolog.Logger) *Service {
	return &Service{app: app, log: logger.With().Str("component", "draft-service").Logger()}
}

// RegisterRoutes mounts all draft routes on a chi router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", s.handleCreateDraft)
		r.Route("/{draftID}", func(r chi.Router) {
			r.Get("/", s.handleGetDraft)
			r.Patch("/settings", s.handleUpdateSettings)
			r.Post("/join", s.handleJoinDraft)
			r.Post("/start", s.handleStartDraft)
			r.Post("/pause", s.handlePauseDraft)
			r.Post("/resume", s.handleResumeDraft)
			r.Post("/end", s.handleEndDraft)
			r.Post("/cancel", s.handleCancelDraft)
			r.Post("/reset", s.handleResetDraft)
			r.Post("/shuffle", s.handleShuffleOrder)
			r.Post("/timer", s.handleSetTurnTimer)
			r.Post("/undo-policy", s.handleSetUndoAllowed)
			r.Post("/proxy-policy", s.handleSetProxyAllowed)
			r.Get("/teams", s.handleListTeams)
			r.Post("/teams/{teamID}/budget", s.handleAdjustBudget)
			r.Get("/participants", s.handleListParticipants)
			r.Get("/picks", s.handleListPicks)
			r.Post("/picks", s.handleMakePick)
			r.Post("/proxy-picks", s.handleProxyPick)
			r.Post("/undo", s.handleUndoLastPick)
			r.Post("/nominations", s.handleNominate)
			r.Get("/auction", s.handleGetActiveAuction)
			r.Post("/auctions/{auctionID}/extend", s.handleExtendAuction)
		})
	})
	r.Route("/auctions/{auctionID}", func(r chi.Router) {
		r.Post("/bids", s.handlePlaceBid)
		r.Get("/bids", s.handleListBids)
	})
	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", s.handleListWishlist)
		r.Put("/", s.handleUpsertWishlistEntry)
		r.Delete("/{entityID}", s.handleDeleteWishlistEntry)
	})
	r.Post("/heartbeat", s.handleHeartbeat)
}

type createDraftRequest struct {
	Name      string               `json:"name"`
	FormatID  string               `json:"format_id"`
	DraftType models.DraftType     `json:"draft_type"`
	MaxTeams  int                  `json:"max_teams"`
	Settings  models.DraftSettings `json:"settings"`
}

func (s *Service) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if !s.decode(w, r, &req) {
		return
	}
	draft, err := s.app.CreateDraft(r.Context(), repository.CreateDraftRequest{
		ID:        uuid.New(),
		Name:      req.Name,
		FormatID:  req.FormatID,
		DraftType: req.DraftType,
		MaxTeams:  req.MaxTeams,
		Settings:  req.Settings,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, draft)
}

func (s *Service) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	draft, err := s.app.GetDraft(r.Context(), draftID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, draft)
}

func (s *Service) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var settings models.DraftSettings
	if !s.decode(w, r, &settings) {
		return
	}
	draft, err := s.app.UpdateDraftSettings(r.Context(), actorID, draftID, settings)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, draft)
}

type joinDraftRequest struct {
	DisplayName string `json:"display_name"`
	TeamName    string `json:"team_name,omitempty"`
	Spectate    bool   `json:"spectate,omitempty"`
}

func (s *Service) handleJoinDraft(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	var req joinDraftRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.app.JoinDraft(r.Context(), JoinRequest{
		DraftID:     draftID,
		DisplayName: req.DisplayName,
		TeamName:    req.TeamName,
		Spectate:    req.Spectate,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if result.Outcome == JoinOutcomeJoined {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, result)
}

func (s *Service) handleStartDraft(w http.ResponseWriter, r *http.Request) {
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return s.app.StartDraft(r.Context(), actorID, draftID)
	})
}

func (s *Service) handlePauseDraft(w http.ResponseWriter, r *http.Request) {
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return nil, s.app.PauseDraft(r.Context(), actorID, draftID)
	})
}

func (s *Service) handleResumeDraft(w http.ResponseWriter, r *http.Request) {
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return nil, s.app.ResumeDraft(r.Context(), actorID, draftID)
	})
}

func (s *Service) handleEndDraft(w http.ResponseWriter, r *http.Request) {
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return nil, s.app.EndDraft(r.Context(), actorID, draftID)
	})
}

func (s *Service) handleCancelDraft(w http.ResponseWriter, r *http.Request) {
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return nil, s.app.CancelDraft(r.Context(), actorID, draftID)
	})
}

func (s *Service) handleResetDraft(w http.ResponseWriter, r *http.Request) {
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return nil, s.app.ResetDraft(r.Context(), actorID, draftID)
	})
}

func (s *Service) handleShuffleOrder(w http.ResponseWriter, r *http.Request) {
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return s.app.ShuffleOrder(r.Context(), actorID, draftID)
	})
}

type setTimerRequest struct {
	TimeLimitSec int `json:"time_limit_sec"`
}

func (s *Service) handleSetTurnTimer(w http.ResponseWriter, r *http.Request) {
	var req setTimerRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return s.app.SetTurnTimer(r.Context(), actorID, draftID, req.TimeLimitSec)
	})
}

type setPolicyRequest struct {
	Allowed bool `json:"allowed"`
}

func (s *Service) handleSetUndoAllowed(w http.ResponseWriter, r *http.Request) {
	var req setPolicyRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return s.app.SetUndoAllowed(r.Context(), actorID, draftID, req.Allowed)
	})
}

func (s *Service) handleSetProxyAllowed(w http.ResponseWriter, r *http.Request) {
	var req setPolicyRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.hostDraftAction(w, r, func(actorID, draftID uuid.UUID) (any, error) {
		return s.app.SetProxyPicksAllowed(r.Context(), actorID, draftID, req.Allowed)
	})
}

type adjustBudgetRequest struct {
	Budget int64 `json:"budget"`
}

func (s *Service) handleAdjustBudget(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	teamID, ok := s.pathUUID(w, r, "teamID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var req adjustBudgetRequest
	if !s.decode(w, r, &req) {
		return
	}
	team, err := s.app.AdjustTeamBudget(r.Context(), actorID, draftID, teamID, req.Budget)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, team)
}

func (s *Service) handleListTeams(w http.ResponseWriter, r *http.Request) {
	s.listDraftResource(w, r, func(draftID uuid.UUID) (any, error) {
		return s.app.ListTeams(r.Context(), draftID)
	})
}

func (s *Service) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	s.listDraftResource(w, r, func(draftID uuid.UUID) (any, error) {
		return s.app.ListParticipants(r.Context(), draftID)
	})
}

func (s *Service) handleListPicks(w http.ResponseWriter, r *http.Request) {
	s.listDraftResource(w, r, func(draftID uuid.UUID) (any, error) {
		return s.app.ListPicks(r.Context(), draftID)
	})
}

type pickRequest struct {
	EntityID     string `json:"entity_id"`
	EntityName   string `json:"entity_name"`
	ExpectedTurn int    `json:"expected_turn"`
}

func (s *Service) handleMakePick(w http.ResponseWriter, r *http.Request) {
	s.commitPick(w, r, s.app.MakePick)
}

func (s *Service) handleProxyPick(w http.ResponseWriter, r *http.Request) {
	s.commitPick(w, r, s.app.ProxyPick)
}

func (s *Service) commitPick(w http.ResponseWriter, r *http.Request, commit func(ctx context.Context, req PickRequest) (*repository.CommitPickResult, error)) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var req pickRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := commit(r.Context(), PickRequest{
		DraftID:      draftID,
		ActorID:      actorID,
		EntityID:     req.EntityID,
		EntityName:   req.EntityName,
		ExpectedTurn: req.ExpectedTurn,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

type undoRequest struct {
	ExpectPickID *uuid.UUID `json:"expect_pick_id,omitempty"`
}

func (s *Service) handleUndoLastPick(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var req undoRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.app.UndoLastPick(r.Context(), actorID, draftID, req.ExpectPickID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type nominateRequest struct {
	EntityID    string `json:"entity_id"`
	EntityName  string `json:"entity_name"`
	StartingBid int64  `json:"starting_bid"`
}

func (s *Service) handleNominate(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var req nominateRequest
	if !s.decode(w, r, &req) {
		return
	}
	auction, err := s.app.Nominate(r.Context(), NominateRequest{
		DraftID:     draftID,
		ActorID:     actorID,
		EntityID:    req.EntityID,
		EntityName:  req.EntityName,
		StartingBid: req.StartingBid,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, auction)
}

func (s *Service) handleGetActiveAuction(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	auction, err := s.app.GetActiveAuction(r.Context(), draftID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, auction)
}

type placeBidRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Service) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := s.pathUUID(w, r, "auctionID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var req placeBidRequest
	if !s.decode(w, r, &req) {
		return
	}
	auction, err := s.app.PlaceBid(r.Context(), actorID, auctionID, req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, auction)
}

func (s *Service) handleListBids(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := s.pathUUID(w, r, "auctionID")
	if !ok {
		return
	}
	bids, err := s.app.ListBids(r.Context(), auctionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bids)
}

type extendAuctionRequest struct {
	ExtendSec int `json:"extend_sec"`
}

func (s *Service) handleExtendAuction(w http.ResponseWriter, r *http.Request) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	auctionID, ok := s.pathUUID(w, r, "auctionID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var req extendAuctionRequest
	if !s.decode(w, r, &req) {
		return
	}
	auction, err := s.app.ExtendAuction(r.Context(), actorID, draftID, auctionID, req.ExtendSec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, auction)
}

type wishlistEntryRequest struct {
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Rank       int    `json:"rank"`
}

func (s *Service) handleUpsertWishlistEntry(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	var req wishlistEntryRequest
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := s.app.UpsertWishlistEntry(r.Context(), actorID, req.EntityID, req.EntityName, req.Rank)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Service) handleDeleteWishlistEntry(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	entityID := chi.URLParam(r, "entityID")
	if entityID == "" {
		s.writeErrorMessage(w, http.StatusBadRequest, "entity_id is required")
		return
	}
	if err := s.app.DeleteWishlistEntry(r.Context(), actorID, entityID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleListWishlist(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	entries, err := s.app.ListWishlist(r.Context(), actorID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Service) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	if err := s.app.Heartbeat(r.Context(), actorID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) hostDraftAction(w http.ResponseWriter, r *http.Request, action func(actorID, draftID uuid.UUID) (any, error)) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	actorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	result, err := action(actorID, draftID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) listDraftResource(w http.ResponseWriter, r *http.Request, list func(draftID uuid.UUID) (any, error)) {
	draftID, ok := s.pathUUID(w, r, "draftID")
	if !ok {
		return
	}
	result, err := list(draftID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// actorID identifies the acting participant from the X-Participant-ID
// header. Session auth would replace this in a real deployment.
func (s *Service) actorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get("X-Participant-ID")
	if raw == "" {
		s.writeErrorMessage(w, http.StatusUnauthorized, "X-Participant-ID header is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.writeErrorMessage(w, http.StatusUnauthorized, "invalid X-Participant-ID header")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Service) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// writeError maps domain errors onto HTTP status codes. Conflicts with
// concurrent mutations get 409 so clients refresh and retry; precondition
// failures that a refresh will not fix get 422.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ineligible *IneligibleEntityError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrNotHost),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrNoTeam),
		errors.Is(err, ErrNotNominator):
		status = http.StatusForbidden
	case errors.Is(err, repository.ErrTurnConflict),
		errors.Is(err, repository.ErrBudgetConflict),
		errors.Is(err, repository.ErrEntityTaken),
		errors.Is(err, repository.ErrTeamNameTaken),
		errors.Is(err, repository.ErrAuctionActive),
		errors.Is(err, repository.ErrAuctionClosed),
		errors.Is(err, repository.ErrAuctionResolved),
		errors.Is(err, repository.ErrBidTooLow),
		errors.Is(err, repository.ErrNotTailPick),
		errors.Is(err, repository.ErrNoPicks),
		errors.Is(err, repository.ErrDraftNotActive),
		errors.Is(err, ErrDraftFull),
		errors.Is(err, ErrNotEnoughTeams),
		errors.Is(err, ErrUnassignedTeams),
		errors.Is(err, ErrInvalidOrder),
		errors.Is(err, ErrUndoDisabled),
		errors.Is(err, ErrProxyDisabled),
		errors.Is(err, ErrWrongDraftType):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrInsufficientBudget),
		errors.Is(err, repository.ErrRosterFull),
		errors.As(err, &ineligible):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
		s.writeErrorMessage(w, status, "internal error")
		return
	}
	s.writeErrorMessage(w, status, err.Error())
}
