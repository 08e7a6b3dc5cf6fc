package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/draftroom/go/internal/draft/db"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// Repository owns all draft-aggregate persistence. Multi-statement mutations
// run inside a single transaction so that every externally observable
// operation is all-or-nothing.
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// inTx runs fn against a Queries bound to one transaction.
func (r *Repository) inTx(ctx context.Context, fn func(q *db.Queries) error) error {
	return sqlutil.Run(ctx, r.sqlDB, func(tx *sql.Tx) *db.Queries {
		return r.queries.WithTx(tx)
	}, fn)
}

type CreateDraftRequest struct {
	ID        uuid.UUID
	Name      string
	FormatID  string
	DraftType models.DraftType
	MaxTeams  int
	Settings  models.DraftSettings
}

func (r *Repository) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error) {
	settingsBytes, err := json.Marshal(req.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft settings: %w", err)
	}

	draft, err := r.queries.CreateDraft(ctx, db.CreateDraftParams{
		ID:        req.ID,
		Name:      req.Name,
		FormatID:  req.FormatID,
		DraftType: db.DraftType(req.DraftType),
		Status:    db.DraftStatusNOTSTARTED,
		MaxTeams:  int32(req.MaxTeams),
		Settings:  settingsBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	return dbDraftToModel(draft), nil
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	draft, err := r.queries.GetDraft(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return dbDraftToModel(draft), nil
}

func (r *Repository) UpdateDraftSettings(ctx context.Context, id uuid.UUID, settings models.DraftSettings) (*models.Draft, error) {
	settingsBytes, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft settings: %w", err)
	}

	draft, err := r.queries.UpdateDraftSettings(ctx, db.UpdateDraftSettingsParams{
		Settings: settingsBytes,
		ID:       id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update draft settings: %w", err)
	}
	return dbDraftToModel(draft), nil
}

// StartDraft performs the NOT_STARTED -> IN_PROGRESS transition. Returns
// (false, nil) when the draft was already started, so callers can treat a
// repeated start as a no-op.
func (r *Repository) StartDraft(ctx context.Context, id uuid.UUID, deadline *time.Time, payload events.DraftStartedPayload) (bool, error) {
	var started bool
	err := r.inTx(ctx, func(q *db.Queries) error {
		rows, err := q.StartDraft(ctx, db.StartDraftParams{
			NextDeadline: sqlutil.ToSqlTime(deadline),
			ID:           id,
		})
		if err != nil {
			return fmt.Errorf("failed to start draft: %w", err)
		}
		if rows == 0 {
			return nil
		}
		started = true
		return insertOutboxEvent(ctx, q, id, events.TypeDraftStarted, payload)
	})
	if err != nil {
		return false, err
	}
	return started, nil
}

func (r *Repository) PauseDraft(ctx context.Context, id uuid.UUID) error {
	return r.inTx(ctx, func(q *db.Queries) error {
		rows, err := q.PauseDraft(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to pause draft: %w", err)
		}
		if rows == 0 {
			return ErrDraftNotActive
		}
		return insertOutboxEvent(ctx, q, id, events.TypeDraftPaused, nil)
	})
}

// ResumeDraft restarts the turn clock from now so paused time is not charged
// against the team on the clock.
func (r *Repository) ResumeDraft(ctx context.Context, id uuid.UUID, deadline *time.Time) error {
	return r.inTx(ctx, func(q *db.Queries) error {
		rows, err := q.ResumeDraft(ctx, db.ResumeDraftParams{
			NextDeadline: sqlutil.ToSqlTime(deadline),
			ID:           id,
		})
		if err != nil {
			return fmt.Errorf("failed to resume draft: %w", err)
		}
		if rows == 0 {
			return ErrDraftNotActive
		}
		return insertOutboxEvent(ctx, q, id, events.TypeDraftResumed, nil)
	})
}

func (r *Repository) CompleteDraft(ctx context.Context, id uuid.UUID) error {
	return r.inTx(ctx, func(q *db.Queries) error {
		rows, err := q.CompleteDraft(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to complete draft: %w", err)
		}
		if rows == 0 {
			return ErrDraftNotActive
		}
		return insertOutboxEvent(ctx, q, id, events.TypeDraftCompleted, nil)
	})
}

func (r *Repository) CancelDraft(ctx context.Context, id uuid.UUID) error {
	return r.inTx(ctx, func(q *db.Queries) error {
		rows, err := q.CancelDraft(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to cancel draft: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		return insertOutboxEvent(ctx, q, id, events.TypeDraftCancelled, nil)
	})
}

// ResetDraft wipes picks, auctions and bid history, restores every team's
// budget, and returns the draft to NOT_STARTED.
func (r *Repository) ResetDraft(ctx context.Context, id uuid.UUID, budgetPerTeam int64) error {
	return r.inTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetDraftForUpdate(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock draft: %w", err)
		}
		if err := q.DeletePicksByDraft(ctx, id); err != nil {
			return fmt.Errorf("failed to delete picks: %w", err)
		}
		if err := q.DeleteAuctionsByDraft(ctx, id); err != nil {
			return fmt.Errorf("failed to delete auctions: %w", err)
		}
		if err := q.ResetTeamBudgets(ctx, db.ResetTeamBudgetsParams{
			BudgetRemaining: budgetPerTeam,
			DraftID:         id,
		}); err != nil {
			return fmt.Errorf("failed to reset team budgets: %w", err)
		}
		if _, err := q.ResetDraft(ctx, id); err != nil {
			return fmt.Errorf("failed to reset draft: %w", err)
		}
		return insertOutboxEvent(ctx, q, id, events.TypeDraftReset, nil)
	})
}

// AssignDraftOrder writes a full order permutation and marks the draft
// shuffled. orders maps team ID to its 1-based slot.
func (r *Repository) AssignDraftOrder(ctx context.Context, draftID uuid.UUID, orders map[uuid.UUID]int) error {
	return r.inTx(ctx, func(q *db.Queries) error {
		for teamID, slot := range orders {
			if err := q.UpdateTeamDraftOrder(ctx, db.UpdateTeamDraftOrderParams{
				DraftOrder: sql.NullInt32{Int32: int32(slot), Valid: true},
				ID:         teamID,
			}); err != nil {
				return fmt.Errorf("failed to update team draft order: %w", err)
			}
		}
		if err := q.MarkDraftShuffled(ctx, draftID); err != nil {
			return fmt.Errorf("failed to mark draft shuffled: %w", err)
		}
		return insertOutboxEvent(ctx, q, draftID, events.TypeOrderShuffled, nil)
	})
}

type NextDeadline struct {
	DraftID  uuid.UUID
	Deadline *time.Time
}

// FetchNextDeadline returns the earliest pending deadline across snake turn
// timers and live auctions, or nil when nothing is scheduled.
func (r *Repository) FetchNextDeadline(ctx context.Context) (*NextDeadline, error) {
	row, err := r.queries.FetchNextDeadline(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch next deadline: %w", err)
	}
	return &NextDeadline{
		DraftID:  row.DraftID,
		Deadline: sqlutil.FromSqlTime(row.NextDeadline),
	}, nil
}

func (r *Repository) FetchDraftsDueForTurn(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	ids, err := r.queries.FetchDraftsDueForTurn(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due drafts: %w", err)
	}
	return ids, nil
}

// insertOutboxEvent appends a change-notification row inside the caller's
// transaction. A nil payload produces a bare signal event.
func insertOutboxEvent(ctx context.Context, q *db.Queries, draftID uuid.UUID, eventType string, payload any) error {
	var raw pqtype.NullRawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		raw = pqtype.NullRawMessage{RawMessage: bytes, Valid: true}
	}
	if _, err := q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		DraftID:   draftID,
		EventType: eventType,
		Payload:   raw,
	}); err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

func dbDraftToModel(d db.Draft) *models.Draft {
	var settings models.DraftSettings
	if err := json.Unmarshal(d.Settings, &settings); err != nil {
		settings = models.DraftSettings{}
	}

	return &models.Draft{
		ID:            d.ID,
		Name:          d.Name,
		FormatID:      d.FormatID,
		DraftType:     models.DraftType(d.DraftType),
		Status:        models.DraftStatus(d.Status),
		MaxTeams:      int(d.MaxTeams),
		CurrentTurn:   sqlutil.FromSqlInt32(d.CurrentTurn),
		CurrentRound:  int(d.CurrentRound),
		Settings:      settings,
		OrderShuffled: d.OrderShuffled,
		TurnStartedAt: sqlutil.FromSqlTime(d.TurnStartedAt),
		NextDeadline:  sqlutil.FromSqlTime(d.NextDeadline),
		StartedAt:     sqlutil.FromSqlTime(d.StartedAt),
		CompletedAt:   sqlutil.FromSqlTime(d.CompletedAt),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
