package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
)

// DraftEngine defines what the orchestrator needs from the draft app: the
// earliest persisted deadline, the batches of due work, and the handlers
// that act on them.
type DraftEngine interface {
	NextDeadline(ctx context.Context) (*repository.NextDeadline, error)
	DueTurnDrafts(ctx context.Context, limit int32) ([]uuid.UUID, error)
	DueAuctions(ctx context.Context, limit int) ([]repository.DueAuction, error)
	HandleDueTurn(ctx context.Context, draftID uuid.UUID) error
	HandleDueAuction(ctx context.Context, draftID, auctionID uuid.UUID) error
}

// workItem is one unit of due work. AuctionID is Nil for a snake turn
// timeout; the dedup key is the auction for auction work, the draft
// otherwise.
type workItem struct {
	DraftID   uuid.UUID
	AuctionID uuid.UUID
}

func (w workItem) key() uuid.UUID {
	if w.AuctionID != uuid.Nil {
		return w.AuctionID
	}
	return w.DraftID
}

// Orchestrator runs the single scheduler loop: sleep until the earliest
// persisted deadline, wake early when poked, then dispatch due turn timeouts
// and due auction resolutions to a bounded worker pool with in-flight
// deduplication.
type Orchestrator struct {
	engine     DraftEngine
	batchSize  int32
	clock      clockwork.Clock
	wakeCh     chan struct{}
	instanceID string
	log        zerolog.Logger

	numWorkers int
	workCh     chan workItem

	inFlight   map[uuid.UUID]bool
	inFlightMu sync.Mutex
}

// NewOrchestrator creates a scheduler over the draft engine.
func NewOrchestrator(engine DraftEngine, clock clockwork.Clock, batchSize int32, numWorkers int, logger zerolog.Logger) *Orchestrator {
	if numWorkers < 1 {
		numWorkers = 10
	}
	instanceID := uuid.New().String()[:8]
	return &Orchestrator{
		engine:     engine,
		batchSize:  batchSize,
		clock:      clock,
		wakeCh:     make(chan struct{}, 1),
		instanceID: instanceID,
		log:        logger.With().Str("component", "orchestrator").Str("instance", instanceID).Logger(),
		numWorkers: numWorkers,
		workCh:     make(chan workItem, numWorkers*2),
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// Wake pokes the scheduler so it re-reads the earliest deadline instead of
// sleeping through a newly created sooner one. Never blocks.
func (o *Orchestrator) Wake() {
	select {
	case o.wakeCh <- struct{}{}:
	default:
	}
}

// RunScheduler loops until ctx is cancelled, sleeping until the next
// deadline and firing due work.
func (o *Orchestrator) RunScheduler(ctx context.Context) error {
	o.log.Info().Int("workers", o.numWorkers).Msg("scheduler started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	for i := 0; i < o.numWorkers; i++ {
		wg.Add(1)
		go o.worker(workerCtx, &wg, i)
	}
	defer func() {
		cancelWorkers()
		close(o.workCh)
		wg.Wait()
		o.log.Info().Msg("all workers shut down")
	}()

	timer := o.clock.NewTimer(0)
	defer timer.Stop()

	const idlePollDuration = 5 * time.Second
	const dueRecheckDelay = 250 * time.Millisecond
	retryCount := 0
	const maxRetries = 3

	for {
		select {
		case <-o.wakeCh:
		default:
		}

		nd, err := o.engine.NextDeadline(ctx)
		if err != nil {
			retryCount++
			if retryCount <= maxRetries {
				o.log.Error().Err(err).Int("retry", retryCount).Msg("error fetching next deadline, retrying")
				timer.Reset(time.Second * time.Duration(retryCount))
				select {
				case <-timer.Chan():
					continue
				case <-ctx.Done():
					return nil
				}
			}
			o.log.Error().Err(err).Msg("error fetching next deadline after retries")
			return err
		}
		retryCount = 0

		if nd == nil || nd.Deadline == nil {
			timer.Reset(idlePollDuration)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				o.log.Info().Msg("shutdown during idle")
				return nil
			case <-o.wakeCh:
				continue
			}
		}

		wait := nd.Deadline.Sub(o.clock.Now())
		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-timer.Chan():
			case <-ctx.Done():
				o.log.Info().Msg("shutdown during wait")
				return nil
			case <-o.wakeCh:
				continue
			}
		}

		queued, err := o.dispatchDue(ctx)
		if err != nil {
			o.log.Error().Err(err).Msg("error dispatching due work")
			timer.Reset(time.Second)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				return nil
			}
		}
		if queued == 0 {
			// The deadline is due but everything was deduplicated away:
			// workers are still holding the items and the persisted deadline
			// stays in the past until they finish. Pace the re-read.
			timer.Reset(dueRecheckDelay)
			select {
			case <-timer.Chan():
			case <-ctx.Done():
				return nil
			case <-o.wakeCh:
			}
		}
	}
}

// dispatchDue queues every due turn timeout and due auction resolution,
// skipping anything a worker is already holding. Returns how many items it
// actually enqueued.
func (o *Orchestrator) dispatchDue(ctx context.Context) (int, error) {
	dueDrafts, err := o.engine.DueTurnDrafts(ctx, o.batchSize)
	if err != nil {
		return 0, err
	}
	dueAuctions, err := o.engine.DueAuctions(ctx, int(o.batchSize))
	if err != nil {
		return 0, err
	}

	items := make([]workItem, 0, len(dueDrafts)+len(dueAuctions))
	for _, draftID := range dueDrafts {
		items = append(items, workItem{DraftID: draftID})
	}
	for _, due := range dueAuctions {
		items = append(items, workItem{DraftID: due.DraftID, AuctionID: due.AuctionID})
	}
	if len(items) == 0 {
		return 0, nil
	}

	o.log.Info().
		Int("due_turns", len(dueDrafts)).
		Int("due_auctions", len(dueAuctions)).
		Msg("processing due work")

	queued := 0
	for _, item := range items {
		key := item.key()
		o.inFlightMu.Lock()
		if o.inFlight[key] {
			o.inFlightMu.Unlock()
			continue
		}
		o.inFlight[key] = true
		o.inFlightMu.Unlock()

		select {
		case <-ctx.Done():
			o.inFlightMu.Lock()
			delete(o.inFlight, key)
			o.inFlightMu.Unlock()
			return queued, nil
		case o.workCh <- item:
			queued++
		}
	}
	return queued, nil
}

// worker drains the work channel, routing each item to the matching handler.
func (o *Orchestrator) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-o.workCh:
			if !ok {
				return
			}

			var err error
			if item.AuctionID != uuid.Nil {
				err = o.engine.HandleDueAuction(ctx, item.DraftID, item.AuctionID)
			} else {
				err = o.engine.HandleDueTurn(ctx, item.DraftID)
			}
			if err != nil {
				o.log.Error().
					Err(err).
					Str("draft_id", item.DraftID.String()).
					Int("worker_id", workerID).
					Msg("worker timeout handling failed")
			}

			o.inFlightMu.Lock()
			delete(o.inFlight, item.key())
			o.inFlightMu.Unlock()
		}
	}
}
