package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/draft/repository"
)

// stubEngine hands the scheduler one due item at a time. Once the item has
// been listed as due it stops being advertised, so the loop goes idle instead
// of spinning while a worker holds it.
type stubEngine struct {
	mu sync.Mutex

	clock       clockwork.Clock
	deadline    *time.Time
	dueTurn     *uuid.UUID
	dueAuction  *repository.DueAuction
	deadlineErr error

	// holdDue keeps due items advertised after listing, the way the real
	// store does until a handler commits. deadlineCalls counts NextDeadline
	// reads. turnRelease, when set, blocks HandleDueTurn until closed.
	holdDue       bool
	deadlineCalls int
	turnRelease   chan struct{}

	turnHandled    chan uuid.UUID
	auctionHandled chan uuid.UUID
}

func newStubEngine(clock clockwork.Clock) *stubEngine {
	return &stubEngine{
		clock:          clock,
		turnHandled:    make(chan uuid.UUID, 10),
		auctionHandled: make(chan uuid.UUID, 10),
	}
}

func (e *stubEngine) setDueTurn(draftID uuid.UUID, deadline time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dueTurn = &draftID
	e.deadline = &deadline
}

func (e *stubEngine) setDueAuction(draftID, auctionID uuid.UUID, deadline time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dueAuction = &repository.DueAuction{DraftID: draftID, AuctionID: auctionID}
	e.deadline = &deadline
}

func (e *stubEngine) deadlineCallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deadlineCalls
}

func (e *stubEngine) NextDeadline(ctx context.Context) (*repository.NextDeadline, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deadlineCalls++
	if e.deadlineErr != nil {
		return nil, e.deadlineErr
	}
	if e.deadline == nil {
		return nil, nil
	}
	dl := *e.deadline
	var draftID uuid.UUID
	if e.dueTurn != nil {
		draftID = *e.dueTurn
	} else if e.dueAuction != nil {
		draftID = e.dueAuction.DraftID
	}
	return &repository.NextDeadline{DraftID: draftID, Deadline: &dl}, nil
}

func (e *stubEngine) DueTurnDrafts(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dueTurn == nil || e.deadline == nil || e.clock.Now().Before(*e.deadline) {
		return nil, nil
	}
	id := *e.dueTurn
	if !e.holdDue {
		e.dueTurn = nil
		e.deadline = nil
	}
	return []uuid.UUID{id}, nil
}

func (e *stubEngine) DueAuctions(ctx context.Context, limit int) ([]repository.DueAuction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dueAuction == nil || e.deadline == nil || e.clock.Now().Before(*e.deadline) {
		return nil, nil
	}
	due := *e.dueAuction
	e.dueAuction = nil
	e.deadline = nil
	return []repository.DueAuction{due}, nil
}

func (e *stubEngine) HandleDueTurn(ctx context.Context, draftID uuid.UUID) error {
	if e.turnRelease != nil {
		<-e.turnRelease
	}
	e.turnHandled <- draftID
	return nil
}

func (e *stubEngine) HandleDueAuction(ctx context.Context, draftID, auctionID uuid.UUID) error {
	e.auctionHandled <- auctionID
	return nil
}

func startScheduler(t *testing.T, engine DraftEngine, clock clockwork.Clock) (context.CancelFunc, chan error) {
	t.Helper()
	orch := NewOrchestrator(engine, clock, 10, 2, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- orch.RunScheduler(ctx) }()
	return cancel, errCh
}

func recvUUID(t *testing.T, ch chan uuid.UUID, what string) uuid.UUID {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		return uuid.Nil
	}
}

func TestSchedulerFiresTurnAtDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := newStubEngine(clock)

	draftID := uuid.New()
	engine.setDueTurn(draftID, clock.Now().Add(5*time.Second))

	cancel, errCh := startScheduler(t, engine, clock)
	defer cancel()

	clock.BlockUntil(1)
	clock.Advance(6 * time.Second)

	handled := recvUUID(t, engine.turnHandled, "turn timeout")
	assert.Equal(t, draftID, handled)

	cancel()
	require.NoError(t, <-errCh)
}

func TestSchedulerRoutesAuctionsToAuctionHandler(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := newStubEngine(clock)

	draftID := uuid.New()
	auctionID := uuid.New()
	engine.setDueAuction(draftID, auctionID, clock.Now().Add(3*time.Second))

	cancel, errCh := startScheduler(t, engine, clock)
	defer cancel()

	clock.BlockUntil(1)
	clock.Advance(4 * time.Second)

	handled := recvUUID(t, engine.auctionHandled, "auction resolution")
	assert.Equal(t, auctionID, handled)
	assert.Empty(t, engine.turnHandled)

	cancel()
	require.NoError(t, <-errCh)
}

func TestWakeInterruptsIdleSleep(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := newStubEngine(clock)

	orch := NewOrchestrator(engine, clock, 10, 2, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- orch.RunScheduler(ctx) }()

	// Nothing is scheduled, so the loop parks on the idle poll.
	clock.BlockUntil(1)

	// An already-due turn appears; the poke must get it dispatched without
	// the clock ever moving.
	draftID := uuid.New()
	engine.setDueTurn(draftID, clock.Now())
	orch.Wake()

	handled := recvUUID(t, engine.turnHandled, "turn timeout after wake")
	assert.Equal(t, draftID, handled)

	cancel()
	require.NoError(t, <-errCh)
}

func TestSchedulerPacesPollingWhileWorkInFlight(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := newStubEngine(clock)
	engine.holdDue = true
	engine.turnRelease = make(chan struct{})

	draftID := uuid.New()
	engine.setDueTurn(draftID, clock.Now())

	cancel, errCh := startScheduler(t, engine, clock)
	defer cancel()

	// The item dispatches immediately and the handler blocks holding it. The
	// store keeps reporting the stale deadline, so the loop must park on the
	// recheck timer rather than re-reading the deadline in a tight loop.
	clock.BlockUntil(1)
	calls := engine.deadlineCallCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, engine.deadlineCallCount())

	close(engine.turnRelease)
	handled := recvUUID(t, engine.turnHandled, "held turn timeout")
	assert.Equal(t, draftID, handled)

	cancel()
	require.NoError(t, <-errCh)
}

func TestSchedulerGivesUpAfterRepeatedDeadlineErrors(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := newStubEngine(clock)

	dbErr := errors.New("connection refused")
	engine.mu.Lock()
	engine.deadlineErr = dbErr
	engine.mu.Unlock()

	cancel, errCh := startScheduler(t, engine, clock)
	defer cancel()

	// Three backoff sleeps of 1s, 2s and 3s, then the loop surfaces the
	// error.
	for _, backoff := range []time.Duration{time.Second, 2 * time.Second, 3 * time.Second} {
		clock.BlockUntil(1)
		clock.Advance(backoff)
	}

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, dbErr)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not surface the deadline error")
	}
}
