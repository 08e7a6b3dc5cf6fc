package draft

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/models"
)

func newOrder(n int) []uuid.UUID {
	order := make([]uuid.UUID, n)
	for i := range order {
		order[i] = uuid.New()
	}
	return order
}

func TestGenerateTurnOrderSnakes(t *testing.T) {
	order := newOrder(3)
	turns := generateTurnOrder(order, 4)

	require.Len(t, turns, 12)
	want := []uuid.UUID{
		order[0], order[1], order[2],
		order[2], order[1], order[0],
		order[0], order[1], order[2],
		order[2], order[1], order[0],
	}
	assert.Equal(t, want, turns)
}

func TestGenerateTurnOrderTwoTeams(t *testing.T) {
	order := newOrder(2)
	turns := generateTurnOrder(order, 2)
	assert.Equal(t, []uuid.UUID{order[0], order[1], order[1], order[0]}, turns)
}

func TestTeamForTurnMatchesFullSequence(t *testing.T) {
	order := newOrder(4)
	turns := generateTurnOrder(order, 5)
	for i, want := range turns {
		assert.Equal(t, want, teamForTurn(order, i+1), "turn %d", i+1)
	}
}

func TestNominatorRotatesRoundRobin(t *testing.T) {
	order := newOrder(3)
	assert.Equal(t, order[0], nominatorForPickCount(order, 0))
	assert.Equal(t, order[1], nominatorForPickCount(order, 1))
	assert.Equal(t, order[2], nominatorForPickCount(order, 2))
	// The right wraps regardless of who won the lots.
	assert.Equal(t, order[0], nominatorForPickCount(order, 3))
	assert.Equal(t, order[1], nominatorForPickCount(order, 7))
}

func teamsWithOrders(slots ...*int) []models.Team {
	teams := make([]models.Team, len(slots))
	for i, s := range slots {
		teams[i] = models.Team{ID: uuid.New(), DraftOrder: s}
	}
	return teams
}

func intPtr(v int) *int { return &v }

func TestBaseOrder(t *testing.T) {
	teams := teamsWithOrders(intPtr(2), intPtr(1), intPtr(3))
	order := baseOrder(teams)
	require.Len(t, order, 3)
	assert.Equal(t, teams[1].ID, order[0])
	assert.Equal(t, teams[0].ID, order[1])
	assert.Equal(t, teams[2].ID, order[2])

	// A gap in the slot sequence invalidates the whole order.
	assert.Nil(t, baseOrder(teamsWithOrders(intPtr(1), intPtr(3))))
	assert.Nil(t, baseOrder(teamsWithOrders(intPtr(1), nil, intPtr(2))))
}

func TestValidOrderAssignment(t *testing.T) {
	assert.True(t, validOrderAssignment(teamsWithOrders(intPtr(2), intPtr(1))))
	assert.False(t, validOrderAssignment(teamsWithOrders(intPtr(1), intPtr(1))))
	assert.False(t, validOrderAssignment(teamsWithOrders(intPtr(1), intPtr(3))))
	assert.False(t, validOrderAssignment(teamsWithOrders(intPtr(1), nil)))
	assert.False(t, validOrderAssignment(teamsWithOrders(intPtr(0), intPtr(1))))
}

func TestShuffleOrderIsPermutation(t *testing.T) {
	teams := teamsWithOrders(nil, nil, nil, nil, nil)
	rng := rand.New(rand.NewSource(42))

	orders := shuffleOrder(teams, rng)
	require.Len(t, orders, len(teams))
	seen := make(map[int]bool)
	for _, slot := range orders {
		assert.GreaterOrEqual(t, slot, 1)
		assert.LessOrEqual(t, slot, len(teams))
		assert.False(t, seen[slot])
		seen[slot] = true
	}
}
