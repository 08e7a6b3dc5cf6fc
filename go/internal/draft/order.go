package draft

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// generateTurnOrder expands a base team order into the full snake sequence:
// odd rounds run forward, even rounds run reversed. The result has
// len(order) * rounds entries and every team appears exactly once per round.
func generateTurnOrder(order []uuid.UUID, rounds int) []uuid.UUID {
	turns := make([]uuid.UUID, 0, len(order)*rounds)
	for round := 1; round <= rounds; round++ {
		if round%2 == 1 {
			turns = append(turns, order...)
		} else {
			for i := len(order) - 1; i >= 0; i-- {
				turns = append(turns, order[i])
			}
		}
	}
	return turns
}

// teamForTurn resolves which team is on the clock for a 1-based turn number
// without materializing the whole sequence.
func teamForTurn(order []uuid.UUID, turn int) uuid.UUID {
	n := len(order)
	round := (turn - 1) / n
	idx := (turn - 1) % n
	if round%2 == 1 {
		idx = n - 1 - idx
	}
	return order[idx]
}

// nominatorForPickCount resolves the rotating nomination right: round-robin
// over the base order indexed by total picks made so far, so the right moves
// exactly once per completed lot regardless of who won it.
func nominatorForPickCount(order []uuid.UUID, totalPicks int) uuid.UUID {
	return order[totalPicks%len(order)]
}

// baseOrder returns team IDs sorted by their assigned draft_order. Teams
// without an order are excluded; callers check OrderShuffled first.
func baseOrder(teams []models.Team) []uuid.UUID {
	ordered := make([]uuid.UUID, 0, len(teams))
	slots := make(map[int]uuid.UUID, len(teams))
	max := 0
	for _, t := range teams {
		if t.DraftOrder == nil {
			continue
		}
		slots[*t.DraftOrder] = t.ID
		if *t.DraftOrder > max {
			max = *t.DraftOrder
		}
	}
	for i := 1; i <= max; i++ {
		id, ok := slots[i]
		if !ok {
			return nil
		}
		ordered = append(ordered, id)
	}
	return ordered
}

// shuffleOrder produces a random 1..n slot assignment for the given teams.
func shuffleOrder(teams []models.Team, rng *rand.Rand) map[uuid.UUID]int {
	perm := rng.Perm(len(teams))
	orders := make(map[uuid.UUID]int, len(teams))
	for i, t := range teams {
		orders[t.ID] = perm[i] + 1
	}
	return orders
}

// validOrderAssignment reports whether every team holds a distinct slot in
// 1..len(teams).
func validOrderAssignment(teams []models.Team) bool {
	seen := make(map[int]bool, len(teams))
	for _, t := range teams {
		if t.DraftOrder == nil {
			return false
		}
		slot := *t.DraftOrder
		if slot < 1 || slot > len(teams) || seen[slot] {
			return false
		}
		seen[slot] = true
	}
	return true
}
