package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/draftroom/go/internal/dbconfig"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// Seeds a demo snake draft with four teams and wishlists so the room can
// be exercised end to end without the join flow.
func main() {
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()

	settings := models.DraftSettings{
		EntitiesPerTeam: 5,
		TimeLimitSec:    60,
		BudgetPerTeam:   200,
		AllowUndo:       true,
		AllowProxyPicks: true,
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal settings: %v\n", err)
		os.Exit(1)
	}

	draftID := uuid.New()
	_, err = pool.Exec(ctx, `
        INSERT INTO drafts (id, name, format_id, draft_type, max_teams, settings)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, draftID, "Demo Snake Draft", "standard", string(models.DraftTypeSnake), 4, settingsJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error inserting draft: %v\n", err)
		os.Exit(1)
	}

	teamNames := []string{"Crimson Foxes", "Iron Owls", "Jade Serpents", "Storm Giants"}
	var (
		inserted int
		errs     int
	)

	for i, name := range teamNames {
		teamID := uuid.New()
		_, err := pool.Exec(ctx, `
            INSERT INTO teams (id, draft_id, name, budget_remaining)
            VALUES ($1, $2, $3, $4)
        `, teamID, draftID, name, settings.BudgetPerTeam)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting team %s: %v\n", name, err)
			errs++
			continue
		}
		inserted++

		_, err = pool.Exec(ctx, `
            INSERT INTO participants (id, draft_id, display_name, team_id, is_host)
            VALUES ($1, $2, $3, $4, $5)
        `, uuid.New(), draftID, fmt.Sprintf("manager-%d", i+1), teamID, i == 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting participant for %s: %v\n", name, err)
			errs++
			continue
		}

		for rank := 1; rank <= 3; rank++ {
			entityID := fmt.Sprintf("entity-%d-%d", i+1, rank)
			_, err = pool.Exec(ctx, `
                INSERT INTO wishlist_entries (team_id, entity_id, entity_name, rank)
                VALUES ($1, $2, $3, $4)
                ON CONFLICT (team_id, entity_id) DO NOTHING
            `, teamID, entityID, fmt.Sprintf("Entity %d-%d", i+1, rank), rank)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error inserting wishlist entry %s: %v\n", entityID, err)
				errs++
			}
		}
	}

	fmt.Printf("Draft seed complete: draft %s, %d teams inserted, %d errors\n", draftID, inserted, errs)
}
