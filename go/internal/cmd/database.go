package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/internal/dbconfig"
)

func setupDatabase() (*sql.DB, dbconfig.Config, error) {
	dbConfig := dbconfig.NewConfigFromEnv()

	database, err := sql.Open("postgres", dbConfig.DSN())
	if err != nil {
		return nil, dbConfig, fmt.Errorf("failed to create database connection: %w", err)
	}

	dbConfig.ApplyPool(database)

	if err := database.Ping(); err != nil {
		return nil, dbConfig, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("connected to database")
	return database, dbConfig, nil
}
