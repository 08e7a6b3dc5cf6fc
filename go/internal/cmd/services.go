package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/draftroom/go/clients/catalog_client"
	"github.com/mcdev12/draftroom/go/internal/draft"
	draftdb "github.com/mcdev12/draftroom/go/internal/draft/db"
	"github.com/mcdev12/draftroom/go/internal/draft/gateway"
	"github.com/mcdev12/draftroom/go/internal/draft/orchestrator"
	"github.com/mcdev12/draftroom/go/internal/draft/outbox"
	"github.com/mcdev12/draftroom/go/internal/draft/repository"
)

type Services struct {
	Draft          *draft.Service
	App            *draft.App
	Orchestrator   *orchestrator.Orchestrator
	OutboxListener *outbox.Listener
	Publisher      *outbox.JetStreamPublisher
	Gateway        *gateway.ConnectionManager
	GatewayHandler *gateway.Handler
	EventConsumer  *gateway.EventConsumer
}

func setupServices(database *sql.DB, databaseURL string, config *Config, logger zerolog.Logger) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	queries := draftdb.New(database)
	repo := repository.NewRepository(queries, database)

	validator := catalog_client.NewCatalogClient(config.Catalog.BaseURL)

	clock := clockwork.NewRealClock()
	app := draft.NewApp(repo, repo, repo, repo, repo, repo, validator, clock, logger)
	service := draft.NewService(app, logger)

	// Scheduler drives turn timeouts and auction expiries off the app.
	orch := orchestrator.NewOrchestrator(app, clock, config.Scheduler.BatchSize, config.Scheduler.NumWorkers, logger)
	app.SetWaker(orch)

	// Outbox relay: pg LISTEN/NOTIFY → JetStream.
	jsConfig := outbox.DefaultJetStreamConfig()
	jsConfig.URL = config.NATS.URL
	publisher, err := outbox.NewJetStreamPublisher(jsConfig, logger)
	if err != nil {
		return nil, err
	}

	listenerConfig := outbox.DefaultListenerConfig()
	listenerConfig.DatabaseURL = databaseURL
	listener, err := outbox.NewListener(database, publisher, listenerConfig, logger)
	if err != nil {
		publisher.Close()
		return nil, err
	}

	// Gateway: JetStream → websocket fan-out.
	connectionManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	gatewayHandler := gateway.NewHandler(connectionManager)

	consumerConfig := gateway.DefaultJetStreamConsumerConfig()
	consumerConfig.URL = config.NATS.URL
	eventConsumer, err := gateway.NewEventConsumer(connectionManager, consumerConfig)
	if err != nil {
		publisher.Close()
		return nil, err
	}

	return &Services{
		Draft:          service,
		App:            app,
		Orchestrator:   orch,
		OutboxListener: listener,
		Publisher:      publisher,
		Gateway:        connectionManager,
		GatewayHandler: gatewayHandler,
		EventConsumer:  eventConsumer,
	}, nil
}
