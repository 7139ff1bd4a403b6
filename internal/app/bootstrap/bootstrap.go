package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	pollservice "warden/contexts/community-engagement/poll-service"
	pollpostgres "warden/contexts/community-engagement/poll-service/adapters/postgres"
	reputationservice "warden/contexts/community-economy/reputation-service"
	reputationpostgres "warden/contexts/community-economy/reputation-service/adapters/postgres"
	reputationapp "warden/contexts/community-economy/reputation-service/application"
	shopservice "warden/contexts/community-economy/shop-service"
	shoppostgres "warden/contexts/community-economy/shop-service/adapters/postgres"
	shopports "warden/contexts/community-economy/shop-service/ports"
	submissionservice "warden/contexts/community-workflow/submission-service"
	submissionpostgres "warden/contexts/community-workflow/submission-service/adapters/postgres"
	submissionports "warden/contexts/community-workflow/submission-service/ports"
	"warden/internal/platform/config"
	"warden/internal/platform/db"
	"warden/internal/platform/gateway"
	"warden/internal/platform/httpserver"
	"warden/internal/platform/identifier"
	"warden/internal/platform/messaging"
	"warden/internal/platform/settings"
	"warden/internal/shared/keylock"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	polls    pollservice.Module
	bus      *messaging.Bus
	recorder *messaging.Recorder
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	reminder     interface{ RunOnce(context.Context) error }
	postgres     *db.Postgres
	tickInterval time.Duration
	logger       *slog.Logger
}

// ledgerBridge adapts the reputation service to the add-mode Ledger ports of
// the submission and shop services.
type ledgerBridge struct {
	service reputationapp.Service
}

func (b ledgerBridge) Adjust(ctx context.Context, userID string, delta int) (int, error) {
	return b.service.Adjust(ctx, userID, delta, reputationapp.ModeAdd)
}

func (b ledgerBridge) Balance(ctx context.Context, userID string) (int, error) {
	return b.service.Balance(ctx, userID)
}

var (
	_ submissionports.Ledger   = ledgerBridge{}
	_ submissionports.Balances = ledgerBridge{}
	_ shopports.Ledger         = ledgerBridge{}
)

type modules struct {
	submissions submissionservice.Module
	reputation  reputationservice.Module
	shop        shopservice.Module
	polls       pollservice.Module
	settings    *settings.Store
	bus         *messaging.Bus
	postgres    *db.Postgres
}

func buildModules(cfg config.Config, logger *slog.Logger) (modules, error) {
	settingsStore := settings.FromConfig(cfg)
	bus := messaging.NewBus(logger)
	inProcessGateway := gateway.NewInProcess(cfg.ServiceName, bus, logger)
	locker := keylock.New()

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		// Memory wiring keeps local development and tests free of infra.
		reputationModule := reputationservice.NewInMemoryModule(logger)
		ledger := ledgerBridge{service: reputationModule.Service}

		submissionModule := submissionservice.NewInMemoryModule(submissionservice.Dependencies{
			Gateway:  inProcessGateway,
			Ledger:   ledger,
			Balances: ledger,
			Settings: settingsStore,
			Locker:   locker,
		}, logger)

		shopModule := shopservice.NewInMemoryModule(shopservice.Dependencies{
			Ledger:   ledger,
			Gateway:  inProcessGateway,
			Settings: settingsStore,
			Locker:   locker,
		}, logger)

		pollModule := pollservice.NewInMemoryModule(pollservice.Dependencies{
			Gateway: inProcessGateway,
			Locker:  locker,
		}, logger)

		return modules{
			submissions: submissionModule,
			reputation:  reputationModule,
			shop:        shopModule,
			polls:       pollModule,
			settings:    settingsStore,
			bus:         bus,
		}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return modules{}, err
	}
	if err := pg.Migrate(reputationpostgres.Models()...); err != nil {
		return modules{}, err
	}
	if err := pg.Migrate(shoppostgres.Models()...); err != nil {
		return modules{}, err
	}
	if err := pg.Migrate(pollpostgres.Models()...); err != nil {
		return modules{}, err
	}
	if err := submissionpostgres.Migrate(pg.DB); err != nil {
		return modules{}, err
	}

	idGen, err := identifier.New(cfg.SnowflakeNode)
	if err != nil {
		return modules{}, err
	}
	clock := identifier.SystemClock{}

	reputationModule := reputationservice.NewModule(reputationservice.Dependencies{
		Repository: reputationpostgres.NewRepository(pg.DB, logger),
		Logger:     logger,
	})
	ledger := ledgerBridge{service: reputationModule.Service}

	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository:  submissionpostgres.NewRepository(pg.DB),
		Gateway:     inProcessGateway,
		Ledger:      ledger,
		Balances:    ledger,
		Settings:    settingsStore,
		Locker:      locker,
		Clock:       clock,
		IDGenerator: idGen,
		Logger:      logger,
	})

	shopModule := shopservice.NewModule(shopservice.Dependencies{
		Repository:  shoppostgres.NewRepository(pg.DB),
		Ledger:      ledger,
		Gateway:     inProcessGateway,
		Settings:    settingsStore,
		Locker:      locker,
		IDGenerator: idGen,
		Logger:      logger,
	})

	pollModule := pollservice.NewModule(pollservice.Dependencies{
		Repository: pollpostgres.NewRepository(pg.DB),
		Gateway:    inProcessGateway,
		Locker:     locker,
		Logger:     logger,
	})

	return modules{
		submissions: submissionModule,
		reputation:  reputationModule,
		shop:        shopModule,
		polls:       pollModule,
		settings:    settingsStore,
		bus:         bus,
		postgres:    pg,
	}, nil
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	mods, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	recorder := messaging.NewRecorder(256)
	server := httpserver.New(
		mods.submissions,
		mods.reputation,
		mods.shop,
		mods.polls,
		mods.settings,
		recorder,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		polls:    mods.polls,
		bus:      mods.bus,
		recorder: recorder,
		postgres: mods.postgres,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	mods, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	interval := cfg.ReminderInterval
	if interval <= 0 {
		interval = time.Hour
	}
	return &WorkerApp{
		reminder:     mods.submissions.Reminder,
		postgres:     mods.postgres,
		tickInterval: interval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if err := a.bus.Subscribe(ctx, messaging.TopicOutbound, "ops-activity-feed", a.recorder.Record); err != nil {
		return err
	}

	// Poll controls do not survive restarts on the platform side; re-attach
	// them before serving traffic.
	if err := a.polls.Service.RestoreControls(ctx); err != nil {
		a.logger.Warn("poll controls restore failed",
			"event", "bootstrap_poll_restore_failed",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"error", err.Error(),
		)
	}

	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"tick_interval", w.tickInterval.String(),
	)

	for {
		if err := w.reminder.RunOnce(ctx); err != nil {
			w.logger.Error("reminder cycle failed",
				"event", "bootstrap_reminder_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
