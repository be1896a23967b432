// Package wire provides dependency injection for the commission queue
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/trickcandle/commissionqueue/internal/adapters/chat"
	"github.com/trickcandle/commissionqueue/internal/adapters/sheets"
	"github.com/trickcandle/commissionqueue/internal/adapters/sqlite"
	"github.com/trickcandle/commissionqueue/internal/app"
	"github.com/trickcandle/commissionqueue/internal/config"
	"github.com/trickcandle/commissionqueue/internal/db"
	"github.com/trickcandle/commissionqueue/internal/ports/primary"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// ConfigPathEnv overrides the configuration file location.
const ConfigPathEnv = "COMQ_CONFIG"

// DefaultConfigPath is used when ConfigPathEnv is unset.
const DefaultConfigPath = "comq.json"

var (
	cfg                *config.Config
	logger             *zap.Logger
	messenger          *chat.ConsoleMessenger
	commissionActions  primary.CommissionActions
	ingestService      primary.IngestService
	maintenanceService primary.MaintenanceService
	once               sync.Once
)

// Config returns the singleton loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the singleton logger instance.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// Messenger returns the singleton console messenger.
func Messenger() *chat.ConsoleMessenger {
	once.Do(initServices)
	return messenger
}

// CommissionActions returns the singleton CommissionActions instance.
func CommissionActions() primary.CommissionActions {
	once.Do(initServices)
	return commissionActions
}

// IngestService returns the singleton IngestService instance.
func IngestService() primary.IngestService {
	once.Do(initServices)
	return ingestService
}

// MaintenanceService returns the singleton MaintenanceService instance.
func MaintenanceService() primary.MaintenanceService {
	once.Do(initServices)
	return maintenanceService
}

// ConfigPath resolves the configuration file location.
func ConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return DefaultConfigPath
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	cfg, err = config.Load(ConfigPath())
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The schema version guard is fatal: never run against a database this
	// build does not understand.
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := db.CheckVersion(database); err != nil {
		log.Fatalf("database not usable (run 'comq db init'): %v", err)
	}

	// Secondary adapters.
	commissionRepo := sqlite.NewCommissionRepository(database)
	channelRepo := sqlite.NewChannelRepository(database)
	messenger = chat.NewConsoleMessenger(cfg.BotName)

	var sources []secondary.RowSource
	for _, sheet := range cfg.Sheets {
		sources = append(sources, sheets.NewCSVSource(sheet, logger))
	}

	// Services (primary port implementations).
	statusPage := app.NewStatusPageService(commissionRepo, messenger, cfg, logger)
	lifecycle := app.NewLifecycleService(commissionRepo, channelRepo, messenger, statusPage, cfg, logger)
	commissionActions = lifecycle
	ingestService = app.NewIngestService(lifecycle, sources, logger)
	maintenanceService = app.NewCleanupService(commissionRepo, messenger, lifecycle, statusPage, cfg, logger)
}
