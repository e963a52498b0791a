package app

import (
	"log/slog"

	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared state for the current run
	Registry *usecase.DeploymentRegistry

	// Use cases
	StartRun            *usecase.StartRun
	SyncArtifacts       *usecase.SyncArtifacts
	ListArtifacts       *usecase.ListArtifacts
	ShowArtifact        *usecase.ShowArtifact
	ManageLedger        *usecase.ManageLedger
	ReadInitializedSlot *usecase.ReadInitializedSlot
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	registry *usecase.DeploymentRegistry,
	startRun *usecase.StartRun,
	syncArtifacts *usecase.SyncArtifacts,
	listArtifacts *usecase.ListArtifacts,
	showArtifact *usecase.ShowArtifact,
	manageLedger *usecase.ManageLedger,
	readInitializedSlot *usecase.ReadInitializedSlot,
) (*App, error) {
	return &App{
		Config:              cfg,
		Log:                 log,
		Registry:            registry,
		StartRun:            startRun,
		SyncArtifacts:       syncArtifacts,
		ListArtifacts:       listArtifacts,
		ShowArtifact:        showArtifact,
		ManageLedger:        manageLedger,
		ReadInitializedSlot: readInitializedSlot,
	}, nil
}
