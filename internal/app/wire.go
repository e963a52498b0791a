//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-deployments/internal/adapters"
	"github.com/trebuchet-org/treb-deployments/internal/config"
	"github.com/trebuchet-org/treb-deployments/internal/logging"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeploymentRegistry,
		usecase.NewCheckChainID,
		usecase.NewStartRun,
		usecase.NewSyncArtifacts,
		usecase.NewListArtifacts,
		usecase.NewShowArtifact,
		usecase.NewManageLedger,
		usecase.NewReadInitializedSlot,

		// App
		NewApp,
	)
	return nil, nil
}
