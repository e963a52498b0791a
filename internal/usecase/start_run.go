package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
)

// StartRun prepares the registry for a deployment run: it checks the chain
// id marker, resumes pending ledger entries and seeds the configured
// address list.
type StartRun struct {
	chainCheck *CheckChainID
	registry   *DeploymentRegistry
	addresses  AddressListLoader
	cfg        *config.RuntimeConfig
	log        *slog.Logger
}

// NewStartRun creates a new run bootstrapper
func NewStartRun(
	chainCheck *CheckChainID,
	registry *DeploymentRegistry,
	addresses AddressListLoader,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *StartRun {
	return &StartRun{
		chainCheck: chainCheck,
		registry:   registry,
		addresses:  addresses,
		cfg:        cfg,
		log:        log,
	}
}

// StartRunResult reports how the registry was populated
type StartRunResult struct {
	Resumed int
	Loaded  int
}

func (s *StartRun) Run(ctx context.Context) (*StartRunResult, error) {
	if err := s.chainCheck.Run(ctx); err != nil {
		return nil, err
	}

	result := &StartRunResult{}

	resumed, err := s.registry.Resume(ctx)
	if err != nil {
		return nil, err
	}
	result.Resumed = resumed

	if s.cfg.AddressesPath != "" {
		deployments, err := s.addresses.Load(ctx, s.cfg.AddressesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load addresses from %s: %w", s.cfg.AddressesPath, err)
		}
		loaded, err := s.registry.LoadAddresses(deployments)
		if err != nil {
			return nil, err
		}
		result.Loaded = loaded
	}

	s.log.Debug("run started", "context", s.cfg.Context, "resumed", result.Resumed, "loaded", result.Loaded)
	return result, nil
}
