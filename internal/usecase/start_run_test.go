package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

func newStartRun(cfg *config.RuntimeConfig, store *MockChainIDStore, loader *MockAddressListLoader, ledger *memLedger) (*usecase.StartRun, *usecase.DeploymentRegistry) {
	log := discardLogger()
	registry := usecase.NewDeploymentRegistry(newMemArtifacts(), ledger, log)
	check := usecase.NewCheckChainID(store, cfg, log)
	return usecase.NewStartRun(check, registry, loader, cfg, log), registry
}

func TestStartRun_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("resumes ledger and seeds addresses", func(t *testing.T) {
		cfg := &config.RuntimeConfig{Context: "devnet", AddressesPath: "addresses.json"}
		ledger := &memLedger{entries: []models.Deployment{{Name: "Greeter", Address: addr1}}}
		loader := new(MockAddressListLoader)
		loader.On("Load", mock.Anything, "addresses.json").Return([]models.Deployment{
			{Name: "Greeter", Address: addr2},
			{Name: "Portal", Address: addr3},
		}, nil)

		startRun, registry := newStartRun(cfg, new(MockChainIDStore), loader, ledger)
		result, err := startRun.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, &usecase.StartRunResult{Resumed: 1, Loaded: 1}, result)
		assert.Equal(t, addr1, registry.GetAddress(ctx, "Greeter"))
		assert.Equal(t, addr3, registry.GetAddress(ctx, "Portal"))
		assert.Len(t, ledger.entries, 1)
		loader.AssertExpectations(t)
	})

	t.Run("no address list configured", func(t *testing.T) {
		loader := new(MockAddressListLoader)
		startRun, _ := newStartRun(&config.RuntimeConfig{}, new(MockChainIDStore), loader, &memLedger{})

		result, err := startRun.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, result.Loaded)
		loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("address list error", func(t *testing.T) {
		cfg := &config.RuntimeConfig{AddressesPath: "missing.yaml"}
		loader := new(MockAddressListLoader)
		loader.On("Load", mock.Anything, "missing.yaml").Return(nil, errors.New("no such file"))

		startRun, _ := newStartRun(cfg, new(MockChainIDStore), loader, &memLedger{})
		_, err := startRun.Run(ctx)
		assert.ErrorContains(t, err, "failed to load addresses from missing.yaml")
	})

	t.Run("chain mismatch stops the run", func(t *testing.T) {
		cfg := &config.RuntimeConfig{Context: "mainnet", ChainID: 1, StrictChainID: true}
		store := new(MockChainIDStore)
		store.On("Load", mock.Anything).Return(uint64(10), true, nil)
		ledger := &memLedger{entries: []models.Deployment{{Name: "Greeter", Address: addr1}}}

		startRun, registry := newStartRun(cfg, store, new(MockAddressListLoader), ledger)
		_, err := startRun.Run(ctx)

		assert.ErrorIs(t, err, domain.ErrChainMismatch)
		assert.Empty(t, registry.Deployments())
	})
}
