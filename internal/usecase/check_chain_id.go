package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
)

// CheckChainID guards a deployment context against being reused on another chain
type CheckChainID struct {
	store ChainIDStore
	cfg   *config.RuntimeConfig
	log   *slog.Logger
}

// NewCheckChainID creates a new chain id check
func NewCheckChainID(store ChainIDStore, cfg *config.RuntimeConfig, log *slog.Logger) *CheckChainID {
	return &CheckChainID{store: store, cfg: cfg, log: log}
}

// Run records the chain id on first use of a context and compares it on
// every later run. A mismatch is returned as *domain.ChainMismatchError when
// strict checking is enabled and logged otherwise; the marker is never
// rewritten on mismatch.
func (c *CheckChainID) Run(ctx context.Context) error {
	if c.cfg.ChainID == 0 {
		c.log.Debug("no chain id configured, skipping chain id check", "context", c.cfg.Context)
		return nil
	}

	recorded, found, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read chain id marker: %w", err)
	}

	if !found {
		if err := c.store.Save(ctx, c.cfg.ChainID); err != nil {
			return fmt.Errorf("failed to write chain id marker: %w", err)
		}
		c.log.Debug("recorded chain id", "context", c.cfg.Context, "chainId", c.cfg.ChainID)
		return nil
	}

	if recorded == c.cfg.ChainID {
		return nil
	}

	mismatch := &domain.ChainMismatchError{
		Context:  c.cfg.Context,
		Recorded: recorded,
		Current:  c.cfg.ChainID,
	}
	if c.cfg.StrictChainID {
		return mismatch
	}

	c.log.Warn("chain id mismatch ignored, strict check disabled", "error", mismatch.Error())
	return nil
}
