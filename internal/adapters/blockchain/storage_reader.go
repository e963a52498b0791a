package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

const storageReadTimeout = 10 * time.Second

// StorageReaderAdapter reads contract storage through ethclient. The
// connection is opened on first use so commands that never touch the chain
// don't need an RPC endpoint.
type StorageReaderAdapter struct {
	rpcURL  string
	chainID uint64
	client  *ethclient.Client
}

// NewStorageReaderAdapter creates a new storage reader for the configured network
func NewStorageReaderAdapter(cfg *config.RuntimeConfig) *StorageReaderAdapter {
	return &StorageReaderAdapter{
		rpcURL:  cfg.RPCURL(),
		chainID: cfg.ChainID,
	}
}

// StorageAt returns the raw storage word at key of address on the latest block
func (s *StorageReaderAdapter) StorageAt(ctx context.Context, address common.Address, key common.Hash) (common.Hash, error) {
	if err := s.connect(ctx); err != nil {
		return common.Hash{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, storageReadTimeout)
	defer cancel()

	value, err := s.client.StorageAt(ctx, address, key, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("eth_getStorageAt failed: %w", err)
	}
	return common.BytesToHash(value), nil
}

// Close releases the RPC connection, if any
func (s *StorageReaderAdapter) Close() {
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

func (s *StorageReaderAdapter) connect(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	if s.rpcURL == "" {
		return fmt.Errorf("no RPC endpoint configured: set --network or --rpc-url")
	}

	client, err := ethclient.DialContext(ctx, s.rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	// Verify chain ID matches
	if s.chainID != 0 {
		networkChainID, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			return fmt.Errorf("failed to get chain ID: %w", err)
		}
		if networkChainID.Uint64() != s.chainID {
			client.Close()
			return fmt.Errorf("chain ID mismatch: expected %d, got %d", s.chainID, networkChainID.Uint64())
		}
	}

	s.client = client
	return nil
}

// Ensure StorageReaderAdapter implements usecase.StorageReader
var _ usecase.StorageReader = (*StorageReaderAdapter)(nil)
