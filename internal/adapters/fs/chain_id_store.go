package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// ChainIDFile is the name of the chain id marker inside a context
const ChainIDFile = ".chainId"

// ChainIDStore implements usecase.ChainIDStore with a plain-text marker file
type ChainIDStore struct {
	path string
}

func NewChainIDStore(cfg *config.RuntimeConfig) *ChainIDStore {
	return &ChainIDStore{path: filepath.Join(cfg.ContextDir(), ChainIDFile)}
}

// Load reads the recorded chain id
func (s *ChainIDStore) Load(_ context.Context) (uint64, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read chain id file: %w", err)
	}

	chainID, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse chain id file %s: %w", s.path, err)
	}
	return chainID, true, nil
}

// Save writes the chain id marker, creating the context directory if needed
func (s *ChainIDStore) Save(_ context.Context, chainID uint64) error {
	return writeFileAtomic(s.path, []byte(strconv.FormatUint(chainID, 10)))
}

// Ensure ChainIDStore implements usecase.ChainIDStore
var _ usecase.ChainIDStore = (*ChainIDStore)(nil)
