package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

const artifactExt = ".json"

// ArtifactStore implements ArtifactRepository with one JSON file per contract
// name under deployments/<context>/
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates a new ArtifactStore for the configured context
func NewArtifactStore(cfg *config.RuntimeConfig) *ArtifactStore {
	return &ArtifactStore{dir: cfg.ContextDir()}
}

// Dir returns the context directory
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// Read loads the artifact for name, returning domain.ErrNotFound if absent
func (s *ArtifactStore) Read(ctx context.Context, name string) (*models.DeploymentArtifact, error) {
	artifact, found, err := s.ReadIfExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("artifact %s: %w", name, domain.ErrNotFound)
	}
	return artifact, nil
}

// ReadIfExists loads the artifact for name, reporting whether it exists
func (s *ArtifactStore) ReadIfExists(_ context.Context, name string) (*models.DeploymentArtifact, bool, error) {
	data, found, err := s.readFile(name)
	if err != nil || !found {
		return nil, false, err
	}

	var artifact models.DeploymentArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, false, fmt.Errorf("failed to parse artifact %s: %w: %w", name, domain.ErrCorruptArtifact, err)
	}
	return &artifact, true, nil
}

// ReadAddress decodes only the address field of the artifact for name
func (s *ArtifactStore) ReadAddress(_ context.Context, name string) (common.Address, error) {
	data, found, err := s.readFile(name)
	if err != nil {
		return common.Address{}, err
	}
	if !found {
		return common.Address{}, fmt.Errorf("artifact %s: %w", name, domain.ErrNotFound)
	}

	var partial struct {
		Address *common.Address `json:"address"`
	}
	if err := json.Unmarshal(data, &partial); err != nil {
		return common.Address{}, fmt.Errorf("failed to parse artifact %s: %w: %w", name, domain.ErrCorruptArtifact, err)
	}
	if partial.Address == nil {
		return common.Address{}, fmt.Errorf("artifact %s has no address: %w", name, domain.ErrInvalidAddress)
	}
	return *partial.Address, nil
}

// Write overwrites the artifact for name. The artifact must carry the next
// version: the previous numDeployments (0 if absent) plus one.
func (s *ArtifactStore) Write(ctx context.Context, name string, artifact *models.DeploymentArtifact) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	previous, found, err := s.ReadIfExists(ctx, name)
	if err != nil {
		return err
	}
	var prev uint64
	if found {
		prev = previous.NumDeployments
	}
	if artifact.NumDeployments != prev+1 {
		return fmt.Errorf("%w: %s has numDeployments %d, writing %d",
			domain.ErrStaleArtifact, name, prev, artifact.NumDeployments)
	}

	if err := writeJSONFile(path, artifact); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return nil
}

// List returns the contract names that have an artifact in the context
func (s *ArtifactStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read artifact directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		fileName := e.Name()
		if e.IsDir() || strings.HasPrefix(fileName, ".") || filepath.Ext(fileName) != artifactExt {
			continue
		}
		names = append(names, strings.TrimSuffix(fileName, artifactExt))
	}
	return names, nil
}

func (s *ArtifactStore) readFile(name string) ([]byte, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	return data, true, nil
}

func (s *ArtifactStore) path(name string) (string, error) {
	if !domain.IsStorableName(name) {
		return "", fmt.Errorf("%w: unusable artifact name %q", domain.ErrInvalidDeployment, name)
	}
	return filepath.Join(s.dir, name+artifactExt), nil
}

// Ensure ArtifactStore implements ArtifactRepository
var _ usecase.ArtifactRepository = (*ArtifactStore)(nil)
