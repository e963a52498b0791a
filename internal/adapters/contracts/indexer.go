package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// semverSuffix matches compiler version suffixes such as ".0.8.15"
var semverSuffix = regexp.MustCompile(`\.\d+\.\d+\.\d+`)

// StripVersionSuffix removes every embedded compiler version from a contract
// reference: "Foo.0.8.15" -> "Foo". When one contract was compiled with
// several compilers this makes the name ambiguous; Indexer resolves that by
// picking the lexicographically first artifact file.
func StripVersionSuffix(name string) string {
	return semverSuffix.ReplaceAllString(name, "")
}

// SplitQualifiedName splits "path/File.sol:Name" into its source path and
// contract name. Plain names return an empty path.
func SplitQualifiedName(qualified string) (path, name string) {
	if i := strings.LastIndex(qualified, ":"); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}
	return "", qualified
}

// Indexer resolves contract references to Foundry artifacts in the compiler
// output directory
type Indexer struct {
	outDir string
	cache  map[string]*models.Contract
}

// NewIndexer creates a new Indexer reading from cfg.OutDir
func NewIndexer(cfg *config.RuntimeConfig) *Indexer {
	return &Indexer{
		outDir: cfg.OutDir,
		cache:  make(map[string]*models.Contract),
	}
}

// GetContract loads the artifact for a qualified contract name
func (i *Indexer) GetContract(_ context.Context, qualifiedName string) (*models.Contract, error) {
	if c, ok := i.cache[qualifiedName]; ok {
		return c, nil
	}

	sourcePath, name := SplitQualifiedName(StripVersionSuffix(qualifiedName))
	if name == "" {
		return nil, fmt.Errorf("%w: empty contract name in %q", domain.ErrContractNotFound, qualifiedName)
	}

	artifactPath, err := i.findArtifact(sourcePath, name)
	if err != nil {
		return nil, err
	}

	artifact, err := readArtifact(artifactPath)
	if err != nil {
		return nil, err
	}

	contract := &models.Contract{
		Name:         name,
		Path:         sourcePath,
		ArtifactPath: artifactPath,
		Version:      artifact.Metadata.Compiler.Version,
		Artifact:     artifact,
	}
	if contract.Path == "" {
		for source := range artifact.Metadata.Settings.CompilationTarget {
			contract.Path = source
		}
	}

	i.cache[qualifiedName] = contract
	return contract, nil
}

// findArtifact returns out/<File>.sol/<Name>[.<version>].json. With a source
// path only that file's directory is searched.
func (i *Indexer) findArtifact(sourcePath, name string) (string, error) {
	dirPattern := "*"
	if sourcePath != "" {
		dirPattern = filepath.Base(sourcePath)
	}

	var candidates []string
	for _, pattern := range []string{name + ".json", name + ".*.json"} {
		matches, err := filepath.Glob(filepath.Join(i.outDir, dirPattern, pattern))
		if err != nil {
			return "", fmt.Errorf("failed to search compiler output: %w", err)
		}
		for _, m := range matches {
			base := strings.TrimSuffix(filepath.Base(m), ".json")
			if StripVersionSuffix(base) == name {
				candidates = append(candidates, m)
			}
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s in %s", domain.ErrContractNotFound, name, i.outDir)
	}

	sort.Strings(candidates)
	return candidates[0], nil
}

func readArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w: %w", path, domain.ErrCorruptArtifact, err)
	}
	return &artifact, nil
}

// Ensure Indexer implements usecase.ContractRepository
var _ usecase.ContractRepository = (*Indexer)(nil)
