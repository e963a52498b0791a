package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

const latestRun = "run-latest.json"

// Parser handles parsing of Foundry broadcast files
type Parser struct {
	projectRoot   string
	broadcastPath string
	script        string
	chainID       uint64
}

// NewParser creates a new broadcast file parser
func NewParser(cfg *config.RuntimeConfig) *Parser {
	return &Parser{
		projectRoot:   cfg.ProjectRoot,
		broadcastPath: cfg.BroadcastPath,
		script:        cfg.Script,
		chainID:       cfg.ChainID,
	}
}

// ReadBroadcast parses the configured broadcast file, or the latest run of
// the configured script on the configured chain
func (p *Parser) ReadBroadcast(_ context.Context) (*domain.BroadcastFile, error) {
	path, err := p.resolvePath()
	if err != nil {
		return nil, err
	}
	return p.ParseBroadcastFile(path)
}

// ParseBroadcastFile parses a broadcast file
func (p *Parser) ParseBroadcastFile(file string) (*domain.BroadcastFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("broadcast file not found: %s", file)
		}
		return nil, fmt.Errorf("failed to read broadcast file: %w", err)
	}

	var broadcast domain.BroadcastFile
	if err := json.Unmarshal(data, &broadcast); err != nil {
		return nil, fmt.Errorf("failed to parse broadcast file: %w", err)
	}

	return &broadcast, nil
}

func (p *Parser) resolvePath() (string, error) {
	if p.broadcastPath != "" {
		return p.broadcastPath, nil
	}
	if p.script == "" {
		return "", fmt.Errorf("no broadcast file configured: set --broadcast or --script")
	}
	if p.chainID == 0 {
		return "", fmt.Errorf("chain id is required to locate the broadcast of %s", p.script)
	}
	return filepath.Join(p.getBroadcastPath(p.script, p.chainID), latestRun), nil
}

// getBroadcastPath returns the path to broadcast files for a script and chain
func (p *Parser) getBroadcastPath(scriptName string, chainID uint64) string {
	if !strings.HasSuffix(scriptName, ".sol") {
		scriptName += ".s.sol"
	}
	return filepath.Join(p.projectRoot, "broadcast", scriptName, fmt.Sprintf("%d", chainID))
}

// Ensure Parser implements usecase.BroadcastReader
var _ usecase.BroadcastReader = (*Parser)(nil)
