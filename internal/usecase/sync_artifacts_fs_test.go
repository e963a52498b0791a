package usecase_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/contracts"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/forge/broadcast"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/fs"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

var (
	greeterAddr = common.HexToAddress("0xAA00000000000000000000000000000000000001")
	brokenAddr  = common.HexToAddress("0xAA00000000000000000000000000000000000002")
)

const projectBroadcast = `{
  "transactions": [
    {
      "hash": "0x02",
      "transactionType": "CREATE",
      "contractName": "Broken",
      "contractAddress": "0xaa00000000000000000000000000000000000002",
      "function": null,
      "arguments": null,
      "additionalContracts": []
    },
    {
      "hash": "0x01",
      "transactionType": "CREATE",
      "contractName": "Greeter",
      "contractAddress": "0xaa00000000000000000000000000000000000001",
      "function": null,
      "arguments": ["hello"],
      "additionalContracts": []
    }
  ],
  "receipts": [
    {
      "transactionHash": "0x01",
      "blockNumber": "0x1",
      "status": "0x1",
      "contractAddress": "0xaa00000000000000000000000000000000000001"
    }
  ],
  "chain": 31337
}`

const greeterOutput = `{
  "abi": [{"type": "function", "name": "greet", "inputs": [], "outputs": [{"type": "string"}], "stateMutability": "view"}],
  "bytecode": {"object": "0x6080", "sourceMap": "", "linkReferences": {}},
  "deployedBytecode": {"object": "0x6081", "sourceMap": "", "linkReferences": {}},
  "rawMetadata": "{\"compiler\":{\"version\":\"0.8.24\"}}",
  "metadata": {"compiler": {"version": "0.8.24"}, "output": {"devdoc": {"kind": "dev"}, "userdoc": {"kind": "user"}}}
}`

// project lays out a Foundry project with a broadcast log and compiler output
type project struct {
	cfg        *config.RuntimeConfig
	registry   *usecase.DeploymentRegistry
	sync       *usecase.SyncArtifacts
	ledger     *fs.TempLedger
	contextDir string
}

func newProject(t *testing.T) *project {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "broadcast", "Deploy.s.sol", "31337", "run-latest.json"), projectBroadcast)
	writeFile(t, filepath.Join(root, "out", "Greeter.sol", "Greeter.json"), greeterOutput)
	writeFile(t, filepath.Join(root, "out", "Broken.sol", "Broken.json"), `{not json`)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    root,
		DeploymentsDir: filepath.Join(root, "deployments"),
		Context:        "devnet",
		ChainID:        31337,
		Script:         "Deploy",
		OutDir:         filepath.Join(root, "out"),
	}

	log := discardLogger()
	artifacts := fs.NewArtifactStore(cfg)
	ledger := fs.NewTempLedger(cfg)
	return &project{
		cfg:      cfg,
		registry: usecase.NewDeploymentRegistry(artifacts, ledger, log),
		sync: usecase.NewSyncArtifacts(
			ledger, broadcast.NewParser(cfg), contracts.NewIndexer(cfg), artifacts, nopProgress{}, log,
		),
		ledger:     ledger,
		contextDir: cfg.ContextDir(),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readArtifactFile(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestSyncArtifacts_Project(t *testing.T) {
	ctx := context.Background()

	t.Run("greeter", func(t *testing.T) {
		p := newProject(t)
		require.NoError(t, p.registry.Save(ctx, "Greeter", greeterAddr))
		ledgerPath := filepath.Join(p.contextDir, fs.TempLedgerFile)
		require.FileExists(t, ledgerPath)

		result, err := p.sync.Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Written, 1)

		doc := readArtifactFile(t, filepath.Join(p.contextDir, "Greeter.json"))
		assert.Equal(t, []any{"hello"}, doc["args"])
		assert.Equal(t, float64(1), doc["numDeployments"])
		assert.Equal(t, "0x01", doc["transactionHash"])
		assert.Equal(t, "0x6080", doc["bytecode"])
		assert.Equal(t, map[string]any{"kind": "dev"}, doc["devdoc"])
		assert.NotNil(t, doc["receipt"])
		assert.NoFileExists(t, ledgerPath)

		// A new run sees the persisted artifact
		fresh := usecase.NewDeploymentRegistry(fs.NewArtifactStore(p.cfg), fs.NewTempLedger(p.cfg), discardLogger())
		assert.Equal(t, greeterAddr, fresh.GetAddress(ctx, "Greeter"))

		// Second pass has nothing to do
		result, err = p.sync.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, result.Processed)
		doc = readArtifactFile(t, filepath.Join(p.contextDir, "Greeter.json"))
		assert.Equal(t, float64(1), doc["numDeployments"])
	})

	t.Run("redeploy bumps version", func(t *testing.T) {
		p := newProject(t)
		require.NoError(t, p.ledger.Append(ctx, "Greeter", greeterAddr))
		_, err := p.sync.Run(ctx)
		require.NoError(t, err)

		require.NoError(t, p.ledger.Append(ctx, "Greeter", greeterAddr))
		_, err = p.sync.Run(ctx)
		require.NoError(t, err)

		doc := readArtifactFile(t, filepath.Join(p.contextDir, "Greeter.json"))
		assert.Equal(t, float64(2), doc["numDeployments"])
	})

	t.Run("failing entries are skipped", func(t *testing.T) {
		p := newProject(t)
		require.NoError(t, p.ledger.Append(ctx, "Broken", brokenAddr))
		require.NoError(t, p.ledger.Append(ctx, "L1/Greeter", greeterAddr))
		require.NoError(t, p.ledger.Append(ctx, "Ghost", common.HexToAddress("0x03")))
		require.NoError(t, p.ledger.Append(ctx, "Greeter", greeterAddr))

		result, err := p.sync.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, 4, result.Processed)
		assert.Len(t, result.Skipped, 3)
		require.Len(t, result.Written, 1)
		assert.Equal(t, "Greeter", result.Written[0].Name)
		assert.FileExists(t, filepath.Join(p.contextDir, "Greeter.json"))
		assert.NoFileExists(t, filepath.Join(p.contextDir, "Broken.json"))
		assert.NoFileExists(t, filepath.Join(p.contextDir, fs.TempLedgerFile))

		pending, err := p.ledger.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("corrupt existing artifact is skipped", func(t *testing.T) {
		p := newProject(t)
		writeFile(t, filepath.Join(p.contextDir, "Greeter.json"), `{not json`)
		require.NoError(t, p.ledger.Append(ctx, "Greeter", greeterAddr))

		result, err := p.sync.Run(ctx)
		require.NoError(t, err)

		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "existing artifact is unreadable", result.Skipped[0].Reason)
		assert.Empty(t, result.Written)
	})
}
