package usecase

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

// SyncArtifacts reconciles the temp ledger against the broadcast log and
// writes one versioned artifact per synced deployment. It is not idempotent:
// every successful pass bumps numDeployments of the names it writes.
type SyncArtifacts struct {
	ledger     TempLedger
	broadcasts BroadcastReader
	contracts  ContractRepository
	artifacts  ArtifactRepository
	progress   ProgressSink
	log        *slog.Logger
}

// NewSyncArtifacts creates a new sync use case
func NewSyncArtifacts(
	ledger TempLedger,
	broadcasts BroadcastReader,
	contracts ContractRepository,
	artifacts ArtifactRepository,
	progress ProgressSink,
	log *slog.Logger,
) *SyncArtifacts {
	return &SyncArtifacts{
		ledger:     ledger,
		broadcasts: broadcasts,
		contracts:  contracts,
		artifacts:  artifacts,
		progress:   progress,
		log:        log,
	}
}

// SkippedEntry is a ledger entry that was consumed without producing an artifact
type SkippedEntry struct {
	Deployment models.Deployment
	Reason     string
}

// SyncResult contains the result of syncing
type SyncResult struct {
	Processed int
	Written   []WrittenArtifact
	Skipped   []SkippedEntry
}

// WrittenArtifact identifies an artifact written by a sync pass
type WrittenArtifact struct {
	Name           string
	ContractName   string
	NumDeployments uint64
}

// Run performs one sync pass. Entries that can't produce an artifact (no
// creation transaction, missing or unreadable compiler output, unusable
// name) are skipped. Ledger, broadcast and write errors abort the pass and
// leave the ledger untouched so it can be re-run.
func (s *SyncArtifacts) Run(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	entries, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp ledger: %w", err)
	}
	if len(entries) == 0 {
		s.log.Debug("temp ledger is empty, nothing to sync")
		return result, nil
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "sync",
		Message: fmt.Sprintf("Syncing %d deployment(s)...", len(entries)),
		Total:   len(entries),
		Spinner: true,
	})

	broadcast, err := s.broadcasts.ReadBroadcast(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read broadcast log: %w", err)
	}

	for i, entry := range entries {
		s.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "sync",
			Current: i + 1,
			Total:   len(entries),
			Message: fmt.Sprintf("Syncing %s", entry.Name),
			Spinner: true,
		})

		written, reason, err := s.syncEntry(ctx, broadcast, entry)
		if err != nil {
			return nil, err
		}
		result.Processed++

		if reason != "" {
			s.log.Warn("skipping deployment", "name", entry.Name, "address", entry.Address.Hex(), "reason", reason)
			result.Skipped = append(result.Skipped, SkippedEntry{Deployment: entry, Reason: reason})
			continue
		}

		s.log.Info("synced deployment", "name", entry.Name, "contract", written.ContractName, "numDeployments", written.NumDeployments)
		result.Written = append(result.Written, *written)
	}

	if err := s.ledger.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear temp ledger: %w", err)
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "sync",
		Current: len(entries),
		Total:   len(entries),
		Message: "Sync completed",
	})

	return result, nil
}

// syncEntry returns either a written artifact, a skip reason, or a fatal
// error. Problems confined to one entry are skip reasons; only I/O that
// would affect every entry is fatal.
func (s *SyncArtifacts) syncEntry(ctx context.Context, broadcast *domain.BroadcastFile, entry models.Deployment) (*WrittenArtifact, string, error) {
	if !domain.IsStorableName(entry.Name) {
		return nil, fmt.Sprintf("unusable artifact name %q", entry.Name), nil
	}

	creation, ok := broadcast.FindCreation(entry.Address)
	if !ok {
		return nil, "no creation transaction in broadcast log", nil
	}

	contract, err := s.contracts.GetContract(ctx, creation.ContractName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContractNotFound):
			return nil, fmt.Sprintf("no compiler output for %s", creation.ContractName), nil
		case errors.Is(err, domain.ErrCorruptArtifact):
			return nil, fmt.Sprintf("unreadable compiler output for %s", creation.ContractName), nil
		}
		return nil, "", fmt.Errorf("failed to load compiler output for %s: %w", creation.ContractName, err)
	}

	previous, found, err := s.artifacts.ReadIfExists(ctx, entry.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCorruptArtifact):
			return nil, "existing artifact is unreadable", nil
		case errors.Is(err, domain.ErrInvalidDeployment):
			return nil, fmt.Sprintf("unusable artifact name %q", entry.Name), nil
		}
		return nil, "", fmt.Errorf("failed to read existing artifact for %s: %w", entry.Name, err)
	}
	var numDeployments uint64 = 1
	if found {
		numDeployments = previous.NumDeployments + 1
	}

	artifact, err := buildArtifact(entry, creation, contract, broadcast)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build artifact for %s: %w", entry.Name, err)
	}
	artifact.NumDeployments = numDeployments

	if err := s.artifacts.Write(ctx, entry.Name, artifact); err != nil {
		return nil, "", fmt.Errorf("failed to write artifact for %s: %w", entry.Name, err)
	}

	return &WrittenArtifact{
		Name:           entry.Name,
		ContractName:   creation.ContractName,
		NumDeployments: numDeployments,
	}, "", nil
}

var (
	emptyObject = json.RawMessage(`{}`)
	emptyArray  = json.RawMessage(`[]`)
)

func buildArtifact(entry models.Deployment, creation *domain.ContractCreation, contract *models.Contract, broadcast *domain.BroadcastFile) (*models.DeploymentArtifact, error) {
	compiled := contract.Artifact
	if compiled == nil {
		compiled = &models.Artifact{}
	}

	args := creation.Arguments
	if args == nil {
		args = []string{}
	}

	layout := compiled.StorageLayout
	if layout == nil {
		layout = &models.StorageLayout{Storage: []models.StorageSlot{}, Types: map[string]models.StorageType{}}
	}
	storageLayout, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage layout: %w", err)
	}

	receipt := json.RawMessage(`null`)
	if r, ok := broadcast.FindReceipt(entry.Address, creation.Hash); ok {
		encoded, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode receipt: %w", err)
		}
		receipt = encoded
	}

	return &models.DeploymentArtifact{
		Address:          entry.Address,
		ABI:              rawOr(compiled.ABI, emptyArray),
		Args:             args,
		Bytecode:         compiled.Bytecode.Object,
		DeployedBytecode: compiled.DeployedBytecode.Object,
		DevDoc:           rawOr(compiled.Metadata.Output.DevDoc, emptyObject),
		UserDoc:          rawOr(compiled.Metadata.Output.UserDoc, emptyObject),
		Metadata:         compiled.RawMetadata,
		StorageLayout:    storageLayout,
		Receipt:          receipt,
		TransactionHash:  creation.Hash,
		SolcInputHash:    solcInputHash(compiled.RawMetadata),
	}, nil
}

// solcInputHash identifies the compiler input by the keccak of its metadata
func solcInputHash(rawMetadata string) string {
	if rawMetadata == "" {
		return ""
	}
	return hex.EncodeToString(crypto.Keccak256([]byte(rawMetadata)))
}

func rawOr(v, fallback json.RawMessage) json.RawMessage {
	if len(v) == 0 || string(v) == "null" {
		return fallback
	}
	return v
}
