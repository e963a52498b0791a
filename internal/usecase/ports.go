package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

// ArtifactRepository persists one deployment artifact per contract name
// inside the current deployment context
type ArtifactRepository interface {
	Read(ctx context.Context, name string) (*models.DeploymentArtifact, error)
	ReadIfExists(ctx context.Context, name string) (*models.DeploymentArtifact, bool, error)
	ReadAddress(ctx context.Context, name string) (common.Address, error)
	Write(ctx context.Context, name string, artifact *models.DeploymentArtifact) error
	List(ctx context.Context) ([]string, error)
}

// TempLedger records deployments of the current run until they are synced
type TempLedger interface {
	Append(ctx context.Context, name string, address common.Address) error
	ReadAll(ctx context.Context) ([]models.Deployment, error)
	Clear(ctx context.Context) error
}

// BroadcastReader loads the transaction log written by the execution environment
type BroadcastReader interface {
	ReadBroadcast(ctx context.Context) (*domain.BroadcastFile, error)
}

// ContractRepository provides access to compiled contracts
type ContractRepository interface {
	GetContract(ctx context.Context, qualifiedName string) (*models.Contract, error)
}

// StorageReader reads raw storage words from the chain
type StorageReader interface {
	StorageAt(ctx context.Context, address common.Address, key common.Hash) (common.Hash, error)
}

// ChainIDStore persists the chain id a deployment context was created on
type ChainIDStore interface {
	Load(ctx context.Context) (chainID uint64, found bool, err error)
	Save(ctx context.Context, chainID uint64) error
}

// AddressListLoader reads a name->address document used to seed the registry
type AddressListLoader interface {
	Load(ctx context.Context, path string) ([]models.Deployment, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}
