package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/contracts"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/forge/broadcast"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/fs"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewArtifactStore,
	wire.Bind(new(usecase.ArtifactRepository), new(*fs.ArtifactStore)),

	fs.NewTempLedger,
	wire.Bind(new(usecase.TempLedger), new(*fs.TempLedger)),

	fs.NewChainIDStore,
	wire.Bind(new(usecase.ChainIDStore), new(*fs.ChainIDStore)),

	fs.NewAddressListLoader,
	wire.Bind(new(usecase.AddressListLoader), new(*fs.AddressListLoader)),
)

// ForgeSet provides readers for forge build and broadcast output
var ForgeSet = wire.NewSet(
	broadcast.NewParser,
	wire.Bind(new(usecase.BroadcastReader), new(*broadcast.Parser)),

	contracts.NewIndexer,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Indexer)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewStorageReaderAdapter,
	wire.Bind(new(usecase.StorageReader), new(*blockchain.StorageReaderAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ForgeSet,
	BlockchainSet,
)
