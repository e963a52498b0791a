package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

const (
	initializedLabel = "_initialized"
	initializedType  = "t_uint8"
	proxySuffix      = "Proxy"
)

// ReadInitializedSlot reads the value of an Initializable contract's
// initialization guard from chain storage
type ReadInitializedSlot struct {
	registry  *DeploymentRegistry
	contracts ContractRepository
	storage   StorageReader
}

// NewReadInitializedSlot creates a new initialized-slot reader
func NewReadInitializedSlot(registry *DeploymentRegistry, contracts ContractRepository, storage StorageReader) *ReadInitializedSlot {
	return &ReadInitializedSlot{
		registry:  registry,
		contracts: contracts,
		storage:   storage,
	}
}

// InitializedSlotResult contains the guard value and where it was read from
type InitializedSlotResult struct {
	Contract string
	Address  common.Address
	Slot     models.StorageSlot
	Value    uint8
}

// Run locates the guard in the contract's storage layout and reads it at the
// contract's address, or at "<name>Proxy" when isProxy is set.
func (u *ReadInitializedSlot) Run(ctx context.Context, contractName string, isProxy bool) (*InitializedSlotResult, error) {
	slot, err := u.InitializedSlot(ctx, contractName)
	if err != nil {
		return nil, err
	}

	target := contractName
	if isProxy {
		target = contractName + proxySuffix
	}
	address, err := u.registry.MustGetAddress(ctx, target)
	if err != nil {
		return nil, err
	}

	key, err := slot.SlotKey()
	if err != nil {
		return nil, err
	}

	word, err := u.storage.StorageAt(ctx, address, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage of %s at %s: %w", target, address.Hex(), err)
	}

	value, err := byteAtOffset(word, slot.Offset)
	if err != nil {
		return nil, err
	}

	return &InitializedSlotResult{
		Contract: contractName,
		Address:  address,
		Slot:     slot,
		Value:    value,
	}, nil
}

// InitializedSlot returns the storage layout entry of the initialization guard
func (u *ReadInitializedSlot) InitializedSlot(ctx context.Context, contractName string) (models.StorageSlot, error) {
	contract, err := u.contracts.GetContract(ctx, contractName)
	if err != nil {
		return models.StorageSlot{}, err
	}

	var layout *models.StorageLayout
	if contract.Artifact != nil {
		layout = contract.Artifact.StorageLayout
	}

	slot, ok := layout.Find(initializedLabel, initializedType)
	if !ok {
		return models.StorageSlot{}, fmt.Errorf("%w: %s has no %s field of type %s",
			domain.ErrSlotNotFound, contractName, initializedLabel, initializedType)
	}
	return slot, nil
}

// byteAtOffset extracts (word >> offset*8) & 0xff
func byteAtOffset(word common.Hash, offset int) (uint8, error) {
	if offset < 0 || offset >= common.HashLength {
		return 0, fmt.Errorf("storage offset %d out of range", offset)
	}
	return word[common.HashLength-1-offset], nil
}
