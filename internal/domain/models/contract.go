package models

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Contract represents information about a compiled contract found in the
// compiler output directory
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Version      string    `json:"version,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// Artifact represents a Foundry compilation artifact
type Artifact struct {
	ABI               json.RawMessage   `json:"abi"`
	Bytecode          BytecodeObject    `json:"bytecode"`
	DeployedBytecode  BytecodeObject    `json:"deployedBytecode"`
	MethodIdentifiers map[string]string `json:"methodIdentifiers"`
	RawMetadata       string            `json:"rawMetadata"`
	Metadata          ArtifactMetadata  `json:"metadata"`
	StorageLayout     *StorageLayout    `json:"storageLayout,omitempty"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Language string `json:"language"`
	Output   struct {
		ABI     json.RawMessage `json:"abi"`
		DevDoc  json.RawMessage `json:"devdoc"`
		UserDoc json.RawMessage `json:"userdoc"`
	} `json:"output"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// StorageLayout is the solc storage layout of a contract
type StorageLayout struct {
	Storage []StorageSlot          `json:"storage"`
	Types   map[string]StorageType `json:"types"`
}

// StorageSlot is one variable in a storage layout
type StorageSlot struct {
	AstID    int64  `json:"astId"`
	Contract string `json:"contract"`
	Label    string `json:"label"`
	Offset   int    `json:"offset"`
	Slot     string `json:"slot"`
	Type     string `json:"type"`
}

// SlotKey parses the decimal slot number into a storage key
func (s StorageSlot) SlotKey() (common.Hash, error) {
	n, ok := new(big.Int).SetString(s.Slot, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > 256 {
		return common.Hash{}, fmt.Errorf("invalid slot %q for %s", s.Slot, s.Label)
	}
	return common.BigToHash(n), nil
}

type StorageType struct {
	Encoding      string `json:"encoding"`
	Label         string `json:"label"`
	NumberOfBytes string `json:"numberOfBytes"`
}

// Find returns the first slot with the given label and type tag
func (l *StorageLayout) Find(label, typ string) (StorageSlot, bool) {
	if l == nil {
		return StorageSlot{}, false
	}
	for _, s := range l.Storage {
		if s.Label == label && s.Type == typ {
			return s, true
		}
	}
	return StorageSlot{}, false
}
