package domain

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TransactionType is the kind recorded by Foundry for each broadcast transaction
type TransactionType string

const (
	TransactionTypeCreate  TransactionType = "CREATE"
	TransactionTypeCreate2 TransactionType = "CREATE2"
	TransactionTypeCall    TransactionType = "CALL"
)

// IsCreation reports whether the transaction instantiated a contract
func (t TransactionType) IsCreation() bool {
	return t == TransactionTypeCreate || t == TransactionTypeCreate2
}

// BroadcastFile represents a Foundry broadcast file
type BroadcastFile struct {
	Chain        uint64                 `json:"chain"`
	Transactions []BroadcastTransaction `json:"transactions"`
	Receipts     []BroadcastReceipt     `json:"receipts"`
	Timestamp    uint64                 `json:"timestamp"`
	Commit       string                 `json:"commit"`
}

// BroadcastTransaction represents a transaction in a broadcast file
type BroadcastTransaction struct {
	Hash                string               `json:"hash"`
	TransactionType     TransactionType      `json:"transactionType"`
	ContractName        string               `json:"contractName"`
	ContractAddress     string               `json:"contractAddress"`
	Function            string               `json:"function"`
	Arguments           []string             `json:"arguments"`
	AdditionalContracts []AdditionalContract `json:"additionalContracts,omitempty"`
}

// AdditionalContract represents additional contracts deployed in a transaction
type AdditionalContract struct {
	TransactionType TransactionType `json:"transactionType"`
	ContractName    string          `json:"contractName,omitempty"`
	ContractAddress string          `json:"address"`
}

// BroadcastReceipt represents a receipt in a broadcast file. Raw keeps the
// document exactly as Foundry wrote it.
type BroadcastReceipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber"`
	Status          string `json:"status"`
	ContractAddress string `json:"contractAddress"`

	Raw json.RawMessage `json:"-"`
}

func (r *BroadcastReceipt) UnmarshalJSON(data []byte) error {
	type plain BroadcastReceipt
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = BroadcastReceipt(p)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r BroadcastReceipt) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	type plain BroadcastReceipt
	return json.Marshal(plain(r))
}

// ContractCreation is a creation transaction matched to a deployed address
type ContractCreation struct {
	Hash         string
	ContractName string
	Address      common.Address
	Arguments    []string
	Factory      bool
}

// FindCreation returns the first creation transaction whose resulting
// contract is address. Factory deployments reported through
// additionalContracts match as well.
func (b *BroadcastFile) FindCreation(address common.Address) (*ContractCreation, bool) {
	for _, tx := range b.Transactions {
		if tx.TransactionType.IsCreation() && sameAddress(tx.ContractAddress, address) {
			return &ContractCreation{
				Hash:         tx.Hash,
				ContractName: tx.ContractName,
				Address:      address,
				Arguments:    tx.Arguments,
			}, true
		}

		for _, ac := range tx.AdditionalContracts {
			if !ac.TransactionType.IsCreation() || !sameAddress(ac.ContractAddress, address) {
				continue
			}
			name := ac.ContractName
			if name == "" {
				name = tx.ContractName
			}
			return &ContractCreation{
				Hash:         tx.Hash,
				ContractName: name,
				Address:      address,
				Factory:      true,
			}, true
		}
	}
	return nil, false
}

// FindReceipt returns the receipt for the contract created at address,
// falling back to the receipt of the given transaction hash.
func (b *BroadcastFile) FindReceipt(address common.Address, txHash string) (*BroadcastReceipt, bool) {
	for i := range b.Receipts {
		if sameAddress(b.Receipts[i].ContractAddress, address) {
			return &b.Receipts[i], true
		}
	}
	if txHash == "" {
		return nil, false
	}
	for i := range b.Receipts {
		if strings.EqualFold(b.Receipts[i].TransactionHash, txHash) {
			return &b.Receipts[i], true
		}
	}
	return nil, false
}

func sameAddress(s string, address common.Address) bool {
	if !common.IsHexAddress(s) {
		return false
	}
	return common.HexToAddress(s) == address
}
