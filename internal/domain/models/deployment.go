package models

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment is a named contract address recorded during a deployment run
type Deployment struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`
}

// IsZero reports whether the deployment is the unresolved placeholder
func (d Deployment) IsZero() bool {
	return d.Name == "" && d.Address == (common.Address{})
}

// DeploymentArtifact is the durable per-contract record written to
// deployments/<context>/<name>.json
type DeploymentArtifact struct {
	Address          common.Address  `json:"address"`
	ABI              json.RawMessage `json:"abi"`
	Args             []string        `json:"args"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
	DevDoc           json.RawMessage `json:"devdoc"`
	Metadata         string          `json:"metadata"`
	NumDeployments   uint64          `json:"numDeployments"`
	Receipt          json.RawMessage `json:"receipt"`
	SolcInputHash    string          `json:"solcInputHash"`
	StorageLayout    json.RawMessage `json:"storageLayout"`
	TransactionHash  string          `json:"transactionHash"`
	UserDoc          json.RawMessage `json:"userdoc"`
}
