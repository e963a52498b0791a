package config

import (
	"path/filepath"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DataDir        string
	DeploymentsDir string

	// Context settings
	Context string // Deployment context, e.g. "devnet" or "mainnet"
	ChainID uint64
	Network *Network // nil if not specified

	// AddressesPath points to an optional name->address document used to
	// seed the registry at startup
	AddressesPath string

	// StrictChainID makes a chain id mismatch fatal instead of a warning
	StrictChainID bool

	// Broadcast log location; BroadcastPath wins over Script
	BroadcastPath string
	Script        string

	// Compiler output directory (foundry "out")
	OutDir string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}

// ContextDir returns deployments/<context>
func (c *RuntimeConfig) ContextDir() string {
	return filepath.Join(c.DeploymentsDir, c.Context)
}

// RPCURL returns the RPC endpoint of the resolved network, if any
func (c *RuntimeConfig) RPCURL() string {
	if c.Network == nil {
		return ""
	}
	return c.Network.RPCURL
}
