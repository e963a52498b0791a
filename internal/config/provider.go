package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".treb"),
		DeploymentsDir: resolvePath(projectRoot, v.GetString("deployments-dir")),
		Context:        v.GetString("context"),
		ChainID:        v.GetUint64("chain-id"),
		AddressesPath:  v.GetString("addresses"),
		StrictChainID:  v.GetBool("strict"),
		BroadcastPath:  v.GetString("broadcast"),
		Script:         v.GetString("script"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non-interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	if cfg.Context == "" {
		return nil, fmt.Errorf("deployment context must not be empty")
	}
	if cfg.AddressesPath != "" {
		cfg.AddressesPath = resolvePath(projectRoot, cfg.AddressesPath)
	}
	if cfg.BroadcastPath != "" {
		cfg.BroadcastPath = resolvePath(projectRoot, cfg.BroadcastPath)
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	outDir := v.GetString("out")
	if outDir == "" {
		outDir = foundryConfig.OutDir(v.GetString("profile"))
	}
	cfg.OutDir = resolvePath(projectRoot, outDir)

	// Resolve network if specified, --rpc-url taking precedence
	networkName := v.GetString("network")
	if rpcURL := v.GetString("rpc-url"); rpcURL != "" {
		networkName = rpcURL
	}
	if networkName != "" {
		network, err := NewNetworkResolver(foundryConfig).Resolve(context.Background(), networkName, cfg.ChainID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
		cfg.ChainID = network.ChainID
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find foundry.toml,
// falling back to the working directory
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".treb"))

	// Set up environment variables
	v.SetEnvPrefix("TREB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Environment names used by existing deploy scripts
	_ = v.BindEnv("context", "TREB_CONTEXT", "DEPLOYMENT_CONTEXT")
	_ = v.BindEnv("chain-id", "TREB_CHAIN_ID", "CHAIN_ID")
	_ = v.BindEnv("addresses", "TREB_ADDRESSES", "CONTRACT_ADDRESSES_PATH")
	_ = v.BindEnv("strict", "TREB_STRICT", "STRICT_DEPLOYMENT")

	// Set defaults
	v.SetDefault("context", "default")
	v.SetDefault("deployments-dir", "deployments")
	v.SetDefault("strict", true)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non-interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(f.Name, f)
		if err != nil {
			panic(err)
		}
	})

	return v
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
