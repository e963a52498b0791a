package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T, dir string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.Set("project_root", dir)
	v.Set("context", "default")
	v.Set("deployments-dir", "deployments")
	return v
}

func TestProvider(t *testing.T) {
	t.Run("resolves paths relative to the project root", func(t *testing.T) {
		dir := t.TempDir()

		v := newTestViper(t, dir)
		v.Set("context", "optimism-sepolia")
		v.Set("chain-id", 11155420)
		v.Set("addresses", "addresses.json")
		v.Set("broadcast", "broadcast/Deploy.s.sol/11155420/run-latest.json")

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(dir, "deployments"), cfg.DeploymentsDir)
		assert.Equal(t, filepath.Join(dir, "deployments", "optimism-sepolia"), cfg.ContextDir())
		assert.Equal(t, uint64(11155420), cfg.ChainID)
		assert.Equal(t, filepath.Join(dir, "addresses.json"), cfg.AddressesPath)
		assert.Equal(t, filepath.Join(dir, "broadcast/Deploy.s.sol/11155420/run-latest.json"), cfg.BroadcastPath)
		assert.Equal(t, filepath.Join(dir, "out"), cfg.OutDir)
		assert.Nil(t, cfg.Network)
	})

	t.Run("rejects an empty context", func(t *testing.T) {
		v := newTestViper(t, t.TempDir())
		v.Set("context", "")

		_, err := Provider(v)
		assert.Error(t, err)
	})

	t.Run("reads out dir from foundry profile", func(t *testing.T) {
		dir := t.TempDir()
		foundryToml := `[profile.default]
src = "src"
out = "build"

[profile.ci]
out = "ci-out"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte(foundryToml), 0644))

		v := newTestViper(t, dir)
		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "build"), cfg.OutDir)

		v.Set("profile", "ci")
		cfg, err = Provider(v)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "ci-out"), cfg.OutDir)

		v.Set("out", "/abs/out")
		cfg, err = Provider(v)
		require.NoError(t, err)
		assert.Equal(t, "/abs/out", cfg.OutDir)
	})

	t.Run("resolves network from rpc endpoints with known chain id", func(t *testing.T) {
		dir := t.TempDir()
		foundryToml := `[rpc_endpoints]
optimism = "https://${TEST_OP_HOST}/rpc"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte(foundryToml), 0644))
		t.Setenv("TEST_OP_HOST", "op.example.org")

		v := newTestViper(t, dir)
		v.Set("network", "optimism")
		v.Set("chain-id", 10)

		cfg, err := Provider(v)
		require.NoError(t, err)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "https://op.example.org/rpc", cfg.RPCURL())
		assert.Equal(t, uint64(10), cfg.ChainID)
	})

	t.Run("unknown network fails", func(t *testing.T) {
		v := newTestViper(t, t.TempDir())
		v.Set("network", "nowhere")
		v.Set("chain-id", 10)

		_, err := Provider(v)
		assert.ErrorContains(t, err, "nowhere")
	})
}

func TestSetupViper(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().String("context", "default", "")
		cmd.Flags().Uint64("chain-id", 0, "")
		cmd.Flags().Bool("strict", true, "")
		cmd.Flags().String("addresses", "", "")
		return cmd
	}

	t.Run("defaults", func(t *testing.T) {
		v := SetupViper(t.TempDir(), newCmd())

		assert.Equal(t, "default", v.GetString("context"))
		assert.Equal(t, "deployments", v.GetString("deployments-dir"))
		assert.True(t, v.GetBool("strict"))
		assert.Equal(t, 5*time.Minute, v.GetDuration("timeout"))
	})

	t.Run("legacy environment names", func(t *testing.T) {
		t.Setenv("DEPLOYMENT_CONTEXT", "base-mainnet")
		t.Setenv("CHAIN_ID", "8453")
		t.Setenv("CONTRACT_ADDRESSES_PATH", "addresses.yaml")
		t.Setenv("STRICT_DEPLOYMENT", "false")

		v := SetupViper(t.TempDir(), newCmd())

		assert.Equal(t, "base-mainnet", v.GetString("context"))
		assert.Equal(t, uint64(8453), v.GetUint64("chain-id"))
		assert.Equal(t, "addresses.yaml", v.GetString("addresses"))
		assert.False(t, v.GetBool("strict"))
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("DEPLOYMENT_CONTEXT", "base-mainnet")

		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("context", "staging"))

		v := SetupViper(t.TempDir(), cmd)
		assert.Equal(t, "staging", v.GetString("context"))
	})

	t.Run("reads local config file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".treb"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".treb", "config.local.json"), []byte(`{"context": "from-file"}`), 0644))

		v := SetupViper(dir, newCmd())
		assert.Equal(t, "from-file", v.GetString("context"))
	})
}
