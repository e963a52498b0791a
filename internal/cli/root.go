package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-deployments/internal/adapters/progress"
	"github.com/trebuchet-org/treb-deployments/internal/app"
	"github.com/trebuchet-org/treb-deployments/internal/config"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without a project or a deployment context
var standaloneCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"well-known": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treb-deployments",
		Short: "Deployment registry and artifact synchronizer for Foundry",
		Long: `treb-deployments records contract deployments made by Foundry scripts,
resolves contract names to addresses and turns the broadcast log into
versioned deployment artifacts, one per contract, per deployment context.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if standaloneCommands[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			// Chain id check, ledger resume and address seeding
			if _, err := appInstance.StartRun.Run(ctx); err != nil {
				return err
			}

			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("context", "c", "default", "Deployment context (subdirectory of the deployments dir)")
	flags.Uint64("chain-id", 0, "Chain id of the target network")
	flags.StringP("network", "n", "", "Network name from foundry.toml rpc_endpoints, or an RPC URL")
	flags.String("rpc-url", "", "RPC URL of the target network (overrides --network)")
	flags.String("addresses", "", "JSON or YAML file of already deployed contracts to seed the registry")
	flags.Bool("strict", true, "Fail when the context was recorded on a different chain")
	flags.String("deployments-dir", "deployments", "Directory holding deployment contexts")
	flags.String("out", "", "Forge build output directory (defaults to foundry.toml out)")
	flags.String("profile", "", "Foundry profile used to locate the build output")
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts")
	flags.Bool("json", false, "Output in JSON format")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "registry",
		Title: "Registry Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "artifacts",
		Title: "Artifact Commands",
	})

	for _, c := range []*cobra.Command{NewSaveCmd(), NewGetCmd(), NewHasCmd(), NewWellKnownCmd()} {
		c.GroupID = "registry"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewSyncCmd(), NewListCmd(), NewShowCmd(), NewLedgerCmd(), NewInitializedCmd()} {
		c.GroupID = "artifacts"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink picks a spinner for interactive terminals and a no-op otherwise
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("json") || v.GetBool("non-interactive") {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
