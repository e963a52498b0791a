package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deployments/internal/cli/render"
)

// NewSyncCmd creates the sync command
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Write artifacts for the deployments recorded in the temp ledger",
		Long: `Reconcile the temp ledger with the Foundry broadcast log and write one
artifact per recorded deployment into the deployment context.

For every pending entry the creation transaction is looked up in the
broadcast log by address, and the contract's compiler output is loaded from
the build directory. Entries without either are skipped. Each written
artifact bumps its numDeployments counter. The ledger is cleared afterwards.`,
		Example: `  # Sync the latest run of a script
  treb-deployments sync --script Deploy --chain-id 10

  # Sync from an explicit broadcast file
  treb-deployments sync --broadcast broadcast/Deploy.s.sol/10/run-latest.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SyncArtifacts.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewSyncRenderer(cmd.OutOrStdout())
			if app.Config.JSON {
				return renderer.RenderSyncResultJSON(result)
			}
			return renderer.RenderSyncResult(result)
		},
	}

	cmd.Flags().String("broadcast", "", "Path to a Foundry broadcast file")
	cmd.Flags().String("script", "", "Script whose latest broadcast should be synced (e.g. Deploy or Deploy.s.sol)")

	return cmd
}
