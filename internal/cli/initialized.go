package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deployments/internal/cli/render"
)

// NewInitializedCmd creates the initialized command
func NewInitializedCmd() *cobra.Command {
	var proxy bool

	cmd := &cobra.Command{
		Use:   "initialized <contract>",
		Short: "Read the _initialized guard of an Initializable contract",
		Long: `Read the _initialized guard of an Initializable contract from chain
storage. The slot is located through the contract's storage layout in the
build output. With --proxy the value is read at <contract>Proxy.

Requires --network or --rpc-url.`,
		Example: `  treb-deployments initialized OptimismPortal --proxy -n optimism`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ReadInitializedSlot.Run(cmd.Context(), args[0], proxy)
			if err != nil {
				return err
			}

			renderer := render.NewInitializedRenderer(cmd.OutOrStdout())
			return renderer.RenderInitialized(result, app.Config.JSON)
		},
	}

	cmd.Flags().BoolVar(&proxy, "proxy", false, "Read the storage of <contract>Proxy")

	return cmd
}
