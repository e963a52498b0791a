package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deployments/internal/cli/render"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

// NewGetCmd creates the get command
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Resolve a contract name to its address",
		Long: `Resolve a contract name to its address. Names are looked up in this
order: deployments recorded in the current run, artifacts persisted in the
deployment context, then the well-known predeploy address book.

Fails with suggestions when nothing resolves.`,
		Example: `  treb-deployments get Greeter
  treb-deployments get L2StandardBridge --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			address, err := app.Registry.MustGetAddress(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderer := render.NewRegistryRenderer(cmd.OutOrStdout())
			return renderer.RenderAddress(models.Deployment{Name: args[0], Address: address}, app.Config.JSON)
		},
	}

	return cmd
}

// NewHasCmd creates the has command
func NewHasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "has <name>",
		Short: "Report whether a contract name resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			found := app.Registry.Has(cmd.Context(), args[0])

			renderer := render.NewRegistryRenderer(cmd.OutOrStdout())
			return renderer.RenderHas(args[0], found, app.Config.JSON)
		},
	}

	return cmd
}
