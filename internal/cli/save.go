package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deployments/internal/cli/render"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
)

// NewSaveCmd creates the save command
func NewSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name> <address>",
		Short: "Record a deployment made in the current run",
		Long: `Record a deployment made in the current run and append it to the temp
ledger. The entry is turned into an artifact by the next sync.

A name can only be saved once per run.`,
		Example: `  treb-deployments save Greeter 0x5FbDB2315678afecb367f032d93F642f64180aa3`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			name, rawAddress := args[0], args[1]
			if !common.IsHexAddress(rawAddress) {
				return fmt.Errorf("%w: %s", domain.ErrInvalidAddress, rawAddress)
			}
			address := common.HexToAddress(rawAddress)

			if err := app.Registry.Save(cmd.Context(), name, address); err != nil {
				return err
			}

			renderer := render.NewRegistryRenderer(cmd.OutOrStdout())
			if app.Config.JSON {
				return renderer.RenderAddress(app.Registry.Get(cmd.Context(), name), true)
			}
			renderer.RenderSaved(app.Registry.Get(cmd.Context(), name))
			return nil
		},
	}

	return cmd
}
