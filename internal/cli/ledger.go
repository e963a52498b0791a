package cli

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deployments/internal/cli/render"
)

// NewLedgerCmd creates the ledger command
func NewLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show deployments recorded but not yet synced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			entries, err := app.ManageLedger.Pending(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewRegistryRenderer(cmd.OutOrStdout())
			return renderer.RenderLedger(entries, app.Config.JSON)
		},
	}

	cmd.AddCommand(newLedgerClearCmd())

	return cmd
}

func newLedgerClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard pending deployments without syncing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			entries, err := app.ManageLedger.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending deployments")
				return nil
			}

			if !force {
				if app.Config.NonInteractive {
					return fmt.Errorf("refusing to discard %d pending deployment(s) without --force in non-interactive mode", len(entries))
				}
				if !confirmPrompt(fmt.Sprintf("Discard %d pending deployment(s)", len(entries))) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			discarded, err := app.ManageLedger.Discard(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Discarded %d pending deployment(s)", discarded)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

// confirmPrompt asks the user a yes/no question and returns their choice.
func confirmPrompt(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	return err == nil
}
