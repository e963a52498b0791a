package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deployments/internal/cli/render"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

// NewWellKnownCmd creates the well-known command
func NewWellKnownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "well-known",
		Short: "List the predeploy addresses every chain resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := lo.Map(domain.WellKnownNames(), func(name string, _ int) models.Deployment {
				return models.Deployment{Name: name, Address: domain.LookupWellKnown(name)}
			})

			asJSON, _ := cmd.Flags().GetBool("json")
			renderer := render.NewRegistryRenderer(cmd.OutOrStdout())
			return renderer.RenderWellKnown(entries, asJSON)
		},
	}

	return cmd
}
