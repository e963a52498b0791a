package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-deployments/internal/cli/render"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List artifacts persisted in the deployment context",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListArtifacts.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), result)
			}

			renderer := render.NewArtifactsRenderer(cmd.OutOrStdout(), app.Config.Context)
			return renderer.RenderArtifactList(result)
		},
	}

	return cmd
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a persisted artifact",
		Long: `Show a persisted artifact. With --json the artifact document is printed
as stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			artifact, err := app.ShowArtifact.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), artifact)
			}

			renderer := render.NewArtifactsRenderer(cmd.OutOrStdout(), app.Config.Context)
			return renderer.RenderArtifact(args[0], artifact)
		},
	}

	return cmd
}
