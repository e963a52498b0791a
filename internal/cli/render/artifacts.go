package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// ArtifactsRenderer renders persisted deployment artifacts
type ArtifactsRenderer struct {
	out     io.Writer
	context string
}

// NewArtifactsRenderer creates a new artifacts renderer for a deployment context
func NewArtifactsRenderer(out io.Writer, context string) *ArtifactsRenderer {
	return &ArtifactsRenderer{
		out:     out,
		context: context,
	}
}

// RenderArtifactList renders the artifacts of a context as a table
func (r *ArtifactsRenderer) RenderArtifactList(result *usecase.ArtifactListResult) error {
	if len(result.Artifacts) == 0 {
		fmt.Fprintf(r.out, "No artifacts found in context %s\n", r.context)
		return nil
	}

	fmt.Fprintf(r.out, "%s %s\n\n", faintStyle.Sprint("Context:"), nameStyle.Sprint(r.context))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Name", "Address", "Version", "Transaction"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})

	for _, a := range result.Artifacts {
		t.AppendRow(table.Row{
			a.Name,
			addressStyle.Sprint(a.Address.Hex()),
			fmt.Sprintf("v%d", a.NumDeployments),
			faintStyle.Sprint(shortHash(a.TransactionHash)),
		})
	}
	t.Render()

	return nil
}

// RenderArtifact renders a single artifact's summary
func (r *ArtifactsRenderer) RenderArtifact(name string, artifact *models.DeploymentArtifact) error {
	fmt.Fprintf(r.out, "%s\n", nameStyle.Sprint(name))
	fmt.Fprintf(r.out, "  Address:         %s\n", addressStyle.Sprint(artifact.Address.Hex()))
	fmt.Fprintf(r.out, "  Deployments:     %d\n", artifact.NumDeployments)
	if artifact.TransactionHash != "" {
		fmt.Fprintf(r.out, "  Transaction:     %s\n", artifact.TransactionHash)
	}
	if len(artifact.Args) > 0 {
		fmt.Fprintf(r.out, "  Constructor args: %s\n", strings.Join(artifact.Args, ", "))
	}
	if artifact.SolcInputHash != "" {
		fmt.Fprintf(r.out, "  Solc input hash: %s\n", faintStyle.Sprint(artifact.SolcInputHash))
	}
	fmt.Fprintf(r.out, "  Bytecode size:   %d bytes\n", bytecodeSize(artifact.DeployedBytecode))
	return nil
}

func shortHash(hash string) string {
	if len(hash) <= 18 {
		return hash
	}
	return hash[:10] + "…" + hash[len(hash)-6:]
}

func bytecodeSize(hex string) int {
	return len(strings.TrimPrefix(hex, "0x")) / 2
}
