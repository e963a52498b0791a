package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

// RegistryRenderer renders registry lookups and the pending ledger
type RegistryRenderer struct {
	out io.Writer
}

// NewRegistryRenderer creates a new registry renderer
func NewRegistryRenderer(out io.Writer) *RegistryRenderer {
	return &RegistryRenderer{out: out}
}

type deploymentJSON struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RenderSaved confirms a recorded deployment
func (r *RegistryRenderer) RenderSaved(d models.Deployment) {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Saved %s at %s", d.Name, d.Address.Hex())))
}

// RenderAddress prints a resolved address on its own line, for use in scripts
func (r *RegistryRenderer) RenderAddress(d models.Deployment, asJSON bool) error {
	if asJSON {
		return JSON(r.out, deploymentJSON{Name: d.Name, Address: d.Address.Hex()})
	}
	fmt.Fprintln(r.out, d.Address.Hex())
	return nil
}

// RenderHas prints whether a name resolves
func (r *RegistryRenderer) RenderHas(name string, found bool, asJSON bool) error {
	if asJSON {
		return JSON(r.out, map[string]any{"name": name, "exists": found})
	}
	fmt.Fprintln(r.out, found)
	return nil
}

// RenderLedger renders the entries awaiting sync
func (r *RegistryRenderer) RenderLedger(entries []models.Deployment, asJSON bool) error {
	if asJSON {
		out := make([]deploymentJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, deploymentJSON{Name: e.Name, Address: e.Address.Hex()})
		}
		return JSON(r.out, out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No pending deployments")
		return nil
	}

	fmt.Fprintf(r.out, "%d pending deployment(s):\n\n", len(entries))
	r.renderTable(entries)
	return nil
}

// RenderWellKnown renders the predeploy address book
func (r *RegistryRenderer) RenderWellKnown(entries []models.Deployment, asJSON bool) error {
	if asJSON {
		out := make(map[string]string, len(entries))
		for _, e := range entries {
			out[e.Name] = e.Address.Hex()
		}
		return JSON(r.out, out)
	}
	r.renderTable(entries)
	return nil
}

func (r *RegistryRenderer) renderTable(entries []models.Deployment) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Name", "Address"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, addressStyle.Sprint(e.Address.Hex())})
	}
	t.Render()
}
