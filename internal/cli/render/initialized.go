package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// InitializedRenderer renders the value of an initialization guard
type InitializedRenderer struct {
	out io.Writer
}

// NewInitializedRenderer creates a new initialized-slot renderer
func NewInitializedRenderer(out io.Writer) *InitializedRenderer {
	return &InitializedRenderer{out: out}
}

type initializedJSON struct {
	Contract string `json:"contract"`
	Address  string `json:"address"`
	Slot     string `json:"slot"`
	Offset   int    `json:"offset"`
	Value    uint8  `json:"value"`
}

// RenderInitialized renders the guard value and its storage location
func (r *InitializedRenderer) RenderInitialized(result *usecase.InitializedSlotResult, asJSON bool) error {
	if asJSON {
		return JSON(r.out, initializedJSON{
			Contract: result.Contract,
			Address:  result.Address.Hex(),
			Slot:     result.Slot.Slot,
			Offset:   result.Slot.Offset,
			Value:    result.Value,
		})
	}

	fmt.Fprintf(r.out, "%s at %s\n", nameStyle.Sprint(result.Contract), addressStyle.Sprint(result.Address.Hex()))
	fmt.Fprintf(r.out, "  %s %s\n", faintStyle.Sprint("slot:"), fmt.Sprintf("%s (offset %d)", result.Slot.Slot, result.Slot.Offset))
	fmt.Fprintf(r.out, "  %s %d\n", faintStyle.Sprint("_initialized:"), result.Value)
	return nil
}
