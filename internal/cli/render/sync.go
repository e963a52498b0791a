package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/treb-deployments/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SyncRenderer handles rendering of sync results
type SyncRenderer struct {
	out io.Writer
}

// NewSyncRenderer creates a new sync renderer
func NewSyncRenderer(out io.Writer) *SyncRenderer {
	return &SyncRenderer{
		out: out,
	}
}

type syncJSON struct {
	Processed int               `json:"processed"`
	Written   []syncWrittenJSON `json:"written"`
	Skipped   []syncSkippedJSON `json:"skipped"`
}

type syncWrittenJSON struct {
	Name           string `json:"name"`
	Contract       string `json:"contract"`
	NumDeployments uint64 `json:"numDeployments"`
}

type syncSkippedJSON struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

// RenderSyncResultJSON renders the result of a sync pass as JSON
func (r *SyncRenderer) RenderSyncResultJSON(result *usecase.SyncResult) error {
	out := syncJSON{
		Processed: result.Processed,
		Written:   make([]syncWrittenJSON, 0, len(result.Written)),
		Skipped:   make([]syncSkippedJSON, 0, len(result.Skipped)),
	}
	for _, w := range result.Written {
		out.Written = append(out.Written, syncWrittenJSON{Name: w.Name, Contract: w.ContractName, NumDeployments: w.NumDeployments})
	}
	for _, s := range result.Skipped {
		out.Skipped = append(out.Skipped, syncSkippedJSON{Name: s.Deployment.Name, Address: s.Deployment.Address.Hex(), Reason: s.Reason})
	}
	return JSON(r.out, out)
}

// RenderSyncResult renders the result of a sync pass
func (r *SyncRenderer) RenderSyncResult(result *usecase.SyncResult) error {
	if result.Processed == 0 {
		fmt.Fprintln(r.out, "No pending deployments to sync")
		return nil
	}

	title := cases.Title(language.English)

	if len(result.Written) > 0 {
		fmt.Fprintf(r.out, "\n%s:\n", title.String("written"))
		for _, w := range result.Written {
			label := w.Name
			if w.ContractName != w.Name {
				label = fmt.Sprintf("%s (%s)", w.Name, w.ContractName)
			}
			fmt.Fprintf(r.out, "  • %s %s\n", nameStyle.Sprint(label), faintStyle.Sprintf("v%d", w.NumDeployments))
		}
	}

	if len(result.Skipped) > 0 {
		warningStyle.Fprintf(r.out, "\n%s:\n", title.String("skipped"))
		for _, s := range result.Skipped {
			fmt.Fprintf(r.out, "  • %s %s: %s\n", s.Deployment.Name, addressStyle.Sprint(s.Deployment.Address.Hex()), s.Reason)
		}
	}

	fmt.Fprintln(r.out)
	if len(result.Skipped) == 0 {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Synced %d deployment(s)", len(result.Written))))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Synced %d deployment(s), skipped %d", len(result.Written), len(result.Skipped))))
	}

	return nil
}
