package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	nameStyle    = color.New(color.Bold, color.FgHiWhite)
	addressStyle = color.New(color.FgCyan)
	faintStyle   = color.New(color.Faint)
)

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return successStyle.Sprintf("✓ %s", message)
}

// JSON writes v as indented JSON followed by a newline
func JSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
