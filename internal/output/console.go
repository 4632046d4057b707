// Package output provides formatting utilities for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console routes progress lines to one stream and diagnostics to another.
// Tests substitute buffers for both.
type Console struct {
	Out io.Writer
	Err io.Writer
}

// Default returns a console bound to stdout/stderr.
func Default() *Console {
	return &Console{Out: os.Stdout, Err: os.Stderr}
}

// Printf writes a progress line to the output stream.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

// Warnf writes a warning to the diagnostic stream.
func (c *Console) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(c.Err, "Warning: "+format+"\n", args...)
}

// Errorf writes a non-fatal error to the diagnostic stream.
func (c *Console) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(c.Err, "Error: "+format+"\n", args...)
}

// WriteJSON encodes a value as pretty-printed JSON on the output stream.
func (c *Console) WriteJSON(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
