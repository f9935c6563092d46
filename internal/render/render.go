// Package render prints command output as indented JSON, with terminal
// syntax highlighting when stdout is a TTY.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
)

// JSON writes v as indented JSON to w. When w is a terminal the output
// is syntax-highlighted; highlighting failures fall back to plain JSON.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		if err := quick.Highlight(w, string(data)+"\n", "json", "terminal256", "monokai"); err == nil {
			return nil
		}
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
