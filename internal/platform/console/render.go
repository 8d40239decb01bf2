package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Renderer writes each frame as a text block.
type Renderer struct {
	w io.Writer
	// Clear homes the cursor and clears the screen before each multi-line frame.
	Clear bool
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes frame followed by a line break.
func (r *Renderer) Render(frame string) {
	if r.Clear && strings.Contains(frame, "\n") {
		//nolint:errcheck // Best-effort terminal output
		io.WriteString(r.w, "\x1b[H\x1b[2J")
	}
	//nolint:errcheck // Best-effort terminal output
	fmt.Fprintln(r.w, frame)
}

// CRLFWriter turns every line feed into CRLF. A terminal in raw mode no
// longer returns the carriage on its own.
type CRLFWriter struct {
	W io.Writer
}

// Write implements io.Writer. It reports len(p) on success.
func (c CRLFWriter) Write(p []byte) (int, error) {
	if _, err := c.W.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
