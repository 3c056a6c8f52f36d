package output

import (
	"fmt"
	"io"
)

// TextWriter outputs the plain commit message, suitable for piping into
// git commit -F - or pasting into an editor.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	if report.Message == nil {
		return fmt.Errorf("report has no message")
	}
	_, err := fmt.Fprintln(w, report.Message.Render())
	return err
}
