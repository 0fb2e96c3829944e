package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders the per-file header and error lines. Styling is applied
// only when the target writer is a color terminal.
type Styles struct {
	header lipgloss.Style
	err    lipgloss.Style
}

// NewStyles creates styles for output written to out and errOut
func NewStyles(out, errOut io.Writer) *Styles {
	return &Styles{
		header: lipgloss.NewRenderer(out).NewStyle().
			Bold(true).
			TabWidth(lipgloss.NoTabConversion),
		err: lipgloss.NewRenderer(errOut).NewStyle().
			Foreground(lipgloss.Color("167")). // Soft red
			TabWidth(lipgloss.NoTabConversion),
	}
}

// Header returns the line introducing a file's results
func (s *Styles) Header(path string) string {
	return s.header.Render("Results for file: " + path)
}

// OpenError returns the line reporting a file that could not be opened
func (s *Styles) OpenError(path string, err error) string {
	return s.err.Render(fmt.Sprintf("Error opening file %s: %v", path, err))
}

// WorkerError returns the line reporting a scan that failed unexpectedly
func (s *Styles) WorkerError(path string, err error) string {
	return s.err.Render(fmt.Sprintf("Worker failed for file %s: %v", path, err))
}
