package export

import (
	"io"

	"github.com/iksnae/cursor-chronicle/internal"
)

// MarkdownExporter writes the consolidated document in its canonical
// markdown form
type MarkdownExporter struct{}

// Export renders the document and writes it out
func (e *MarkdownExporter) Export(doc *internal.Document, w io.Writer) error {
	_, err := io.WriteString(w, internal.RenderMarkdown(doc))
	return err
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
