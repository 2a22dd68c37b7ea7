package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/cursor-chronicle/internal"
)

// JSONExporter writes the consolidated document as pretty-printed JSON
type JSONExporter struct{}

// Export encodes the whole document, metadata and topics included
func (e *JSONExporter) Export(doc *internal.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
