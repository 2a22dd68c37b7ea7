package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/cursor-chronicle/internal"
)

// JSONLExporter writes one session per line, which keeps very large
// documents streamable by line-oriented tools
type JSONLExporter struct{}

// Export encodes each session as a single JSON line
func (e *JSONLExporter) Export(doc *internal.Document, w io.Writer) error {
	enc := json.NewEncoder(w)

	for i := range doc.Sessions {
		if err := enc.Encode(&doc.Sessions[i]); err != nil {
			return fmt.Errorf("failed to encode session %s: %w", doc.Sessions[i].SessionID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
