package export

import (
	"io"

	"github.com/iksnae/cursor-chronicle/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes the consolidated document in YAML format
type YAMLExporter struct{}

// Export encodes the document with the YAML encoder
func (e *YAMLExporter) Export(doc *internal.Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
