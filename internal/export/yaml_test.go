package export

import (
	"bytes"
	"testing"

	"github.com/iksnae/cursor-chronicle/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	doc := internal.CreateTestDocument()

	var buf bytes.Buffer
	exporter := &YAMLExporter{}
	if err := exporter.Export(doc, &buf); err != nil {
		t.Fatalf("YAMLExporter.Export() error = %v", err)
	}

	var decoded internal.Document
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}

	if decoded.Metadata.ProjectName != doc.Metadata.ProjectName {
		t.Errorf("ProjectName = %q, want %q", decoded.Metadata.ProjectName, doc.Metadata.ProjectName)
	}
	if len(decoded.Sessions) != len(doc.Sessions) {
		t.Fatalf("decoded %d sessions, want %d", len(decoded.Sessions), len(doc.Sessions))
	}
	if decoded.Sessions[0].Messages[0].Text != doc.Sessions[0].Messages[0].Text {
		t.Error("message text did not survive the YAML round trip")
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
