package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/cursor-chronicle/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	doc := internal.CreateTestDocument()

	var buf bytes.Buffer
	exporter := &MarkdownExporter{}
	if err := exporter.Export(doc, &buf); err != nil {
		t.Fatalf("MarkdownExporter.Export() error = %v", err)
	}

	output := buf.String()
	if output != internal.RenderMarkdown(doc) {
		t.Error("exported markdown should match the canonical rendering")
	}
	if !strings.HasPrefix(output, "# Chat History - Consolidated\n") {
		t.Errorf("output missing document header, starts with: %q", output[:40])
	}
	if !strings.Contains(output, "### Session 1: Test Conversation") {
		t.Error("output missing session heading")
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}
