package internal

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/iksnae/cursor-chronicle/testutil"
)

func testPipelineConfig() *Config {
	return &Config{
		AppName:         "cursor-chronicle",
		OutputDir:       ".knowledge",
		OutputFilename:  "chat-history-consolidated.md",
		DBType:          "sqlite",
		DBFilename:      "state.vscdb",
		WorkspaceID:     "ws-1",
		ProjectName:     "demo-project",
		ProjectBranch:   "main",
		ComposerDataKey: "composer.composerData",
		GenerationsKey:  "aiService.generations",
		PromptsKey:      "aiService.prompts",
	}
}

func openSeededStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ws-1", "state.vscdb")
	testutil.CreateSeededStateDB(t, dbPath)

	store, err := OpenStore(dbPath)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBuildDocument(t *testing.T) {
	store := openSeededStore(t)
	c := NewConsolidator(testPipelineConfig(), store)

	doc, diags, err := c.BuildDocument()
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if len(diags.Skipped) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags.Skipped)
	}

	if doc.SessionCount() != 2 {
		t.Fatalf("SessionCount() = %d, want 2", doc.SessionCount())
	}
	if doc.TotalMessages() != 4 {
		t.Errorf("TotalMessages() = %d, want 4", doc.TotalMessages())
	}

	first, second := doc.Sessions[0], doc.Sessions[1]
	if first.Title != "Fix parser bug" || second.Title != "Refactor config loading" {
		t.Errorf("session order = %q, %q", first.Title, second.Title)
	}
	if first.Messages[0].Role != RoleUser || first.Messages[1].Role != RoleAssistant {
		t.Errorf("message roles = %+v", first.Messages)
	}
	if first.Messages[1].Model != "gpt-4" {
		t.Errorf("Model = %q", first.Messages[1].Model)
	}

	if len(doc.Topics) == 0 {
		t.Error("topics missing from seeded document")
	}
}

func TestBuildDocumentMetadata(t *testing.T) {
	store := openSeededStore(t)
	cfg := testPipelineConfig()
	cfg.IncludeSystemInfo = true
	c := NewConsolidator(cfg, store)

	doc, _, err := c.BuildDocument()
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	meta := doc.Metadata
	if meta.ExtractionID == "" {
		t.Error("ExtractionID not assigned")
	}
	if meta.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not assigned")
	}
	if meta.AppName != "cursor-chronicle" || meta.ProjectName != "demo-project" {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.WorkspaceID != "ws-1" {
		t.Errorf("WorkspaceID = %q", meta.WorkspaceID)
	}
	// The store base directory is masked in the recorded path.
	if meta.StorePath != "<DB_PATH>/ws-1/state.vscdb" {
		t.Errorf("StorePath = %q", meta.StorePath)
	}
	if meta.Platform != runtime.GOOS {
		t.Errorf("Platform = %q, want %q", meta.Platform, runtime.GOOS)
	}

	// Two runs never share an extraction ID.
	doc2, _, err := c.BuildDocument()
	if err != nil {
		t.Fatalf("BuildDocument() second run error = %v", err)
	}
	if doc2.Metadata.ExtractionID == meta.ExtractionID {
		t.Error("extraction IDs should differ between runs")
	}
}

func TestBuildDocumentWithoutSystemInfo(t *testing.T) {
	store := openSeededStore(t)
	cfg := testPipelineConfig()
	cfg.IncludeSystemInfo = false
	c := NewConsolidator(cfg, store)

	doc, _, err := c.BuildDocument()
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if doc.Metadata.Platform != "" || doc.Metadata.Hostname != "" {
		t.Errorf("system info recorded despite being disabled: %+v", doc.Metadata)
	}
}

func TestBuildDocumentMissingKeys(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ws-1", "state.vscdb")
	testutil.CreateStateDB(t, dbPath, nil)

	store, err := OpenStore(dbPath)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	c := NewConsolidator(testPipelineConfig(), store)
	doc, diags, err := c.BuildDocument()
	if err != nil {
		t.Fatalf("BuildDocument() error = %v, want success on empty store", err)
	}
	if doc.SessionCount() != 0 {
		t.Errorf("SessionCount() = %d, want 0", doc.SessionCount())
	}
	if len(diags.Skipped) != 0 {
		t.Errorf("missing keys should not count as skips, got %v", diags.Skipped)
	}
}

func TestBuildDocumentEmptyPayloads(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ws-1", "state.vscdb")
	testutil.CreateStateDB(t, dbPath, map[string]string{
		"composer.composerData": "",
		"aiService.generations": "",
		"aiService.prompts":     "",
	})

	store, err := OpenStore(dbPath)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	c := NewConsolidator(testPipelineConfig(), store)
	doc, diags, err := c.BuildDocument()
	if err != nil {
		t.Fatalf("BuildDocument() error = %v, want success on empty payloads", err)
	}
	if doc.SessionCount() != 0 {
		t.Errorf("SessionCount() = %d, want 0", doc.SessionCount())
	}
	if len(diags.Skipped) != 0 {
		t.Errorf("empty payloads should not count as skips, got %v", diags.Skipped)
	}
}

func TestBuildDocumentAppliesPrivacyFilter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ws-1", "state.vscdb")
	testutil.CreateStateDB(t, dbPath, map[string]string{
		"composer.composerData": `{"allComposers":[{"composerId":"c-1","title":"Key rotation","createdAt":1700000000000,"messages":[{"role":"user","refId":"p-1"}]}]}`,
		"aiService.prompts":     `[{"composerId":"c-1","promptId":"p-1","text":"rotate token=sk_live_oldkey in /Users/alice/project/deploy.sh","createdAt":1700000000000}]`,
	})

	store, err := OpenStore(dbPath)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	cfg := testPipelineConfig()
	cfg.ProjectPath = "/Users/alice/project"
	c := NewConsolidator(cfg, store)

	doc, _, err := c.BuildDocument()
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if doc.SessionCount() != 1 {
		t.Fatalf("SessionCount() = %d, want 1", doc.SessionCount())
	}

	text := doc.Sessions[0].Messages[0].Text
	if strings.Contains(text, "sk_live_oldkey") {
		t.Errorf("secret survived filtering: %q", text)
	}
	if !strings.Contains(text, "deploy.sh") || strings.Contains(text, "/Users/alice/project") {
		t.Errorf("project path not relativized: %q", text)
	}
	if doc.Metadata.ProjectPath != ProjectPathToken {
		t.Errorf("metadata ProjectPath = %q", doc.Metadata.ProjectPath)
	}
}

func TestRunRendersMarkdown(t *testing.T) {
	store := openSeededStore(t)
	c := NewConsolidator(testPipelineConfig(), store)

	out, skipped, err := c.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("unexpected skips: %v", skipped)
	}
	if !strings.HasPrefix(out, "# Chat History - Consolidated\n") {
		t.Error("rendered output missing document header")
	}
	if !strings.Contains(out, "### Session 1: Fix parser bug") {
		t.Error("rendered output missing first session")
	}
	if !strings.Contains(out, "- **Total Chat Sessions**: 2 historical sessions") {
		t.Error("rendered output missing session count")
	}
}
