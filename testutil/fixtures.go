package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Sample keyspace payloads shaped like real workspace state entries. The
// two sessions deliberately use different field spellings: the first the
// current names, the second the legacy aliases.
const (
	SampleComposerPayload = `{"allComposers":[
		{"composerId":"c-alpha","title":"Fix parser bug","createdAt":1700000000000,
		 "messages":[{"role":"user","refId":"p-1"},{"role":"assistant","refId":"g-1"}]},
		{"composerId":"c-beta","name":"Refactor config loading","createdAt":1700003600000,
		 "fullConversationHeadersOnly":[{"type":1,"bubbleId":"p-2"},{"type":2,"bubbleId":"g-2"}]}
	]}`

	SampleGenerationsPayload = `[
		{"composerId":"c-alpha","generationId":"g-1","text":"The parser chokes on string timestamps; normalize them first.","unixMs":1700000060000,"model":"gpt-4"},
		{"composerId":"c-beta","generationUUID":"g-2","textDescription":"Move the defaults into the loader and validate after unmarshal.","createdAt":1700003660000}
	]`

	SamplePromptsPayload = `[
		{"composerId":"c-alpha","promptId":"p-1","text":"Why does the parser fail on string timestamps?","createdAt":1700000030000},
		{"composerId":"c-beta","promptId":"p-2","text":"Please refactor the config loading","unixMs":1700003630000}
	]`
)

// CreateWorkspaceTree builds a workspaceStorage-style directory for one
// workspace: base/<id>/workspace.json plus a seeded state database.
// Returns the database path.
func CreateWorkspaceTree(t *testing.T, base, workspaceID, folder string) string {
	t.Helper()
	workspaceDir := filepath.Join(base, workspaceID)
	if err := os.MkdirAll(workspaceDir, 0755); err != nil {
		t.Fatalf("Failed to create workspace directory: %v", err)
	}

	meta, err := json.Marshal(map[string]string{"folder": folder})
	if err != nil {
		t.Fatalf("Failed to marshal workspace.json: %v", err)
	}
	if err := os.WriteFile(filepath.Join(workspaceDir, "workspace.json"), meta, 0644); err != nil {
		t.Fatalf("Failed to write workspace.json: %v", err)
	}

	dbPath := filepath.Join(workspaceDir, "state.vscdb")
	CreateSeededStateDB(t, dbPath)
	return dbPath
}
