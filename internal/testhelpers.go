package internal

import (
	"time"
)

// testBaseMillis anchors fixture timestamps at a fixed instant so
// assertions on ordering and rendered output are reproducible
const testBaseMillis int64 = 1700000000000

// CreateTestComposer creates a composer entry with optional message refs
func CreateTestComposer(id, title string, refs ...MessageRef) ComposerEntry {
	return ComposerEntry{
		ComposerID: id,
		Title:      title,
		CreatedAt:  testBaseMillis,
		Messages:   refs,
	}
}

// CreateTestGeneration creates a generation entry offset seconds after the
// fixture base time
func CreateTestGeneration(composerID, generationID, text string, offsetSeconds int64) GenerationEntry {
	return GenerationEntry{
		ComposerID:   composerID,
		GenerationID: generationID,
		Text:         text,
		CreatedAt:    testBaseMillis + offsetSeconds*1000,
		Model:        "gpt-4",
	}
}

// CreateTestPrompt creates a prompt entry offset seconds after the fixture
// base time
func CreateTestPrompt(composerID, promptID, text string, offsetSeconds int64) PromptEntry {
	return PromptEntry{
		ComposerID: composerID,
		PromptID:   promptID,
		Text:       text,
		CreatedAt:  testBaseMillis + offsetSeconds*1000,
	}
}

// CreateTestSession creates an assembled session with one exchange
func CreateTestSession(id string) ChatSession {
	return ChatSession{
		SessionID: id,
		Title:     "Test Conversation",
		CreatedAt: testBaseMillis,
		Messages: []Message{
			{
				Role:      RoleUser,
				Text:      "How do I configure the parser?",
				CreatedAt: testBaseMillis,
			},
			{
				Role:      RoleAssistant,
				Text:      "Set the keyspace keys in config.env and run consolidate.",
				CreatedAt: testBaseMillis + 5000,
				Model:     "gpt-4",
			},
		},
	}
}

// CreateTestDocument creates a fully populated document with fixed
// metadata, suitable for rendering and export assertions
func CreateTestDocument() *Document {
	sessions := []ChatSession{
		CreateTestSession("session-1"),
		{
			SessionID: "session-2",
			Title:     "Fix flaky test",
			CreatedAt: testBaseMillis + 3600_000,
			Messages: []Message{
				{
					Role:      RoleUser,
					Text:      "The parser test is flaky, please investigate.",
					CreatedAt: testBaseMillis + 3600_000,
				},
			},
		},
	}
	return &Document{
		Metadata: DocumentMeta{
			ExtractionID:  "00000000-0000-0000-0000-000000000001",
			GeneratedAt:   time.UnixMilli(testBaseMillis).UTC(),
			AppName:       "cursor-chronicle",
			ProjectName:   "demo-project",
			ProjectBranch: "main",
			ProjectPath:   "<PROJECT_PATH>",
			WorkspaceID:   "workspace-hash",
			StorePath:     "<DB_PATH>/workspace-hash/state.vscdb",
		},
		Sessions: sessions,
		Topics: []TopicCount{
			{Keyword: "parser", Count: 3},
			{Keyword: "config", Count: 2},
		},
	}
}
