package internal

import (
	"encoding/json"
	"time"
)

// Keyspace identifies one logical partition of the key-value store
type Keyspace string

const (
	KeyspaceComposer    Keyspace = "composer"
	KeyspaceGenerations Keyspace = "generations"
	KeyspacePrompts     Keyspace = "prompts"

	// KeyspaceAssembly tags diagnostics raised after parsing, while
	// records from different keyspaces are being joined.
	KeyspaceAssembly Keyspace = "assembly"
)

// Role identifies the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UnknownTime is the sentinel for timestamps that were absent or could not
// be parsed. Records carrying it are retained but sort after all known
// times.
const UnknownTime int64 = 0

// ComposerEntry is the index record for one chat session. ComposerID is
// the join key into the generation and prompt keyspaces.
type ComposerEntry struct {
	ComposerID string
	Title      string
	CreatedAt  int64 // epoch milliseconds UTC, UnknownTime when absent
	Messages   []MessageRef
}

// MessageRef is a lightweight pointer from a composer to one of its
// messages, resolved against the generation/prompt tables during assembly.
type MessageRef struct {
	Role  Role
	RefID string
}

// GenerationEntry is one assistant response
type GenerationEntry struct {
	ComposerID   string
	GenerationID string
	Text         string
	CreatedAt    int64
	Model        string
}

// PromptEntry is one user message
type PromptEntry struct {
	ComposerID string
	PromptID   string
	Text       string
	CreatedAt  int64
}

// CreatedTime returns the creation time as a time.Time, zero when unknown
func (c *ComposerEntry) CreatedTime() time.Time {
	return millisToTime(c.CreatedAt)
}

// normalizeTimestamp converts a raw JSON timestamp value to epoch
// milliseconds UTC. The source data carries timestamps as either integer
// epoch milliseconds or ISO-8601 strings depending on which application
// version wrote them. Anything unparsable maps to UnknownTime.
func normalizeTimestamp(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return UnknownTime
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		if ms < 0 {
			return UnknownTime
		}
		return ms
	}

	// Some writers store fractional epoch values
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f < 0 {
			return UnknownTime
		}
		return int64(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return UnknownTime
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return UnknownTime
}

// normalizeRole maps the two role encodings seen in the wild (string role
// names and the numeric type field, 1=user 2=assistant) onto Role. The
// boolean reports whether the value was recognized.
func normalizeRole(name string, numeric int) (Role, bool) {
	switch name {
	case "user":
		return RoleUser, true
	case "assistant", "ai":
		return RoleAssistant, true
	}
	switch numeric {
	case 1:
		return RoleUser, true
	case 2:
		return RoleAssistant, true
	}
	return "", false
}

// formatTimestamp renders epoch milliseconds as ISO-8601 UTC, or an empty
// string for UnknownTime
func formatTimestamp(ms int64) string {
	if ms == UnknownTime {
		return ""
	}
	return millisToTime(ms).Format(time.RFC3339)
}

func millisToTime(ms int64) time.Time {
	if ms == UnknownTime {
		return time.Time{}
	}
	return time.Unix(0, ms*int64(time.Millisecond)).UTC()
}
