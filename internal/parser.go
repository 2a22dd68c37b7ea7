package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Parser decodes raw keyspace payloads into typed entries. The source data
// is an internal application format without a versioned schema, so every
// sub-record is parsed independently and defensively: one corrupt entry
// must not abort extraction of the rest. Unusable sub-records are recorded
// as diagnostics, never returned as errors.
type Parser struct {
	diags *Diagnostics
}

// NewParser creates a Parser that records skips into diags
func NewParser(diags *Diagnostics) *Parser {
	return &Parser{diags: diags}
}

// Wire shapes. Field names drifted across application versions, so each
// struct declares the aliases seen in the wild; unknown fields are ignored
// for forward compatibility.

type composerEnvelope struct {
	AllComposers []json.RawMessage `json:"allComposers"`
	LegacyAll    []json.RawMessage `json:"all_composers"`
}

type rawComposer struct {
	ComposerID string          `json:"composerId"`
	Title      string          `json:"title"`
	Name       string          `json:"name"`
	CreatedAt  json.RawMessage `json:"createdAt"`
	Messages   []rawMessageRef `json:"messages"`
	Headers    []rawMessageRef `json:"fullConversationHeadersOnly"`
}

type rawMessageRef struct {
	Role     string `json:"role"`
	Type     int    `json:"type"` // 1=user, 2=assistant
	RefID    string `json:"refId"`
	BubbleID string `json:"bubbleId"`
}

type rawGeneration struct {
	ComposerID      string          `json:"composerId"`
	GenerationID    string          `json:"generationId"`
	GenerationUUID  string          `json:"generationUUID"`
	Text            string          `json:"text"`
	TextDescription string          `json:"textDescription"`
	CreatedAt       json.RawMessage `json:"createdAt"`
	UnixMs          json.RawMessage `json:"unixMs"`
	Model           string          `json:"model"`
}

type rawPrompt struct {
	ComposerID string          `json:"composerId"`
	PromptID   string          `json:"promptId"`
	Text       string          `json:"text"`
	CreatedAt  json.RawMessage `json:"createdAt"`
	UnixMs     json.RawMessage `json:"unixMs"`
}

// ParseComposerData decodes the composer keyspace payload. The payload is
// an envelope object holding the composer collection, though bare arrays
// are accepted as well.
func (p *Parser) ParseComposerData(raw []byte) []ComposerEntry {
	items, ok := p.splitCollection(KeyspaceComposer, raw, "allComposers")
	if !ok {
		return nil
	}

	entries := make([]ComposerEntry, 0, len(items))
	for _, item := range items {
		var rc rawComposer
		if err := json.Unmarshal(item, &rc); err != nil {
			p.diags.Add(NewSkippedRecord(KeyspaceComposer, "malformed composer entry", item))
			continue
		}
		if rc.ComposerID == "" {
			p.diags.Add(NewSkippedRecord(KeyspaceComposer, "missing composerId", item))
			continue
		}

		title := rc.Title
		if title == "" {
			title = rc.Name
		}

		refs := rc.Messages
		if len(refs) == 0 {
			refs = rc.Headers
		}

		entry := ComposerEntry{
			ComposerID: rc.ComposerID,
			Title:      title,
			CreatedAt:  normalizeTimestamp(rc.CreatedAt),
		}
		for _, ref := range refs {
			role, ok := normalizeRole(ref.Role, ref.Type)
			if !ok {
				p.diags.Add(SkippedRecord{
					Keyspace: KeyspaceComposer,
					Reason:   fmt.Sprintf("message ref with unknown role in composer %s", rc.ComposerID),
				})
				continue
			}
			refID := ref.RefID
			if refID == "" {
				refID = ref.BubbleID
			}
			if refID == "" {
				p.diags.Add(SkippedRecord{
					Keyspace: KeyspaceComposer,
					Reason:   fmt.Sprintf("message ref without refId in composer %s", rc.ComposerID),
				})
				continue
			}
			entry.Messages = append(entry.Messages, MessageRef{Role: role, RefID: refID})
		}

		entries = append(entries, entry)
	}
	return entries
}

// ParseGenerations decodes the generations keyspace payload, a collection
// of assistant responses
func (p *Parser) ParseGenerations(raw []byte) []GenerationEntry {
	items, ok := p.splitCollection(KeyspaceGenerations, raw, "")
	if !ok {
		return nil
	}

	entries := make([]GenerationEntry, 0, len(items))
	for _, item := range items {
		var rg rawGeneration
		if err := json.Unmarshal(item, &rg); err != nil {
			p.diags.Add(NewSkippedRecord(KeyspaceGenerations, "malformed generation entry", item))
			continue
		}
		if rg.ComposerID == "" {
			p.diags.Add(NewSkippedRecord(KeyspaceGenerations, "missing composerId", item))
			continue
		}

		text := rg.Text
		if text == "" {
			text = rg.TextDescription
		}
		if text == "" {
			p.diags.Add(NewSkippedRecord(KeyspaceGenerations, "missing text", item))
			continue
		}

		id := rg.GenerationID
		if id == "" {
			id = rg.GenerationUUID
		}

		createdAt := normalizeTimestamp(rg.CreatedAt)
		if createdAt == UnknownTime {
			createdAt = normalizeTimestamp(rg.UnixMs)
		}

		entries = append(entries, GenerationEntry{
			ComposerID:   rg.ComposerID,
			GenerationID: id,
			Text:         text,
			CreatedAt:    createdAt,
			Model:        rg.Model,
		})
	}
	return entries
}

// ParsePrompts decodes the prompts keyspace payload, a collection of user
// messages
func (p *Parser) ParsePrompts(raw []byte) []PromptEntry {
	items, ok := p.splitCollection(KeyspacePrompts, raw, "")
	if !ok {
		return nil
	}

	entries := make([]PromptEntry, 0, len(items))
	for _, item := range items {
		var rp rawPrompt
		if err := json.Unmarshal(item, &rp); err != nil {
			p.diags.Add(NewSkippedRecord(KeyspacePrompts, "malformed prompt entry", item))
			continue
		}
		if rp.ComposerID == "" {
			p.diags.Add(NewSkippedRecord(KeyspacePrompts, "missing composerId", item))
			continue
		}
		if rp.Text == "" {
			p.diags.Add(NewSkippedRecord(KeyspacePrompts, "missing text", item))
			continue
		}

		createdAt := normalizeTimestamp(rp.CreatedAt)
		if createdAt == UnknownTime {
			createdAt = normalizeTimestamp(rp.UnixMs)
		}

		entries = append(entries, PromptEntry{
			ComposerID: rp.ComposerID,
			PromptID:   rp.PromptID,
			Text:       rp.Text,
			CreatedAt:  createdAt,
		})
	}
	return entries
}

// splitCollection breaks a keyspace payload into individually-addressable
// sub-records. An empty payload is a legitimate empty collection; a payload
// that is not JSON at all yields no records and one diagnostic.
func (p *Parser) splitCollection(keyspace Keyspace, raw []byte, envelopeField string) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, true
	}

	if envelopeField != "" && trimmed[0] == '{' {
		var env composerEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			p.diags.Add(NewSkippedRecord(keyspace, "payload is not valid JSON", trimmed))
			return nil, false
		}
		if env.AllComposers != nil {
			return env.AllComposers, true
		}
		return env.LegacyAll, true
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		p.diags.Add(NewSkippedRecord(keyspace, "payload is not a JSON collection", trimmed))
		return nil, false
	}
	return items, true
}
