package internal

import (
	"fmt"
	"sort"
)

// Assembler joins the three parsed keyspaces into ordered chat sessions.
// Composer entries carry the session identity and the message reference
// list; prompts and generations carry the actual text. References are
// resolved by ID, and when a composer's reference list is empty or nothing
// in it resolves, the assembler falls back to merging every prompt and
// generation row that shares the composer's ID.
type Assembler struct {
	diags *Diagnostics
}

// NewAssembler creates an Assembler that records skips into diags
func NewAssembler(diags *Diagnostics) *Assembler {
	return &Assembler{diags: diags}
}

// Assemble resolves composers, prompts and generations into sessions,
// sorted chronologically with unknown-time sessions last.
func (a *Assembler) Assemble(composers []ComposerEntry, generations []GenerationEntry, prompts []PromptEntry) []ChatSession {
	promptByID := make(map[string]*PromptEntry)
	promptsByComposer := make(map[string][]*PromptEntry)
	for i := range prompts {
		p := &prompts[i]
		if p.PromptID != "" {
			if _, exists := promptByID[p.PromptID]; !exists {
				promptByID[p.PromptID] = p
			}
		}
		promptsByComposer[p.ComposerID] = append(promptsByComposer[p.ComposerID], p)
	}

	generationByID := make(map[string]*GenerationEntry)
	generationsByComposer := make(map[string][]*GenerationEntry)
	for i := range generations {
		g := &generations[i]
		if g.GenerationID != "" {
			if _, exists := generationByID[g.GenerationID]; !exists {
				generationByID[g.GenerationID] = g
			}
		}
		generationsByComposer[g.ComposerID] = append(generationsByComposer[g.ComposerID], g)
	}

	sessions := make([]ChatSession, 0, len(composers))
	seenComposer := make(map[string]bool)
	for i := range composers {
		c := &composers[i]
		if seenComposer[c.ComposerID] {
			a.diags.Add(SkippedRecord{
				Keyspace: KeyspaceAssembly,
				Reason:   fmt.Sprintf("duplicate composer entry %s", c.ComposerID),
			})
			continue
		}
		seenComposer[c.ComposerID] = true

		messages := a.resolveRefs(c, promptByID, generationByID)
		if len(messages) == 0 {
			messages = a.fallbackMessages(c, promptsByComposer[c.ComposerID], generationsByComposer[c.ComposerID])
		}
		if len(messages) == 0 {
			a.diags.Add(SkippedRecord{
				Keyspace: KeyspaceAssembly,
				Reason:   fmt.Sprintf("session %s has no resolvable messages", c.ComposerID),
			})
			continue
		}

		sortMessages(messages)

		createdAt := c.CreatedAt
		if createdAt == UnknownTime {
			createdAt = earliestKnown(messages)
		}

		sessions = append(sessions, ChatSession{
			SessionID: c.ComposerID,
			Title:     c.Title,
			CreatedAt: createdAt,
			Messages:  messages,
		})
	}

	sessions = a.dedupe(sessions)

	// Chronological order, sessions without a known creation time last.
	// The sort is stable so equal timestamps keep their store order.
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i].CreatedAt, sessions[j].CreatedAt
		if a == UnknownTime {
			return false
		}
		if b == UnknownTime {
			return true
		}
		return a < b
	})

	return sessions
}

// resolveRefs maps a composer's reference list onto prompt and generation
// rows. Unresolvable references are dropped individually.
func (a *Assembler) resolveRefs(c *ComposerEntry, promptByID map[string]*PromptEntry, generationByID map[string]*GenerationEntry) []Message {
	var messages []Message
	for _, ref := range c.Messages {
		switch ref.Role {
		case RoleUser:
			p, ok := promptByID[ref.RefID]
			if !ok {
				a.diags.Add(SkippedRecord{
					Keyspace: KeyspaceAssembly,
					Reason:   fmt.Sprintf("unresolvable prompt ref %s in session %s", ref.RefID, c.ComposerID),
				})
				continue
			}
			messages = append(messages, Message{
				Role:      RoleUser,
				Text:      p.Text,
				CreatedAt: p.CreatedAt,
			})
		case RoleAssistant:
			g, ok := generationByID[ref.RefID]
			if !ok {
				a.diags.Add(SkippedRecord{
					Keyspace: KeyspaceAssembly,
					Reason:   fmt.Sprintf("unresolvable generation ref %s in session %s", ref.RefID, c.ComposerID),
				})
				continue
			}
			messages = append(messages, Message{
				Role:      RoleAssistant,
				Text:      g.Text,
				CreatedAt: g.CreatedAt,
				Model:     g.Model,
			})
		}
	}
	return messages
}

// fallbackMessages merges every prompt and generation row sharing the
// composer's ID, used when the reference list yields nothing
func (a *Assembler) fallbackMessages(c *ComposerEntry, prompts []*PromptEntry, generations []*GenerationEntry) []Message {
	if len(prompts)+len(generations) == 0 {
		return nil
	}
	LogDebug("session %s: assembling %d prompts and %d generations without refs", c.ComposerID, len(prompts), len(generations))

	messages := make([]Message, 0, len(prompts)+len(generations))
	for _, p := range prompts {
		messages = append(messages, Message{
			Role:      RoleUser,
			Text:      p.Text,
			CreatedAt: p.CreatedAt,
		})
	}
	for _, g := range generations {
		messages = append(messages, Message{
			Role:      RoleAssistant,
			Text:      g.Text,
			CreatedAt: g.CreatedAt,
			Model:     g.Model,
		})
	}
	return messages
}

// dedupe collapses sessions that share a session ID, keeping the one with
// more messages. On a tie the earlier occurrence wins.
func (a *Assembler) dedupe(sessions []ChatSession) []ChatSession {
	byID := make(map[string]int)
	out := make([]ChatSession, 0, len(sessions))
	for _, s := range sessions {
		idx, exists := byID[s.SessionID]
		if !exists {
			byID[s.SessionID] = len(out)
			out = append(out, s)
			continue
		}
		if s.MessageCount() > out[idx].MessageCount() {
			out[idx] = s
		}
		a.diags.Add(SkippedRecord{
			Keyspace: KeyspaceAssembly,
			Reason:   fmt.Sprintf("duplicate session %s collapsed", s.SessionID),
		})
	}
	return out
}

// sortMessages orders messages chronologically in place, unknown-time
// messages last, preserving insertion order on ties
func sortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i].CreatedAt, messages[j].CreatedAt
		if a == UnknownTime {
			return false
		}
		if b == UnknownTime {
			return true
		}
		return a < b
	})
}

// earliestKnown returns the smallest known message timestamp, or
// UnknownTime when every message lacks one
func earliestKnown(messages []Message) int64 {
	earliest := int64(UnknownTime)
	for _, m := range messages {
		if m.CreatedAt == UnknownTime {
			continue
		}
		if earliest == UnknownTime || m.CreatedAt < earliest {
			earliest = m.CreatedAt
		}
	}
	return earliest
}
