package internal

import (
	"strings"
	"time"
)

// Message is a single utterance inside an assembled session
type Message struct {
	Role      Role   `json:"role" yaml:"role"`
	Text      string `json:"text" yaml:"text"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
}

// CreatedTime returns the message timestamp as a UTC time. The zero time
// is returned when the timestamp is unknown.
func (m *Message) CreatedTime() time.Time {
	return millisToTime(m.CreatedAt)
}

// ChatSession is one reconstructed conversation: an identity, a title and
// the chronologically ordered messages that belong to it
type ChatSession struct {
	SessionID string    `json:"sessionId" yaml:"sessionId"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	CreatedAt int64     `json:"createdAt" yaml:"createdAt"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// MessageCount returns the number of messages in the session
func (s *ChatSession) MessageCount() int {
	return len(s.Messages)
}

// CreatedTime returns the session creation timestamp as a UTC time
func (s *ChatSession) CreatedTime() time.Time {
	return millisToTime(s.CreatedAt)
}

// Duration returns the span between the first and last message that carry
// a known timestamp, or zero when fewer than two messages do.
func (s *ChatSession) Duration() time.Duration {
	var first, last int64
	for _, m := range s.Messages {
		if m.CreatedAt == UnknownTime {
			continue
		}
		if first == 0 || m.CreatedAt < first {
			first = m.CreatedAt
		}
		if m.CreatedAt > last {
			last = m.CreatedAt
		}
	}
	if first == 0 || last <= first {
		return 0
	}
	return time.Duration(last-first) * time.Millisecond
}

// EffectiveTitle returns the session title, falling back to the first user
// message (truncated) and then to a fixed placeholder.
func (s *ChatSession) EffectiveTitle() string {
	if s.Title != "" {
		return s.Title
	}
	for _, m := range s.Messages {
		if m.Role != RoleUser {
			continue
		}
		title := strings.TrimSpace(m.Text)
		if title == "" {
			continue
		}
		if idx := strings.IndexByte(title, '\n'); idx > 0 {
			title = title[:idx]
		}
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		return title
	}
	return "Untitled Session"
}

// Models returns the distinct model names seen across assistant messages,
// in order of first appearance
func (s *ChatSession) Models() []string {
	var models []string
	seen := make(map[string]bool)
	for _, m := range s.Messages {
		if m.Model == "" || seen[m.Model] {
			continue
		}
		seen[m.Model] = true
		models = append(models, m.Model)
	}
	return models
}

// contextRule maps title keywords to a human-readable description of what
// the session was about. Rules are checked in order; the first match wins.
type contextRule struct {
	keywords    []string
	description string
}

var contextRules = []contextRule{
	{[]string{"history", "consolidat"}, "Knowledge management and chat history consolidation"},
	{[]string{"memory", "storage", "database"}, "Memory management and storage implementation"},
	{[]string{"fix", "bug", "error", "debug"}, "Debugging and issue resolution"},
	{[]string{"test", "coverage"}, "Testing and validation work"},
	{[]string{"refactor", "cleanup", "restructur"}, "Refactoring and code restructuring"},
	{[]string{"deploy", "release", "ci", "pipeline"}, "Release and deployment workflow"},
	{[]string{"doc", "readme"}, "Documentation updates"},
	{[]string{"config", "setup", "install"}, "Configuration and environment setup"},
}

// ContextDescription classifies the session from its title keywords
func (s *ChatSession) ContextDescription() string {
	title := strings.ToLower(s.EffectiveTitle())
	for _, rule := range contextRules {
		for _, kw := range rule.keywords {
			if strings.Contains(title, kw) {
				return rule.description
			}
		}
	}
	return "General project development and discussion"
}

// DocumentMeta carries the provenance of one extraction run. Every field
// is filled by the pipeline before rendering; the renderer reads values
// from here and never consults the environment or the clock itself.
type DocumentMeta struct {
	ExtractionID  string    `json:"extractionId" yaml:"extractionId"`
	GeneratedAt   time.Time `json:"generatedAt" yaml:"generatedAt"`
	AppName       string    `json:"appName" yaml:"appName"`
	ProjectName   string    `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	ProjectBranch string    `json:"projectBranch,omitempty" yaml:"projectBranch,omitempty"`
	ProjectPath   string    `json:"projectPath,omitempty" yaml:"projectPath,omitempty"`
	WorkspaceID   string    `json:"workspaceId,omitempty" yaml:"workspaceId,omitempty"`
	StorePath     string    `json:"storePath,omitempty" yaml:"storePath,omitempty"`
	Hostname      string    `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Platform      string    `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// Document is the fully assembled, filtered and ordered result of one
// extraction run, ready for rendering
type Document struct {
	Metadata DocumentMeta  `json:"metadata" yaml:"metadata"`
	Sessions []ChatSession `json:"sessions" yaml:"sessions"`
	Topics   []TopicCount  `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// SessionCount returns the number of sessions in the document
func (d *Document) SessionCount() int {
	return len(d.Sessions)
}

// TotalMessages returns the message count summed across all sessions
func (d *Document) TotalMessages() int {
	total := 0
	for i := range d.Sessions {
		total += len(d.Sessions[i].Messages)
	}
	return total
}

// FindSession returns the session whose ID matches id, accepting an
// unambiguous prefix the way short commit hashes work
func (d *Document) FindSession(id string) *ChatSession {
	var match *ChatSession
	for i := range d.Sessions {
		if d.Sessions[i].SessionID == id {
			return &d.Sessions[i]
		}
		if strings.HasPrefix(d.Sessions[i].SessionID, id) {
			if match != nil {
				return nil
			}
			match = &d.Sessions[i]
		}
	}
	return match
}
