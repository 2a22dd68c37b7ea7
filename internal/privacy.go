package internal

import (
	"regexp"
	"strings"
)

// Redaction placeholders. None of them match the secret or path patterns,
// which keeps filtering idempotent.
const (
	RedactedToken     = "[REDACTED]"
	ExternalPathToken = "[EXTERNAL_PATH]"
	ProjectPathToken  = "<PROJECT_PATH>"
	StorePathToken    = "<DB_PATH>"
)

// credentialPairPattern matches key=value or key: value credential
// assignments. The key is kept, the value is replaced.
var credentialPairPattern = regexp.MustCompile(`(?i)\b((?:password|passwd|pwd|secret|token|api[_-]?key|apikey|access[_-]?key|auth)\s*[=:]\s*)("[^"]*"|'[^']*'|\S+)`)

// bearerPattern matches bearer-token-shaped strings, keeping the scheme
// word so the sentence still reads.
var bearerPattern = regexp.MustCompile(`(?i)\b(bearer\s+)[A-Za-z0-9._~+/=-]+`)

// secretTokenPatterns match well-known API-key shapes on their own,
// without a surrounding assignment: Stripe/OpenAI keys, GitHub tokens,
// AWS access key IDs, Slack tokens and JWTs.
var secretTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bsk_(?:live|test)_[A-Za-z0-9]+`),
	regexp.MustCompile(`\bsk-[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9._-]+`),
}

// absolutePathPattern matches a Unix absolute path preceded by a line
// start or a delimiter. RE2 has no lookbehind, so the delimiter is
// captured and re-emitted.
var absolutePathPattern = regexp.MustCompile("(^|[\\s\"'`(\\[=:,])(/(?:[A-Za-z0-9._+-]+/)*[A-Za-z0-9._+-]+/?)")

// PrivacyFilter rewrites session content according to the privacy
// configuration: secret-shaped tokens are replaced with a fixed
// placeholder, and absolute filesystem paths are rewritten relative to the
// project root or masked entirely. Secrets are handled before paths so a
// credential containing path-like characters is not half-rewritten first.
type PrivacyFilter struct {
	includeSecrets       bool
	includeAbsolutePaths bool
	projectRoot          string
}

// NewPrivacyFilter creates a filter for the given privacy flags. The
// projectRoot is used to relativize paths that fall inside the project.
func NewPrivacyFilter(includeSecrets, includeAbsolutePaths bool, projectRoot string) *PrivacyFilter {
	return &PrivacyFilter{
		includeSecrets:       includeSecrets,
		includeAbsolutePaths: includeAbsolutePaths,
		projectRoot:          strings.TrimRight(projectRoot, "/"),
	}
}

// FilterSessions returns a filtered copy of sessions. The input is not
// modified; each stage hands an immutable snapshot to the next.
func (f *PrivacyFilter) FilterSessions(sessions []ChatSession) []ChatSession {
	if f.includeSecrets && f.includeAbsolutePaths {
		return sessions
	}
	out := make([]ChatSession, len(sessions))
	for i, s := range sessions {
		filtered := s
		filtered.Title = f.FilterText(s.Title)
		filtered.Messages = make([]Message, len(s.Messages))
		for j, m := range s.Messages {
			fm := m
			fm.Text = f.FilterText(m.Text)
			filtered.Messages[j] = fm
		}
		out[i] = filtered
	}
	return out
}

// FilterText applies secret redaction and then path redaction to one text.
// Applying it to already-filtered text is a no-op.
func (f *PrivacyFilter) FilterText(text string) string {
	if text == "" {
		return text
	}
	if !f.includeSecrets {
		text = redactSecrets(text)
	}
	if !f.includeAbsolutePaths {
		text = f.redactPaths(text)
	}
	return text
}

// FilterMetaPath masks configured paths the way the consolidated document
// has always presented them: the project path and the store's base
// directory become named placeholders rather than being dropped.
func (f *PrivacyFilter) FilterMetaPath(path, storeBase string) string {
	if f.includeAbsolutePaths || path == "" {
		return path
	}
	if f.projectRoot != "" {
		path = strings.ReplaceAll(path, f.projectRoot, ProjectPathToken)
	}
	if storeBase != "" {
		path = strings.ReplaceAll(path, strings.TrimRight(storeBase, "/"), StorePathToken)
	}
	return path
}

func redactSecrets(text string) string {
	text = credentialPairPattern.ReplaceAllString(text, "${1}"+RedactedToken)
	text = bearerPattern.ReplaceAllString(text, "${1}"+RedactedToken)
	for _, pattern := range secretTokenPatterns {
		text = pattern.ReplaceAllString(text, RedactedToken)
	}
	return text
}

func (f *PrivacyFilter) redactPaths(text string) string {
	return absolutePathPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := absolutePathPattern.FindStringSubmatch(match)
		return sub[1] + f.rewritePath(sub[2])
	})
}

// rewritePath relativizes a path inside the project root and masks
// everything else
func (f *PrivacyFilter) rewritePath(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if f.projectRoot != "" {
		if trimmed == f.projectRoot {
			return "."
		}
		if strings.HasPrefix(trimmed, f.projectRoot+"/") {
			return trimmed[len(f.projectRoot)+1:]
		}
	}
	return ExternalPathToken
}
