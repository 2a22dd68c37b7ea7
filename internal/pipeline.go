package internal

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
)

// Consolidator drives the full extraction pipeline against one store:
// read the three keyspaces, parse, assemble, filter, then build the
// consolidated document. The pipeline is a synchronous batch; each stage
// consumes the previous stage's complete output.
type Consolidator struct {
	cfg   *Config
	store *Store
}

// NewConsolidator creates a Consolidator. The store handle stays owned by
// the caller, which closes it when the run is over.
func NewConsolidator(cfg *Config, store *Store) *Consolidator {
	return &Consolidator{cfg: cfg, store: store}
}

// Run executes the pipeline and renders the consolidated markdown,
// returning the text buffer and the skipped-record diagnostics. Writing
// the buffer to disk and reporting the diagnostics are the caller's
// concern.
func (c *Consolidator) Run() (string, []SkippedRecord, error) {
	doc, diags, err := c.BuildDocument()
	if err != nil {
		return "", nil, err
	}
	return RenderMarkdown(doc), diags.Skipped, nil
}

// BuildDocument executes the pipeline up to the fully assembled and
// filtered document, leaving rendering to the caller
func (c *Consolidator) BuildDocument() (*Document, *Diagnostics, error) {
	diags := &Diagnostics{}
	parser := NewParser(diags)

	composerRaw, err := c.readKeyspace(c.cfg.ComposerDataKey)
	if err != nil {
		return nil, nil, err
	}
	generationsRaw, err := c.readKeyspace(c.cfg.GenerationsKey)
	if err != nil {
		return nil, nil, err
	}
	promptsRaw, err := c.readKeyspace(c.cfg.PromptsKey)
	if err != nil {
		return nil, nil, err
	}

	composers := parser.ParseComposerData(composerRaw)
	generations := parser.ParseGenerations(generationsRaw)
	prompts := parser.ParsePrompts(promptsRaw)
	LogInfo("parsed %d composers, %d generations, %d prompts", len(composers), len(generations), len(prompts))

	assembler := NewAssembler(diags)
	sessions := assembler.Assemble(composers, generations, prompts)
	LogInfo("assembled %d sessions", len(sessions))

	filter := NewPrivacyFilter(c.cfg.IncludeSecrets, c.cfg.IncludeAbsolutePaths, c.cfg.ProjectPath)
	sessions = filter.FilterSessions(sessions)

	doc := &Document{
		Metadata: c.buildMetadata(filter),
		Sessions: sessions,
		Topics:   ExtractTopics(sessions, DefaultTopicLimit),
	}
	return doc, diags, nil
}

// readKeyspace fetches one keyspace payload. A missing key is a
// legitimate empty collection; any other store failure is fatal.
func (c *Consolidator) readKeyspace(key string) ([]byte, error) {
	raw, err := c.store.Get(key)
	if err != nil {
		if errors.Is(err, ErrKeyMissing) {
			LogInfo("key %s not present, treating as empty", key)
			return nil, nil
		}
		return nil, err
	}
	LogDebug("key %s: %d bytes", key, len(raw))
	return raw, nil
}

func (c *Consolidator) buildMetadata(filter *PrivacyFilter) DocumentMeta {
	storeBase := filepath.Dir(filepath.Dir(c.store.Path()))
	meta := DocumentMeta{
		ExtractionID:  uuid.New().String(),
		GeneratedAt:   time.Now().UTC(),
		AppName:       c.cfg.AppName,
		ProjectName:   c.cfg.ProjectName,
		ProjectBranch: c.cfg.ProjectBranch,
		ProjectPath:   filter.FilterMetaPath(c.cfg.ProjectPath, storeBase),
		WorkspaceID:   c.cfg.WorkspaceID,
		StorePath:     filter.FilterMetaPath(c.store.Path(), storeBase),
	}
	if c.cfg.IncludeSystemInfo {
		if host, err := os.Hostname(); err == nil {
			meta.Hostname = host
		}
		meta.Platform = runtime.GOOS
	}
	return meta
}
