package internal

import "fmt"

// SkippedRecord describes one sub-record that could not be used. Skips are
// diagnostics, never failures: a corrupt entry must not abort extraction of
// the remaining thousands.
type SkippedRecord struct {
	Keyspace Keyspace
	Reason   string
	Fragment string // short excerpt of the offending raw data
}

func (s SkippedRecord) String() string {
	if s.Fragment == "" {
		return fmt.Sprintf("[%s] %s", s.Keyspace, s.Reason)
	}
	return fmt.Sprintf("[%s] %s: %s", s.Keyspace, s.Reason, s.Fragment)
}

// maxFragmentLen bounds the raw excerpt kept per skipped record so a single
// corrupt megabyte blob does not balloon the diagnostics.
const maxFragmentLen = 120

// NewSkippedRecord builds a diagnostic with a truncated raw fragment
func NewSkippedRecord(keyspace Keyspace, reason string, raw []byte) SkippedRecord {
	fragment := string(raw)
	if len(fragment) > maxFragmentLen {
		fragment = fragment[:maxFragmentLen] + "..."
	}
	return SkippedRecord{
		Keyspace: keyspace,
		Reason:   reason,
		Fragment: fragment,
	}
}

// Diagnostics accumulates skipped records across pipeline stages
type Diagnostics struct {
	Skipped []SkippedRecord
}

// Add appends a skipped record and logs it at debug level
func (d *Diagnostics) Add(rec SkippedRecord) {
	d.Skipped = append(d.Skipped, rec)
	LogDebug("skipped record %s", rec)
}

// Merge folds another diagnostics set into this one
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.Skipped = append(d.Skipped, other.Skipped...)
}

// CountByKeyspace returns the number of skips recorded for one keyspace
func (d *Diagnostics) CountByKeyspace(keyspace Keyspace) int {
	n := 0
	for _, rec := range d.Skipped {
		if rec.Keyspace == keyspace {
			n++
		}
	}
	return n
}

// Summary returns a one-line description suitable for end-of-run output
func (d *Diagnostics) Summary() string {
	if len(d.Skipped) == 0 {
		return "no records skipped"
	}
	return fmt.Sprintf("%d record(s) skipped (composer: %d, generations: %d, prompts: %d, assembly: %d)",
		len(d.Skipped),
		d.CountByKeyspace(KeyspaceComposer),
		d.CountByKeyspace(KeyspaceGenerations),
		d.CountByKeyspace(KeyspacePrompts),
		d.CountByKeyspace(KeyspaceAssembly))
}
