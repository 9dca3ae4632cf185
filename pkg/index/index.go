// Package index holds the in-memory content index for a single run.
//
// The index maps each content fingerprint to the canonical Record of the
// first file seen with that content. It is process-local, single-writer,
// and discarded at exit; persistence happens only through pkg/listfile.
package index

import (
	"sort"

	"github.com/arthur-debert/dupkeep/pkg/types"
)

// Index is the fingerprint index plus the secondary name index used for
// name-collision reporting. Not safe for concurrent use; the scan is
// sequential by design.
type Index struct {
	records map[string]*types.Record

	// names maps a base name to every fingerprint observed under it.
	// Only maintained when trackNames is set (verbose mode) — it is a
	// reporting signal, not a correctness constraint.
	names      map[string]map[string]struct{}
	trackNames bool
}

// New creates an empty index. trackNames enables the name index.
func New(trackNames bool) *Index {
	return &Index{
		records:    make(map[string]*types.Record),
		names:      make(map[string]map[string]struct{}),
		trackNames: trackNames,
	}
}

// Lookup returns the canonical record for a fingerprint, if any.
func (ix *Index) Lookup(fingerprint string) (*types.Record, bool) {
	rec, ok := ix.records[fingerprint]
	return rec, ok
}

// Insert adds rec as the canonical record for its fingerprint. The first
// record for a fingerprint wins: if one already exists, Insert is a no-op
// and returns false.
func (ix *Index) Insert(rec *types.Record) bool {
	if _, exists := ix.records[rec.Fingerprint]; exists {
		return false
	}
	ix.records[rec.Fingerprint] = rec
	ix.noteName(rec.Name, rec.Fingerprint)
	return true
}

// NameCollision reports whether name has been observed under a
// fingerprint other than the given one. Always false when the name index
// is disabled.
func (ix *Index) NameCollision(name, fingerprint string) bool {
	if !ix.trackNames {
		return false
	}
	for fp := range ix.names[name] {
		if fp != fingerprint {
			return true
		}
	}
	return false
}

func (ix *Index) noteName(name, fingerprint string) {
	if !ix.trackNames {
		return
	}
	set, ok := ix.names[name]
	if !ok {
		set = make(map[string]struct{})
		ix.names[name] = set
	}
	set[fingerprint] = struct{}{}
}

// Len returns the number of canonical records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns every canonical record in unspecified order.
func (ix *Index) Records() []*types.Record {
	recs := make([]*types.Record, 0, len(ix.records))
	for _, rec := range ix.records {
		recs = append(recs, rec)
	}
	return recs
}

// Missing returns stored records never matched during this run, ordered
// by name so the accounting output is stable across runs.
func (ix *Index) Missing() []*types.Record {
	var missing []*types.Record
	for _, rec := range ix.records {
		if rec.Stored && !rec.Seen {
			missing = append(missing, rec)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Name != missing[j].Name {
			return missing[i].Name < missing[j].Name
		}
		return missing[i].Path < missing[j].Path
	})
	return missing
}
