// Package classify fingerprints candidate files and relates them to the
// content index.
package classify

import (
	"github.com/arthur-debert/dupkeep/pkg/index"
	"github.com/arthur-debert/dupkeep/pkg/internal/hashutil"
	"github.com/arthur-debert/dupkeep/pkg/logging"
	"github.com/arthur-debert/dupkeep/pkg/types"
	"github.com/arthur-debert/dupkeep/pkg/walker"
)

// Result is the outcome of classifying one file.
type Result struct {
	Fingerprint string

	// Tag is TagInList, TagNewDuplicate, or TagNew.
	Tag types.Tag

	// NameDuplicate is orthogonal to Tag: the base name was previously
	// seen under different content. Only set when name tracking is on.
	NameDuplicate bool

	// Record is the canonical record for the fingerprint. For duplicates
	// it is the pre-existing record, untouched except for Seen.
	Record *types.Record
}

// Classifier decides each candidate's relationship to the index.
type Classifier struct {
	fs types.FS
	ix *index.Index
}

// New creates a classifier over the given index.
func New(fsys types.FS, ix *index.Index) *Classifier {
	return &Classifier{fs: fsys, ix: ix}
}

// Classify fingerprints the candidate and updates the index for new
// content. The canonical record for a known fingerprint is never
// replaced; a stored match only gains its Seen mark.
func (c *Classifier) Classify(cand walker.Candidate) (Result, error) {
	logger := logging.GetLogger("classify")

	fingerprint, err := hashutil.Fingerprint(c.fs, cand.Path)
	if err != nil {
		return Result{}, err
	}

	if existing, ok := c.ix.Lookup(fingerprint); ok {
		res := Result{Fingerprint: fingerprint, Record: existing}
		if existing.Stored {
			existing.Seen = true
			res.Tag = types.TagInList
		} else {
			res.Tag = types.TagNewDuplicate
		}
		logger.Debug().
			Str("path", cand.Path).
			Str("fingerprint", fingerprint).
			Str("tag", string(res.Tag)).
			Msg("duplicate content")
		return res, nil
	}

	rec := &types.Record{
		Fingerprint: fingerprint,
		Size:        cand.Size,
		ModTime:     cand.ModTime,
		Path:        cand.Rel,
		Name:        cand.Name,
	}
	nameDup := c.ix.NameCollision(cand.Name, fingerprint)
	c.ix.Insert(rec)

	logger.Debug().
		Str("path", cand.Path).
		Str("fingerprint", fingerprint).
		Bool("nameDuplicate", nameDup).
		Msg("new content recorded")

	return Result{
		Fingerprint:   fingerprint,
		Tag:           types.TagNew,
		NameDuplicate: nameDup,
		Record:        rec,
	}, nil
}
