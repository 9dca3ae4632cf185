// Package actions executes the configured per-file actions: deleting
// duplicates and copying or moving new files to a destination.
//
// Every failure here is a warning, never a stop — one file's failed
// action must not block classification of the files after it.
package actions

import (
	"path/filepath"

	"github.com/arthur-debert/dupkeep/pkg/errors"
	"github.com/arthur-debert/dupkeep/pkg/filesystem"
	"github.com/arthur-debert/dupkeep/pkg/logging"
	"github.com/arthur-debert/dupkeep/pkg/types"
)

// Engine applies the configured actions to classified files.
type Engine struct {
	fs   types.FS
	opts types.Actions
}

// New creates an engine for the given action configuration.
func New(fsys types.FS, opts types.Actions) *Engine {
	return &Engine{fs: fsys, opts: opts}
}

// Apply runs every configured action that matches the tag. It returns
// the tags of actions that succeeded plus a warning per failed action.
// Delete applies to duplicates; copy and move apply to new files and
// run independently when both destinations are set.
func (e *Engine) Apply(path string, tag types.Tag) (applied []types.Tag, warnings []error) {
	logger := logging.GetLogger("actions")

	if tag.IsDuplicate() && e.opts.Delete {
		if err := e.fs.Remove(path); err != nil {
			warnings = append(warnings, errors.Wrapf(err, errors.ErrActionDelete, "cannot delete %s", path))
		} else {
			logger.Info().Str("path", path).Msg("duplicate deleted")
			applied = append(applied, types.TagDelete)
		}
	}

	if tag != types.TagNew {
		return applied, warnings
	}

	if e.opts.CopyTo != "" {
		dst, err := e.resolveDestination(e.opts.CopyTo, path)
		if err == nil {
			err = filesystem.CopyFile(e.fs, path, dst)
		}
		if err != nil {
			warnings = append(warnings, errors.Wrapf(err, errors.ErrActionCopy, "cannot copy %s", path))
		} else {
			logger.Info().Str("path", path).Str("dest", dst).Msg("file copied")
			applied = append(applied, types.TagCopy)
		}
	}

	if e.opts.MoveTo != "" {
		dst, err := e.resolveDestination(e.opts.MoveTo, path)
		if err == nil {
			err = filesystem.MoveFile(e.fs, path, dst)
		}
		if err != nil {
			warnings = append(warnings, errors.Wrapf(err, errors.ErrActionMove, "cannot move %s", path))
		} else {
			logger.Info().Str("path", path).Str("dest", dst).Msg("file moved")
			applied = append(applied, types.TagMove)
		}
	}

	return applied, warnings
}

// resolveDestination joins the destination directory with the source
// base name, resolving collisions unless clobbering is allowed.
func (e *Engine) resolveDestination(destDir, src string) (string, error) {
	dst := filepath.Join(destDir, filepath.Base(src))
	if e.opts.Clobber {
		return dst, nil
	}
	return UniqueName(e.fs, dst)
}
