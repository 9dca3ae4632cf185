// Package walker enumerates candidate files under source roots.
//
// Traversal is depth-first with directory entries in name order, lazy,
// and driven by an explicit frame stack so each root is independently
// re-entrant. All skip policy (exclusions, symlinks, empty files, the
// list file itself) lives here; the classifier only ever sees files
// worth fingerprinting.
package walker

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dupkeep/pkg/errors"
	"github.com/arthur-debert/dupkeep/pkg/logging"
	"github.com/arthur-debert/dupkeep/pkg/types"
)

// SkipReason explains why the walker passed over an entry.
type SkipReason int

const (
	SkipExcluded SkipReason = iota
	SkipSymlink
	SkipEmptyFile
	SkipSpecial
	SkipListFile
	SkipUnreadableDir
	SkipUnreadableFile
)

// String returns the human-readable skip message fragment.
func (r SkipReason) String() string {
	switch r {
	case SkipExcluded:
		return "excluded by pattern"
	case SkipSymlink:
		return "symbolic link not followed"
	case SkipEmptyFile:
		return "empty file"
	case SkipSpecial:
		return "not a regular file"
	case SkipListFile:
		return "list file itself"
	case SkipUnreadableDir:
		return "directory not readable"
	case SkipUnreadableFile:
		return "file not readable"
	default:
		return "skipped"
	}
}

// Candidate is one file the walker has cleared for classification.
type Candidate struct {
	// Path is the file's path as openable from the process working
	// directory (root joined with the relative location).
	Path string

	// Rel is the directory of the file relative to the scanned root,
	// "" for files directly inside the root.
	Rel string

	// Name is the base name.
	Name string

	Size    int64
	ModTime int64
}

// Hooks receive traversal events. Either hook may be nil.
type Hooks struct {
	// OnDir fires once per successfully opened directory.
	OnDir func(path string)

	// OnSkip fires for every entry the walker passes over.
	OnSkip func(path string, reason SkipReason)
}

// Walker applies the traversal policy from Options to one or more roots.
type Walker struct {
	fs       types.FS
	opts     types.Options
	listBase string
	hooks    Hooks
}

// New creates a walker. The base name of opts.ListPath is never yielded
// as a candidate, even when the list lives inside a scanned root.
func New(fsys types.FS, opts types.Options, hooks Hooks) *Walker {
	listBase := ""
	if opts.ListPath != "" {
		listBase = filepath.Base(opts.ListPath)
	}
	return &Walker{fs: fsys, opts: opts, listBase: listBase, hooks: hooks}
}

// frame is one directory being iterated. Entries are read once when the
// frame is pushed; next points at the entry to consider.
type frame struct {
	dir     string
	rel     string
	entries []fs.DirEntry
	next    int
}

// Iter lazily produces the candidates below a single root.
type Iter struct {
	w     *Walker
	stack []*frame
}

// Walk opens root and returns an iterator over its candidates. Failure
// to open the root itself is fatal — it is a first-level argument, not a
// directory discovered along the way.
func (w *Walker) Walk(root string) (*Iter, error) {
	entries, err := w.fs.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirOpen, "cannot open source directory %s", root)
	}
	w.dirOpened(root)
	return &Iter{
		w:     w,
		stack: []*frame{{dir: root, rel: "", entries: entries}},
	}, nil
}

// Next returns the next candidate file, or ok=false when the root is
// exhausted. All skips are handled internally and reported via hooks.
func (it *Iter) Next() (Candidate, bool) {
	logger := logging.GetLogger("walker")

	for len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		if f.next >= len(f.entries) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		entry := f.entries[f.next]
		f.next++

		name := entry.Name()
		full := filepath.Join(f.dir, name)

		isDir := entry.IsDir()
		var size int64
		var modTime int64

		if entry.Type()&fs.ModeSymlink != 0 {
			if !it.w.opts.FollowSymlinks {
				it.w.skip(full, SkipSymlink)
				continue
			}
			// Resolve the link target; a dangling link is unreadable.
			info, err := it.w.fs.Stat(full)
			if err != nil {
				it.w.skip(full, SkipUnreadableFile)
				continue
			}
			if info.IsDir() {
				isDir = true
			} else if info.Mode().IsRegular() {
				size = info.Size()
				modTime = info.ModTime().Unix()
			} else {
				it.w.skip(full, SkipSpecial)
				continue
			}
		} else if isDir {
			// nothing to stat yet
		} else if entry.Type().IsRegular() {
			info, err := entry.Info()
			if err != nil {
				it.w.skip(full, SkipUnreadableFile)
				continue
			}
			size = info.Size()
			modTime = info.ModTime().Unix()
		} else {
			it.w.skip(full, SkipSpecial)
			continue
		}

		if isDir {
			if it.w.opts.Exclude != nil && it.w.opts.Exclude.MatchString(full) {
				it.w.skip(full, SkipExcluded)
				continue
			}
			// Recursion disabled: the first directory level is always
			// listed, but directories discovered inside it are not
			// descended into.
			if it.w.opts.FilesOnly {
				logger.Debug().Str("dir", full).Msg("recursion disabled, not descending")
				continue
			}
			children, err := it.w.fs.ReadDir(full)
			if err != nil {
				it.w.skip(full, SkipUnreadableDir)
				continue
			}
			it.w.dirOpened(full)
			it.stack = append(it.stack, &frame{
				dir:     full,
				rel:     joinRel(f.rel, name),
				entries: children,
			})
			continue
		}

		if it.w.opts.Exclude != nil && it.w.opts.Exclude.MatchString(full) {
			it.w.skip(full, SkipExcluded)
			continue
		}
		if it.w.listBase != "" && name == it.w.listBase {
			it.w.skip(full, SkipListFile)
			continue
		}
		if size == 0 {
			it.w.skip(full, SkipEmptyFile)
			continue
		}

		return Candidate{
			Path:    full,
			Rel:     f.rel,
			Name:    name,
			Size:    size,
			ModTime: modTime,
		}, true
	}

	return Candidate{}, false
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

func (w *Walker) dirOpened(path string) {
	if w.hooks.OnDir != nil {
		w.hooks.OnDir(path)
	}
}

func (w *Walker) skip(path string, reason SkipReason) {
	logger := logging.GetLogger("walker")
	logger.Debug().Str("path", path).Str("reason", reason.String()).Msg("entry skipped")
	if w.hooks.OnSkip != nil {
		w.hooks.OnSkip(path, reason)
	}
}
