package types

import "regexp"

// Options holds the scan configuration after flag and config-file
// resolution. It is immutable for the duration of a run.
type Options struct {
	// FilesOnly disables recursion below the first directory level. The
	// first (argument) directory is still opened and listed; directories
	// discovered inside it are not descended into.
	FilesOnly bool

	// FollowSymlinks enables resolving symbolic links instead of
	// skipping them.
	FollowSymlinks bool

	// Exclude, when non-nil, suppresses any directory or file whose path
	// matches. Matching directories are skipped as a whole subtree.
	Exclude *regexp.Regexp

	// ListPath is the persisted list file, "" when no list is in play.
	ListPath string

	// StoreNew appends newly discovered records to the list at the end
	// of the run.
	StoreNew bool

	// MissingAccounting reports stored records never matched this run.
	MissingAccounting bool

	// Verbose enables per-file tag output and name-collision tracking.
	Verbose bool

	Actions Actions
}

// Actions configures what happens to files after classification. Delete
// applies to duplicates; CopyTo and MoveTo apply to new files and may be
// set simultaneously, in which case both execute independently.
type Actions struct {
	Delete bool
	CopyTo string
	MoveTo string

	// Clobber allows copy/move to overwrite an existing file at the
	// destination. When false, collisions are resolved by suffixing.
	Clobber bool
}

// Any reports whether at least one action is configured.
func (a Actions) Any() bool {
	return a.Delete || a.CopyTo != "" || a.MoveTo != ""
}
