// Package report accumulates the run's counters and emits the per-file
// tag lines, skip notices, warnings, missing accounting, and the final
// summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dupkeep/pkg/output/styles"
	"github.com/arthur-debert/dupkeep/pkg/style"
	"github.com/arthur-debert/dupkeep/pkg/types"
	"github.com/arthur-debert/dupkeep/pkg/walker"
)

// Reporter owns the six aggregate counters. It is not safe for
// concurrent use; the scan is sequential.
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	Loaded  int
	Dirs    int
	Files   int
	InList  int
	New     int
	Missing int
}

// New creates a reporter. Tag lines and the summary go to out; skip
// notices and warnings go to errOut.
func New(out, errOut io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, errOut: errOut, verbose: verbose}
}

// RecordsLoaded notes how many records came from the persisted list.
func (r *Reporter) RecordsLoaded(n int) {
	r.Loaded += n
}

// DirScanned bumps the directory counter.
func (r *Reporter) DirScanned() {
	r.Dirs++
}

// FileScanned counts one classified file. Files that never reach the
// classifier (skips of any kind) must not be passed here.
func (r *Reporter) FileScanned(tag types.Tag) {
	r.Files++
	switch tag {
	case types.TagInList:
		r.InList++
	case types.TagNew:
		r.New++
	}
}

// File emits the verbose per-file line: class tag, optional
// [Name-Duplicate], then action tags in configured order, then the path.
func (r *Reporter) File(display string, tags []types.Tag) {
	if !r.verbose {
		return
	}
	var sb strings.Builder
	for _, tag := range tags {
		sb.WriteString(styles.Render(styleFor(tag), string(tag)))
	}
	fmt.Fprintf(r.out, "%s %s\n", sb.String(), display)
}

// Skip emits a verbose-gated notice for a pure skip. Skips never touch
// the counters.
func (r *Reporter) Skip(path string, reason walker.SkipReason) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.errOut, "Skipping %s (%s)\n", path, reason)
}

// Warn emits an unconditional warning; the run continues.
func (r *Reporter) Warn(err error) {
	fmt.Fprintln(r.errOut, style.Warning("%v", err))
}

// MissingRecord reports one stored record never matched this run.
func (r *Reporter) MissingRecord(rec *types.Record) {
	r.Missing++
	fmt.Fprintf(r.out, "%s %s\n", styles.Render("Missing", "[Missing]"), rec.Location())
}

// summary line order and wording are part of the tool's interface
var summaryLabels = []string{
	"Files loaded from list",
	"Directories scanned",
	"Files scanned",
	"Files found already in the list",
	"New files found",
	"Total missing files",
}

// Summary prints the aggregate report: left-justified 32-char labels,
// right-justified 5-digit counts.
func (r *Reporter) Summary() {
	counts := []int{r.Loaded, r.Dirs, r.Files, r.InList, r.New, r.Missing}
	for i, label := range summaryLabels {
		fmt.Fprintf(r.out, "%-32s%5d\n", label, counts[i])
	}
}

func styleFor(tag types.Tag) string {
	switch tag {
	case types.TagNew:
		return "New"
	case types.TagNewDuplicate:
		return "NewDuplicate"
	case types.TagInList:
		return "InList"
	case types.TagNameDuplicate:
		return "NameDuplicate"
	default:
		return "Action"
	}
}
