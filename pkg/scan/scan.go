// Package scan wires the walker, classifier, action engine, and
// reporter into a single sequential run. One file is fully
// fingerprinted and acted on before the next is considered.
package scan

import (
	"io"

	"github.com/arthur-debert/dupkeep/pkg/actions"
	"github.com/arthur-debert/dupkeep/pkg/classify"
	"github.com/arthur-debert/dupkeep/pkg/errors"
	"github.com/arthur-debert/dupkeep/pkg/index"
	"github.com/arthur-debert/dupkeep/pkg/listfile"
	"github.com/arthur-debert/dupkeep/pkg/logging"
	"github.com/arthur-debert/dupkeep/pkg/report"
	"github.com/arthur-debert/dupkeep/pkg/types"
	"github.com/arthur-debert/dupkeep/pkg/walker"
)

// Runner owns all per-run state: the content index, the counters, and
// the configured collaborators. No globals; a fresh Runner is a fresh
// run.
type Runner struct {
	fs       types.FS
	opts     types.Options
	ix       *index.Index
	reporter *report.Reporter
	engine   *actions.Engine
}

// New creates a runner writing tag lines and the summary to out and
// skip notices and warnings to errOut.
func New(fsys types.FS, opts types.Options, out, errOut io.Writer) *Runner {
	ix := index.New(opts.Verbose)
	return &Runner{
		fs:       fsys,
		opts:     opts,
		ix:       ix,
		reporter: report.New(out, errOut, opts.Verbose),
		engine:   actions.New(fsys, opts.Actions),
	}
}

// Reporter exposes the run's counters, mainly for tests.
func (r *Runner) Reporter() *report.Reporter {
	return r.reporter
}

// Run executes the full scan over the given source roots. Any returned
// error is from the fatal setup class; everything recoverable is
// handled inline and the scan continues.
func (r *Runner) Run(roots []string) error {
	logger := logging.GetLogger("scan")

	if err := r.validate(roots); err != nil {
		return err
	}

	if r.opts.ListPath != "" {
		records, err := listfile.Load(r.fs, r.opts.ListPath)
		if err != nil {
			return err
		}
		for _, rec := range records {
			r.ix.Insert(rec)
		}
		r.reporter.RecordsLoaded(len(records))
	}

	classifier := classify.New(r.fs, r.ix)
	w := walker.New(r.fs, r.opts, walker.Hooks{
		OnDir:  func(string) { r.reporter.DirScanned() },
		OnSkip: r.reporter.Skip,
	})

	for _, root := range roots {
		it, err := w.Walk(root)
		if err != nil {
			// The root is a first-level argument; not being able to
			// open it is fatal.
			return err
		}
		for {
			cand, ok := it.Next()
			if !ok {
				break
			}
			r.processFile(classifier, cand)
		}
	}

	if r.opts.StoreNew && r.opts.ListPath != "" {
		n, err := listfile.Append(r.fs, r.opts.ListPath, r.ix.Records())
		if err != nil {
			r.reporter.Warn(err)
		} else {
			logger.Info().Int("records", n).Str("list", r.opts.ListPath).Msg("list updated")
		}
	}

	if r.opts.MissingAccounting {
		for _, rec := range r.ix.Missing() {
			r.reporter.MissingRecord(rec)
		}
	}

	r.reporter.Summary()
	return nil
}

// processFile classifies one candidate and applies the configured
// actions. Unreadable files are reported as walker-level skips and
// never reach the counters.
func (r *Runner) processFile(classifier *classify.Classifier, cand walker.Candidate) {
	res, err := classifier.Classify(cand)
	if err != nil {
		r.reporter.Skip(cand.Path, walker.SkipUnreadableFile)
		return
	}
	r.reporter.FileScanned(res.Tag)

	tags := []types.Tag{res.Tag}
	if res.NameDuplicate {
		tags = append(tags, types.TagNameDuplicate)
	}

	applied, warnings := r.engine.Apply(cand.Path, res.Tag)
	tags = append(tags, applied...)
	for _, warn := range warnings {
		r.reporter.Warn(warn)
	}

	r.reporter.File(cand.Path, tags)
}

// validate enforces the fatal setup class: at least one source, every
// source is a directory, every configured destination is a directory.
func (r *Runner) validate(roots []string) error {
	if len(roots) == 0 {
		return errors.New(errors.ErrNoSources, "at least one source directory is required")
	}
	for _, root := range roots {
		info, err := r.fs.Stat(root)
		if err != nil {
			return errors.Wrapf(err, errors.ErrSourceInvalid, "source %s", root)
		}
		if !info.IsDir() {
			return errors.Newf(errors.ErrSourceInvalid, "source %s is not a directory", root)
		}
	}
	for _, dest := range []string{r.opts.Actions.CopyTo, r.opts.Actions.MoveTo} {
		if dest == "" {
			continue
		}
		info, err := r.fs.Stat(dest)
		if err != nil {
			return errors.Wrapf(err, errors.ErrDestInvalid, "destination %s", dest)
		}
		if !info.IsDir() {
			return errors.Newf(errors.ErrDestInvalid, "destination %s is not a directory", dest)
		}
	}
	return nil
}
