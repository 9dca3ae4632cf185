// Package listfile reads and appends the persisted record list.
//
// The format is UTF-8 text, one record per line, seven tab-separated
// fields: fingerprint, size, modtime, originalPath, originalName, path,
// name. Lines starting with '#' are comments. The file is strictly
// append-only across runs; records already stored are never rewritten.
package listfile

import (
	"bufio"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/dupkeep/pkg/errors"
	"github.com/arthur-debert/dupkeep/pkg/logging"
	"github.com/arthur-debert/dupkeep/pkg/types"
)

const fieldCount = 7

// Load reads every record from the list at path. All returned records
// are marked Stored. The caller asked for this file explicitly, so a
// missing or unreadable list is an error, not a soft skip.
func Load(fsys types.FS, path string) ([]*types.Record, error) {
	logger := logging.GetLogger("listfile")

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrListOpen, "cannot read list file %s", path)
	}

	var records []*types.Record
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	line := 0
	for scanner.Scan() {
		line++
		rec, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		rec.Stored = true
		records = append(records, rec)
		logger.Trace().Int("line", line).Str("fingerprint", rec.Fingerprint).Msg("record loaded")
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrListOpen, "cannot read list file %s", path)
	}

	logger.Debug().Str("path", path).Int("records", len(records)).Msg("list loaded")
	return records, nil
}

// parseLine turns one list line into a record. Comment lines, blank
// lines, short lines, and lines with an empty fingerprint or name are
// all ignored.
func parseLine(raw string) (*types.Record, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	fields := strings.Split(raw, "\t")
	if len(fields) < fieldCount {
		return nil, false
	}

	fingerprint := strings.TrimSpace(fields[0])
	name := strings.TrimSpace(fields[6])
	if fingerprint == "" || name == "" {
		return nil, false
	}

	size, _ := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	modTime, _ := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)

	return &types.Record{
		Fingerprint:  fingerprint,
		Size:         size,
		ModTime:      modTime,
		OriginalPath: fields[3],
		OriginalName: fields[4],
		Path:         fields[5],
		Name:         name,
	}, true
}

// Append writes every record with Stored=false to the list at path,
// creating the file if needed. Records are written in ascending name
// order, with path breaking ties so the serialization is deterministic.
// Names containing a tab or newline cannot be represented in the
// format and are skipped with a warning rather than written corrupted.
// Returns the number of records written.
func Append(fsys types.FS, path string, records []*types.Record) (int, error) {
	logger := logging.GetLogger("listfile")

	var fresh []*types.Record
	for _, rec := range records {
		if rec.Stored {
			continue
		}
		if strings.ContainsAny(rec.Name, "\t\n") || strings.ContainsAny(rec.Path, "\t\n") {
			logger.Warn().Str("name", rec.Name).Msg("name contains tab or newline, record not persisted")
			continue
		}
		fresh = append(fresh, rec)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	sort.Slice(fresh, func(i, j int) bool {
		if fresh[i].Name != fresh[j].Name {
			return fresh[i].Name < fresh[j].Name
		}
		return fresh[i].Path < fresh[j].Path
	})

	var sb strings.Builder
	for _, rec := range fresh {
		sb.WriteString(formatLine(rec))
		sb.WriteByte('\n')
	}

	if err := fsys.AppendFile(path, []byte(sb.String()), 0644); err != nil {
		return 0, errors.Wrapf(err, errors.ErrListAppend, "cannot append to list file %s", path)
	}

	logger.Debug().Str("path", path).Int("records", len(fresh)).Msg("new records appended")
	return len(fresh), nil
}

func formatLine(rec *types.Record) string {
	fields := []string{
		rec.Fingerprint,
		strconv.FormatInt(rec.Size, 10),
		strconv.FormatInt(rec.ModTime, 10),
		rec.OriginalPath,
		rec.OriginalName,
		rec.Path,
		rec.Name,
	}
	return strings.Join(fields, "\t")
}
