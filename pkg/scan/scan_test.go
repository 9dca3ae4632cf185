package scan_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dupkeep/pkg/errors"
	"github.com/arthur-debert/dupkeep/pkg/filesystem"
	"github.com/arthur-debert/dupkeep/pkg/listfile"
	"github.com/arthur-debert/dupkeep/pkg/output/styles"
	"github.com/arthur-debert/dupkeep/pkg/scan"
	"github.com/arthur-debert/dupkeep/pkg/testutil"
	"github.com/arthur-debert/dupkeep/pkg/types"
)

func TestMain(m *testing.M) {
	styles.SetColorEnabled(false)
	m.Run()
}

// twoTestDirs builds the canonical fixture: testdir2/saywatcopy
// duplicates testdir1/wat/saywat, and testdir2/hello shares a name but
// not content with testdir1/hello.
func twoTestDirs(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()

	dir1 := testutil.CreateDir(t, base, "testdir1")
	testutil.CreateFile(t, dir1, "hello", "hello content\n")
	testutil.CreateFile(t, dir1, "there", "there content\n")
	testutil.CreateFile(t, dir1, "wat/saywat", "say wat\n")

	dir2 := testutil.CreateDir(t, base, "testdir2")
	testutil.CreateFile(t, dir2, "hello", "a different hello\n")
	testutil.CreateFile(t, dir2, "newfilehere", "new file here\n")
	testutil.CreateFile(t, dir2, "saywatcopy", "say wat\n")

	return dir1, dir2
}

func TestRun_TwoDirectoryScenario(t *testing.T) {
	dir1, dir2 := twoTestDirs(t)

	var out, errOut bytes.Buffer
	runner := scan.New(filesystem.NewOS(), types.Options{Verbose: true}, &out, &errOut)
	require.NoError(t, runner.Run([]string{dir1, dir2}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	assert.Equal(t, "[New] "+filepath.Join(dir1, "hello"), lines[0])
	assert.Equal(t, "[New] "+filepath.Join(dir1, "there"), lines[1])
	assert.Equal(t, "[New] "+filepath.Join(dir1, "wat", "saywat"), lines[2])
	assert.Equal(t, "[New][Name-Duplicate] "+filepath.Join(dir2, "hello"), lines[3])
	assert.Equal(t, "[New] "+filepath.Join(dir2, "newfilehere"), lines[4])
	assert.Equal(t, "[New-Duplicate] "+filepath.Join(dir2, "saywatcopy"), lines[5])

	rep := runner.Reporter()
	assert.Equal(t, 3, rep.Dirs)
	assert.Equal(t, 6, rep.Files)
	assert.Equal(t, 0, rep.InList)
	assert.Equal(t, 5, rep.New)
}

func TestRun_WithStoredList(t *testing.T) {
	dir1, dir2 := twoTestDirs(t)
	listPath := testutil.CreateFile(t, t.TempDir(), "seen.list", "")

	// First run stores everything.
	var out bytes.Buffer
	first := scan.New(filesystem.NewOS(), types.Options{
		ListPath: listPath,
		StoreNew: true,
	}, &out, &out)
	require.NoError(t, first.Run([]string{dir1, dir2}))
	assert.Equal(t, 5, first.Reporter().New)

	// Second run finds all content already in the list.
	second := scan.New(filesystem.NewOS(), types.Options{
		ListPath: listPath,
	}, &out, &out)
	require.NoError(t, second.Run([]string{dir1, dir2}))

	rep := second.Reporter()
	assert.Equal(t, 5, rep.Loaded)
	assert.Equal(t, 6, rep.Files)
	assert.Equal(t, 0, rep.New)
	// saywatcopy matches the same stored record as wat/saywat.
	assert.Equal(t, 6, rep.InList)
}

func TestRun_StoreIsIdempotent(t *testing.T) {
	dir1, _ := twoTestDirs(t)
	listDir := t.TempDir()
	listPath := testutil.CreateFile(t, listDir, "seen.list", "")

	fsys := filesystem.NewOS()
	opts := types.Options{ListPath: listPath, StoreNew: true}

	var out bytes.Buffer
	require.NoError(t, scan.New(fsys, opts, &out, &out).Run([]string{dir1}))
	afterFirst := testutil.ReadFile(t, listPath)
	require.NotEmpty(t, afterFirst)

	require.NoError(t, scan.New(fsys, opts, &out, &out).Run([]string{dir1}))
	afterSecond := testutil.ReadFile(t, listPath)

	// Nothing new to append on an unchanged source.
	assert.Equal(t, afterFirst, afterSecond)
}

func TestRun_MissingAccounting(t *testing.T) {
	srcDir := t.TempDir()
	testutil.CreateFile(t, srcDir, "present", "present content")

	listDir := t.TempDir()
	listPath := testutil.CreateFile(t, listDir, "seen.list",
		"feedfeedfeed\t10\t1700000000\t\t\told\tvanished.txt\n")

	var out bytes.Buffer
	runner := scan.New(filesystem.NewOS(), types.Options{
		ListPath:          listPath,
		MissingAccounting: true,
	}, &out, &out)
	require.NoError(t, runner.Run([]string{srcDir}))

	assert.Equal(t, 1, runner.Reporter().Missing)
	assert.Contains(t, out.String(), "[Missing] old/vanished.txt")
}

func TestRun_SeenRecordsAreNotMissing(t *testing.T) {
	srcDir := t.TempDir()
	testutil.CreateFile(t, srcDir, "keeper", "keeper content")

	// Store the file, then re-scan the unchanged source.
	listDir := t.TempDir()
	listPath := testutil.CreateFile(t, listDir, "seen.list", "")

	fsys := filesystem.NewOS()
	var out bytes.Buffer
	require.NoError(t, scan.New(fsys, types.Options{
		ListPath: listPath,
		StoreNew: true,
	}, &out, &out).Run([]string{srcDir}))

	runner := scan.New(fsys, types.Options{
		ListPath:          listPath,
		MissingAccounting: true,
	}, &out, &out)
	require.NoError(t, runner.Run([]string{srcDir}))

	assert.Equal(t, 0, runner.Reporter().Missing)
	assert.Equal(t, 1, runner.Reporter().InList)
}

func TestRun_DeleteDuplicates(t *testing.T) {
	dir1, dir2 := twoTestDirs(t)

	var out bytes.Buffer
	runner := scan.New(filesystem.NewOS(), types.Options{
		Actions: types.Actions{Delete: true},
	}, &out, &out)
	require.NoError(t, runner.Run([]string{dir1, dir2}))

	// The duplicate is gone; the canonical first file stays.
	assert.True(t, testutil.FileExists(t, filepath.Join(dir1, "wat", "saywat")))
	assert.False(t, testutil.FileExists(t, filepath.Join(dir2, "saywatcopy")))
}

func TestRun_CopyNewFilesWithCollision(t *testing.T) {
	srcDir := t.TempDir()
	testutil.CreateFile(t, srcDir, "report.txt", "fresh data")
	destDir := t.TempDir()
	testutil.CreateFile(t, destDir, "report.txt", "already here")

	var out bytes.Buffer
	runner := scan.New(filesystem.NewOS(), types.Options{
		Actions: types.Actions{CopyTo: destDir},
	}, &out, &out)
	require.NoError(t, runner.Run([]string{srcDir}))

	assert.Equal(t, "already here", testutil.ReadFile(t, filepath.Join(destDir, "report.txt")))
	assert.Equal(t, "fresh data", testutil.ReadFile(t, filepath.Join(destDir, "report.txt.1")))
}

func TestRun_EmptyFilesNeverScanned(t *testing.T) {
	srcDir := t.TempDir()
	testutil.CreateFile(t, srcDir, "empty", "")
	testutil.CreateFile(t, srcDir, "real", "content")

	var out, errOut bytes.Buffer
	runner := scan.New(filesystem.NewOS(), types.Options{Verbose: true}, &out, &errOut)
	require.NoError(t, runner.Run([]string{srcDir}))

	assert.Equal(t, 1, runner.Reporter().Files)
	assert.NotContains(t, out.String(), "empty")
	assert.Contains(t, errOut.String(), "empty file")
}

func TestRun_ListFileNeverScanned(t *testing.T) {
	srcDir := t.TempDir()
	listPath := testutil.CreateFile(t, srcDir, "dupkeep.list", "")
	testutil.CreateFile(t, srcDir, "data", "content")

	var out bytes.Buffer
	runner := scan.New(filesystem.NewOS(), types.Options{
		ListPath: listPath,
		StoreNew: true,
	}, &out, &out)
	require.NoError(t, runner.Run([]string{srcDir}))

	assert.Equal(t, 1, runner.Reporter().Files)

	// The appended record is for data, never for the list itself.
	content := testutil.ReadFile(t, listPath)
	assert.Contains(t, content, "data")
	assert.NotContains(t, content, "dupkeep.list")
}

func TestRun_FatalSetupErrors(t *testing.T) {
	tempDir := t.TempDir()
	testutil.CreateFile(t, tempDir, "afile", "x")

	fsys := filesystem.NewOS()
	var out bytes.Buffer

	tests := []struct {
		name  string
		opts  types.Options
		roots []string
		code  errors.ErrorCode
	}{
		{
			name:  "no sources",
			roots: nil,
			code:  errors.ErrNoSources,
		},
		{
			name:  "source does not exist",
			roots: []string{filepath.Join(tempDir, "nope")},
			code:  errors.ErrSourceInvalid,
		},
		{
			name:  "source is a file",
			roots: []string{filepath.Join(tempDir, "afile")},
			code:  errors.ErrSourceInvalid,
		},
		{
			name:  "copy destination missing",
			opts:  types.Options{Actions: types.Actions{CopyTo: filepath.Join(tempDir, "nodest")}},
			roots: []string{tempDir},
			code:  errors.ErrDestInvalid,
		},
		{
			name:  "move destination is a file",
			opts:  types.Options{Actions: types.Actions{MoveTo: filepath.Join(tempDir, "afile")}},
			roots: []string{tempDir},
			code:  errors.ErrDestInvalid,
		},
		{
			name:  "explicit list missing",
			opts:  types.Options{ListPath: filepath.Join(tempDir, "nolist")},
			roots: []string{tempDir},
			code:  errors.ErrListOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := scan.New(fsys, tt.opts, &out, &out)
			err := runner.Run(tt.roots)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code),
				"expected %s, got %v", tt.code, err)
		})
	}
}

func TestRun_AppendedRecordsRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	testutil.CreateFile(t, srcDir, "sub/leaf.txt", "leaf content")

	listDir := t.TempDir()
	listPath := testutil.CreateFile(t, listDir, "seen.list", "")

	fsys := filesystem.NewOS()
	var out bytes.Buffer
	require.NoError(t, scan.New(fsys, types.Options{
		ListPath: listPath,
		StoreNew: true,
	}, &out, &out).Run([]string{srcDir}))

	records, err := listfile.Load(fsys, listPath)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "sub", rec.Path)
	assert.Equal(t, "leaf.txt", rec.Name)
	assert.Equal(t, int64(len("leaf content")), rec.Size)
	assert.True(t, rec.Stored)
	assert.Len(t, rec.Fingerprint, 64)
}
