package filesystem

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dupkeep/pkg/types"
)

// CopyFile streams src to dst through fsys. The destination is created
// (or truncated if it already exists); callers that must not overwrite
// resolve the destination name before calling.
func CopyFile(fsys types.FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fsys.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fsys.Remove(dst)
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// MoveFile relocates src to dst. Rename is tried first; when it fails
// (typically a cross-device move) the file is copied and the source
// removed.
func MoveFile(fsys types.FS, src, dst string) error {
	if err := fsys.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(fsys, src, dst); err != nil {
		return err
	}
	return fsys.Remove(src)
}
