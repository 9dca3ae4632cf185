package actions

import (
	"os"
	"regexp"
	"strconv"

	"github.com/arthur-debert/dupkeep/pkg/errors"
	"github.com/arthur-debert/dupkeep/pkg/types"
)

// maxNameAttempts bounds the collision chain. Chains anywhere near this
// long are pathological, but the loop must terminate either way.
const maxNameAttempts = 10000

var trailingNumber = regexp.MustCompile(`^(.*)\.(\d+)$`)

// UniqueName returns path if nothing exists there, otherwise the first
// non-existing variant produced by bumping a trailing ".N" suffix (or
// appending ".1" when there is none). The suffix sequence is
// deterministic and monotonically increasing per colliding base name.
func UniqueName(fsys types.FS, path string) (string, error) {
	candidate := path
	for i := 0; i < maxNameAttempts; i++ {
		_, err := fsys.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = bumpSuffix(candidate)
	}
	return "", errors.Newf(errors.ErrNameResolve, "no free name for %s after %d attempts", path, maxNameAttempts)
}

// bumpSuffix increments a trailing ".N" or starts the chain at ".1".
func bumpSuffix(path string) string {
	if m := trailingNumber.FindStringSubmatch(path); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return m[1] + "." + strconv.Itoa(n+1)
		}
	}
	return path + ".1"
}
