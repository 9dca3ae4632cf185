// Package style provides the pterm-based prefixes used for warnings
// and errors that surface outside the structured log.
package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	warnStyle = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	errStyle  = pterm.NewStyle(pterm.FgRed, pterm.Bold)
)

// Warning formats a recoverable-warning line: the run continues, but
// the user should see this regardless of verbosity.
func Warning(format string, args ...interface{}) string {
	return warnStyle.Sprint("warning: ") + fmt.Sprintf(format, args...)
}

// Error formats a fatal-error line.
func Error(format string, args ...interface{}) string {
	return errStyle.Sprint("error: ") + fmt.Sprintf(format, args...)
}
