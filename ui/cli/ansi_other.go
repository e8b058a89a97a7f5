//go:build !windows

package cli

import (
	"os"

	"golang.org/x/term"
)

// EnableANSI reports whether stdout is a terminal; unix terminals interpret
// colour escapes already.
func EnableANSI() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
