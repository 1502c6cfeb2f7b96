// Package sys provide system utilities with the same API across OSes.
//
// The subpackage eunix provides Unix-specific utilities.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"

	"arbor.elv.sh/pkg/geom"
)

// Size used when the terminal reports a zero size, as serial consoles do.
var defaultSize = geom.Size{Width: 80, Height: 24}

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TermSize queries the size of the terminal referenced by the given file, in
// columns and rows. It returns false if the size cannot be determined.
func TermSize(file *os.File) (geom.Size, bool) { return termSize(file) }

// NotifyResize returns a channel on which terminal resize signals are
// delivered. The channel never delivers anything on systems without such a
// signal.
func NotifyResize() chan os.Signal { return notifyResize() }

// StopResize stops delivering resize signals to ch.
func StopResize(ch chan os.Signal) { stopResize(ch) }
