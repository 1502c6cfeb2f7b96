package sys

import (
	"os"

	"golang.org/x/sys/windows"

	"arbor.elv.sh/pkg/geom"
)

func termSize(file *os.File) (geom.Size, bool) {
	var info windows.ConsoleScreenBufferInfo
	err := windows.GetConsoleScreenBufferInfo(windows.Handle(file.Fd()), &info)
	if err != nil {
		return geom.Size{}, false
	}
	w := info.Window
	return geom.Size{Width: int(w.Right-w.Left) + 1, Height: int(w.Bottom-w.Top) + 1}, true
}

// Windows doesn't have SIGWINCH; the console size is polled instead.
func notifyResize() chan os.Signal { return make(chan os.Signal) }

func stopResize(chan os.Signal) {}
