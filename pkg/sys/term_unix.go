//go:build unix

package sys

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"arbor.elv.sh/pkg/geom"
)

func termSize(file *os.File) (geom.Size, bool) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return geom.Size{}, false
	}
	size := geom.Size{Width: int(ws.Col), Height: int(ws.Row)}
	if size.Width == 0 {
		size.Width = defaultSize.Width
	}
	if size.Height == 0 {
		size.Height = defaultSize.Height
	}
	return size, true
}

func notifyResize() chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	return ch
}

func stopResize(ch chan os.Signal) { signal.Stop(ch) }
