//go:build linux || solaris || darwin || dragonfly || freebsd || netbsd || openbsd

// Package eunix provides extra Unix-specific system utilities.
package eunix

import (
	"os"

	"golang.org/x/sys/unix"
)

// MakeRaw puts the terminal into a mode where input is available byte by byte
// without echo. Signals generated by the terminal, such as Ctrl-C, still work.
// It returns a function that restores the previous mode.
func MakeRaw(file *os.File) (restore func() error, err error) {
	fd := int(file.Fd())
	old, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	if err != nil {
		return nil, err
	}
	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Iflag &^= unix.ICRNL
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, setAttrNowIOCTL, &raw); err != nil {
		return nil, err
	}
	return func() error { return unix.IoctlSetTermios(fd, setAttrNowIOCTL, old) }, nil
}
