//go:build linux || solaris || darwin || dragonfly || freebsd || netbsd || openbsd

package demo

import (
	"os"

	"arbor.elv.sh/pkg/sys/eunix"
)

func setupTerminal(in *os.File) (restore func() error, err error) {
	return eunix.MakeRaw(in)
}
