//go:build darwin

package term

import "golang.org/x/sys/unix"

const (
	tcGets = unix.TIOCGETA
	tcSets = unix.TIOCSETA
)
