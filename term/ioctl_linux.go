//go:build linux

package term

import "golang.org/x/sys/unix"

const (
	tcGets = unix.TCGETS
	tcSets = unix.TCSETS
)
