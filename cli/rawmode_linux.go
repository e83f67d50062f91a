//go:build linux
// +build linux

package main

import "golang.org/x/sys/unix"

// makeRaw switches fd out of canonical mode with local echo and CR
// translation off, and returns a function restoring the previous state.
func makeRaw(fd int) (func(), error) {
	old, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}

	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Iflag &^= unix.ICRNL
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, err
	}

	return func() {
		unix.IoctlSetTermios(fd, unix.TCSETS, old)
	}, nil
}
