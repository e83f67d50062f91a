// Package mmio exposes the UART register block of a physical controller as
// a serial16550.RegisterWindow, using the platform-supplied base address of
// the 8-byte window.
package mmio

import (
	"github.com/fetch150zy/junkv-serial/serial16550"
)

// WindowSize is the span of a 16550 register block in bytes.
const WindowSize = 8

// Window is a register window over physical device memory.
type Window interface {
	serial16550.RegisterWindow
	Close() error
}

// Map opens the register window whose first register sits at the physical
// address base.
func Map(base uint64) (Window, error) {
	return mapInternal(base)
}
