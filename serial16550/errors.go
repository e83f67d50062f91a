package serial16550

import "errors"

var (
	ErrorTimeout          = errors.New("The operation did not complete in time")
	ErrorNoDevice         = errors.New("No 16550 controller found at this window")
	ErrorLoopbackMismatch = errors.New("Loopback returned different data than was sent")
	ErrorBadChecksum      = errors.New("Received frame has an invalid checksum")
)
