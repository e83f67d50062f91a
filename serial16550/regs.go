package serial16550

// Register offsets within the 8-byte 16550 window. Offsets 0 and 1 are
// overlaid: while the divisor latch access bit is set in LCR they address
// the baud divisor instead of the data and interrupt-enable registers.
const (
	RegRHR uint8 = 0 // read: Receive Holding Register
	RegTHR uint8 = 0 // write: Transmit Holding Register
	RegDLL uint8 = 0 // write, DLAB=1: Divisor Latch low byte
	RegIER uint8 = 1 // Interrupt Enable Register
	RegDLM uint8 = 1 // write, DLAB=1: Divisor Latch high byte
	RegISR uint8 = 2 // read: Interrupt Status Register
	RegFCR uint8 = 2 // write: FIFO Control Register
	RegLCR uint8 = 3 // Line Control Register
	RegMCR uint8 = 4 // Modem Control Register
	RegLSR uint8 = 5 // read: Line Status Register
	RegMSR uint8 = 6 // read: Modem Status Register
	RegSPR uint8 = 7 // ScratchPad Register
)

// Bits interpreted by this driver. All other controller bits pass through
// untouched.
const (
	LSRRxReady byte = 1 << 0 // data waiting in the receive holding register
	LSRTxIdle  byte = 1 << 5 // transmit holding register can accept a byte
	LSRTxEmpty byte = 1 << 6 // transmitter and shift register fully idle

	LCRWordLen8 byte = 3 << 0 // 8 data bits, 1 stop bit, no parity
	LCRDLAB     byte = 1 << 7 // divisor latch access bit

	IERRxEnable byte = 1 << 0 // receive data available interrupt condition

	MCRLoopback byte = 1 << 4 // internal loopback mode
)

// Divisor for 38.4K baud with the 1.8432 MHz reference crystal. The value is
// fixed for the target platform and is not validated against the actual
// clock.
const (
	DivisorLow  byte = 0x03
	DivisorHigh byte = 0x00
)

// RegisterWindow is one UART register block. Every call performs exactly one
// access on the underlying device: implementations must not cache, merge,
// reorder or skip accesses, since both reads and writes have side effects on
// the controller (reading RHR consumes the received byte, reading LSR can
// clear error bits).
//
// Valid offsets are 0 through 7. Anything else is a contract violation, not
// a runtime condition, and implementations are free to panic on it.
type RegisterWindow interface {
	ReadReg(off uint8) byte
	WriteReg(off uint8, v byte)
}
