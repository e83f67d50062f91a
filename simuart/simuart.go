// Package simuart models a 16550-compatible UART controller in software so
// the polled driver can run and be tested without hardware. The model keeps
// the register semantics the driver depends on: the DLAB overlay on offsets
// 0 and 1, line-status readiness bits, MCR internal loopback, and the FIFO
// reset bit. It also records every register access in a journal so tests can
// assert exact sequences.
package simuart

import (
	"io"
	"sync"
)

// Device register model. The numeric values mirror the 16550 programming
// table; they are deliberately local so the model stands on its own, the
// same way a real controller does not depend on its driver.
const (
	lcrDLAB byte = 1 << 7
	mcrLoop byte = 1 << 4

	lsrRxReady byte = 1 << 0
	lsrTxIdle  byte = 1 << 5
	lsrTxEmpty byte = 1 << 6

	fcrRxReset byte = 1 << 1

	isrNonePending byte = 0x01
)

// Op is one register access as observed by the device.
type Op struct {
	Write bool
	Off   uint8
	Val   byte
}

// Device is a software 16550. The zero value is a powered-up controller with
// empty FIFOs and an always-ready transmitter. All methods are safe for use
// from multiple goroutines, so an interactive front end can push received
// bytes while the driver polls.
type Device struct {
	mu sync.Mutex

	dll, dlm byte
	ier      byte
	fcr      byte
	lcr      byte
	mcr      byte
	spr      byte

	rx []byte // bytes waiting to be received, front first
	tx []byte // bytes accepted for transmission

	// TxReadyAfter and RxReadyAfter delay the corresponding line-status
	// bit by that many LSR reads, modelling a busy transmitter or a slow
	// peer. Zero means the transmitter is always ready and received data
	// is visible immediately.
	TxReadyAfter int
	RxReadyAfter int

	// TxFault is XORed into every byte carried through the internal
	// loopback path, modelling a noisy loop for integrity tests.
	TxFault byte

	out     io.Writer
	journal []Op
}

func New() *Device {
	return &Device{}
}

// SetOutput mirrors every transmitted byte (loopback excluded) to w, so a
// front end can display the outgoing stream live. The tx record is kept
// either way.
func (d *Device) SetOutput(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = w
}

func (d *Device) dlab() bool {
	return d.lcr&lcrDLAB != 0
}

func (d *Device) ReadReg(off uint8) byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := d.readLocked(off)
	d.journal = append(d.journal, Op{Off: off, Val: v})
	return v
}

func (d *Device) readLocked(off uint8) byte {
	switch off {
	case 0:
		if d.dlab() {
			return d.dll
		}
		if len(d.rx) == 0 {
			return 0
		}
		v := d.rx[0]
		d.rx = d.rx[1:]
		return v
	case 1:
		if d.dlab() {
			return d.dlm
		}
		return d.ier
	case 2:
		return isrNonePending
	case 3:
		return d.lcr
	case 4:
		return d.mcr
	case 5:
		return d.lsrLocked()
	case 6:
		return 0
	case 7:
		return d.spr
	}
	panic("simuart: register offset out of range")
}

func (d *Device) lsrLocked() byte {
	var v byte
	if d.TxReadyAfter > 0 {
		d.TxReadyAfter--
	} else {
		v |= lsrTxIdle | lsrTxEmpty
	}
	if len(d.rx) > 0 {
		if d.RxReadyAfter > 0 {
			d.RxReadyAfter--
		} else {
			v |= lsrRxReady
		}
	}
	return v
}

func (d *Device) WriteReg(off uint8, v byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.journal = append(d.journal, Op{Write: true, Off: off, Val: v})
	d.writeLocked(off, v)
}

func (d *Device) writeLocked(off uint8, v byte) {
	switch off {
	case 0:
		if d.dlab() {
			d.dll = v
			return
		}
		d.transmitLocked(v)
	case 1:
		if d.dlab() {
			d.dlm = v
			return
		}
		d.ier = v
	case 2:
		if v&fcrRxReset != 0 {
			d.rx = nil
		}
		d.fcr = v
	case 3:
		d.lcr = v
	case 4:
		d.mcr = v & 0x1F
	case 5, 6:
		// read-only registers, the write is recorded but has no effect
	case 7:
		d.spr = v
	default:
		panic("simuart: register offset out of range")
	}
}

func (d *Device) transmitLocked(v byte) {
	if d.mcr&mcrLoop != 0 {
		d.rx = append(d.rx, v^d.TxFault)
		return
	}
	d.tx = append(d.tx, v)
	if d.out != nil {
		d.out.Write([]byte{v})
	}
}

// PushRX appends bytes to the receive queue, as if a peer had sent them.
func (d *Device) PushRX(b ...byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rx = append(d.rx, b...)
}

// TxBytes returns a copy of everything transmitted so far.
func (d *Device) TxBytes() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.tx...)
}

// Journal returns a copy of the access log.
func (d *Device) Journal() []Op {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Op(nil), d.journal...)
}

// ResetJournal discards the access log, typically after test setup writes.
func (d *Device) ResetJournal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = nil
}

// Divisor returns the programmed baud divisor.
func (d *Device) Divisor() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint16(d.dlm)<<8 | uint16(d.dll)
}

func (d *Device) IER() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ier
}

func (d *Device) LCR() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lcr
}

func (d *Device) MCR() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mcr
}
