package serial16550_test

import (
	"testing"
	"time"

	"github.com/fetch150zy/junkv-serial/serial16550"
)

func TestPutByteTimeout(t *testing.T) {
	port, dev := newTestPort()
	dev.TxReadyAfter = 1 << 30 // never ready within the test

	err := port.PutByteTimeout('x', 5*time.Millisecond)
	if err != serial16550.ErrorTimeout {
		t.Fatalf("err = %v, want ErrorTimeout", err)
	}
	for _, op := range dev.Journal() {
		if op.Write {
			t.Fatalf("data register was written despite the timeout: %+v", op)
		}
	}
}

func TestGetByteTimeout(t *testing.T) {
	port, dev := newTestPort()

	_, err := port.GetByteTimeout(5 * time.Millisecond)
	if err != serial16550.ErrorTimeout {
		t.Fatalf("err = %v, want ErrorTimeout", err)
	}
	for _, op := range dev.Journal() {
		if op.Off != serial16550.RegLSR {
			t.Fatalf("non-status register touched despite the timeout: %+v", op)
		}
	}

	dev.PushRX('Z')
	b, err := port.GetByteTimeout(5 * time.Millisecond)
	if err != nil || b != 'Z' {
		t.Fatalf("GetByteTimeout = %q, %v; want 'Z', nil", b, err)
	}
}

func TestDrainWaitsForTransmitterEmpty(t *testing.T) {
	port, dev := newTestPort()
	dev.TxReadyAfter = 2

	port.Drain()

	ops := dev.Journal()
	if len(ops) != 3 {
		t.Fatalf("got %d accesses, want 3 LSR polls: %+v", len(ops), ops)
	}
	for i, op := range ops {
		if op.Write || op.Off != serial16550.RegLSR {
			t.Fatalf("access %d = %+v, want LSR read", i, op)
		}
	}
	if ops[2].Val&serial16550.LSRTxEmpty == 0 {
		t.Fatalf("final poll did not report the transmitter empty: %+v", ops[2])
	}
}

// deadWindow models an empty window: writes vanish, reads float high.
type deadWindow struct{}

func (deadWindow) ReadReg(off uint8) byte     { return 0xFF }
func (deadWindow) WriteReg(off uint8, v byte) {}

func TestProbe(t *testing.T) {
	port, _ := newTestPort()
	if !port.Probe() {
		t.Fatal("Probe failed against the simulated controller")
	}

	dead := serial16550.New(deadWindow{}, serial16550.Config{})
	if dead.Probe() {
		t.Fatal("Probe succeeded against a window with no device")
	}
}

func TestLoopback(t *testing.T) {
	port, dev := newTestPort()

	if err := port.LoopbackTest(64); err != nil {
		t.Fatalf("LoopbackTest: %v", err)
	}
	if mcr := dev.MCR(); mcr != 0 {
		t.Fatalf("MCR = %#02x after the test, want loopback bit restored", mcr)
	}
	if tx := dev.TxBytes(); len(tx) != 0 {
		t.Fatalf("%d bytes left the controller during loopback", len(tx))
	}
}

func TestLoopbackDetectsCorruption(t *testing.T) {
	port, dev := newTestPort()
	dev.TxFault = 0x01

	if err := port.LoopbackTest(64); err == nil {
		t.Fatal("LoopbackTest passed over a corrupting loop")
	}
}

func TestBufferedAndLineStatus(t *testing.T) {
	port, dev := newTestPort()

	if port.Buffered() {
		t.Fatal("Buffered reported data on an idle controller")
	}
	dev.PushRX('a')
	if !port.Buffered() {
		t.Fatal("Buffered missed a queued byte")
	}
	if lsr := port.LineStatus(); lsr&serial16550.LSRRxReady == 0 {
		t.Fatalf("LineStatus = %#02x, want the receive-ready bit set", lsr)
	}
}
