package serial16550

// Port drives one 16550-compatible UART controller through a RegisterWindow.
// The driver is strictly polled: every operation either touches a register
// and returns, or spins on a line-status bit until the hardware is ready.
// A Port has no internal locking; exactly one execution context may use it
// at a time, and Init must run before any transfer operation.
type Port struct {
	win    RegisterWindow
	config Config
}

type LogFunc func(level int, format string, param ...interface{})

type Config struct {
	LogFunc LogFunc
}

func New(win RegisterWindow, config Config) *Port {
	return &Port{
		win:    win,
		config: config,
	}
}

func (p *Port) log(level int, format string, param ...interface{}) {
	if p.config.LogFunc != nil {
		p.config.LogFunc(level, format, param...)
	}
}

// Init programs the controller into its operating mode: interrupts masked
// while reconfiguring, baud divisor 3 (38.4K on the 1.8432 MHz reference
// crystal), 8N1 framing, and finally the receive-data-available condition
// re-enabled. This driver installs no interrupt handler for that condition;
// on a platform where the line is routed to an interrupt controller the
// surrounding system must service or mask it.
func (p *Port) Init() {
	p.win.WriteReg(RegIER, 0x00)

	/* Open the divisor latch so offsets 0 and 1 address DLL/DLM. The
	 * current LCR value is preserved apart from the latch bit. */
	lcr := p.win.ReadReg(RegLCR)
	p.win.WriteReg(RegLCR, lcr|LCRDLAB)

	p.win.WriteReg(RegDLL, DivisorLow)
	p.win.WriteReg(RegDLM, DivisorHigh)

	/* A plain overwrite: selects 8N1 and closes the latch in one write.
	 * Data transfer would silently talk to the divisor latch if DLAB
	 * stayed set past this point. */
	p.win.WriteReg(RegLCR, LCRWordLen8)

	ier := p.win.ReadReg(RegIER)
	p.win.WriteReg(RegIER, ier|IERRxEnable)

	p.log(1, "Controller initialized (divisor=%d, 8N1)",
		uint16(DivisorHigh)<<8|uint16(DivisorLow))
}

// PutByte transmits one byte. It spins until the transmit holding register
// is empty, then writes the byte. There is no timeout: if the hardware never
// reports ready this blocks forever.
func (p *Port) PutByte(b byte) {
	for p.win.ReadReg(RegLSR)&LSRTxIdle == 0 {
	}
	p.win.WriteReg(RegTHR, b)
}

// PutString transmits every byte of s in order.
func (p *Port) PutString(s string) {
	for i := 0; i < len(s); i++ {
		p.PutByte(s[i])
	}
}

// GetByte receives one byte. It spins until the receive-data-ready bit is
// set, then reads the holding register. There is no timeout.
func (p *Port) GetByte() byte {
	for p.win.ReadReg(RegLSR)&LSRRxReady == 0 {
	}
	return p.win.ReadReg(RegRHR)
}

// GetLine reads one line of input into buf and returns the number of bytes
// stored. Carriage return terminates the line and is echoed as CRLF.
// Backspace and DEL both erase the previous byte, echoing "\b \b" so the
// terminal wipes it; at the start of the line they are ignored without echo.
// Every accepted byte is echoed back as it arrives.
//
// Input beyond len(buf) is dropped without echo or store until the line is
// terminated; editing keys and the carriage return still work on a full
// buffer.
func (p *Port) GetLine(buf []byte) int {
	n := 0
	for {
		ch := p.GetByte()
		switch {
		case ch == '\r':
			p.PutByte('\r')
			p.PutByte('\n')
			return n

		case ch == '\b' || ch == 0x7F:
			if n > 0 {
				p.PutString("\b \b")
				n--
			}

		case n < len(buf):
			p.PutByte(ch)
			buf[n] = ch
			n++
		}
	}
}
