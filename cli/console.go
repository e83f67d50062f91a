package main

import (
	"fmt"
	"os"
)

type ConsoleCmd struct {
	Prompt string `optional:"" help:"Prompt shown before each line." default:"> "`
}

// Run loops reading line-edited input through the driver and stops when the
// line "exit" is entered. With the simulated controller, local keystrokes
// are bridged into the receive queue and transmitted bytes are mirrored to
// stdout, so the driver's own echo and erase sequences drive the terminal.
func (l *ConsoleCmd) Run(c *Context) error {
	if c.sim != nil {
		c.sim.SetOutput(os.Stdout)

		/* The local terminal must neither echo nor line-buffer: the
		 * driver does the echoing, and Enter has to arrive as a bare
		 * carriage return. */
		restore, err := makeRaw(int(os.Stdin.Fd()))
		if err != nil {
			fmt.Println("Warning: could not set raw terminal mode:", err)
		} else {
			defer restore()
		}

		go func() {
			var b [1]byte
			for {
				if _, err := os.Stdin.Read(b[:]); err != nil {
					return
				}
				c.sim.PushRX(b[0])
			}
		}()

		fmt.Print("Simulated 16550 console, type \"exit\" to quit\r\n")
	}

	buf := make([]byte, 256)
	for {
		c.port.PutString(l.Prompt)

		/* The driver polls: this spins until a full line arrived. */
		n := c.port.GetLine(buf)

		if string(buf[:n]) == "exit" {
			return nil
		}
	}
}
