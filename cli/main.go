package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fetch150zy/junkv-serial/mmio"
	"github.com/fetch150zy/junkv-serial/serial16550"
	"github.com/fetch150zy/junkv-serial/simuart"
)

type Context struct {
	port *serial16550.Port
	win  serial16550.RegisterWindow
	sim  *simuart.Device // nil when driving a real controller
}

var CLI struct {
	Base     int64 `optional:"" type:"hex" help:"Physical base address of the UART register window. Omit to use the simulated controller."`
	LogLevel int   `optional:"" help:"Higher values give more output."`
	NoInit   bool  `optional:"" help:"Do not reprogram the controller before running the command."`

	Console  ConsoleCmd  `cmd:"" help:"Interactive console with line editing."`
	Regs     RegsCmd     `cmd:"" help:"Dump the eight UART registers."`
	Send     SendCmd     `cmd:"" help:"Transmit a hex string."`
	Selftest SelftestCmd `cmd:"" help:"Probe the controller and run a loopback test."`
}

func main() {
	k, err := kong.New(&CLI,
		kong.NamedMapper("hex", intMapper{base: 16}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		return
	}

	c := &Context{}
	if CLI.Base != 0 {
		win, err := mmio.Map(uint64(CLI.Base))
		if err != nil {
			fmt.Println("Failed to map UART window", err)
			return
		}
		defer win.Close()

		c.win = win
	} else {
		c.sim = simuart.New()
		c.win = c.sim
	}

	config := serial16550.Config{
		LogFunc: func(level int, format string, param ...interface{}) {
			if level > CLI.LogLevel {
				return
			}
			str := fmt.Sprintf(format, param...)
			fmt.Printf("UART(%d): %s\n", level, str)
		},
	}

	c.port = serial16550.New(c.win, config)
	if !CLI.NoInit {
		c.port.Init()
	}

	err = ctx.Run(c)
	ctx.FatalIfErrorf(err)
}
