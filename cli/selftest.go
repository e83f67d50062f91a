package main

import (
	"github.com/fatih/color"
	"github.com/fetch150zy/junkv-serial/serial16550"
)

type SelftestCmd struct {
	Bytes int `optional:"" help:"Loopback payload size in bytes." default:"256"`
}

func (l *SelftestCmd) Run(c *Context) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if !c.port.Probe() {
		red.Println("FAIL: scratchpad probe, no controller behind this window")
		return serial16550.ErrorNoDevice
	}
	green.Println("PASS: scratchpad probe")

	if err := c.port.LoopbackTest(l.Bytes); err != nil {
		red.Printf("FAIL: loopback of %d bytes: %v\n", l.Bytes, err)
		return err
	}
	green.Printf("PASS: loopback of %d bytes\n", l.Bytes)

	return nil
}
