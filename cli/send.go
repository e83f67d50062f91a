package main

import (
	"encoding/hex"
	"fmt"
)

type SendCmd struct {
	Data  string `arg:"" name:"data" help:"Hex string to transmit"`
	Drain bool   `optional:"" help:"Wait until the transmitter is fully idle." default:"true"`
}

func (l *SendCmd) Run(c *Context) error {
	buf, err := hex.DecodeString(l.Data)
	if err != nil {
		return err
	}

	for _, b := range buf {
		c.port.PutByte(b)
	}
	if l.Drain {
		c.port.Drain()
	}

	if c.sim != nil {
		fmt.Printf("Simulated controller transmitted: %x\n", c.sim.TxBytes())
	}
	return nil
}
