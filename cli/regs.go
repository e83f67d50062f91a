package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/fetch150zy/junkv-serial/mmio"
	"github.com/inancgumus/screen"
)

type RegsCmd struct {
	Loop int `optional:"" help:"0=Read once, 1=Mark changes since start, 2=Mark changes since previous iteration."`
}

var regNames = [mmio.WindowSize]string{
	"RHR/THR", "IER", "ISR/FCR", "LCR", "MCR", "LSR", "MSR", "SPR",
}

// Run dumps the register block. Note that the dump itself is intrusive on a
// live controller: reading offset 0 consumes a received byte.
func (l *RegsCmd) Run(c *Context) error {
	if l.Loop < 0 || l.Loop > 2 {
		return errors.New("Loop flag out of range")
	}

	var oldVals []byte
	var mark []bool
	for {
		startTime := time.Now()
		if l.Loop == 2 || mark == nil {
			mark = make([]bool, mmio.WindowSize)
		}

		vals := make([]byte, mmio.WindowSize)
		for off := range vals {
			vals[off] = c.win.ReadReg(uint8(off))
		}

		if l.Loop != 0 {
			screen.Clear()
			screen.MoveTopLeft()
			if oldVals != nil {
				for i, m := range oldVals {
					if m != vals[i] {
						mark[i] = true
					}
				}
			}
		}
		fmt.Print(regdump(vals, mark))

		oldVals = vals

		if l.Loop == 0 {
			break
		}
		d := time.Now().Sub(startTime)
		td := 200 * time.Millisecond
		if d < td {
			time.Sleep(td - d)
		}
	}

	return nil
}

// regdump renders the eight register values one per line, marking changed
// bytes in red.
func regdump(vals []byte, mark []bool) string {
	red := color.New(color.FgRed)

	result := "Off | Name    | Value\n"
	for off, v := range vals {
		line := fmt.Sprintf("  %d | %-7s | 0x%02x\n", off, regNames[off], v)
		if mark != nil && mark[off] {
			line = red.Sprint(line)
		}
		result += line
	}

	return result
}
