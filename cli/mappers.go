package main

import (
	"reflect"
	"strconv"

	"github.com/alecthomas/kong"
)

// intMapper parses integer flags in a fixed base, so the UART base address
// can be given as bare hex (e.g. --base 10000000 for the QEMU virt machine).
type intMapper struct {
	base int
}

func (h intMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("address", &value)
	if err != nil {
		return err
	}
	i, err := strconv.ParseInt(value, h.base, 64)
	if err != nil {
		return err
	}
	target.SetInt(i)
	return nil
}
