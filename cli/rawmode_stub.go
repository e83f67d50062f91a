//go:build !linux
// +build !linux

package main

import "errors"

func makeRaw(fd int) (func(), error) {
	return nil, errors.New("raw terminal mode is only supported on linux")
}
