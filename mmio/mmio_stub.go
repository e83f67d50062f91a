//go:build !linux
// +build !linux

package mmio

import "errors"

func mapInternal(base uint64) (Window, error) {
	return nil, errors.New("memory-mapped UART access is only supported on linux")
}
