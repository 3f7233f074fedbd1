//go:build !rp2040

package main

import (
	"os"

	"boardshell-go/boardcfg"
	"boardshell-go/device"
	"boardshell-go/hal"
	"boardshell-go/serialio"
)

// Host build runs the same shell against the simulated board, with real
// sleeps so blink looks like blink.

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func newBoard(_ *device.Resolver, _ device.BusSet) (hal.Peripherals, error) {
	b := hal.NewSimBoard(boardcfg.MaxGPIO, boardcfg.Buses.I2C, boardcfg.Buses.UART)
	b.Timer().(*hal.SimTimer).Wall = true
	return b, nil
}

func openPort() *serialio.Port { return serialio.New(stdio{}, false) }

func fatal(err error) {
	println("configuration error:", err.Error())
	os.Exit(1)
}
