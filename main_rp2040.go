//go:build rp2040

package main

import (
	"time"

	"boardshell-go/device"
	"boardshell-go/hal"
	"boardshell-go/serialio"
	"machine"
)

func newBoard(r *device.Resolver, buses device.BusSet) (hal.Peripherals, error) {
	wiring, err := device.BusWiringFrom(r, buses)
	if err != nil {
		return nil, err
	}
	return hal.NewBoard(wiring), nil
}

// usbSerial adapts the USB CDC console to the io.ReadWriter the line port
// expects. Reads block by polling; there is nothing else to schedule.
type usbSerial struct{}

func (usbSerial) Read(p []byte) (int, error) {
	for machine.Serial.Buffered() == 0 {
		time.Sleep(time.Millisecond)
	}
	n := 0
	for n < len(p) && machine.Serial.Buffered() > 0 {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

func (usbSerial) Write(p []byte) (int, error) { return machine.Serial.Write(p) }

// Buffered lets long-running commands poll for the interrupt character.
func (usbSerial) Buffered() int { return machine.Serial.Buffered() }

func openPort() *serialio.Port {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	return serialio.New(usbSerial{}, true)
}

// A bad table means the board must not run; keep shouting so the operator
// sees it on the console.
func fatal(err error) {
	for {
		println("configuration error:", err.Error())
		time.Sleep(2 * time.Second)
	}
}
