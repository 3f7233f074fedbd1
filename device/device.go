package device

import (
	"boardshell-go/errcode"
	"boardshell-go/hal"
	"boardshell-go/types"

	"tinygo.org/x/drivers"
)

// Device is the long-lived runtime aggregate: every resolved pin wrapped in a
// handle of its capability, partitioned by function, plus the bus peripherals
// and the timer. Built exactly once at startup and never reassembled.
//
// Handlers receive the one *Device for the duration of a single invocation;
// the sequential dispatch loop is what guarantees exclusive access.
type Device struct {
	Outputs map[int]hal.DigitalPin
	Inputs  map[int]hal.DigitalPin
	Analogs map[int]hal.AnalogPin
	PWMs    map[int]hal.PWMChannel

	I2C  map[string]drivers.I2C
	UART map[string]hal.UARTPort

	Timer hal.Timer
	Sys   hal.System

	resolver *Resolver
}

// Resolver gives commands read access to the validated pin table.
func (d *Device) Resolver() *Resolver { return d.resolver }

// Output returns the digital-output handle for a GPIO number.
func (d *Device) Output(id int) (hal.DigitalPin, error) {
	p, ok := d.Outputs[id]
	if !ok {
		return nil, d.missPin(id, types.GroupOutput)
	}
	return p, nil
}

// Input returns the digital-input handle for a GPIO number.
func (d *Device) Input(id int) (hal.DigitalPin, error) {
	p, ok := d.Inputs[id]
	if !ok {
		return nil, d.missPin(id, types.GroupInput)
	}
	return p, nil
}

// Analog returns the analog-input handle for a GPIO number.
func (d *Device) Analog(id int) (hal.AnalogPin, error) {
	p, ok := d.Analogs[id]
	if !ok {
		return nil, d.missPin(id, types.GroupAnalog)
	}
	return p, nil
}

// PWM returns the PWM channel handle for a GPIO number.
func (d *Device) PWM(id int) (hal.PWMChannel, error) {
	p, ok := d.PWMs[id]
	if !ok {
		return nil, d.missPin(id, types.GroupPWM)
	}
	return p, nil
}

// OutputByAlias resolves an alias through the table to its output handle.
func (d *Device) OutputByAlias(alias string) (hal.DigitalPin, error) {
	rp, err := d.resolver.Resolve(alias)
	if err != nil {
		return nil, err
	}
	return d.Output(rp.ID)
}

// InputByAlias resolves an alias to its input handle.
func (d *Device) InputByAlias(alias string) (hal.DigitalPin, error) {
	rp, err := d.resolver.Resolve(alias)
	if err != nil {
		return nil, err
	}
	return d.Input(rp.ID)
}

// AnalogByAlias resolves an alias to its analog handle.
func (d *Device) AnalogByAlias(alias string) (hal.AnalogPin, error) {
	rp, err := d.resolver.Resolve(alias)
	if err != nil {
		return nil, err
	}
	return d.Analog(rp.ID)
}

// PWMByAlias resolves an alias to its PWM channel.
func (d *Device) PWMByAlias(alias string) (hal.PWMChannel, error) {
	rp, err := d.resolver.Resolve(alias)
	if err != nil {
		return nil, err
	}
	return d.PWM(rp.ID)
}

// missPin distinguishes "declared for another group" from "not in the table".
func (d *Device) missPin(id int, want types.Group) error {
	if rp, err := d.resolver.ResolveGPIO(id); err == nil {
		return errcode.New(errcode.UnknownPin, "device",
			rp.Alias+" is "+rp.Group.String()+", not "+want.String())
	}
	return errcode.New(errcode.UnknownPin, "device", "gpio "+itoa(id))
}
