// Package hal defines the narrow hardware contracts the core needs: pins that
// can be driven or read, a timer that can block, and bus peripherals. Concrete
// implementations are build-tagged: machine-backed on rp2040, simulated on the
// host so the core is testable off-device.
package hal

import (
	"boardshell-go/types"

	"tinygo.org/x/drivers"
)

// DigitalPin is a claimed GPIO in digital mode.
type DigitalPin interface {
	Number() int
	ConfigureInput(pull types.Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
}

// AnalogPin is a claimed ADC-capable pin.
type AnalogPin interface {
	Number() int
	// ReadRaw returns the 16-bit-normalised conversion result.
	ReadRaw() uint16
}

// PWMChannel is one channel of a PWM slice bound to a claimed pin.
type PWMChannel interface {
	Number() int
	// Configure sets carrier frequency and counter wrap. top==0 keeps 0xffff.
	Configure(freqHz uint32, top uint16) error
	SetDuty(level uint16) error
	Top() uint16
	Enable()
	Disable()
}

// UARTPort is the byte-stream side of a UART bus peripheral.
type UARTPort interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	SetBaudRate(baud uint32)
}

// Timer provides the blocking delay and uptime primitives handlers use.
// Delays are full blocking waits; there is no background work to yield to.
type Timer interface {
	NowMicros() uint64
	DelayMillis(ms uint32)
}

// System exposes chip-level services that are not tied to any one pin:
// reset, reboot-to-bootloader, and the internal temperature sensor.
type System interface {
	Reset()
	EnterBootloader()
	TemperatureMilliC() int32
}

// BusWiring carries the pin and rate choices for bus peripherals, derived
// from the resolved pin table by the caller.
type BusWiring struct {
	I2C  []I2CWiring
	UART []UARTWiring
}

type I2CWiring struct {
	ID       string // "i2c0", "i2c1"
	SDA, SCL int
	Hz       uint32
}

type UARTWiring struct {
	ID     string // "uart0", "uart1"
	TX, RX int
	Baud   uint32
}

// Peripherals is the raw-resource collaborator consumed exactly once by the
// assembler. Constructors hand out one handle per physical resource; the
// claim bookkeeping above them lives in the device package.
type Peripherals interface {
	DigitalByNumber(n int) (DigitalPin, bool)
	AnalogByNumber(n int) (AnalogPin, bool)
	PWMByNumber(n int) (PWMChannel, bool)
	I2CByID(id string) (drivers.I2C, bool)
	UARTByID(id string) (UARTPort, bool)
	Timer() Timer
	System() System
}
