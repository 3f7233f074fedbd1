// Package types holds the shared pin-table definitions used by the board
// config, the resolver and the CLI. It has no dependencies so both host and
// MCU builds can import it freely.
package types

// NoPin marks a table row whose alias is declared but not wired yet.
// Such rows are never resolved to a hardware handle.
const NoPin = -1

// Group is the peripheral function class a pin is dedicated to.
// It determines which handle constructor applies during assembly.
type Group uint8

const (
	GroupReserved Group = iota
	GroupAnalog
	GroupPWM
	GroupI2C
	GroupSPI
	GroupUART
	GroupInput
	GroupOutput
)

func (g Group) String() string {
	switch g {
	case GroupAnalog:
		return "analog"
	case GroupPWM:
		return "pwm"
	case GroupI2C:
		return "i2c"
	case GroupSPI:
		return "spi"
	case GroupUART:
		return "uart"
	case GroupInput:
		return "input"
	case GroupOutput:
		return "output"
	default:
		return "reserved"
	}
}

// PinDef is one authored row of the pin definition table.
// ID is a GPIO number, or NoPin for a declared-but-unwired alias.
type PinDef struct {
	Alias string
	ID    int
	Group Group
}

// Assigned reports whether the row is wired to a physical pin.
func (d PinDef) Assigned() bool { return d.ID != NoPin }

// Pull selects the input bias for digital inputs.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)
