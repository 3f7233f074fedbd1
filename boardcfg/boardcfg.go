// Package boardcfg is the single authored configuration surface: an ordered
// table binding human-readable aliases to GPIO numbers and function groups.
// Edit this table to rewire the board; everything downstream is derived.
package boardcfg

import "boardshell-go/types"

// Pico pinout reference: https://pico.pinout.xyz
//
// GP26..GP29 are the ADC-capable pins (A0..A3). GP25 is the onboard LED.
// Rows with types.NoPin declare an alias that is not wired yet; the resolver
// skips them and the CLI reports them as "not assigned".

// MaxGPIO is the highest valid RP2040 GPIO number.
const MaxGPIO = 29

// Table is the board's pin definition table. Read-only at runtime.
var Table = []types.PinDef{
	// ADC
	{Alias: "ADC0", ID: 26, Group: types.GroupAnalog},
	{Alias: "ADC1", ID: 27, Group: types.GroupAnalog},
	{Alias: "ADC2", ID: 28, Group: types.GroupAnalog},
	{Alias: "ADC3", ID: 29, Group: types.GroupAnalog},

	// PWM (slice letter pairs; assign a GPIO to enable a channel)
	{Alias: "PWM0_A", ID: types.NoPin, Group: types.GroupPWM},
	{Alias: "PWM0_B", ID: types.NoPin, Group: types.GroupPWM},
	{Alias: "PWM1_A", ID: types.NoPin, Group: types.GroupPWM},
	{Alias: "PWM1_B", ID: types.NoPin, Group: types.GroupPWM},
	{Alias: "PWM2_B", ID: 21, Group: types.GroupPWM},
	{Alias: "PWM3_A", ID: 6, Group: types.GroupPWM},
	{Alias: "PWM4_A", ID: 8, Group: types.GroupPWM},

	// I2C
	{Alias: "I2C0_SDA", ID: 2, Group: types.GroupI2C},
	{Alias: "I2C0_SCL", ID: 17, Group: types.GroupI2C},
	{Alias: "I2C1_SDA", ID: types.NoPin, Group: types.GroupI2C},
	{Alias: "I2C1_SCL", ID: types.NoPin, Group: types.GroupI2C},

	// SPI
	{Alias: "SPI0_RX", ID: 4, Group: types.GroupSPI},
	{Alias: "SPI0_TX", ID: types.NoPin, Group: types.GroupSPI},
	{Alias: "SPI0_SCK", ID: types.NoPin, Group: types.GroupSPI},
	{Alias: "SPI0_CSN", ID: types.NoPin, Group: types.GroupSPI},

	// UART
	{Alias: "UART0_TX", ID: 5, Group: types.GroupUART},
	{Alias: "UART0_RX", ID: 13, Group: types.GroupUART},
	{Alias: "UART1_TX", ID: types.NoPin, Group: types.GroupUART},
	{Alias: "UART1_RX", ID: types.NoPin, Group: types.GroupUART},

	// Inputs
	{Alias: "IN_A", ID: 9, Group: types.GroupInput},
	{Alias: "IN_B", ID: 20, Group: types.GroupInput},
	{Alias: "IN_C", ID: 22, Group: types.GroupInput},
	{Alias: "BUTTON", ID: 23, Group: types.GroupInput},

	// Outputs
	{Alias: "OUT_A", ID: 0, Group: types.GroupOutput},
	{Alias: "OUT_B", ID: 1, Group: types.GroupOutput},
	{Alias: "OUT_C", ID: 3, Group: types.GroupOutput},
	{Alias: "LED", ID: 25, Group: types.GroupOutput},
}

// Buses lists the bus peripherals the assembler should bring up.
// IDs follow the RP2040 controller names.
var Buses = struct {
	I2C  []string
	UART []string
}{
	I2C:  []string{"i2c0"},
	UART: []string{"uart0"},
}
