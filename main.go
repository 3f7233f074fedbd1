// boardshell: interactive pin-prototyping shell for the Pico. The authored
// table in boardcfg is resolved and assembled once at boot; after that the
// serial shell owns the device until external reset.
package main

import (
	"context"

	"boardshell-go/boardcfg"
	"boardshell-go/cli"
	"boardshell-go/cli/commands"
	"boardshell-go/device"
)

func main() {
	resolver, err := device.NewResolver(boardcfg.Table, boardcfg.MaxGPIO)
	if err != nil {
		fatal(err)
	}

	buses := device.BusSet{I2C: boardcfg.Buses.I2C, UART: boardcfg.Buses.UART}
	board, err := newBoard(resolver, buses)
	if err != nil {
		fatal(err)
	}

	dev, err := device.Assemble(resolver, board, buses)
	if err != nil {
		fatal(err)
	}

	reg := cli.NewRegistry()
	reg.MustRegister(commands.All()...)

	shell := cli.NewShell(reg, dev, openPort())
	shell.Run(context.Background())
}
