package cli

import (
	"context"
	"fmt"
	"io"

	"boardshell-go/cli/internal/parse"
	"boardshell-go/device"
	"boardshell-go/serialio"
)

const prompt = ">> "

// Shell is the dispatcher: it reads one line, parses it, resolves the
// command and invokes the handler with exclusive access to the device.
// Strictly sequential; a command's effects are complete before the next
// line is read.
type Shell struct {
	reg  *Registry
	dev  *device.Device
	port *serialio.Port
}

func NewShell(reg *Registry, dev *device.Device, port *serialio.Port) *Shell {
	return &Shell{reg: reg, dev: dev, port: port}
}

// Run executes the loop until ctx is cancelled or the line source ends.
// Reading a line is the only suspension point the loop itself has; blocking
// delays inside handlers go through the device timer.
func (s *Shell) Run(ctx context.Context) error {
	s.banner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.port.WriteString(prompt)
		line, err := s.port.ReadLine(ctx)
		if err == io.EOF || err == context.Canceled {
			return err
		}
		if err != nil {
			s.report(fmt.Errorf("read: %w", err))
			continue
		}

		name, args, err := parse.Line(line)
		if err != nil {
			s.report(fmt.Errorf("parse: %w", err))
			continue
		}
		if name == "" {
			continue // blank line: no lookup, just re-prompt
		}

		cmd, ok := s.reg.Find(name)
		if !ok {
			s.report(fmt.Errorf("unknown command: %s (try 'help')", name))
			continue
		}

		err = cmd.Run(&Ctx{Cmd: cmd, Args: args, Dev: s.dev, Out: s.port, Reg: s.reg})
		s.report(err)
	}
}

// report ends every invocation with a one-line status. No silent failures.
func (s *Shell) report(err error) {
	if err != nil {
		fmt.Fprintf(s.port, "error: %v\r\n", err)
		return
	}
	s.port.WriteString("ok\r\n")
}

func (s *Shell) banner() {
	s.port.WriteString("\r\nboardshell - type 'help' for commands\r\n")
}
