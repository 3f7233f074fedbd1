// Package cli implements the command registry and the read-evaluate loop that
// drives the board over a serial line.
package cli

import (
	"io"

	"boardshell-go/cli/internal/parse"
	"boardshell-go/device"
	"boardshell-go/errcode"
)

// Ctx is everything one invocation sees: its own descriptor, the parsed
// arguments, exclusive access to the device, and the output stream.
type Ctx struct {
	Cmd  *Command
	Args parse.Args
	Dev  *device.Device
	Out  io.Writer
	Reg  *Registry
}

// Command is one registered routine. Immutable after registration.
//
// Every handler must honour the help short-circuit: if the "help" flag is
// present, print Help and return before touching any other parameter.
type Command struct {
	Name string
	Desc string
	Help string
	Run  func(c *Ctx) error
}

// PrintHelp writes the stored description and usage line.
func (c *Command) PrintHelp(w io.Writer) {
	writeln(w, c.Desc)
	writeln(w, c.Help)
}

// Registry is an ordered command collection searchable by name. Registration
// happens once at startup; lookups afterwards are read-only and return the
// same descriptor every time.
type Registry struct {
	commands []*Command
	byName   map[string]*Command
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register adds a command. A duplicate name is a configuration error raised
// at startup, not at dispatch time.
func (r *Registry) Register(cmd *Command) error {
	if _, exists := r.byName[cmd.Name]; exists {
		return errcode.New(errcode.DuplicateCommand, "registry", cmd.Name)
	}
	r.commands = append(r.commands, cmd)
	r.byName[cmd.Name] = cmd
	return nil
}

// MustRegister panics on duplicates; startup wiring only.
func (r *Registry) MustRegister(cmds ...*Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err.Error())
		}
	}
}

// Find looks a command up by exact name.
func (r *Registry) Find(name string) (*Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// List returns the commands in registration order, for help output.
func (r *Registry) List() []*Command { return r.commands }

func writeln(w io.Writer, s string) {
	io.WriteString(w, s)
	io.WriteString(w, "\r\n")
}
