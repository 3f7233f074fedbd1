package device

import (
	"boardshell-go/errcode"
	"boardshell-go/hal"
	"boardshell-go/types"

	"tinygo.org/x/drivers"
)

// Default operating parameters for freshly assembled handles.
const (
	defaultPWMHz  = 50
	defaultPWMTop = 0xffff
	defaultI2CHz  = 100_000
	defaultBaud   = 115_200
)

// BusSet names the bus peripherals the assembler must bring up. Bus pin
// wiring is looked up in the table by the conventional <ID>_SDA/_SCL and
// <ID>_TX/_RX aliases.
type BusSet struct {
	I2C  []string
	UART []string
}

// Assemble partitions the resolved pins by group, claims each GPIO exactly
// once and wraps it in the matching capability handle. Any claim or
// construction failure aborts assembly: operating a half-built board blind
// is worse than not starting.
func Assemble(r *Resolver, p hal.Peripherals, buses BusSet) (*Device, error) {
	a := &assembler{p: p, claimed: make(map[int]string)}

	d := &Device{
		Outputs:  make(map[int]hal.DigitalPin),
		Inputs:   make(map[int]hal.DigitalPin),
		Analogs:  make(map[int]hal.AnalogPin),
		PWMs:     make(map[int]hal.PWMChannel),
		I2C:      make(map[string]drivers.I2C),
		UART:     make(map[string]hal.UARTPort),
		Timer:    p.Timer(),
		Sys:      p.System(),
		resolver: r,
	}

	for _, rp := range r.Pins(types.GroupOutput) {
		pin, err := a.claimDigital(rp)
		if err != nil {
			return nil, err
		}
		if err := pin.ConfigureOutput(false); err != nil {
			return nil, errcode.Wrap(errcode.ClaimFailed, "assemble "+rp.Alias, err)
		}
		d.Outputs[rp.ID] = pin
	}

	for _, rp := range r.Pins(types.GroupInput) {
		pin, err := a.claimDigital(rp)
		if err != nil {
			return nil, err
		}
		if err := pin.ConfigureInput(types.PullUp); err != nil {
			return nil, errcode.Wrap(errcode.ClaimFailed, "assemble "+rp.Alias, err)
		}
		d.Inputs[rp.ID] = pin
	}

	for _, rp := range r.Pins(types.GroupAnalog) {
		if err := a.claim(rp); err != nil {
			return nil, err
		}
		pin, ok := p.AnalogByNumber(rp.ID)
		if !ok {
			return nil, errcode.New(errcode.ClaimFailed, "assemble", rp.Alias)
		}
		d.Analogs[rp.ID] = pin
	}

	for _, rp := range r.Pins(types.GroupPWM) {
		if err := a.claim(rp); err != nil {
			return nil, err
		}
		ch, ok := p.PWMByNumber(rp.ID)
		if !ok {
			return nil, errcode.New(errcode.ClaimFailed, "assemble", rp.Alias)
		}
		if err := ch.Configure(defaultPWMHz, defaultPWMTop); err != nil {
			return nil, errcode.Wrap(errcode.ClaimFailed, "assemble "+rp.Alias, err)
		}
		d.PWMs[rp.ID] = ch
	}

	// Bus-group pins are claimed like any other so aliasing is caught, but the
	// handle is the bus peripheral itself, not the individual pin.
	for _, g := range []types.Group{types.GroupI2C, types.GroupSPI, types.GroupUART} {
		for _, rp := range r.Pins(g) {
			if err := a.claim(rp); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range buses.I2C {
		if _, err := busPins(r, id+"_SDA", id+"_SCL"); err != nil {
			return nil, err
		}
		bus, ok := p.I2CByID(id)
		if !ok {
			return nil, errcode.New(errcode.UnknownBus, "assemble", id)
		}
		d.I2C[id] = bus
	}

	for _, id := range buses.UART {
		if _, err := busPins(r, id+"_TX", id+"_RX"); err != nil {
			return nil, err
		}
		port, ok := p.UARTByID(id)
		if !ok {
			return nil, errcode.New(errcode.UnknownBus, "assemble", id)
		}
		d.UART[id] = port
	}

	return d, nil
}

// BusWiringFrom derives the platform bus bring-up parameters from the table.
// Callers on the rp2040 build feed this to hal.NewBoard before Assemble.
func BusWiringFrom(r *Resolver, buses BusSet) (hal.BusWiring, error) {
	var w hal.BusWiring
	for _, id := range buses.I2C {
		pins, err := busPins(r, id+"_SDA", id+"_SCL")
		if err != nil {
			return w, err
		}
		w.I2C = append(w.I2C, hal.I2CWiring{ID: id, SDA: pins[0], SCL: pins[1], Hz: defaultI2CHz})
	}
	for _, id := range buses.UART {
		pins, err := busPins(r, id+"_TX", id+"_RX")
		if err != nil {
			return w, err
		}
		w.UART = append(w.UART, hal.UARTWiring{ID: id, TX: pins[0], RX: pins[1], Baud: defaultBaud})
	}
	return w, nil
}

// busPins resolves the named bus pin aliases; a bus listed for bring-up with
// an unassigned pin is a configuration error, not a runtime miss.
func busPins(r *Resolver, aliases ...string) ([]int, error) {
	out := make([]int, 0, len(aliases))
	for _, alias := range aliases {
		// alias matching in the resolver is case-insensitive, so the
		// lowercase bus id prefix works against the uppercase table rows
		rp, err := r.Resolve(alias)
		if err != nil {
			return nil, errcode.Wrap(errcode.UnknownBus, "assemble "+alias, err)
		}
		out = append(out, rp.ID)
	}
	return out, nil
}

// assembler tracks physical claims. The resolver already rejects duplicate
// GPIO assignments; this second gate catches any future partitioning bug
// before it hands two handles over one pin.
type assembler struct {
	p       hal.Peripherals
	claimed map[int]string
}

func (a *assembler) claim(rp ResolvedPin) error {
	if owner, taken := a.claimed[rp.ID]; taken {
		return errcode.New(errcode.PinInUse, "assemble",
			rp.Alias+" collides with "+owner)
	}
	a.claimed[rp.ID] = rp.Alias
	return nil
}

func (a *assembler) claimDigital(rp ResolvedPin) (hal.DigitalPin, error) {
	if err := a.claim(rp); err != nil {
		return nil, err
	}
	pin, ok := a.p.DigitalByNumber(rp.ID)
	if !ok {
		return nil, errcode.New(errcode.ClaimFailed, "assemble", rp.Alias)
	}
	return pin, nil
}
