// Package device turns the authored pin table into a validated lookup
// structure and assembles the runtime handle set the CLI operates on.
package device

import (
	"strings"

	"boardshell-go/errcode"
	"boardshell-go/types"
)

// ResolvedPin is one table row whose GPIO assignment is present.
type ResolvedPin struct {
	Alias string
	ID    int
	Group types.Group
}

// Resolver validates the pin definition table once and answers alias and
// GPIO lookups afterwards. It is immutable after construction.
type Resolver struct {
	defs    []types.PinDef
	byAlias map[string]int // folded alias -> defs index
	byID    map[int]int    // gpio -> defs index
	maxGPIO int
}

// NewResolver checks the table and builds the lookup maps. Any violation is a
// configuration error: the caller must abort before assembly.
func NewResolver(defs []types.PinDef, maxGPIO int) (*Resolver, error) {
	r := &Resolver{
		defs:    defs,
		byAlias: make(map[string]int, len(defs)),
		byID:    make(map[int]int),
		maxGPIO: maxGPIO,
	}

	for i, def := range defs {
		if def.Alias == "" {
			return nil, errcode.New(errcode.EmptyAlias, "resolver", "table row has no alias")
		}
		key := strings.ToLower(def.Alias)
		if _, dup := r.byAlias[key]; dup {
			return nil, errcode.New(errcode.DuplicateAlias, "resolver", def.Alias)
		}
		r.byAlias[key] = i

		if !def.Assigned() {
			continue
		}
		if def.ID < 0 || def.ID > maxGPIO {
			return nil, errcode.New(errcode.PinOutOfRange, "resolver", def.Alias)
		}
		if prev, dup := r.byID[def.ID]; dup {
			return nil, errcode.New(errcode.DuplicatePin, "resolver",
				defs[prev].Alias+" and "+def.Alias)
		}
		r.byID[def.ID] = i
	}
	return r, nil
}

// Resolve returns the resolved pin for an alias. Alias matching ignores case.
// Unknown aliases and declared-but-unassigned aliases are distinct misses.
func (r *Resolver) Resolve(alias string) (ResolvedPin, error) {
	i, ok := r.byAlias[strings.ToLower(alias)]
	if !ok {
		return ResolvedPin{}, errcode.New(errcode.UnknownAlias, "resolve", alias)
	}
	def := r.defs[i]
	if !def.Assigned() {
		return ResolvedPin{}, errcode.New(errcode.PinUnassigned, "resolve", alias)
	}
	return ResolvedPin{Alias: def.Alias, ID: def.ID, Group: def.Group}, nil
}

// ResolveGPIO returns the resolved pin claiming a GPIO number, if any.
func (r *Resolver) ResolveGPIO(id int) (ResolvedPin, error) {
	i, ok := r.byID[id]
	if !ok {
		return ResolvedPin{}, errcode.New(errcode.UnknownPin, "resolve", itoa(id))
	}
	def := r.defs[i]
	return ResolvedPin{Alias: def.Alias, ID: def.ID, Group: def.Group}, nil
}

// Group returns the capability group an alias is declared under, assigned
// or not.
func (r *Resolver) Group(alias string) (types.Group, bool) {
	i, ok := r.byAlias[strings.ToLower(alias)]
	if !ok {
		return types.GroupReserved, false
	}
	return r.defs[i].Group, true
}

// Pins returns the resolved pins of one group, in table order.
func (r *Resolver) Pins(group types.Group) []ResolvedPin {
	var out []ResolvedPin
	for _, def := range r.defs {
		if def.Group == group && def.Assigned() {
			out = append(out, ResolvedPin{Alias: def.Alias, ID: def.ID, Group: def.Group})
		}
	}
	return out
}

// Defs exposes the full table (including unassigned rows) for listings.
func (r *Resolver) Defs() []types.PinDef { return r.defs }

// small decimal itoa to keep error paths allocation-light on MCU builds
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
