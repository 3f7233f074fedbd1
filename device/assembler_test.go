package device

import (
	"testing"

	"boardshell-go/boardcfg"
	"boardshell-go/errcode"
	"boardshell-go/hal"
	"boardshell-go/types"
)

func simBoard() *hal.SimBoard {
	return hal.NewSimBoard(boardcfg.MaxGPIO, boardcfg.Buses.I2C, boardcfg.Buses.UART)
}

func boardBuses() BusSet {
	return BusSet{I2C: boardcfg.Buses.I2C, UART: boardcfg.Buses.UART}
}

func TestAssembleBoardTable(t *testing.T) {
	r, err := NewResolver(boardcfg.Table, boardcfg.MaxGPIO)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Assemble(r, simBoard(), boardBuses())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if _, err := d.Output(25); err != nil {
		t.Errorf("LED output handle: %v", err)
	}
	if _, err := d.OutputByAlias("LED"); err != nil {
		t.Errorf("LED by alias: %v", err)
	}
	if _, err := d.Input(23); err != nil {
		t.Errorf("BUTTON input handle: %v", err)
	}
	if _, err := d.Analog(26); err != nil {
		t.Errorf("ADC0 handle: %v", err)
	}
	if _, err := d.PWM(6); err != nil {
		t.Errorf("PWM3_A handle: %v", err)
	}
	if _, ok := d.I2C["i2c0"]; !ok {
		t.Error("i2c0 bus missing")
	}
	if _, ok := d.UART["uart0"]; !ok {
		t.Error("uart0 port missing")
	}
	if d.Timer == nil {
		t.Error("timer missing")
	}
	if d.Sys == nil {
		t.Error("system services missing")
	}

	// each physical pin sits in exactly one capability map
	seen := map[int]int{}
	for id := range d.Outputs {
		seen[id]++
	}
	for id := range d.Inputs {
		seen[id]++
	}
	for id := range d.Analogs {
		seen[id]++
	}
	for id := range d.PWMs {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("gpio %d appears in %d maps", id, n)
		}
	}
}

func TestAssembleRejectsAliasedPins(t *testing.T) {
	// Bypass the resolver's duplicate check to prove the assembler's own
	// claim gate also refuses to share one pin between two handles.
	r := &Resolver{
		defs: []types.PinDef{
			{Alias: "OUT_A", ID: 5, Group: types.GroupOutput},
			{Alias: "IN_A", ID: 5, Group: types.GroupInput},
		},
		byAlias: map[string]int{"out_a": 0, "in_a": 1},
		byID:    map[int]int{5: 0},
		maxGPIO: 29,
	}
	_, err := Assemble(r, simBoard(), BusSet{})
	if errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("got %v, want pin_in_use", err)
	}
}

func TestAssembleMissingBusPinFatal(t *testing.T) {
	defs := []types.PinDef{
		{Alias: "I2C0_SDA", ID: 2, Group: types.GroupI2C},
		{Alias: "I2C0_SCL", ID: types.NoPin, Group: types.GroupI2C},
	}
	r, err := NewResolver(defs, 29)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Assemble(r, simBoard(), BusSet{I2C: []string{"i2c0"}})
	if errcode.Of(err) != errcode.UnknownBus {
		t.Fatalf("got %v, want unknown_bus", err)
	}
}

func TestDeviceGroupMismatch(t *testing.T) {
	r, err := NewResolver(boardcfg.Table, boardcfg.MaxGPIO)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Assemble(r, simBoard(), boardBuses())
	if err != nil {
		t.Fatal(err)
	}
	// BUTTON is an input; asking for it as an output is a runtime miss.
	_, err = d.OutputByAlias("BUTTON")
	if errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("got %v, want unknown_pin", err)
	}
	// Unassigned alias surfaces as pin_unassigned, never a handle.
	_, err = d.PWMByAlias("PWM0_A")
	if errcode.Of(err) != errcode.PinUnassigned {
		t.Fatalf("got %v, want pin_unassigned", err)
	}
}

func TestBusWiringFrom(t *testing.T) {
	r, err := NewResolver(boardcfg.Table, boardcfg.MaxGPIO)
	if err != nil {
		t.Fatal(err)
	}
	w, err := BusWiringFrom(r, boardBuses())
	if err != nil {
		t.Fatal(err)
	}
	if len(w.I2C) != 1 || w.I2C[0].SDA != 2 || w.I2C[0].SCL != 17 {
		t.Fatalf("i2c wiring = %+v", w.I2C)
	}
	if len(w.UART) != 1 || w.UART[0].TX != 5 || w.UART[0].RX != 13 {
		t.Fatalf("uart wiring = %+v", w.UART)
	}
}
