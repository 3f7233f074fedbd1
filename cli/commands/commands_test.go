package commands

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"boardshell-go/boardcfg"
	"boardshell-go/cli"
	"boardshell-go/device"
	"boardshell-go/hal"
	"boardshell-go/serialio"
)

type pipe struct {
	io.Reader
	io.Writer
}

// rig assembles the full stack against the simulated board: table → resolver
// → device → registry → shell, fed by a scripted input line.
func rig(t *testing.T, input string) (*hal.SimBoard, *bytes.Buffer, func()) {
	t.Helper()
	out := &bytes.Buffer{}
	return rigOn(t, &pipe{strings.NewReader(input), out}, out)
}

// rigOn is rig over an arbitrary transport, for consoles with extra
// capabilities.
func rigOn(t *testing.T, rw io.ReadWriter, out *bytes.Buffer) (*hal.SimBoard, *bytes.Buffer, func()) {
	t.Helper()
	board := hal.NewSimBoard(boardcfg.MaxGPIO, boardcfg.Buses.I2C, boardcfg.Buses.UART)

	r, err := device.NewResolver(boardcfg.Table, boardcfg.MaxGPIO)
	if err != nil {
		t.Fatal(err)
	}
	dev, err := device.Assemble(r, board, device.BusSet{
		I2C:  boardcfg.Buses.I2C,
		UART: boardcfg.Buses.UART,
	})
	if err != nil {
		t.Fatal(err)
	}

	reg := cli.NewRegistry()
	reg.MustRegister(All()...)

	port := serialio.New(rw, false)
	shell := cli.NewShell(reg, dev, port)

	return board, out, func() {
		if err := shell.Run(context.Background()); err != io.EOF {
			t.Fatalf("shell: %v", err)
		}
	}
}

func TestBlinkEndToEnd(t *testing.T) {
	board, out, run := rig(t, "blink times=2 interval=1\n")
	run()

	pin := board.Pin(25)
	if pin == nil {
		t.Fatal("LED pin never assembled")
	}
	want := []bool{true, false, true, false}
	if len(pin.Edges) != len(want) {
		t.Fatalf("edges = %v, want %v", pin.Edges, want)
	}
	for i, lvl := range want {
		if pin.Edges[i] != lvl {
			t.Fatalf("edges = %v, want %v", pin.Edges, want)
		}
	}
	if !strings.Contains(out.String(), "blink 2") {
		t.Fatalf("output missing progress: %q", out.String())
	}
	if !strings.Contains(out.String(), "ok") {
		t.Fatalf("output missing status line: %q", out.String())
	}
}

func TestBlinkHelpShortCircuits(t *testing.T) {
	board, out, run := rig(t, "blink times=2 interval=1 help\n")
	run()

	if pin := board.Pin(25); pin != nil && pin.ToggleCount() != 0 {
		t.Fatalf("help still blinked: %v", pin.Edges)
	}
	if !strings.Contains(out.String(), "blink [pin=LED]") {
		t.Fatalf("help text missing: %q", out.String())
	}
}

func TestUnknownCommandReported(t *testing.T) {
	_, out, run := rig(t, "warp factor=9\n")
	run()
	if !strings.Contains(out.String(), "unknown command: warp") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestEmptyLineIsNoOp(t *testing.T) {
	_, out, run := rig(t, "\n   \n")
	run()
	s := out.String()
	if strings.Contains(s, "error") || strings.Contains(s, "unknown") {
		t.Fatalf("blank lines reported: %q", s)
	}
}

func TestSetPinHighLowToggle(t *testing.T) {
	board, out, run := rig(t, "set_pin pin=OUT_A high\nset_pin pin=OUT_A low\nset_pin pin=OUT_A\n")
	run()

	pin := board.Pin(0)
	want := []bool{true, false, true}
	if len(pin.Edges) != len(want) {
		t.Fatalf("edges = %v", pin.Edges)
	}
	for i, lvl := range want {
		if pin.Edges[i] != lvl {
			t.Fatalf("edges = %v, want %v", pin.Edges, want)
		}
	}
	if !strings.Contains(out.String(), "OUT_A: HIGH") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSetPinUnassignedAlias(t *testing.T) {
	_, out, run := rig(t, "set_pin pin=PWM0_A\n")
	run()
	if !strings.Contains(out.String(), "pin_unassigned") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestReadPinInput(t *testing.T) {
	board, out, run := rig(t, "read_pin pin=BUTTON\n")
	board.Pin(23).Drive(true)
	run()
	if !strings.Contains(out.String(), "BUTTON: HIGH") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestReadADC(t *testing.T) {
	board, out, run := rig(t, "read_adc\n")
	board.ADC(26).Value = 0xffff
	run()
	s := out.String()
	if !strings.Contains(s, "ADC0 (GP26): 3300 mV") {
		t.Fatalf("output = %q", s)
	}
	// all four channels reported
	for _, ch := range []string{"ADC0", "ADC1", "ADC2", "ADC3"} {
		if !strings.Contains(s, ch) {
			t.Fatalf("%s missing: %q", ch, s)
		}
	}
}

func TestSetPWM(t *testing.T) {
	board, out, run := rig(t, "set_pwm pin=PWM3_A freq=1000 duty=25\n")
	run()

	pwm := board.PWM(6)
	freq, top, lvl, enabled := pwm.State()
	if freq != 1000 || top != 0xffff || !enabled {
		t.Fatalf("pwm state: %d Hz top=%d enabled=%v", freq, top, enabled)
	}
	if lvl != 0xffff/4 {
		t.Fatalf("duty level = %d", lvl)
	}
	if !strings.Contains(out.String(), "PWM3_A: 1000 Hz, duty 25%") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSetPWMDisable(t *testing.T) {
	board, _, run := rig(t, "set_pwm pin=PWM3_A freq=100\nset_pwm pin=PWM3_A disable\n")
	run()
	if _, _, _, enabled := board.PWM(6).State(); enabled {
		t.Fatal("channel still enabled")
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	_, out, run := rig(t, "help\n")
	run()
	for _, cmd := range All() {
		if !strings.Contains(out.String(), cmd.Name) {
			t.Fatalf("%s missing from listing: %q", cmd.Name, out.String())
		}
	}
}

func TestExampleDefaultsAndMissing(t *testing.T) {
	_, out, run := rig(t, "example arg=1.5\nexample\n")
	run()
	s := out.String()
	if !strings.Contains(s, "arg = 1.5") || !strings.Contains(s, "opt = 0") {
		t.Fatalf("defaults: %q", s)
	}
	if !strings.Contains(s, "missing_param") {
		t.Fatalf("missing required arg not reported: %q", s)
	}
}

func TestBlinkMaxTimesTerminates(t *testing.T) {
	board, _, run := rig(t, "blink times=65535 interval=0\n")
	run()

	// the counter must not wrap at the uint16 ceiling
	if got := board.Pin(25).ToggleCount(); got != 2*65535 {
		t.Fatalf("edges = %d, want %d", got, 2*65535)
	}
}

func TestHelpHonorsOwnHelpFlag(t *testing.T) {
	_, out, run := rig(t, "help help\n")
	run()
	s := out.String()
	if !strings.Contains(s, "help [cmd=<name>]") {
		t.Fatalf("stored help text missing: %q", s)
	}
	if strings.Contains(s, "set_pin") {
		t.Fatalf("listing ran instead of help short-circuit: %q", s)
	}
}

func TestReadADCOpenCircuitAndTempSense(t *testing.T) {
	board, out, run := rig(t, "read_adc\n")
	board.ADC(26).Value = 0xffff
	run()
	s := out.String()
	if !strings.Contains(s, "ADC0 (GP26): 3300 mV, open") {
		t.Fatalf("full-scale reading not reported open: %q", s)
	}
	if !strings.Contains(s, "temp sense: 27.0 C") {
		t.Fatalf("temp sense line missing: %q", s)
	}
}

func TestResetAndFlash(t *testing.T) {
	board, out, run := rig(t, "reset\nflash\n")
	run()

	if n := board.Sys().Resets; n != 1 {
		t.Fatalf("resets = %d", n)
	}
	if n := board.Sys().Bootloads; n != 1 {
		t.Fatalf("bootloads = %d", n)
	}
	s := out.String()
	if !strings.Contains(s, "resetting...") || !strings.Contains(s, "USB flash mode") {
		t.Fatalf("output = %q", s)
	}
}

func TestResetHelpDoesNotReset(t *testing.T) {
	board, _, run := rig(t, "reset help\n")
	run()
	if board.Sys().Resets != 0 {
		t.Fatal("help still reset the device")
	}
}

func TestSampleADCBounded(t *testing.T) {
	board, out, run := rig(t, "sample_adc samples=3 interval=1\n")
	board.ADC(26).Value = 0x8000
	run()
	if got := strings.Count(out.String(), "1650 mV"); got != 3 {
		t.Fatalf("samples = %d, want 3: %q", got, out.String())
	}
}

func TestSampleADCUnboundedNeedsInterrupt(t *testing.T) {
	// the plain pipe cannot be polled for '~', so an open-ended run must
	// be refused rather than looping forever
	_, out, run := rig(t, "sample_adc\n")
	run()
	if !strings.Contains(out.String(), "bad_param") {
		t.Fatalf("output = %q", out.String())
	}
}

// console is a transport whose pending input can be counted, like the USB
// serial on the board.
type console struct {
	r *strings.Reader
	w io.Writer
}

func (c *console) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *console) Write(p []byte) (int, error) { return c.w.Write(p) }
func (c *console) Buffered() int               { return c.r.Len() }

func TestSampleADCInterrupted(t *testing.T) {
	out := &bytes.Buffer{}
	_, _, run := rigOn(t, &console{strings.NewReader("sample_adc interval=1\n~"), out}, out)
	run()
	s := out.String()
	if !strings.Contains(s, "send '~' to stop") {
		t.Fatalf("open-ended banner missing: %q", s)
	}
	if !strings.Contains(s, "interrupted") {
		t.Fatalf("interrupt not honored: %q", s)
	}
	if got := strings.Count(s, "raw 0\r\n"); got != 1 {
		t.Fatalf("samples before interrupt = %d, want 1: %q", got, s)
	}
}

func TestServoSweep(t *testing.T) {
	board, out, run := rig(t, "servo sweep pause=0\n")
	run()
	s := out.String()
	for _, step := range []string{"sweep 2000us", "sweep 1500us", "sweep 1000us"} {
		if !strings.Contains(s, step) {
			t.Fatalf("%s missing: %q", step, s)
		}
	}
	freq, top, lvl, enabled := board.PWM(8).State()
	if freq != 50 || top != 0xffff {
		t.Fatalf("pwm state: %d Hz top=%d", freq, top)
	}
	// parked: channel off and duty zeroed
	if enabled || lvl != 0 {
		t.Fatalf("servo left driving: level=%d enabled=%v", lvl, enabled)
	}
}

func TestServoPulseWidth(t *testing.T) {
	board, _, run := rig(t, "servo us=2000 pause=0\n")
	run()
	// 2000us of the 20000us period, then parked at zero
	want := uint16(uint32(2000) * 0xffff / 20000)
	levels := board.PWM(8).Levels
	if len(levels) != 2 || levels[0] != want || levels[1] != 0 {
		t.Fatalf("levels = %v, want [%d 0]", levels, want)
	}
}

func TestPinsListing(t *testing.T) {
	_, out, run := rig(t, "pins\n")
	run()
	s := out.String()
	if !strings.Contains(s, "LED") || !strings.Contains(s, "GP25") {
		t.Fatalf("LED row: %q", s)
	}
	if !strings.Contains(s, "not assigned") {
		t.Fatalf("placeholder rows: %q", s)
	}
}
