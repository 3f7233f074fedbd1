// Package commands holds the built-in command set. Register new commands in
// All below.
package commands

import (
	"fmt"

	"boardshell-go/cli"
	"boardshell-go/cli/internal/parse"
	"boardshell-go/errcode"
	"boardshell-go/hal"
	"boardshell-go/types"
	"boardshell-go/x/mathx"
)

// All returns the full built-in command set in help-listing order.
func All() []*cli.Command {
	return []*cli.Command{
		Help(),
		Pins(),
		SetPin(),
		ReadPin(),
		ReadADC(),
		SampleADC(),
		SetPWM(),
		Servo(),
		Blink(),
		Env(),
		Uptime(),
		Reset(),
		Flash(),
		Example(),
	}
}

// ----------------------------- help -------------------------------------------

func Help() *cli.Command {
	return &cli.Command{
		Name: "help",
		Desc: "Lists commands",
		Help: "help [cmd=<name>]",
		Run:  helpRun,
	}
}

func helpRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	if name, ok := c.Args.String("cmd"); ok {
		cmd, found := c.Reg.Find(name)
		if !found {
			return errcode.New(errcode.UnknownCommand, "help", name)
		}
		cmd.PrintHelp(c.Out)
		return nil
	}
	for _, cmd := range c.Reg.List() {
		fmt.Fprintf(c.Out, "%-10s %s\r\n", cmd.Name, cmd.Desc)
	}
	return nil
}

// ----------------------------- pins -------------------------------------------

func Pins() *cli.Command {
	return &cli.Command{
		Name: "pins",
		Desc: "Prints the pin definition table",
		Help: "pins [help]",
		Run:  pinsRun,
	}
}

func pinsRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	for _, def := range c.Dev.Resolver().Defs() {
		if def.Assigned() {
			fmt.Fprintf(c.Out, "%-10s GP%-3d %s\r\n", def.Alias, def.ID, def.Group)
		} else {
			fmt.Fprintf(c.Out, "%-10s -     %s (not assigned)\r\n", def.Alias, def.Group)
		}
	}
	return nil
}

// ----------------------------- set_pin ----------------------------------------

func SetPin() *cli.Command {
	return &cli.Command{
		Name: "set_pin",
		Desc: "Sets a digital output level",
		Help: "set_pin [pin=LED] [gpio=<n>] [high] [low] [toggle] [help]",
		Run:  setPinRun,
	}
}

// outputFor picks the target handle: gpio=N wins over pin=<alias>.
func outputFor(c *cli.Ctx, defAlias string) (hal.DigitalPin, string, error) {
	if n, ok := parse.Number[int](c.Args, "gpio"); ok {
		pin, err := c.Dev.Output(n)
		return pin, fmt.Sprintf("GP%d", n), err
	}
	alias := c.Args.StringOr("pin", defAlias)
	pin, err := c.Dev.OutputByAlias(alias)
	return pin, alias, err
}

func setPinRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	pin, label, err := outputFor(c, "LED")
	if err != nil {
		return err
	}
	switch {
	case c.Args.Contains("high"):
		pin.Set(true)
	case c.Args.Contains("low"):
		pin.Set(false)
	default:
		pin.Toggle()
	}
	fmt.Fprintf(c.Out, "%s: %s\r\n", label, level(pin.Get()))
	return nil
}

// ----------------------------- read_pin ---------------------------------------

func ReadPin() *cli.Command {
	return &cli.Command{
		Name: "read_pin",
		Desc: "Reads a digital pin level",
		Help: "read_pin [pin=BUTTON] [gpio=<n>] [help]",
		Run:  readPinRun,
	}
}

func readPinRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}

	var (
		pin   hal.DigitalPin
		label string
		err   error
	)
	if n, ok := parse.Number[int](c.Args, "gpio"); ok {
		label = fmt.Sprintf("GP%d", n)
		if pin, err = c.Dev.Input(n); err != nil {
			pin, err = c.Dev.Output(n) // outputs read back their set level
		}
	} else {
		alias := c.Args.StringOr("pin", "BUTTON")
		label = alias
		if pin, err = c.Dev.InputByAlias(alias); err != nil {
			pin, err = c.Dev.OutputByAlias(alias)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "%s: %s\r\n", label, level(pin.Get()))
	return nil
}

// ----------------------------- read_adc ---------------------------------------

func ReadADC() *cli.Command {
	return &cli.Command{
		Name: "read_adc",
		Desc: "Reads all analog channels",
		Help: "read_adc [ref_res=10000(ohm)] [help]",
		Run:  readADCRun,
	}
}

const adcRefMillivolts = 3300

func readADCRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	refRes := parse.NumberOr[uint32](c.Args, "ref_res", 10_000)
	fmt.Fprintf(c.Out, "reference pullup: %d ohm\r\n", refRes)

	for _, rp := range c.Dev.Resolver().Pins(types.GroupAnalog) {
		adc, err := c.Dev.Analog(rp.ID)
		if err != nil {
			return err
		}
		raw := adc.ReadRaw()
		mv := uint32(raw) * adcRefMillivolts / 0xffff
		fmt.Fprintf(c.Out, "%s (GP%d): %d mV, %s, raw %d\r\n",
			rp.Alias, rp.ID, mv, pullupOhms(raw, refRes), raw)
	}

	tmc := c.Dev.Sys.TemperatureMilliC()
	fmt.Fprintf(c.Out, "temp sense: %d.%d C\r\n", tmc/1000, abs32(tmc%1000)/100)
	return nil
}

// pullupOhms estimates the resistance to ground through a pullup divider.
// A full-scale reading means nothing pulls the pin down: open circuit.
func pullupOhms(raw uint16, refRes uint32) string {
	if raw >= 0xffff {
		return "open"
	}
	ohm := uint64(refRes) * uint64(raw) / uint64(0xffff-raw)
	return fmt.Sprintf("%d ohm", ohm)
}

// ----------------------------- sample_adc -------------------------------------

func SampleADC() *cli.Command {
	return &cli.Command{
		Name: "sample_adc",
		Desc: "Continuously samples one analog channel",
		Help: "sample_adc [pin=ADC0] [gpio=<n>] [samples=0(until '~')] [ref_res=10000(ohm)] [interval=200(ms)] [help]",
		Run:  sampleADCRun,
	}
}

// breaker is the optional console capability long-running commands poll to
// stop early. The serial port implements it; plain writers do not.
type breaker interface {
	Interruptible() bool
	Interrupted() bool
}

func sampleADCRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}

	var (
		adc   hal.AnalogPin
		label string
		err   error
	)
	if n, ok := parse.Number[int](c.Args, "gpio"); ok {
		label = fmt.Sprintf("GP%d", n)
		adc, err = c.Dev.Analog(n)
	} else {
		label = c.Args.StringOr("pin", "ADC0")
		adc, err = c.Dev.AnalogByAlias(label)
	}
	if err != nil {
		return err
	}

	refRes := parse.NumberOr[uint32](c.Args, "ref_res", 10_000)
	interval := parse.NumberOr[uint32](c.Args, "interval", 200)
	samples := parse.NumberOr[uint32](c.Args, "samples", 0)

	br, _ := c.Out.(breaker)
	if samples == 0 {
		if br == nil || !br.Interruptible() {
			return errcode.New(errcode.BadParam, "sample_adc",
				"console cannot interrupt; pass samples=<n>")
		}
		fmt.Fprintf(c.Out, "sampling %s, send '~' to stop\r\n", label)
	} else {
		fmt.Fprintf(c.Out, "sampling %s x%d\r\n", label, samples)
	}

	for n := uint32(0); samples == 0 || n < samples; n++ {
		raw := adc.ReadRaw()
		mv := uint32(raw) * adcRefMillivolts / 0xffff
		fmt.Fprintf(c.Out, "%d mV, %s, raw %d\r\n", mv, pullupOhms(raw, refRes), raw)
		c.Dev.Timer.DelayMillis(interval)
		if br != nil && br.Interrupted() {
			c.Out.Write([]byte("interrupted\r\n"))
			break
		}
	}
	return nil
}

// ----------------------------- set_pwm ----------------------------------------

func SetPWM() *cli.Command {
	return &cli.Command{
		Name: "set_pwm",
		Desc: "Configures a PWM channel",
		Help: "set_pwm [pin=PWM3_A] [gpio=<n>] [freq=50(hz)] [duty=50(%)] [top=65535] [disable] [help]",
		Run:  setPWMRun,
	}
}

func setPWMRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}

	var (
		ch    hal.PWMChannel
		label string
		err   error
	)
	if n, ok := parse.Number[int](c.Args, "gpio"); ok {
		label = fmt.Sprintf("GP%d", n)
		ch, err = c.Dev.PWM(n)
	} else {
		label = c.Args.StringOr("pin", "PWM3_A")
		ch, err = c.Dev.PWMByAlias(label)
	}
	if err != nil {
		return err
	}

	if c.Args.Contains("disable") {
		ch.Disable()
		fmt.Fprintf(c.Out, "%s: disabled\r\n", label)
		return nil
	}

	freq := parse.NumberOr[uint32](c.Args, "freq", 50)
	duty := mathx.Clamp(parse.NumberOr[uint16](c.Args, "duty", 50), 0, 100)
	top := parse.NumberOr[uint16](c.Args, "top", 0xffff)

	if err := ch.Configure(freq, top); err != nil {
		return err
	}
	level := mathx.MapU16(duty, 0, 100, 0, ch.Top())
	if err := ch.SetDuty(level); err != nil {
		return err
	}
	ch.Enable()
	fmt.Fprintf(c.Out, "%s: %d Hz, duty %d%% (%d/%d)\r\n", label, freq, duty, level, ch.Top())
	return nil
}

// ----------------------------- uptime -----------------------------------------

func Uptime() *cli.Command {
	return &cli.Command{
		Name: "uptime",
		Desc: "Prints time since boot",
		Help: "uptime [help]",
		Run:  uptimeRun,
	}
}

func uptimeRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	us := c.Dev.Timer.NowMicros()
	secs := us / 1_000_000
	fmt.Fprintf(c.Out, "%dh %02dm %02ds %03dms\r\n",
		secs/3600, (secs%3600)/60, secs%60, (us%1_000_000)/1000)
	return nil
}

// ----------------------------- reset / flash ----------------------------------

func Reset() *cli.Command {
	return &cli.Command{
		Name: "reset",
		Desc: "Resets the device",
		Help: "reset [help]",
		Run:  resetRun,
	}
}

func resetRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	c.Out.Write([]byte("resetting...\r\n"))
	// let the message drain before the line goes dead
	c.Dev.Timer.DelayMillis(500)
	c.Dev.Sys.Reset()
	return nil
}

func Flash() *cli.Command {
	return &cli.Command{
		Name: "flash",
		Desc: "Restarts the device in USB flash mode",
		Help: "flash [help]",
		Run:  flashRun,
	}
}

func flashRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	c.Out.Write([]byte("restarting in USB flash mode...\r\n"))
	c.Dev.Timer.DelayMillis(500)
	c.Dev.Sys.EnterBootloader()
	return nil
}

func level(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
