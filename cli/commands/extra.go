package commands

import (
	"fmt"

	"boardshell-go/cli"
	"boardshell-go/cli/internal/parse"
	"boardshell-go/errcode"
	"boardshell-go/x/mathx"

	"tinygo.org/x/drivers/aht20"
)

// ----------------------------- blink ------------------------------------------

func Blink() *cli.Command {
	return &cli.Command{
		Name: "blink",
		Desc: "Blinks a digital output",
		Help: "blink [pin=LED] [times=10] [interval=200(ms)] [help]",
		Run:  blinkRun,
	}
}

func blinkRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}

	pin, label, err := outputFor(c, "LED")
	if err != nil {
		return err
	}
	times := parse.NumberOr[uint16](c.Args, "times", 10)
	interval := parse.NumberOr[uint16](c.Args, "interval", 200)

	fmt.Fprintf(c.Out, "blinking %s x%d @ %dms\r\n", label, times, interval)
	// counting down sidesteps uint16 wraparound at times=65535
	for n := times; n > 0; n-- {
		pin.Set(true)
		c.Dev.Timer.DelayMillis(uint32(interval))
		pin.Set(false)
		c.Dev.Timer.DelayMillis(uint32(interval))
		fmt.Fprintf(c.Out, "blink %d\r\n", times-n+1)
	}
	return nil
}

// ----------------------------- env --------------------------------------------

func Env() *cli.Command {
	return &cli.Command{
		Name: "env",
		Desc: "Reads temperature/humidity from an AHT20",
		Help: "env [bus=i2c0] [help]",
		Run:  envRun,
	}
}

func envRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}
	busID := c.Args.StringOr("bus", "i2c0")
	bus, ok := c.Dev.I2C[busID]
	if !ok {
		return errcode.New(errcode.UnknownBus, "env", busID)
	}

	sensor := aht20.New(bus)
	sensor.Configure()
	if err := sensor.Read(); err != nil {
		return errcode.Wrap(errcode.Error, "env read", err)
	}
	fmt.Fprintf(c.Out, "temp: %d.%d C, humidity: %d.%d %%RH\r\n",
		sensor.DeciCelsius()/10, abs32(sensor.DeciCelsius()%10),
		sensor.DeciRelHumidity()/10, abs32(sensor.DeciRelHumidity()%10))
	return nil
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// ----------------------------- servo ------------------------------------------

const (
	servoFreqHz   = 50
	servoPeriodUs = 1_000_000 / servoFreqHz
	servoMidUs    = 1500 // home position
)

func Servo() *cli.Command {
	return &cli.Command{
		Name: "servo",
		Desc: "Drives an RC servo on a PWM channel",
		Help: "servo [pin=PWM4_A] [us=1500] [pause=1500(ms)] [sweep] [max_us=2000] [help]",
		Run:  servoRun,
	}
}

func servoRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}

	label := c.Args.StringOr("pin", "PWM4_A")
	ch, err := c.Dev.PWMByAlias(label)
	if err != nil {
		return err
	}
	us := parse.NumberOr[uint16](c.Args, "us", servoMidUs)
	pause := parse.NumberOr[uint32](c.Args, "pause", 1500)
	maxUs := mathx.Max(parse.NumberOr[uint16](c.Args, "max_us", 2000), servoMidUs)
	minUs := servoMidUs - mathx.Clamp(maxUs-servoMidUs, 1, servoMidUs)

	if err := ch.Configure(servoFreqHz, 0xffff); err != nil {
		return err
	}
	set := func(us uint16) error {
		level := uint16(uint32(us) * uint32(ch.Top()) / servoPeriodUs)
		return ch.SetDuty(level)
	}

	fmt.Fprintf(c.Out, "%s: %dus @ %dHz\r\n", label, us, servoFreqHz)
	if err := set(us); err != nil {
		return err
	}
	ch.Enable()
	c.Dev.Timer.DelayMillis(pause)

	if c.Args.Contains("sweep") {
		for _, step := range []uint16{maxUs, servoMidUs, minUs, servoMidUs} {
			fmt.Fprintf(c.Out, "sweep %dus\r\n", step)
			if err := set(step); err != nil {
				return err
			}
			c.Dev.Timer.DelayMillis(pause)
		}
	}

	if err := set(0); err != nil {
		return err
	}
	ch.Disable()
	return nil
}

// ----------------------------- example ---------------------------------------

func Example() *cli.Command {
	return &cli.Command{
		Name: "example",
		Desc: "Prints example args",
		Help: `example <arg=(float)> [opt=0(u8)] [on=false(bool)] [path=""(string)] [help]`,
		Run:  exampleRun,
	}
}

func exampleRun(c *cli.Ctx) error {
	if c.Args.Contains("help") {
		c.Cmd.PrintHelp(c.Out)
		return nil
	}

	arg, ok := parse.Number[float32](c.Args, "arg")
	if !ok {
		return errcode.New(errcode.MissingParam, "example", "arg")
	}
	opt := parse.NumberOr[uint8](c.Args, "opt", 0)
	on := c.Args.BoolOr("on", false)
	path := c.Args.StringOr("path", "")

	fmt.Fprintf(c.Out, "arg = %g\r\n", arg)
	fmt.Fprintf(c.Out, "opt = %d\r\n", opt)
	fmt.Fprintf(c.Out, "on = %t\r\n", on)
	fmt.Fprintf(c.Out, "path = %q\r\n", path)
	return nil
}
