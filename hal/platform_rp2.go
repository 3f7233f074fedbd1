//go:build rp2040

package hal

import (
	"time"

	"boardshell-go/types"
	"boardshell-go/x/mathx"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// RP2040 peripherals over the TinyGo machine package, with UARTs routed
// through uartx like the rest of our Pico bring-up tooling.

// ----------------------------- GPIO ------------------------------------------

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) ConfigureInput(pull types.Pull) error {
	var mode machine.PinMode
	switch pull {
	case types.PullUp:
		mode = machine.PinInputPullup
	case types.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

// ----------------------------- ADC -------------------------------------------

type rp2ADC struct {
	a machine.ADC
	n int
}

func (r *rp2ADC) Number() int     { return r.n }
func (r *rp2ADC) ReadRaw() uint16 { return r.a.Get() }

// ----------------------------- PWM -------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

// Controller handle for a given slice number (0..7). Slice = (pin/2) % 8,
// channel A/B = pin % 2 per the RP2040 pin mux.
func pwmBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type rp2PWM struct {
	pin     int
	ctrl    pwmCtrl
	chIdx   uint8
	reqTop  uint16 // logical resolution requested by the caller
	hwTop   uint32 // controller top after Configure
	level   uint16
	enabled bool
}

func (p *rp2PWM) Number() int { return p.pin }

func (p *rp2PWM) Configure(freqHz uint32, top uint16) error {
	if freqHz == 0 {
		freqHz = 1
	}
	if top == 0 {
		top = 0xffff
	}
	period := uint64(1_000_000_000 / uint64(freqHz))
	if err := p.ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
		return err
	}
	machine.Pin(p.pin).Configure(machine.PinConfig{Mode: machine.PinPWM})
	p.reqTop = top
	p.hwTop = p.ctrl.Top()
	p.enabled = true
	return nil
}

func (p *rp2PWM) SetDuty(level uint16) error {
	if p.hwTop == 0 || p.reqTop == 0 {
		return errNotConfigured
	}
	p.level = mathx.Min(level, p.reqTop)
	if p.enabled {
		p.drive(p.level)
	}
	return nil
}

func (p *rp2PWM) Top() uint16 { return p.reqTop }

// The slice counter keeps running; enable is modelled as "drive current
// level" vs "drive 0" on this channel, so the sibling channel is unaffected.
func (p *rp2PWM) Enable() {
	p.enabled = true
	p.drive(p.level)
}

func (p *rp2PWM) Disable() {
	p.enabled = false
	p.drive(0)
}

func (p *rp2PWM) drive(level uint16) {
	if p.reqTop == 0 {
		return
	}
	// Scale from logical [0..reqTop] to hardware [0..hwTop].
	p.ctrl.Set(p.chIdx, (uint32(level)*p.hwTop)/uint32(p.reqTop))
}

var errNotConfigured = configErr("pwm_not_configured")

type configErr string

func (e configErr) Error() string { return string(e) }

// ----------------------------- UART ------------------------------------------

type rp2UART struct{ u *uartx.UART }

func (p *rp2UART) Write(b []byte) (int, error) { return p.u.Write(b) }
func (p *rp2UART) Read(b []byte) (int, error)  { return p.u.Read(b) }
func (p *rp2UART) SetBaudRate(baud uint32)     { p.u.SetBaudRate(baud) }

// ----------------------------- Timer -----------------------------------------

type rp2Timer struct{ start time.Time }

func (t *rp2Timer) NowMicros() uint64 { return uint64(time.Since(t.start).Microseconds()) }
func (t *rp2Timer) DelayMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// ----------------------------- System ----------------------------------------

type rp2System struct{}

func (rp2System) Reset()           { machine.CPUReset() }
func (rp2System) EnterBootloader() { machine.EnterBootloader() }

// TemperatureMilliC reads the internal sensor on ADC channel 4.
func (rp2System) TemperatureMilliC() int32 { return machine.ReadTemperature() }

// ----------------------------- Board -----------------------------------------

type rp2Board struct {
	timer *rp2Timer
	i2c   map[string]drivers.I2C
	uarts map[string]*rp2UART
}

// NewBoard brings up the RP2040 peripherals. Bus pin choices come from the
// resolved pin table; callers pass them through BusWiring.
func NewBoard(w BusWiring) Peripherals {
	machine.InitADC()

	b := &rp2Board{
		timer: &rp2Timer{start: time.Now()},
		i2c:   make(map[string]drivers.I2C),
		uarts: make(map[string]*rp2UART),
	}

	for _, bus := range w.I2C {
		var hw *machine.I2C
		switch bus.ID {
		case "i2c0":
			hw = machine.I2C0
		case "i2c1":
			hw = machine.I2C1
		default:
			continue
		}
		sda := machine.Pin(bus.SDA)
		scl := machine.Pin(bus.SCL)
		sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
		scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
		hw.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: bus.Hz})
		b.i2c[bus.ID] = hw
	}

	for _, bus := range w.UART {
		var hw *uartx.UART
		switch bus.ID {
		case "uart0":
			hw = uartx.UART0
		case "uart1":
			hw = uartx.UART1
		default:
			continue
		}
		hw.Configure(uartx.UARTConfig{
			BaudRate: bus.Baud,
			TX:       machine.Pin(bus.TX),
			RX:       machine.Pin(bus.RX),
		})
		b.uarts[bus.ID] = &rp2UART{u: hw}
	}

	return b
}

func (b *rp2Board) DigitalByNumber(n int) (DigitalPin, bool) {
	if n < 0 || n > 29 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

func (b *rp2Board) AnalogByNumber(n int) (AnalogPin, bool) {
	if n < 26 || n > 29 {
		return nil, false
	}
	a := machine.ADC{Pin: machine.Pin(n)}
	a.Configure(machine.ADCConfig{})
	return &rp2ADC{a: a, n: n}, true
}

func (b *rp2Board) PWMByNumber(n int) (PWMChannel, bool) {
	if n < 0 || n > 29 {
		return nil, false
	}
	slice := uint8((n / 2) % 8)
	return &rp2PWM{pin: n, ctrl: pwmBySlice(slice), chIdx: uint8(n % 2)}, true
}

func (b *rp2Board) I2CByID(id string) (drivers.I2C, bool) {
	bus, ok := b.i2c[id]
	return bus, ok
}

func (b *rp2Board) UARTByID(id string) (UARTPort, bool) {
	u, ok := b.uarts[id]
	return u, ok
}

func (b *rp2Board) Timer() Timer   { return b.timer }
func (b *rp2Board) System() System { return rp2System{} }
