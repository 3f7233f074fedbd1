//go:build !rp2040

package hal

import (
	"sync"
	"time"

	"boardshell-go/types"

	"tinygo.org/x/drivers"
)

// Host simulation of the board peripherals. Pins journal their edges so tests
// can assert exact toggle sequences; the timer can run wall-clock or virtual.

// ----------------------------- GPIO (sim) ------------------------------------

// SimPin implements DigitalPin and records every level change.
type SimPin struct {
	mu     sync.Mutex
	number int
	level  bool
	output bool
	pull   types.Pull
	Edges  []bool // levels in the order they were set
}

func (p *SimPin) Number() int { return p.number }

func (p *SimPin) ConfigureInput(pull types.Pull) error {
	p.mu.Lock()
	p.output = false
	p.pull = pull
	p.mu.Unlock()
	return nil
}

func (p *SimPin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.output = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *SimPin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.Edges = append(p.Edges, level)
	p.mu.Unlock()
}

func (p *SimPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *SimPin) Toggle() { p.Set(!p.Get()) }

// Drive sets the level without journaling, for simulating external inputs.
func (p *SimPin) Drive(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// ToggleCount returns the number of recorded level changes.
func (p *SimPin) ToggleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Edges)
}

// ----------------------------- ADC (sim) -------------------------------------

// SimADC returns a scripted conversion value.
type SimADC struct {
	number int
	Value  uint16
}

func (a *SimADC) Number() int     { return a.number }
func (a *SimADC) ReadRaw() uint16 { return a.Value }

// ----------------------------- PWM (sim) -------------------------------------

// SimPWM records the requested configuration and every duty level set.
type SimPWM struct {
	number  int
	freqHz  uint32
	top     uint16
	level   uint16
	enabled bool
	Levels  []uint16 // duty levels in the order they were set
}

func (p *SimPWM) Number() int { return p.number }

func (p *SimPWM) Configure(freqHz uint32, top uint16) error {
	if top == 0 {
		top = 0xffff
	}
	p.freqHz = freqHz
	p.top = top
	return nil
}

func (p *SimPWM) SetDuty(level uint16) error {
	if level > p.top {
		level = p.top
	}
	p.level = level
	p.Levels = append(p.Levels, level)
	return nil
}

func (p *SimPWM) Top() uint16 { return p.top }
func (p *SimPWM) Enable()     { p.enabled = true }
func (p *SimPWM) Disable()    { p.enabled = false }

// State exposes the recorded settings to tests.
func (p *SimPWM) State() (freqHz uint32, top, level uint16, enabled bool) {
	return p.freqHz, p.top, p.level, p.enabled
}

// ----------------------------- I2C (sim) -------------------------------------

// SimI2C implements tinygo drivers.I2C. Tx responses can be scripted per
// address; unscripted reads return zeroes.
type SimI2C struct {
	mu     sync.Mutex
	Reply  map[uint16][]byte
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (b *SimI2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastTx.Addr = addr
	b.LastTx.W = append([]byte(nil), w...)
	b.LastTx.Rn = len(r)
	if reply, ok := b.Reply[addr]; ok {
		copy(r, reply)
	}
	return nil
}

var _ drivers.I2C = (*SimI2C)(nil)

// ----------------------------- UART (sim) ------------------------------------

// SimUART loops writes into an inspectable buffer.
type SimUART struct {
	mu   sync.Mutex
	baud uint32
	TxBu []byte
}

func (u *SimUART) Write(p []byte) (int, error) {
	u.mu.Lock()
	u.TxBu = append(u.TxBu, p...)
	u.mu.Unlock()
	return len(p), nil
}

func (u *SimUART) Read(p []byte) (int, error) { return 0, nil }
func (u *SimUART) SetBaudRate(baud uint32)    { u.baud = baud }

// ----------------------------- Timer (sim) -----------------------------------

// SimTimer advances virtually by default so tests run instantly. Set Wall to
// true to sleep for real (host bring-up tool).
type SimTimer struct {
	mu      sync.Mutex
	Wall    bool
	elapsed uint64 // µs
	start   time.Time
}

func NewSimTimer(wall bool) *SimTimer { return &SimTimer{Wall: wall, start: time.Now()} }

func (t *SimTimer) NowMicros() uint64 {
	if t.Wall {
		return uint64(time.Since(t.start).Microseconds())
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

func (t *SimTimer) DelayMillis(ms uint32) {
	if t.Wall {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return
	}
	t.mu.Lock()
	t.elapsed += uint64(ms) * 1000
	t.mu.Unlock()
}

// ----------------------------- System (sim) ----------------------------------

// SimSystem counts reset requests instead of acting on them.
type SimSystem struct {
	mu         sync.Mutex
	Resets     int
	Bootloads  int
	TempMilliC int32
}

func (s *SimSystem) Reset() {
	s.mu.Lock()
	s.Resets++
	s.mu.Unlock()
}

func (s *SimSystem) EnterBootloader() {
	s.mu.Lock()
	s.Bootloads++
	s.mu.Unlock()
}

func (s *SimSystem) TemperatureMilliC() int32 { return s.TempMilliC }

// ----------------------------- Peripherals -----------------------------------

// SimBoard implements Peripherals over the simulated resources above.
type SimBoard struct {
	mu    sync.Mutex
	pins  map[int]*SimPin
	adcs  map[int]*SimADC
	pwms  map[int]*SimPWM
	i2c   map[string]*SimI2C
	uarts map[string]*SimUART
	timer *SimTimer
	sys   *SimSystem

	maxGPIO int
}

// NewSimBoard builds a host board with GPIO 0..maxGPIO and the named buses.
func NewSimBoard(maxGPIO int, i2cIDs, uartIDs []string) *SimBoard {
	b := &SimBoard{
		pins:    make(map[int]*SimPin),
		adcs:    make(map[int]*SimADC),
		pwms:    make(map[int]*SimPWM),
		i2c:     make(map[string]*SimI2C),
		uarts:   make(map[string]*SimUART),
		timer:   NewSimTimer(false),
		sys:     &SimSystem{TempMilliC: 27_000},
		maxGPIO: maxGPIO,
	}
	for _, id := range i2cIDs {
		b.i2c[id] = &SimI2C{}
	}
	for _, id := range uartIDs {
		b.uarts[id] = &SimUART{}
	}
	return b
}

func (b *SimBoard) DigitalByNumber(n int) (DigitalPin, bool) {
	if n < 0 || n > b.maxGPIO {
		return nil, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pins[n]
	if !ok {
		p = &SimPin{number: n}
		b.pins[n] = p
	}
	return p, true
}

func (b *SimBoard) AnalogByNumber(n int) (AnalogPin, bool) {
	if n < 26 || n > b.maxGPIO {
		return nil, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.adcs[n]
	if !ok {
		a = &SimADC{number: n}
		b.adcs[n] = a
	}
	return a, true
}

func (b *SimBoard) PWMByNumber(n int) (PWMChannel, bool) {
	if n < 0 || n > b.maxGPIO {
		return nil, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pwms[n]
	if !ok {
		p = &SimPWM{number: n, top: 0xffff}
		b.pwms[n] = p
	}
	return p, true
}

func (b *SimBoard) I2CByID(id string) (drivers.I2C, bool) {
	bus, ok := b.i2c[id]
	return bus, ok
}

func (b *SimBoard) UARTByID(id string) (UARTPort, bool) {
	u, ok := b.uarts[id]
	return u, ok
}

func (b *SimBoard) Timer() Timer   { return b.timer }
func (b *SimBoard) System() System { return b.sys }

// Pin returns the sim pin for test inspection (nil if never claimed).
func (b *SimBoard) Pin(n int) *SimPin {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pins[n]
}

// ADC returns the sim ADC for scripting values in tests.
func (b *SimBoard) ADC(n int) *SimADC {
	a, _ := b.AnalogByNumber(n)
	if a == nil {
		return nil
	}
	return a.(*SimADC)
}

// PWM returns the sim PWM channel for test inspection.
func (b *SimBoard) PWM(n int) *SimPWM {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pwms[n]
}

// Bus returns the sim I2C bus for scripting replies in tests.
func (b *SimBoard) Bus(id string) *SimI2C { return b.i2c[id] }

// Sys returns the sim system services for test inspection.
func (b *SimBoard) Sys() *SimSystem { return b.sys }
