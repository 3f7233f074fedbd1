// Package serialio adapts a raw byte stream to the line discipline the shell
// speaks: CR ignored, LF terminates, bounded line length, optional echo for
// interactive terminals.
package serialio

import (
	"context"
	"io"
)

// MaxLine bounds one command line; bytes beyond it are dropped until the
// terminator arrives.
const MaxLine = 128

// Interrupt is the character a long-running command polls for to stop early.
const Interrupt = '~'

// Port is the line transport over any io.ReadWriter (machine.Serial on the
// Pico, a pipe or terminal on the host).
type Port struct {
	rw   io.ReadWriter
	echo bool
	line []byte
}

func New(rw io.ReadWriter, echo bool) *Port {
	return &Port{rw: rw, echo: echo, line: make([]byte, 0, MaxLine)}
}

// ReadLine blocks for the next LF-terminated line. The context is checked
// between reads; an exhausted source returns io.EOF.
func (p *Port) ReadLine(ctx context.Context) (string, error) {
	p.line = p.line[:0]
	var b [1]byte
	for {
		if err := ctx.Err(); err != nil {
			return "", context.Canceled
		}
		n, err := p.rw.Read(b[:])
		if err != nil {
			if err == io.EOF && len(p.line) > 0 {
				return string(p.line), nil
			}
			return "", err
		}
		if n == 0 {
			continue
		}
		switch b[0] {
		case '\n':
			if p.echo {
				p.rw.Write([]byte("\r\n"))
			}
			return string(p.line), nil
		case '\r':
			// ignore; CRLF terminals send it before LF
		case 0x7f, 0x08: // backspace
			if len(p.line) > 0 {
				p.line = p.line[:len(p.line)-1]
				if p.echo {
					p.rw.Write([]byte("\b \b"))
				}
			}
		default:
			if len(p.line) < MaxLine {
				p.line = append(p.line, b[0])
				if p.echo {
					p.rw.Write(b[:])
				}
			}
		}
	}
}

type buffered interface{ Buffered() int }

// Interruptible reports whether the transport can be polled for pending
// input. Blocking streams (host stdin) cannot; commands that would loop
// until Interrupt must bound themselves instead.
func (p *Port) Interruptible() bool {
	_, ok := p.rw.(buffered)
	return ok
}

// Interrupted drains pending input and reports whether the operator sent
// the Interrupt character. Other pending bytes are discarded.
func (p *Port) Interrupted() bool {
	br, ok := p.rw.(buffered)
	if !ok {
		return false
	}
	hit := false
	var b [1]byte
	for br.Buffered() > 0 {
		n, err := p.rw.Read(b[:])
		if err != nil || n == 0 {
			break
		}
		if b[0] == Interrupt {
			hit = true
		}
	}
	return hit
}

func (p *Port) Write(b []byte) (int, error) { return p.rw.Write(b) }

func (p *Port) WriteString(s string) {
	io.WriteString(p.rw, s)
}
