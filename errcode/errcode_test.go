package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil error")
	}
	if Of(UnknownAlias) != UnknownAlias {
		t.Fatal("bare code")
	}
	if Of(New(PinInUse, "assemble", "LED")) != PinInUse {
		t.Fatal("structured error")
	}
	// wrapped chains resolve to the outermost code
	inner := New(PinUnassigned, "resolve", "PWM0_A")
	outer := Wrap(UnknownBus, "assemble i2c0", inner)
	if Of(outer) != UnknownBus {
		t.Fatalf("wrapped = %s", Of(outer))
	}
	if Of(fmt.Errorf("read: %w", UnknownPin)) != UnknownPin {
		t.Fatal("fmt-wrapped code")
	}
	if Of(errors.New("plain")) != Error {
		t.Fatal("foreign error")
	}
}

func TestErrorFormatting(t *testing.T) {
	e := New(DuplicateAlias, "resolver", "LED")
	if got := e.Error(); got != "resolver: duplicate_alias: LED" {
		t.Fatalf("got %q", got)
	}
	w := Wrap(UnknownBus, "assemble", errors.New("boom"))
	if !errors.Is(w, errors.Unwrap(w)) {
		t.Fatal("cause lost")
	}
}

func TestIsConfig(t *testing.T) {
	if !IsConfig(DuplicatePin) || IsConfig(UnknownAlias) || IsConfig(BadParam) {
		t.Fatal("class split wrong")
	}
}
