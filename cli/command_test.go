package cli

import (
	"testing"

	"boardshell-go/errcode"
)

func noop(*Ctx) error { return nil }

func TestRegistryDuplicateName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&Command{Name: "blink", Run: noop}); err != nil {
		t.Fatal(err)
	}
	err := reg.Register(&Command{Name: "blink", Run: noop})
	if errcode.Of(err) != errcode.DuplicateCommand {
		t.Fatalf("got %v, want duplicate_command", err)
	}
}

func TestRegistryFindIsStable(t *testing.T) {
	reg := NewRegistry()
	cmd := &Command{Name: "pins", Run: noop}
	if err := reg.Register(cmd); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		got, ok := reg.Find("pins")
		if !ok || got != cmd {
			t.Fatalf("lookup %d returned %p, want %p", i, got, cmd)
		}
	}
	// exact, case-sensitive match
	if _, ok := reg.Find("Pins"); ok {
		t.Fatal("case-folded name matched")
	}
}

func TestRegistryListOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"help", "pins", "blink"}
	for _, n := range names {
		if err := reg.Register(&Command{Name: n, Run: noop}); err != nil {
			t.Fatal(err)
		}
	}
	got := reg.List()
	if len(got) != len(names) {
		t.Fatalf("len = %d", len(got))
	}
	for i, n := range names {
		if got[i].Name != n {
			t.Fatalf("list[%d] = %s, want %s", i, got[i].Name, n)
		}
	}
}
