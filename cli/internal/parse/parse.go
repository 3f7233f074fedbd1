// Package parse splits one line of operator input into a command name and a
// keyed argument list. Tokenisation is shell-like: double quotes keep spaces
// inside a value together ("set msg=\"hello there\"").
package parse

import (
	"strconv"
	"strings"

	"github.com/google/shlex"
	"golang.org/x/exp/constraints"
)

// Arg is one key[=value] token. HasValue distinguishes a bare flag from an
// explicit empty value (key=).
type Arg struct {
	Key      string
	Value    string
	HasValue bool
}

// Args keeps the tokens in the order they were typed. Lookups return the
// first match; duplicate keys are allowed and later ones are ignored.
type Args []Arg

// Line splits an input line. The first token is the command name, matched
// case-sensitively by the registry. A blank line yields an empty name and the
// dispatcher treats that as a no-op.
func Line(input string) (name string, args Args, err error) {
	if strings.TrimSpace(input) == "" {
		return "", nil, nil
	}
	tokens, err := shlex.Split(input)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", nil, nil
	}
	name = tokens[0]
	for _, tok := range tokens[1:] {
		if tok == "" {
			continue
		}
		key, value, found := strings.Cut(tok, "=")
		if key == "" {
			// orphan "=" or "=value"; there is no key to attach it to
			continue
		}
		args = append(args, Arg{Key: key, Value: value, HasValue: found})
	}
	return name, args, nil
}

// Contains reports whether any token carries the key, with or without value.
func (a Args) Contains(key string) bool {
	for _, arg := range a {
		if arg.Key == key {
			return true
		}
	}
	return false
}

// String returns the first value present for key. ok is false when the key is
// absent or value-less; the handler then applies its own default.
func (a Args) String(key string) (string, bool) {
	for _, arg := range a {
		if arg.Key == key && arg.HasValue {
			return arg.Value, true
		}
	}
	return "", false
}

// Number parses the first value for key as any integer or float type.
// Absent, value-less or unparseable values all report ok=false.
func Number[T constraints.Integer | constraints.Float](a Args, key string) (T, bool) {
	s, ok := a.String(key)
	if !ok {
		return 0, false
	}
	var zero T
	switch any(zero).(type) {
	case float32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, false
		}
		return T(v), true
	case float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return T(v), true
	default:
		// integers: parse signed first, fall back to unsigned for large values
		if v, err := strconv.ParseInt(s, 0, 64); err == nil {
			if inRange[T](v) {
				return T(v), true
			}
			return 0, false
		}
		if v, err := strconv.ParseUint(s, 0, 64); err == nil {
			u := T(v)
			if uint64(u) == v {
				return u, true
			}
		}
		return 0, false
	}
}

// NumberOr is Number with an inline default.
func NumberOr[T constraints.Integer | constraints.Float](a Args, key string, def T) T {
	if v, ok := Number[T](a, key); ok {
		return v
	}
	return def
}

// Bool parses the first value for key as a boolean ("true", "1", "false"...).
func (a Args) Bool(key string) (bool, bool) {
	s, ok := a.String(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}

// BoolOr is Bool with an inline default.
func (a Args) BoolOr(key string, def bool) bool {
	if v, ok := a.Bool(key); ok {
		return v
	}
	return def
}

// StringOr is String with an inline default.
func (a Args) StringOr(key, def string) string {
	if v, ok := a.String(key); ok {
		return v
	}
	return def
}

// inRange reports whether a signed 64-bit value round-trips through T,
// which rejects both overflow and negatives for unsigned targets.
func inRange[T constraints.Integer | constraints.Float](v int64) bool {
	return int64(T(v)) == v
}
