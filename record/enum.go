package record

import (
	"fmt"
	"strings"
)

// Enum is a closed set of named constants.
type Enum struct {
	name    string
	symbols []Symbol
	byValue map[string]int
}

// Symbol is one member of an Enum. The zero Symbol belongs to no enum.
type Symbol struct {
	enum  *Enum
	name  string
	value string
}

// NewEnum builds an enum whose symbols carry the given external values.
// Symbol names are the upper-case form of the values.
func NewEnum(name string, values ...string) *Enum {
	if name == "" {
		panic("record: enum with empty name")
	}
	e := &Enum{name: name, byValue: make(map[string]int, len(values))}
	for _, v := range values {
		if v == "" {
			panic(fmt.Sprintf("record: enum %s has an empty value", name))
		}
		if _, dup := e.byValue[v]; dup {
			panic(fmt.Sprintf("record: enum %s declares %q twice", name, v))
		}
		e.byValue[v] = len(e.symbols)
		e.symbols = append(e.symbols, Symbol{enum: e, name: symbolName(v), value: v})
	}
	return e
}

func symbolName(v string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, v)
}

// Name returns the enum type name.
func (e *Enum) Name() string { return e.name }

// Symbols returns the symbols in declaration order.
func (e *Enum) Symbols() []Symbol {
	out := make([]Symbol, len(e.symbols))
	copy(out, e.symbols)
	return out
}

// Parse returns the symbol whose external value is raw.
func (e *Enum) Parse(raw string) (Symbol, error) {
	i, ok := e.byValue[raw]
	if !ok {
		return Symbol{}, &UnrecognizedEnumValueError{Enum: e.name, Value: raw}
	}
	return e.symbols[i], nil
}

// MustParse is like Parse but panics on an unrecognized value.
func (e *Enum) MustParse(raw string) Symbol {
	s, err := e.Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Enum returns the enum the symbol belongs to.
func (s Symbol) Enum() *Enum { return s.enum }

// Name returns the symbol constant name (e.g. "APPLY").
func (s Symbol) Name() string { return s.name }

// Value returns the external representation (e.g. "apply").
func (s Symbol) Value() string { return s.value }

// IsZero reports whether s is the zero Symbol.
func (s Symbol) IsZero() bool { return s.enum == nil }

// String returns the external value.
func (s Symbol) String() string { return s.value }
