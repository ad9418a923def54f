package router

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies a placeholder's value type.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindChar
	KindGUID
)

// String returns the pattern specifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "%s"
	case KindInt:
		return "%i"
	case KindUint:
		return "%u"
	case KindFloat:
		return "%f"
	case KindBool:
		return "%b"
	case KindChar:
		return "%c"
	case KindGUID:
		return "%O"
	}
	return "%?"
}

// Value is one captured placeholder value. It is a closed tagged union over
// the seven placeholder kinds; exactly one payload field is populated,
// according to Kind. Values are comparable.
type Value struct {
	kind Kind
	str  string
	i    int64
	u    uint64
	f    float64
	b    bool
	r    rune
	id   uuid.UUID
}

// Kind returns which payload the value carries.
func (v Value) Kind() Kind { return v.kind }

// Str returns the payload of a KindString value.
func (v Value) Str() string { return v.str }

// Int returns the payload of a KindInt value.
func (v Value) Int() int64 { return v.i }

// Uint returns the payload of a KindUint value.
func (v Value) Uint() uint64 { return v.u }

// Float returns the payload of a KindFloat value.
func (v Value) Float() float64 { return v.f }

// Bool returns the payload of a KindBool value.
func (v Value) Bool() bool { return v.b }

// Char returns the payload of a KindChar value.
func (v Value) Char() rune { return v.r }

// GUID returns the payload of a KindGUID value.
func (v Value) GUID() uuid.UUID { return v.id }

// Any returns the payload as an interface value of its natural Go type.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindChar:
		return v.r
	case KindGUID:
		return v.id
	}
	return nil
}

// String renders the value for diagnostics.
func (v Value) String() string {
	if v.kind == KindChar {
		return fmt.Sprintf("%s(%q)", v.kind, v.r)
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Any())
}
