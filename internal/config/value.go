package config

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind discriminates the scalar variants an attribute leaf can hold.
type ValueKind int

const (
	// KindNumber is a plain numeric parameter.
	KindNumber ValueKind = iota
	// KindBool is a genuine boolean flag (e.g. force_r).
	KindBool
	// KindString is a textual parameter (e.g. a carrier name).
	KindString
	// KindInf marks an unbounded constraint ("no upper limit").
	KindInf
	// KindDisabled marks a constraint that is switched off entirely. This is
	// deliberately a separate kind rather than an overloaded boolean false,
	// so the distinction survives merging and output.
	KindDisabled
)

// String returns a human-readable name for the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInf:
		return "inf"
	case KindDisabled:
		return "disabled"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is a tagged scalar leaf in a tech's attribute tree. The zero Value
// is the number 0.
type Value struct {
	kind ValueKind
	num  float64
	b    bool
	str  string
}

// NumberVal returns a numeric value. An infinite float collapses into the
// unbounded sentinel so that sources which encode infinity natively (e.g.
// YAML's .inf) and sources using the `inf` keyword behave identically.
func NumberVal(f float64) Value {
	if math.IsInf(f, 0) {
		return InfVal()
	}
	return Value{kind: KindNumber, num: f}
}

// BoolVal returns a boolean value.
func BoolVal(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// StringVal returns a string value.
func StringVal(s string) Value {
	return Value{kind: KindString, str: s}
}

// InfVal returns the unbounded sentinel.
func InfVal() Value {
	return Value{kind: KindInf}
}

// DisabledVal returns the disabled sentinel.
func DisabledVal() Value {
	return Value{kind: KindDisabled}
}

// Kind reports which variant the value holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Number returns the numeric payload. It is only meaningful for KindNumber.
func (v Value) Number() float64 {
	return v.num
}

// Bool returns the boolean payload. It is only meaningful for KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Str returns the string payload. It is only meaningful for KindString.
func (v Value) Str() string {
	return v.str
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.str == o.str
	}
	// Inf and Disabled carry no payload.
	return true
}

// String renders the value the way it would appear in a source document.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.str
	case KindInf:
		return "inf"
	case KindDisabled:
		return "false"
	}
	return ""
}

// MarshalJSON renders the value for the downstream model builder. The
// sentinels keep their source-document spelling: Inf becomes the string
// "inf" (JSON has no infinity literal) and Disabled becomes false, so
// resolved output round-trips with the original library conventions.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindString:
		return []byte(strconv.Quote(v.str)), nil
	case KindInf:
		return []byte(`"inf"`), nil
	case KindDisabled:
		return []byte("false"), nil
	}
	return nil, fmt.Errorf("cannot marshal value of kind %s", v.kind)
}
