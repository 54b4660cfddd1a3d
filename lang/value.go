package lang

import (
	"math"
	"strconv"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
	TypeCallable

	// typeMismatch marks an operator applied to operand types it does not
	// support. It only travels between the binary dispatch and its caller.
	typeMismatch
)

// Value represents any runtime object in the interpreter. The zero Value is nil.
type Value struct {
	Type    ValueType
	payload interface{}
}

// Nil is the nil value.
var Nil = Value{Type: TypeNil}

var mismatch = Value{Type: typeMismatch}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a number Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// CallableValue wraps a native or user-defined function.
func CallableValue(c Callable) Value {
	return Value{Type: TypeCallable, payload: c}
}

// FromLiteral converts a literal decoded by the scanner or parser.
func FromLiteral(lit interface{}) Value {
	switch v := lit.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case int:
		return NumberValue(float64(v))
	case string:
		return StringValue(v)
	case Value:
		return v
	default:
		return Nil
	}
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Number() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

func (v Value) Callable() Callable {
	if c, ok := v.payload.(Callable); ok {
		return c
	}
	return nil
}

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool {
	return v.Type == TypeNil
}

// IsTruthy reports whether a value counts as true in a condition: everything
// except nil and false.
func IsTruthy(v Value) bool {
	switch v.Type {
	case TypeNil:
		return false
	case TypeBool:
		return v.Bool()
	default:
		return true
	}
}

// String renders the value the way print shows it.
func (v Value) String() string {
	switch v.Type {
	case TypeNil:
		return "nil"
	case TypeBool:
		return strconv.FormatBool(v.Bool())
	case TypeNumber:
		return FormatNumber(v.Number())
	case TypeString:
		return v.Str()
	case TypeCallable:
		if c := v.Callable(); c != nil {
			return c.String()
		}
		return "<fn>"
	default:
		return "<unknown>"
	}
}

// FormatNumber renders a number in its shortest form without exponent, so
// that integral values print without a fraction.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
