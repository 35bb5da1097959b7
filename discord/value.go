package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScalarKind identifies the active variant of a ScalarValue.
type ScalarKind uint8

const (
	ScalarInt ScalarKind = iota + 1
	ScalarFloat
	ScalarString
	ScalarBool
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarString:
		return "string"
	case ScalarBool:
		return "bool"
	default:
		return "none"
	}
}

// ScalarValue is a closed union over the leaf values the protocol carries:
// decoded option values (any variant) and choice or constraint values (Int,
// Float and String only; the command package enforces the narrower set).
//
// The zero value holds no variant and fails to encode.
type ScalarValue struct {
	kind ScalarKind
	i    int64
	f    float64
	s    string
	b    bool
}

// Int returns an integer ScalarValue.
func Int(v int64) ScalarValue { return ScalarValue{kind: ScalarInt, i: v} }

// Float returns a floating-point ScalarValue.
func Float(v float64) ScalarValue { return ScalarValue{kind: ScalarFloat, f: v} }

// String returns a string ScalarValue.
func String(v string) ScalarValue { return ScalarValue{kind: ScalarString, s: v} }

// Bool returns a boolean ScalarValue.
func Bool(v bool) ScalarValue { return ScalarValue{kind: ScalarBool, b: v} }

// Kind returns the active variant, or 0 for the zero value.
func (v ScalarValue) Kind() ScalarKind { return v.kind }

// IsZero reports whether v holds no variant.
func (v ScalarValue) IsZero() bool { return v.kind == 0 }

// AsInt returns the integer payload and whether v is an Int.
func (v ScalarValue) AsInt() (int64, bool) { return v.i, v.kind == ScalarInt }

// AsFloat returns the float payload and whether v is a Float.
func (v ScalarValue) AsFloat() (float64, bool) { return v.f, v.kind == ScalarFloat }

// AsString returns the string payload and whether v is a String.
func (v ScalarValue) AsString() (string, bool) { return v.s, v.kind == ScalarString }

// AsBool returns the boolean payload and whether v is a Bool.
func (v ScalarValue) AsBool() (bool, bool) { return v.b, v.kind == ScalarBool }

// Number returns Int and Float payloads as float64.
func (v ScalarValue) Number() (float64, bool) {
	switch v.kind {
	case ScalarInt:
		return float64(v.i), true
	case ScalarFloat:
		return v.f, true
	default:
		return 0, false
	}
}

func (v ScalarValue) String() string {
	switch v.kind {
	case ScalarInt:
		return strconv.FormatInt(v.i, 10)
	case ScalarFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ScalarString:
		return v.s
	case ScalarBool:
		return strconv.FormatBool(v.b)
	default:
		return "<none>"
	}
}

// MarshalJSON encodes the payload as a bare JSON scalar.
func (v ScalarValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ScalarInt:
		return json.Marshal(v.i)
	case ScalarFloat:
		return json.Marshal(v.f)
	case ScalarString:
		return json.Marshal(v.s)
	case ScalarBool:
		return json.Marshal(v.b)
	default:
		return nil, fmt.Errorf("cannot encode empty scalar value")
	}
}

// UnmarshalJSON decodes a JSON scalar using the protocol's coercion order:
// string, boolean, integer that fits int64, integer above math.MaxInt64
// (widened to Float), any other number as Float. Arrays, objects and null
// fail with a TypeMismatchError.
func (v *ScalarValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &TypeMismatchError{Expected: anyScalar, Actual: "empty input"}
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	case 'n':
		return &TypeMismatchError{Expected: anyScalar, Actual: "null"}
	case '[':
		return &TypeMismatchError{Expected: anyScalar, Actual: "array"}
	case '{':
		return &TypeMismatchError{Expected: anyScalar, Actual: "object"}
	}

	parsed, err := parseNumber(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var anyScalar = []ScalarKind{ScalarString, ScalarInt, ScalarFloat, ScalarBool}

func parseNumber(lit string) (ScalarValue, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
		if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			// Only reachable above math.MaxInt64; the widening is lossy.
			return Float(float64(u)), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return ScalarValue{}, fmt.Errorf("invalid number literal %q: %w", lit, err)
	}
	return Float(f), nil
}

// ScalarFrom coerces an untyped Go scalar (as produced by generic decoders
// such as YAML or encoding/json into any) into a ScalarValue with the same
// priority order as UnmarshalJSON.
func ScalarFrom(x any) (ScalarValue, error) {
	switch t := x.(type) {
	case ScalarValue:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		return parseNumber(t.String())
	case nil:
		return ScalarValue{}, &TypeMismatchError{Expected: anyScalar, Actual: "null"}
	default:
		return ScalarValue{}, &TypeMismatchError{Expected: anyScalar, Actual: fmt.Sprintf("%T", x)}
	}
}

func fromUint(u uint64) ScalarValue {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Float(float64(u))
}
