package dyn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Value is a sealed interface representing a dynamically-typed argument value.
// Only String, Int, Float, Bool, Array, and Object implement it.
//
// Tool-call arguments in recorded transcripts are loosely typed; modeling them
// as a closed variant keeps schema inference independent of map[string]any
// sprawl and makes exhaustive type switches possible.
type Value interface {
	dynValue() // Sealed - only these types implement it
}

// String represents a string value.
type String string

func (String) dynValue() {}

// Int represents a whole-number value. Always int64.
type Int int64

func (Int) dynValue() {}

// Float represents a fractional number value.
type Float float64

func (Float) dynValue() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) dynValue() {}

// Array represents an ordered list of values.
type Array []Value

func (Array) dynValue() {}

// Object represents a keyed structure of values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) dynValue() {}

// TypeTag identifies the inferred JSON-Schema primitive for a value.
type TypeTag string

// Type tags, matching JSON-Schema type names.
const (
	TypeString  TypeTag = "string"
	TypeInteger TypeTag = "integer"
	TypeNumber  TypeTag = "number"
	TypeBoolean TypeTag = "boolean"
	TypeObject  TypeTag = "object"
	TypeArray   TypeTag = "array"
)

// TypeOf infers a schema type tag from one example value.
//
// Precedence is fixed: boolean before integer before number before the
// structural types, with string as the default for everything else. A whole
// number decoded as Float still reports "number" - the distinction is made
// at decode time, not here.
func TypeOf(v Value) TypeTag {
	switch v.(type) {
	case Bool:
		return TypeBoolean
	case Int:
		return TypeInteger
	case Float:
		return TypeNumber
	case Object:
		return TypeObject
	case Array:
		return TypeArray
	default:
		return TypeString
	}
}

// Decode parses a JSON document into a Value.
//
// Numbers are decoded via json.Number so that whole numbers become Int and
// fractional numbers become Float; plain json.Unmarshal would collapse both
// into float64 and lose the integer/number distinction that schema inference
// depends on.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return FromAny(raw)
}

// DecodeObject parses a JSON document that must be an object.
func DecodeObject(data []byte) (Object, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("expected JSON object, got %T", v)
	}
	return obj, nil
}

// FromAny recursively converts a decoded Go value to a Value.
//
// Accepts the shapes produced by encoding/json (with UseNumber) and by
// gopkg.in/yaml.v3, whose decoder yields native int/float64/bool types.
// JSON null has no variant in the model and maps to the empty string,
// consistent with string being the default type.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return String(""), nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case float64:
		// yaml.v3 produces float64 only for genuine fractions; JSON numbers
		// arrive as json.Number and never hit this case.
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return Int(int64(val)), nil
		}
		return Float(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", val)
		}
		return Float(f), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			dv, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = dv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			dv, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = dv
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// ObjectFromAnyMap converts a map of decoded values to an Object.
// A nil map yields an empty Object, never nil.
func ObjectFromAnyMap(m map[string]any) (Object, error) {
	obj := make(Object, len(m))
	for k, v := range m {
		dv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		obj[k] = dv
	}
	return obj, nil
}

// ToAny converts a Value back to plain Go types suitable for encoding/json.
func ToAny(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Bool:
		return bool(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToAny(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToAny(elem)
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler for Object with sorted keys.
func (obj Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := Marshal(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler for Object.
func (obj *Object) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeObject(data)
	if err != nil {
		return err
	}
	*obj = decoded
	return nil
}

// Marshal serializes a Value to JSON bytes.
// Objects marshal with sorted keys so output is deterministic.
func Marshal(v Value) ([]byte, error) {
	switch val := v.(type) {
	case String:
		return json.Marshal(string(val))
	case Int:
		return json.Marshal(int64(val))
	case Float:
		return json.Marshal(float64(val))
	case Bool:
		return json.Marshal(bool(val))
	case Array:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			elemBytes, err := Marshal(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(elemBytes)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case Object:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}
