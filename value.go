package json0diff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota // no value at this position, distinct from null
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable JSON value. The zero Value is absent.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

func Null() Value { return Value{kind: KindNull} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Number(f float64) Value { return Value{kind: KindNumber, n: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array builds an array value. Absent elements are dropped.
func Array(vs ...Value) Value {
	arr := make([]Value, 0, len(vs))
	for _, v := range vs {
		if v.kind != KindAbsent {
			arr = append(arr, v)
		}
	}
	return Value{kind: KindArray, arr: arr}
}

// Object builds an object value. Absent members are dropped.
func Object(m map[string]Value) Value {
	obj := make(map[string]Value, len(m))
	for k, v := range m {
		if v.kind != KindAbsent {
			obj[k] = v
		}
	}
	return Value{kind: KindObject, obj: obj}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }
func (v Value) Bool() bool { return v.b }
func (v Value) Float() float64 { return v.n }
func (v Value) Text() string { return v.s }
func (v Value) isContainer() bool { return v.kind == KindArray || v.kind == KindObject }
func (v Value) isFiniteNum() bool { return v.kind == KindNumber && !math.IsNaN(v.n) && !math.IsInf(v.n, 0) }
func (v Value) isScalarKind() bool { return v.kind >= KindNull && v.kind <= KindString }

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Index returns the i-th array element, or an absent Value when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Field returns the member named key, or an absent Value.
func (v Value) Field(key string) Value {
	if v.kind != KindObject {
		return Value{}
	}
	return v.obj[key]
}

// Keys returns the object member names in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports structural equality. Object member order is irrelevant,
// array element order is not. Absent equals only absent and NaN equals NaN.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAbsent, KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n || (math.IsNaN(v.n) && math.IsNaN(o.n))
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, a := range v.obj {
			b, ok := o.obj[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v to the generic encoding/json representation. The
// result shares no memory with v. Absent converts to nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

func (v Value) String() string {
	if v.kind == KindAbsent {
		return "<absent>"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%s %v>", v.kind, v.Interface())
	}
	return string(b)
}

// MarshalJSON encodes v. Absent values cannot be encoded.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindAbsent {
		return nil, fmt.Errorf("%w: cannot encode an absent value", ErrInvalidValue)
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := decodeJSON(data, defaultMaxDepth)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueOf normalizes a Go value into a Value. Supported inputs are nil, bool,
// every integer and float kind, json.Number, string, []any, map[string]any,
// Value, raw JSON text as []byte or json.RawMessage, and anything that
// round-trips through encoding/json. NaN and infinities have no JSON form and
// are rejected with ErrInvalidValue.
func ValueOf(v any, opts ...Option) (Value, error) {
	cfg := newConfig(opts)
	return convert(v, 0, cfg.maxDepth)
}

func convert(v any, depth, maxDepth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, fmt.Errorf("%w: exceeds %d levels", ErrTooDeep, maxDepth)
	}
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		if err := checkValue(x, depth, maxDepth); err != nil {
			return Value{}, err
		}
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return finiteNumber(x)
	case float32:
		return finiteNumber(float64(x))
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: number %q: %v", ErrInvalidValue, x.String(), err)
		}
		return finiteNumber(f)
	case json.RawMessage:
		return decodeJSON(x, maxDepth-depth)
	case []byte:
		return decodeJSON(x, maxDepth-depth)
	case []any:
		arr := make([]Value, len(x))
		for i, e := range x {
			ev, err := convert(e, depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := convert(e, depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			obj[k] = ev
		}
		return Value{kind: KindObject, obj: obj}, nil
	}
	return convertReflect(v, depth, maxDepth)
}

// convertReflect handles named types, typed containers and structs.
func convertReflect(v any, depth, maxDepth int) (Value, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, v)
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		if _, ok := v.(json.Marshaler); !ok {
			return String(rv.String()), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if _, ok := v.(json.Marshaler); !ok {
			return Number(float64(rv.Int())), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if _, ok := v.(json.Marshaler); !ok {
			return Number(float64(rv.Uint())), nil
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := v.(json.Marshaler); !ok {
			return finiteNumber(rv.Float())
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		if _, ok := v.(json.Marshaler); !ok {
			return convert(rv.Elem().Interface(), depth+1, maxDepth)
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		if _, ok := v.(json.Marshaler); !ok && rv.Type().Elem().Kind() != reflect.Uint8 {
			arr := make([]Value, rv.Len())
			for i := range arr {
				ev, err := convert(rv.Index(i).Interface(), depth+1, maxDepth)
				if err != nil {
					return Value{}, err
				}
				arr[i] = ev
			}
			return Value{kind: KindArray, arr: arr}, nil
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Null(), nil
		}
		if _, ok := v.(json.Marshaler); !ok {
			obj := make(map[string]Value, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				ev, err := convert(iter.Value().Interface(), depth+1, maxDepth)
				if err != nil {
					return Value{}, err
				}
				obj[iter.Key().String()] = ev
			}
			return Value{kind: KindObject, obj: obj}, nil
		}
	}

	// Structs and custom marshalers: normalize through encoding/json.
	b, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %T: %v", ErrInvalidValue, v, err)
	}
	return decodeJSON(b, maxDepth-depth)
}

func finiteNumber(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: %v is not a JSON number", ErrInvalidValue, f)
	}
	return Number(f), nil
}

// checkValue applies the ValueOf limits to a Value built by hand.
func checkValue(v Value, depth, maxDepth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: exceeds %d levels", ErrTooDeep, maxDepth)
	}
	switch v.kind {
	case KindNumber:
		_, err := finiteNumber(v.n)
		return err
	case KindArray:
		for _, e := range v.arr {
			if err := checkValue(e, depth+1, maxDepth); err != nil {
				return err
			}
		}
	case KindObject:
		for _, e := range v.obj {
			if err := checkValue(e, depth+1, maxDepth); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeJSON(data []byte, maxDepth int) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("%w: failed to decode JSON: %v", ErrInvalidValue, err)
	}
	if dec.More() {
		return Value{}, fmt.Errorf("%w: trailing data after JSON document", ErrInvalidValue)
	}
	return convert(raw, 0, maxDepth)
}
