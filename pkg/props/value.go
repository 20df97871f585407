package props

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind is the Value type discriminator.
type Kind uint8

const (
	KindNull     Kind = iota // absent / null
	KindString               // text
	KindNumber               // float64
	KindBool                 // true / false
	KindList                 // ordered sequence of Value
	KindBundle               // nested Bundle
	KindFunc                 // callback, never invoked during composition
	KindResource             // opaque external resource id
	KindTime                 // timestamp
	KindComputed             // derived from the rendering bundle
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindList:
		return "List"
	case KindBundle:
		return "Bundle"
	case KindFunc:
		return "Func"
	case KindResource:
		return "Resource"
	case KindTime:
		return "Time"
	case KindComputed:
		return "Computed"
	default:
		return "Unknown"
	}
}

// Action is a callback carried by a property (a click handler, for example).
// Mount points invoke actions in response to external events.
type Action func(ctx context.Context) error

// ComputeFunc derives a value from the bundle of the component that renders it.
type ComputeFunc func(b Bundle) Value

// Value is an immutable property value.
// The zero Value is Null.
type Value struct {
	kind    Kind
	str     string
	num     float64
	flag    bool
	items   []Value
	bundle  Bundle
	action  Action
	compute ComputeFunc
	at      time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Int returns a numeric value from an int.
func Int(n int) Value { return Number(float64(n)) }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// List returns a sequence value. The slice is copied.
func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, items: cp}
}

// Strings returns a sequence of text values.
func Strings(items ...string) Value {
	vs := make([]Value, len(items))
	for i, s := range items {
		vs[i] = String(s)
	}
	return Value{kind: KindList, items: vs}
}

// Nested returns a bundle-valued property.
func Nested(b Bundle) Value { return Value{kind: KindBundle, bundle: b} }

// Func returns a callback-valued property. A nil action is Null.
func Func(a Action) Value {
	if a == nil {
		return Null()
	}
	return Value{kind: KindFunc, action: a}
}

// Resource returns an opaque external resource handle, such as an image path.
func Resource(id string) Value { return Value{kind: KindResource, str: id} }

// Time returns a timestamp value.
func Time(t time.Time) Value { return Value{kind: KindTime, at: t} }

// Computed returns a value derived at composition time from the bundle of
// the component that renders it.
func Computed(fn ComputeFunc) Value {
	if fn == nil {
		return Null()
	}
	return Value{kind: KindComputed, compute: fn}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the text of a String value.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Num returns the number of a Number value.
func (v Value) Num() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Flag returns the boolean of a Bool value.
func (v Value) Flag() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.flag, true
}

// Items returns a copy of a List value's elements.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Len returns the number of elements of a List value.
func (v Value) Len() int {
	if v.kind != KindList {
		return 0
	}
	return len(v.items)
}

// Bundle returns the bundle of a Bundle value.
func (v Value) Bundle() (Bundle, bool) {
	if v.kind != KindBundle {
		return Bundle{}, false
	}
	return v.bundle, true
}

// Action returns the callback of a Func value.
func (v Value) Action() (Action, bool) {
	if v.kind != KindFunc {
		return nil, false
	}
	return v.action, true
}

// ResourceID returns the id of a Resource value.
func (v Value) ResourceID() (string, bool) {
	if v.kind != KindResource {
		return "", false
	}
	return v.str, true
}

// Timestamp returns the time of a Time value.
func (v Value) Timestamp() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.at, true
}

// MaxComputeSteps bounds how many Computed results Eval follows.
const MaxComputeSteps = 64

// Eval evaluates a Computed value against b, following Computed results
// until a plain value comes out. Other kinds are returned unchanged.
func (v Value) Eval(b Bundle) (Value, error) {
	for i := 0; v.kind == KindComputed; i++ {
		if i == MaxComputeSteps {
			return Null(), fmt.Errorf("%w after %d steps", ErrComputeLoop, MaxComputeSteps)
		}
		v = v.compute(b)
	}
	return v, nil
}

// Resolve is Eval with a value that never settles read as null. It never
// yields a Computed value.
func (v Value) Resolve(b Bundle) Value {
	r, _ := v.Eval(b)
	return r
}

// Truthy follows the usual template truthiness: null, false, 0, "" and
// empty lists are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindString, KindResource:
		return v.str != ""
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindBool:
		return v.flag
	case KindList:
		return len(v.items) > 0
	default:
		return true
	}
}

// Text returns the display text of the value. Lists concatenate their
// elements; callbacks, bundles and null render as empty text.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindResource:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindTime:
		return v.at.Format(time.RFC3339)
	case KindList:
		var b strings.Builder
		for _, item := range v.items {
			b.WriteString(item.Text())
		}
		return b.String()
	default:
		return ""
	}
}

// GoString implements fmt.GoStringer for readable test output.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "props.Null()"
	case KindString:
		return fmt.Sprintf("props.String(%q)", v.str)
	case KindNumber:
		return fmt.Sprintf("props.Number(%s)", FormatNumber(v.num))
	case KindBool:
		return fmt.Sprintf("props.Bool(%t)", v.flag)
	case KindResource:
		return fmt.Sprintf("props.Resource(%q)", v.str)
	case KindTime:
		return fmt.Sprintf("props.Time(%s)", v.at.Format(time.RFC3339Nano))
	case KindList:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.GoString()
		}
		return "props.List(" + strings.Join(parts, ", ") + ")"
	case KindBundle:
		return "props.Nested(" + v.bundle.String() + ")"
	default:
		return "props." + v.kind.String() + "(…)"
	}
}

// FormatNumber renders n without a trailing ".0" for integral values.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Equal reports whether two values are deeply equal. Callbacks and computed
// values compare by function identity.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString, KindResource:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num || (math.IsNaN(a.num) && math.IsNaN(b.num))
	case KindBool:
		return a.flag == b.flag
	case KindTime:
		return a.at.Equal(b.at)
	case KindList:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindBundle:
		return a.bundle.Equal(b.bundle)
	case KindFunc:
		return funcID(a.action) == funcID(b.action)
	case KindComputed:
		return funcID(a.compute) == funcID(b.compute)
	}
	return false
}

func funcID(fn any) uintptr {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return 0
	}
	return rv.Pointer()
}

// FromAny converts a Go literal into a Value. Supported: nil, Value, Bundle,
// string, bool, integer and float types, time.Time, Action and
// func(context.Context) error, func(), []any, []string, []Value and
// map[string]any (keys sorted).
func FromAny(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case Bundle:
		return Nested(v), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Number(float64(v)), nil
	case int16:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint:
		return Number(float64(v)), nil
	case uint8:
		return Number(float64(v)), nil
	case uint16:
		return Number(float64(v)), nil
	case uint32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	case time.Time:
		return Time(v), nil
	case Action:
		return Func(v), nil
	case func(context.Context) error:
		return Func(v), nil
	case func():
		return Func(func(context.Context) error { v(); return nil }), nil
	case ComputeFunc:
		return Computed(v), nil
	case []Value:
		return List(v...), nil
	case []string:
		return Strings(v...), nil
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			iv, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = iv
		}
		return Value{kind: KindList, items: items}, nil
	case map[string]any:
		b, err := FromMap(v)
		if err != nil {
			return Value{}, err
		}
		return Nested(b), nil
	default:
		return Value{}, fmt.Errorf("props: unsupported value type %T", x)
	}
}
