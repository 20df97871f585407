package props

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Bundle is an immutable, insertion-ordered mapping from property name to
// Value. The zero Bundle is empty and ready to use. Derived bundles (With,
// Without, Merge) never share mutable state with their source.
type Bundle struct {
	keys []string
	vals map[string]Value
}

// Field is a single name/value pair used to build a Bundle.
type Field struct {
	Name  string
	Value Value
}

// F creates a Field.
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// New builds a Bundle from fields. A repeated name keeps its first position
// and takes the last value.
func New(fields ...Field) Bundle {
	b := Bundle{
		keys: make([]string, 0, len(fields)),
		vals: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if _, ok := b.vals[f.Name]; !ok {
			b.keys = append(b.keys, f.Name)
		}
		b.vals[f.Name] = f.Value
	}
	return b
}

// Of builds a Bundle from alternating names and Go literals:
//
//	props.Of("name", "Aytekin", "age", 1453)
//
// It panics on an odd argument count, a non-string name, or an unsupported
// value type. Use FromMap for data that is not written in source.
func Of(kv ...any) Bundle {
	if len(kv)%2 != 0 {
		panic("props.Of: odd number of arguments")
	}
	fields := make([]Field, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("props.Of: argument %d is %T, want string name", i, kv[i]))
		}
		v, err := FromAny(kv[i+1])
		if err != nil {
			panic(fmt.Sprintf("props.Of: %s: %v", name, err))
		}
		fields = append(fields, F(name, v))
	}
	return New(fields...)
}

// FromMap converts a map into a Bundle with keys in sorted order.
func FromMap(m map[string]any) (Bundle, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		v, err := FromAny(m[name])
		if err != nil {
			return Bundle{}, fmt.Errorf("%s: %w", name, err)
		}
		fields = append(fields, F(name, v))
	}
	return New(fields...), nil
}

// Len returns the number of top-level properties.
func (b Bundle) Len() int { return len(b.keys) }

// Keys returns the top-level property names in insertion order.
func (b Bundle) Keys() []string {
	cp := make([]string, len(b.keys))
	copy(cp, b.keys)
	return cp
}

// Has reports whether a top-level property is present.
func (b Bundle) Has(name string) bool {
	_, ok := b.vals[name]
	return ok
}

// Value returns a top-level property.
func (b Bundle) Value(name string) (Value, bool) {
	v, ok := b.vals[name]
	return v, ok
}

// Range calls fn for each top-level property in insertion order until fn
// returns false.
func (b Bundle) Range(fn func(name string, v Value) bool) {
	for _, k := range b.keys {
		if !fn(k, b.vals[k]) {
			return
		}
	}
}

// Lookup resolves a dot-separated path such as "data.author.firstName".
// Numeric segments index into lists ("techs.0").
func (b Bundle) Lookup(path string) (Value, bool) {
	if path == "" {
		return Nested(b), true
	}
	cur := Nested(b)
	for _, seg := range strings.Split(path, ".") {
		switch cur.kind {
		case KindBundle:
			next, ok := cur.bundle.vals[seg]
			if !ok {
				return Value{}, false
			}
			cur = next
		case KindList:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(cur.items) {
				return Value{}, false
			}
			cur = cur.items[i]
		default:
			return Value{}, false
		}
	}
	return cur, true
}

// Get resolves path, returning a *MissingError when it is absent.
func (b Bundle) Get(path string) (Value, error) {
	v, ok := b.Lookup(path)
	if !ok {
		return Value{}, &MissingError{Path: path}
	}
	return v, nil
}

// Require checks that every path is present and returns the first
// *MissingError otherwise.
func (b Bundle) Require(paths ...string) error {
	for _, p := range paths {
		if _, ok := b.Lookup(p); !ok {
			return &MissingError{Path: p}
		}
	}
	return nil
}

// GetString resolves path to a String value.
func (b Bundle) GetString(path string) (string, error) {
	v, err := b.typed(path, KindString)
	if err != nil {
		return "", err
	}
	return v.str, nil
}

// GetNumber resolves path to a Number value.
func (b Bundle) GetNumber(path string) (float64, error) {
	v, err := b.typed(path, KindNumber)
	if err != nil {
		return 0, err
	}
	return v.num, nil
}

// GetBool resolves path to a Bool value.
func (b Bundle) GetBool(path string) (bool, error) {
	v, err := b.typed(path, KindBool)
	if err != nil {
		return false, err
	}
	return v.flag, nil
}

// GetList resolves path to a copy of a List value's elements.
func (b Bundle) GetList(path string) ([]Value, error) {
	v, err := b.typed(path, KindList)
	if err != nil {
		return nil, err
	}
	return v.Items(), nil
}

// GetBundle resolves path to a nested Bundle.
func (b Bundle) GetBundle(path string) (Bundle, error) {
	v, err := b.typed(path, KindBundle)
	if err != nil {
		return Bundle{}, err
	}
	return v.bundle, nil
}

// GetText resolves path and returns its display text.
func (b Bundle) GetText(path string) (string, error) {
	v, err := b.Get(path)
	if err != nil {
		return "", err
	}
	return v.Resolve(b).Text(), nil
}

func (b Bundle) typed(path string, want Kind) (Value, error) {
	v, err := b.Get(path)
	if err != nil {
		return Value{}, err
	}
	if v.kind != want {
		return Value{}, &TypeError{Path: path, Want: want, Got: v.kind}
	}
	return v, nil
}

// With returns a copy of b with name set to v.
func (b Bundle) With(name string, v Value) Bundle {
	out := b.clone(1)
	if _, ok := out.vals[name]; !ok {
		out.keys = append(out.keys, name)
	}
	out.vals[name] = v
	return out
}

// Without returns a copy of b with name removed.
func (b Bundle) Without(name string) Bundle {
	if !b.Has(name) {
		return b
	}
	out := Bundle{
		keys: make([]string, 0, len(b.keys)-1),
		vals: make(map[string]Value, len(b.keys)-1),
	}
	for _, k := range b.keys {
		if k == name {
			continue
		}
		out.keys = append(out.keys, k)
		out.vals[k] = b.vals[k]
	}
	return out
}

// Merge returns a copy of b overlaid with other's properties, like an
// object spread: {...b, ...other}.
func (b Bundle) Merge(other Bundle) Bundle {
	out := b.clone(other.Len())
	for _, k := range other.keys {
		if _, ok := out.vals[k]; !ok {
			out.keys = append(out.keys, k)
		}
		out.vals[k] = other.vals[k]
	}
	return out
}

func (b Bundle) clone(extra int) Bundle {
	out := Bundle{
		keys: make([]string, len(b.keys), len(b.keys)+extra),
		vals: make(map[string]Value, len(b.keys)+extra),
	}
	copy(out.keys, b.keys)
	for k, v := range b.vals {
		out.vals[k] = v
	}
	return out
}

// Equal reports whether two bundles hold the same properties with deeply
// equal values. Property order is not significant.
func (b Bundle) Equal(other Bundle) bool {
	if len(b.keys) != len(other.keys) {
		return false
	}
	for _, k := range b.keys {
		ov, ok := other.vals[k]
		if !ok || !Equal(b.vals[k], ov) {
			return false
		}
	}
	return true
}

// Fingerprint returns a 64-bit hash of the bundle's canonical encoding.
// Equal bundles have equal fingerprints.
func (b Bundle) Fingerprint() uint64 {
	d := xxhash.New()
	writeBundle(d, b)
	return d.Sum64()
}

// String renders the bundle for debugging.
func (b Bundle) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(b.vals[k].GoString())
	}
	sb.WriteByte('}')
	return sb.String()
}

func writeBundle(d *xxhash.Digest, b Bundle) {
	keys := b.Keys()
	sort.Strings(keys)
	writeUint(d, uint64(len(keys)))
	for _, k := range keys {
		writeString(d, k)
		writeValue(d, b.vals[k])
	}
}

func writeValue(d *xxhash.Digest, v Value) {
	d.Write([]byte{byte(v.kind)})
	switch v.kind {
	case KindString, KindResource:
		writeString(d, v.str)
	case KindNumber:
		writeUint(d, numberBits(v.num))
	case KindBool:
		if v.flag {
			d.Write([]byte{1})
		} else {
			d.Write([]byte{0})
		}
	case KindTime:
		writeUint(d, uint64(v.at.UnixNano()))
	case KindList:
		writeUint(d, uint64(len(v.items)))
		for _, item := range v.items {
			writeValue(d, item)
		}
	case KindBundle:
		writeBundle(d, v.bundle)
	case KindFunc:
		writeUint(d, uint64(funcID(v.action)))
	case KindComputed:
		writeUint(d, uint64(funcID(v.compute)))
	}
}

func writeString(d *xxhash.Digest, s string) {
	writeUint(d, uint64(len(s)))
	d.WriteString(s)
}

func writeUint(d *xxhash.Digest, n uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	d.Write(buf[:])
}

// numberBits encodes n so that numbers Equal treats as equal hash alike:
// -0 becomes 0 and every NaN the same NaN.
func numberBits(n float64) uint64 {
	switch {
	case n == 0:
		return 0
	case math.IsNaN(n):
		return 0x7ff8000000000001
	}
	return math.Float64bits(n)
}
