package memoize

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Key is the canonical encoding of an argument sequence.
// Two argument sequences map to the same Key iff they are structurally equal
// under the rules of EncodeKey.
type Key string

func (k Key) String() string {
	return string(k)
}

// Digest returns a 64-bit hash of the key, suitable for log fields.
// Keys are compared by their full encoding, never by digest.
func (k Key) Digest() uint64 {
	return xxhash.Sum64String(string(k))
}

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	timeType     = reflect.TypeOf((*time.Time)(nil)).Elem()
)

// EncodeKey encodes args into a Key.
//
// Canonicalization rules:
//   - nil, nil pointers, nil interfaces and nil funcs encode as null.
//   - Every integer kind, signed or unsigned, encodes by decimal value,
//     so int(1) and uint8(1) share a key.
//   - Floats encode by their shortest representation and never match an
//     integer: 1 and 1.0 are different keys.
//   - Strings are quoted, so 1 and "1" are different keys.
//   - time.Time encodes as its UTC instant.
//   - Other named types implementing fmt.Stringer encode as type name plus String().
//   - Slices and arrays encode element-wise, maps by sorted encoded key,
//     structs field by field with their type name, pointers by their pointee.
//   - Channels, funcs and unsafe pointers encode by identity, as does any map,
//     slice or pointer reached again while it is still being encoded.
func EncodeKey(args ...any) Key {
	enc := keyEncoder{visiting: make(map[visit]struct{})}
	enc.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			enc.WriteByte(',')
		}
		enc.encode(reflect.ValueOf(arg))
	}
	enc.WriteByte(')')
	return Key(enc.String())
}

// visit identifies a reference value on the current encoding path.
// Slices carry their length so that a prefix of the same backing array
// is not mistaken for a cycle.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

type keyEncoder struct {
	strings.Builder
	visiting map[visit]struct{}
}

// enter marks v as being encoded. It reports false when v is already on the
// path, in which case v has been written by identity.
func (e *keyEncoder) enter(v reflect.Value) (visit, bool) {
	at := visit{ptr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		at.len = v.Len()
	}
	if _, cyclic := e.visiting[at]; cyclic {
		e.encodeIdentity(v)
		return at, false
	}
	e.visiting[at] = struct{}{}
	return at, true
}

func (e *keyEncoder) leave(at visit) {
	delete(e.visiting, at)
}

func (e *keyEncoder) encode(v reflect.Value) {
	if !v.IsValid() {
		e.WriteString("n")
		return
	}

	if v.Type() == timeType && v.CanInterface() {
		e.WriteString("t:")
		e.WriteString(v.Interface().(time.Time).UTC().Format(time.RFC3339Nano))
		return
	}

	if e.encodeStringer(v) {
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		e.WriteString("b:")
		e.WriteString(strconv.FormatBool(v.Bool()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.WriteString("i:")
		e.WriteString(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.WriteString("i:")
		e.WriteString(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32:
		e.WriteString("f:")
		e.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 32))

	case reflect.Float64:
		e.WriteString("f:")
		e.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))

	case reflect.Complex64, reflect.Complex128:
		e.WriteString("c:")
		e.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))

	case reflect.String:
		e.WriteString("s:")
		e.WriteString(strconv.Quote(v.String()))

	case reflect.Slice:
		if v.Len() == 0 {
			e.WriteString("[]")
			return
		}
		at, ok := e.enter(v)
		if !ok {
			return
		}
		e.encodeElems(v)
		e.leave(at)

	case reflect.Array:
		e.encodeElems(v)

	case reflect.Map:
		if v.Len() == 0 {
			e.WriteString("{}")
			return
		}
		at, ok := e.enter(v)
		if !ok {
			return
		}
		e.encodeMap(v)
		e.leave(at)

	case reflect.Struct:
		e.WriteString(v.Type().String())
		e.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				e.WriteByte(',')
			}
			e.WriteString(v.Type().Field(i).Name)
			e.WriteByte('=')
			e.encode(v.Field(i))
		}
		e.WriteByte('}')

	case reflect.Pointer:
		if v.IsNil() {
			e.WriteString("n")
			return
		}
		at, ok := e.enter(v)
		if !ok {
			return
		}
		e.WriteByte('*')
		e.encode(v.Elem())
		e.leave(at)

	case reflect.Interface:
		if v.IsNil() {
			e.WriteString("n")
			return
		}
		e.encode(v.Elem())

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			e.WriteString("n")
			return
		}
		e.encodeIdentity(v)

	default:
		// This should never happen: every reflect.Kind is covered above.
		panic(fmt.Sprintf("exhaustive match fallback, kind: %s", v.Kind()))
	}
}

// encodeStringer handles named types that describe themselves.
// Builtin and unnamed types always go through the structural rules.
func (e *keyEncoder) encodeStringer(v reflect.Value) bool {
	t := v.Type()
	if t.Name() == "" && t.Kind() != reflect.Pointer {
		return false
	}
	if t.PkgPath() == "" && t.Kind() != reflect.Pointer {
		return false
	}
	if !t.Implements(stringerType) || !v.CanInterface() {
		return false
	}
	if t.Kind() == reflect.Pointer && (v.IsNil() || t.Elem() == timeType) {
		return false
	}
	e.WriteString("S:")
	e.WriteString(t.String())
	e.WriteByte(':')
	e.WriteString(strconv.Quote(v.Interface().(fmt.Stringer).String()))
	return true
}

func (e *keyEncoder) encodeElems(v reflect.Value) {
	e.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			e.WriteByte(',')
		}
		e.encode(v.Index(i))
	}
	e.WriteByte(']')
}

func (e *keyEncoder) encodeMap(v reflect.Value) {
	type pair struct{ k, v string }
	pairs := make([]pair, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{
			k: e.sub(iter.Key()),
			v: e.sub(iter.Value()),
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].k < pairs[j].k
	})

	e.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			e.WriteByte(',')
		}
		e.WriteString(p.k)
		e.WriteByte('=')
		e.WriteString(p.v)
	}
	e.WriteByte('}')
}

// sub encodes v on its own, sharing the cycle bookkeeping.
func (e *keyEncoder) sub(v reflect.Value) string {
	inner := keyEncoder{visiting: e.visiting}
	inner.encode(v)
	return inner.String()
}

func (e *keyEncoder) encodeIdentity(v reflect.Value) {
	e.WriteString("p:")
	e.WriteString(v.Type().String())
	e.WriteByte(':')
	e.WriteString(strconv.FormatUint(uint64(v.Pointer()), 16))
}
