package pipeline

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// fingerprint renders variant(params) close to the %#v syntax, with a single
// rendering per value: negative zero is written as zero, every NaN alike, and
// values held by interfaces carry their dynamic type.
func fingerprint(variant string, ptype reflect.Type, params any) string {
	buf := &strings.Builder{}
	buf.WriteString(variant)
	buf.WriteByte('(')

	val := reflect.ValueOf(params)
	if ptype.Kind() == reflect.Interface {
		writeDynamic(buf, val)
	} else {
		writeValue(buf, val)
	}

	buf.WriteByte(')')

	return buf.String()
}

func writeDynamic(buf *strings.Builder, val reflect.Value) {
	if !val.IsValid() {
		buf.WriteString("nil")

		return
	}

	buf.WriteString(val.Type().String())
	buf.WriteByte('(')
	writeValue(buf, val)
	buf.WriteByte(')')
}

//nolint:cyclop // one case per kind
func writeValue(buf *strings.Builder, val reflect.Value) {
	switch val.Kind() {
	case reflect.Invalid:
		buf.WriteString("nil")
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(val.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(val.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		buf.WriteString(strconv.FormatUint(val.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		writeFloat(buf, val.Float(), val.Type().Bits())
	case reflect.Complex64, reflect.Complex128:
		bits := val.Type().Bits() / 2
		buf.WriteString("complex(")
		writeFloat(buf, real(val.Complex()), bits)
		buf.WriteString(", ")
		writeFloat(buf, imag(val.Complex()), bits)
		buf.WriteByte(')')
	case reflect.String:
		buf.WriteString(strconv.Quote(val.String()))
	case reflect.Interface:
		writeDynamic(buf, val.Elem())
	case reflect.Struct:
		buf.WriteString(val.Type().String())
		buf.WriteByte('{')

		for i := 0; i < val.NumField(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(val.Type().Field(i).Name)
			buf.WriteByte(':')
			writeValue(buf, val.Field(i))
		}

		buf.WriteByte('}')
	case reflect.Array, reflect.Slice:
		if val.Kind() == reflect.Slice && val.IsNil() {
			writeNil(buf, val)

			return
		}

		buf.WriteString(val.Type().String())
		buf.WriteByte('{')

		for i := 0; i < val.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}

			writeValue(buf, val.Index(i))
		}

		buf.WriteByte('}')
	case reflect.Map:
		writeMap(buf, val)
	default:
		// pointers, channels and functions are identified by address
		if val.IsNil() {
			writeNil(buf, val)

			return
		}

		buf.WriteString("(" + val.Type().String() + ")(0x" + strconv.FormatUint(uint64(val.Pointer()), 16) + ")")
	}
}

func writeFloat(buf *strings.Builder, f float64, bits int) {
	if f == 0 {
		f = 0
	}

	buf.WriteString(strconv.FormatFloat(f, 'g', -1, bits))
}

func writeNil(buf *strings.Builder, val reflect.Value) {
	buf.WriteString("(" + val.Type().String() + ")(nil)")
}

func writeMap(buf *strings.Builder, val reflect.Value) {
	if val.IsNil() {
		writeNil(buf, val)

		return
	}

	entries := make([]string, 0, val.Len())

	iter := val.MapRange()
	for iter.Next() {
		entry := &strings.Builder{}
		writeValue(entry, iter.Key())
		entry.WriteByte(':')
		writeValue(entry, iter.Value())
		entries = append(entries, entry.String())
	}

	sort.Strings(entries)

	buf.WriteString(val.Type().String())
	buf.WriteByte('{')
	buf.WriteString(strings.Join(entries, ", "))
	buf.WriteByte('}')
}
