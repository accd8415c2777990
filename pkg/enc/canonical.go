package enc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	ojson "github.com/nspcc-dev/go-ordered-json"
)

const hexDigits = "0123456789abcdef"

// String returns the canonical string of v. Strings are used as is, scalars in
// their JavaScript String() form, everything else is encoded as JSON. The
// result has `/` escaped as `\/` and every UTF-16 code unit above 0xff escaped
// as `\uXXXX`.
func String(v any) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case nil:
		s = "null"
	case bool:
		s = strconv.FormatBool(x)
	case float64:
		s = jsNumberString(x)
	case float32:
		s = jsNumberString(float64(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s = fmt.Sprint(x)
	case json.Number:
		s = numberLiteral(x.String(), jsNumberString)
	case ojson.Number:
		s = numberLiteral(string(x), jsNumberString)
	default:
		s = stringify(v)
	}
	return escapeUnicode(strings.ReplaceAll(s, "/", `\/`))
}

// JSONLength returns the length of the JSON form of v in UTF-16 code units,
// without the slash and unicode escaping applied by String.
func JSONLength(v any) int {
	n := 0
	for _, r := range stringify(v) {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

func stringify(v any) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case string:
		writeString(b, x)
	case json.Number:
		b.WriteString(numberLiteral(x.String(), jsonNumberString))
	case ojson.Number:
		b.WriteString(numberLiteral(string(x), jsonNumberString))
	case float64:
		writeFloat(b, x)
	case float32:
		writeFloat(b, float64(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		fmt.Fprint(b, x)
	case Object:
		b.WriteByte('{')
		for i, m := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, m.Key)
			b.WriteByte(':')
			writeValue(b, m.Value)
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, e)
		}
		b.WriteByte(']')
	case []string:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, e)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, k)
			b.WriteByte(':')
			writeValue(b, x[k])
		}
		b.WriteByte('}')
	case json.RawMessage:
		writeDecoded(b, x)
	default:
		raw, err := ojson.Marshal(v)
		if err != nil {
			b.WriteString("null")
			return
		}
		writeDecoded(b, raw)
	}
}

// writeDecoded re-reads JSON produced elsewhere so it is emitted with the
// canonical escaping rules while keeping its key order.
func writeDecoded(b *strings.Builder, raw []byte) {
	decoded, err := Decode(raw)
	if err != nil {
		b.WriteString("null")
		return
	}
	writeValue(b, decoded)
}

// writeString quotes s the way JSON.stringify does.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				writeUnitEscape(b, uint16(r))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func writeFloat(b *strings.Builder, f float64) {
	b.WriteString(jsonNumberString(f))
}

// jsonNumberString is jsNumberString with non-finite values as null.
func jsonNumberString(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return jsNumberString(f)
}

// numberLiteral normalizes a decoded number literal, so 1.0, 1e3 and 1.50
// read as 1, 1000 and 1.5. Out of range literals become infinities.
func numberLiteral(lit string, format func(float64) string) string {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return lit
	}
	return format(f)
}

// jsNumberString formats f like Number.prototype.toString.
func jsNumberString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	out := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// e-09 -> e-9
		n := len(out)
		if n >= 4 && out[n-4] == 'e' && out[n-3] == '-' && out[n-2] == '0' {
			out[n-2] = out[n-1]
			out = out[:n-1]
		}
	}
	return string(out)
}

// escapeUnicode replaces every UTF-16 code unit above 0xff with a \uXXXX escape.
func escapeUnicode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r <= 0xff:
			b.WriteRune(r)
		case r <= 0xffff:
			writeUnitEscape(&b, uint16(r))
		default:
			hi, lo := utf16.EncodeRune(r)
			writeUnitEscape(&b, uint16(hi))
			writeUnitEscape(&b, uint16(lo))
		}
	}
	return b.String()
}

func writeUnitEscape(b *strings.Builder, u uint16) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[u>>12&0xf])
	b.WriteByte(hexDigits[u>>8&0xf])
	b.WriteByte(hexDigits[u>>4&0xf])
	b.WriteByte(hexDigits[u&0xf])
}
