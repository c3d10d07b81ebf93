package birds

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const prettyIndent = "  "

// Pretty renders v as indented JSON, matching JSON.stringify(v, null, 2).
func Pretty(v Value) string {
	var b strings.Builder
	writePretty(&b, v, "")
	return b.String()
}

func writePretty(b *strings.Builder, v Value, indent string) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		f := v.float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			b.WriteString("null")
			return
		}
		b.WriteString(formatNumber(f))
	case KindString:
		writeQuoted(b, v.Str)
	case KindArray:
		if len(v.Items) == 0 {
			b.WriteString("[]")
			return
		}
		inner := indent + prettyIndent
		b.WriteString("[\n")
		for i, item := range v.Items {
			b.WriteString(inner)
			writePretty(b, item, inner)
			if i < len(v.Items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte(']')
	case KindObject:
		if len(v.Members) == 0 {
			b.WriteString("{}")
			return
		}
		inner := indent + prettyIndent
		b.WriteString("{\n")
		for i, m := range v.Members {
			b.WriteString(inner)
			writeQuoted(b, m.Key)
			b.WriteString(": ")
			writePretty(b, m.Value, inner)
			if i < len(v.Members)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte('}')
	}
}

// writeQuoted escapes like JSON.stringify: quotes, backslashes and control
// characters only. HTML-sensitive characters stay literal.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
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
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[r>>4])
				b.WriteByte(hexDigits[r&0xF])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

const hexDigits = "0123456789abcdef"
