package birds

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a decoded JSON value. Object members follow JavaScript property
// order: array-index keys ascending, then other keys as the server sent them.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  json.Number
	Str     string
	Items   []Value
	Members []Member
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Get returns the member value stored under key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether the object carries key, regardless of its value.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Truthy applies JavaScript truthiness: null, false, 0 and "" are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool
	case KindNumber:
		f := v.float()
		return f != 0 && !math.IsNaN(f)
	case KindString:
		return v.Str != ""
	default:
		return true
	}
}

// String renders the value the way JavaScript's String(v) would.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return formatNumber(v.float())
	case KindString:
		return v.Str
	case KindArray:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			if item.Kind == KindNull {
				continue
			}
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "[object Object]"
	default:
		return ""
	}
}

func (v Value) float() float64 {
	f, err := strconv.ParseFloat(string(v.Number), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// Payload is the decoded body of a birds response.
type Payload struct {
	Root Value
	Raw  []byte
}

// ParsePayload decodes a single JSON document. Anything after the top-level
// value other than whitespace is rejected.
func ParsePayload(data []byte) (*Payload, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}

	raw := make([]byte, len(data))
	copy(raw, data)
	return &Payload{Root: fromResult(gjson.ParseBytes(raw)), Raw: raw}, nil
}

// IsNull reports whether the payload is absent or JSON null.
func (p *Payload) IsNull() bool {
	return p == nil || p.Root.Kind == KindNull
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.False:
		return Value{Kind: KindBool}
	case gjson.True:
		return Value{Kind: KindBool, Bool: true}
	case gjson.Number:
		return Value{Kind: KindNumber, Number: json.Number(strings.TrimSpace(r.Raw))}
	case gjson.String:
		return Value{Kind: KindString, Str: r.Str}
	case gjson.JSON:
		if r.IsArray() {
			return arrayFromResult(r)
		}
		return objectFromResult(r)
	default:
		return Value{Kind: KindNull}
	}
}

func arrayFromResult(r gjson.Result) Value {
	v := Value{Kind: KindArray, Items: []Value{}}
	r.ForEach(func(_, item gjson.Result) bool {
		v.Items = append(v.Items, fromResult(item))
		return true
	})
	return v
}

func objectFromResult(r gjson.Result) Value {
	v := Value{Kind: KindObject, Members: []Member{}}
	index := make(map[string]int)
	r.ForEach(func(key, val gjson.Result) bool {
		// A repeated key keeps its first position and takes the last value.
		if i, seen := index[key.Str]; seen {
			v.Members[i].Value = fromResult(val)
			return true
		}
		index[key.Str] = len(v.Members)
		v.Members = append(v.Members, Member{Key: key.Str, Value: fromResult(val)})
		return true
	})
	v.Members = orderMembers(v.Members)
	return v
}

// orderMembers applies JavaScript property order: array-index keys first in
// ascending numeric order, then every other key in insertion order.
func orderMembers(members []Member) []Member {
	type indexed struct {
		n uint64
		m Member
	}
	var numeric []indexed
	named := make([]Member, 0, len(members))
	for _, m := range members {
		if n, ok := arrayIndex(m.Key); ok {
			numeric = append(numeric, indexed{n: n, m: m})
			continue
		}
		named = append(named, m)
	}
	if len(numeric) == 0 {
		return members
	}

	sort.Slice(numeric, func(i, j int) bool { return numeric[i].n < numeric[j].n })
	out := make([]Member, 0, len(members))
	for _, e := range numeric {
		out = append(out, e.m)
	}
	return append(out, named...)
}

// arrayIndex reports whether key is a canonical array index: decimal digits
// without a leading zero, at most 2^32-2.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n > math.MaxUint32-1 {
		return 0, false
	}
	return n, true
}

// formatNumber follows the ECMAScript Number::toString rules for the ranges
// JSON can produce.
func formatNumber(f float64) string {
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
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
