package birds

import "fmt"

// Shape is the structural form a payload takes, decided once after decode.
type Shape int

const (
	// ShapeEmpty means there is nothing to render.
	ShapeEmpty Shape = iota
	// ShapeStrings is an array holding only strings.
	ShapeStrings
	// ShapeRecords is a non-empty array of objects carrying name or species.
	ShapeRecords
	// ShapeRaw is any other JSON value, shown pretty-printed.
	ShapeRaw
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeStrings:
		return "strings"
	case ShapeRecords:
		return "records"
	case ShapeRaw:
		return "raw"
	default:
		return "unknown"
	}
}

const (
	nameKey    = "name"
	speciesKey = "species"
)

// Field is one secondary key/value pair of a record, value stringified.
type Field struct {
	Key   string
	Value string
}

// Record is a single labelled bird entry.
type Record struct {
	Label  string
	Fields []Field
}

// Listing is a payload pre-classified for rendering. Only the slice that
// matches Shape is populated.
type Listing struct {
	Shape   Shape
	Strings []string
	Records []Record
	Pretty  string
}

// Len returns the number of list entries, or zero for empty and raw shapes.
func (l Listing) Len() int {
	switch l.Shape {
	case ShapeStrings:
		return len(l.Strings)
	case ShapeRecords:
		return len(l.Records)
	default:
		return 0
	}
}

// Classify sniffs the payload shape and derives everything a renderer needs.
func Classify(p *Payload) Listing {
	if p.IsNull() {
		return Listing{Shape: ShapeEmpty}
	}
	root := p.Root

	if root.Kind == KindArray && allStrings(root.Items) {
		out := make([]string, len(root.Items))
		for i, item := range root.Items {
			out[i] = item.Str
		}
		return Listing{Shape: ShapeStrings, Strings: out}
	}

	if root.Kind == KindArray && len(root.Items) > 0 && allLabelled(root.Items) {
		records := make([]Record, len(root.Items))
		for i, item := range root.Items {
			records[i] = toRecord(item, i)
		}
		return Listing{Shape: ShapeRecords, Records: records}
	}

	return Listing{Shape: ShapeRaw, Pretty: Pretty(root)}
}

func allStrings(items []Value) bool {
	for _, item := range items {
		if item.Kind != KindString {
			return false
		}
	}
	return true
}

func allLabelled(items []Value) bool {
	for _, item := range items {
		if item.Kind != KindObject {
			return false
		}
		if !item.Has(nameKey) && !item.Has(speciesKey) {
			return false
		}
	}
	return true
}

func toRecord(obj Value, index int) Record {
	rec := Record{Label: recordLabel(obj, index)}
	for _, m := range obj.Members {
		if m.Key == nameKey || m.Key == speciesKey {
			continue
		}
		rec.Fields = append(rec.Fields, Field{Key: m.Key, Value: m.Value.String()})
	}
	return rec
}

func recordLabel(obj Value, index int) string {
	if name, ok := obj.Get(nameKey); ok && name.Truthy() {
		return name.String()
	}
	if species, ok := obj.Get(speciesKey); ok && species.Truthy() {
		return species.String()
	}
	return fmt.Sprintf("Bird #%d", index+1)
}
