package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/five82/fledgling/internal/birds"
)

// RenderPlain writes a listing as uncoloured text, one entry per line. Record
// fields follow their label on an indented line as KEY: value fragments.
// An empty listing writes nothing.
func RenderPlain(w io.Writer, l birds.Listing) error {
	var b strings.Builder
	switch l.Shape {
	case birds.ShapeStrings:
		for _, item := range l.Strings {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	case birds.ShapeRecords:
		for _, rec := range l.Records {
			fmt.Fprintf(&b, "- %s\n", rec.Label)
			if len(rec.Fields) == 0 {
				continue
			}
			parts := make([]string, 0, len(rec.Fields))
			for _, f := range rec.Fields {
				parts = append(parts, strings.ToUpper(f.Key)+": "+f.Value)
			}
			fmt.Fprintf(&b, "    %s\n", strings.Join(parts, fieldSpacing))
		}
	case birds.ShapeRaw:
		b.WriteString(l.Pretty)
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return nil
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}
