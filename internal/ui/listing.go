package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/fledgling/internal/birds"
)

const (
	bulletGlyph   = "•"
	fieldSpacing  = "   "
	recordIndent  = 4
	minWrapWidth  = 20
	listingMargin = 2
)

// renderListing draws a classified payload for the body viewport. The result
// is a pure function of the listing, styles and width.
func renderListing(l birds.Listing, styles Styles, width int) string {
	switch l.Shape {
	case birds.ShapeStrings:
		return renderStrings(l.Strings, styles, width)
	case birds.ShapeRecords:
		return renderRecords(l.Records, styles, width)
	case birds.ShapeRaw:
		return renderRaw(l.Pretty, styles, width)
	default:
		return ""
	}
}

func renderStrings(items []string, styles Styles, width int) string {
	wrap := wrapWidth(width, listingMargin)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		text := lipgloss.NewStyle().Width(wrap).Render(item)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Bullet.Render(bulletGlyph+" "),
			styles.Text.Render(text),
		))
	}
	return strings.Join(lines, "\n")
}

func renderRecords(records []birds.Record, styles Styles, width int) string {
	wrap := wrapWidth(width, recordIndent)
	divider := styles.Divider.Render(strings.Repeat("─", maxInt(wrapWidth(width, 0), 1)))

	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		var b strings.Builder
		b.WriteString(styles.Bullet.Render(bulletGlyph + " "))
		b.WriteString(styles.Label.Render(rec.Label))
		if len(rec.Fields) > 0 {
			b.WriteString("\n")
			fields := lipgloss.NewStyle().
				Width(wrap).
				MarginLeft(recordIndent).
				Render(renderFields(rec.Fields, styles))
			b.WriteString(fields)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n"+divider+"\n")
}

// renderFields joins KEY: value fragments on one line; the caller wraps.
func renderFields(fields []birds.Field, styles Styles) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, styles.FieldKey.Render(strings.ToUpper(f.Key)+":")+" "+styles.MutedText.Render(f.Value))
	}
	return strings.Join(parts, fieldSpacing)
}

func renderRaw(pretty string, styles Styles, width int) string {
	block := styles.CodeBlock
	if width > 0 {
		block = block.Width(maxInt(width-2, minWrapWidth))
	}
	return block.Render(pretty)
}

// renderError draws the failure banner.
func renderError(message string, styles Styles, width int) string {
	banner := styles.Banner
	if width > 0 {
		banner = banner.Width(maxInt(width-2, minWrapWidth))
	}
	return banner.Render(message)
}

func wrapWidth(width, indent int) int {
	if width <= 0 {
		return 0
	}
	return maxInt(width-indent-listingMargin, minWrapWidth)
}
