package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/fledgling/internal/birds"
)

const appTitle = "Birds"

// renderHeader renders the title bar with the load status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render(appTitle, styles.Logo)}
	if status := m.statusText(); status != "" {
		parts = append(parts, bg.Render(status, m.statusStyle(styles)))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// statusText summarises the current snapshot in a few words.
func (m Model) statusText() string {
	switch {
	case m.snapshot.Loading:
		return "Loading…"
	case m.snapshot.HasError():
		return "Error: " + truncate(m.snapshot.Err, maxInt(m.width/3, 12))
	case m.snapshot.Payload == nil:
		return ""
	}

	switch m.listing.Shape {
	case birds.ShapeStrings, birds.ShapeRecords:
		n := m.listing.Len()
		if n == 1 {
			return "1 bird"
		}
		return fmt.Sprintf("%d birds", n)
	case birds.ShapeRaw:
		return "raw response"
	default:
		return ""
	}
}

func (m Model) statusStyle(styles Styles) lipgloss.Style {
	switch {
	case m.snapshot.Loading:
		return styles.WarningText
	case m.snapshot.HasError():
		return styles.DangerText
	default:
		return styles.SuccessText
	}
}

// renderFooter shows the endpoint and the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	helpWidth := lipgloss.Width(helpView)

	endpoint := truncateMiddle(m.endpoint, maxInt(m.width-helpWidth-20, 12))
	left := bg.Render("Fetching from", styles.MutedText) + bg.Space() + bg.Render(endpoint, styles.AccentText)

	gap := maxInt(m.width-lipgloss.Width(left)-helpWidth-2, 1)
	return styles.Footer.Width(m.width).Render(left + bg.Spaces(gap) + helpView)
}
