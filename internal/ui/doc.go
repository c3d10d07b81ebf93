// Package ui provides the terminal bird list view for fledgling.
//
// # Architecture Overview
//
// The package implements a Bubble Tea program with a single screen: a title
// bar, a scrollable body and a footer naming the endpoint being fetched. The
// view is read-only; its only action is re-fetching the bird list.
//
// # Package Structure
//
//   - app.go: Model, Update loop, load commands and Run
//   - header.go: title bar status and footer
//   - listing.go: themed rendering of a classified payload
//   - plain.go: uncoloured rendering for non-interactive output
//   - help.go, keys.go: key bindings and the help overlay
//   - theme.go, style_helpers.go: palettes and background-safe styling
//
// # Load Flow
//
//  1. Init emits a refresh, the same message the refresh key produces.
//  2. startLoad calls state.Store.Begin and runs Completer.Complete in a
//     tea.Cmd, so the event loop stays responsive.
//  3. When the command returns, the model re-reads the store snapshot and
//     classifies the payload with birds.Classify.
//
// Refreshes are never blocked or deduplicated. The store's sequence token
// makes the newest request the only one whose result is shown.
//
// # Body States
//
// Exactly one of these is drawn:
//
//   - Loading: spinner and "Loading…"
//   - Error: a bordered banner with the failure message
//   - Otherwise: the listing (string bullets, labelled records with
//     KEY: value fragments, or pretty-printed JSON in a bordered block)
//
// # Key Bindings
//
//   - r, Ctrl+R: Refresh
//   - j/k, arrows, g/G, PgUp/PgDn, Ctrl+U/Ctrl+D: Scroll
//   - T: Cycle theme (saved to prefs)
//   - h or ?: Help
//   - q or Ctrl+C: Quit
package ui
