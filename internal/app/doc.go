// Package app provides the orchestration layer for the Fledgling application.
//
// # Overview
//
// Run is the composition root. It wires configuration, logging, tracing, the
// birds client, the shared state.Store and either the TUI or the one-shot
// print mode.
//
// # Startup
//
//  1. Load ~/.config/fledgling/config.toml (or -config); a missing file
//     yields defaults, an invalid one aborts with every problem listed
//  2. Apply the -api override and re-validate
//  3. Open the hclog log file; the TUI owns the terminal
//  4. Install the OTLP tracer when OTEL_EXPORTER_OTLP_ENDPOINT is set
//  5. Build the birds client with configured cookies and timeout
//  6. Hand the store and loader to ui.Run, or load once and print
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read config
//	       ├─────> newLogger()          hclog to file
//	       ├─────> telemetry.Setup()    Optional tracing
//	       ├─────> birds.NewClient()    HTTP client with cookie jar
//	       ├─────> state.NewLoader()    Begin/Complete around FetchBirds
//	       └─────> ui.Run()             TUI (blocks)
//	               or printOnce()       -print mode
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration or -api override
//   - Log file cannot be opened
//   - In print mode, a failed load (the banner message is the error)
//
// Recoverable errors (logged):
//   - Tracing exporter setup or shutdown failures
//   - Unreadable prefs file (defaults are used)
//
// Load failures in the TUI never reach Run; they become the error banner.
package app
