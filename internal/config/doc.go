// Package config loads Fledgling's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/fledgling/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or blank, use defaults
//
// # Default Values
//
//   - API base: 127.0.0.1:5555
//   - Log file: ~/.local/state/fledgling/fledgling.log
//   - Log level: info
//   - Timeout: none
//
// # TOML Format
//
//	api_base  = "https://birds.example.com"
//	log_file  = "~/.local/state/fledgling/fledgling.log"
//	log_level = "debug"
//	timeout   = "10s"
//
//	[cookies]
//	session = "abc123"
//
// Cookies are the ambient credentials sent with every request to the API
// host. No other authentication is performed.
//
// # Error Handling
//
// Missing files are not an error. Unreadable or malformed files are. A file
// that parses but holds bad values fails with every problem listed at once
// (go-multierror), so a user fixes the file in one pass.
package config
