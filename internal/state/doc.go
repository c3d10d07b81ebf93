// Package state holds the fetch state behind the birds view and the routine
// that drives it.
//
// # Core Types
//
// Store:
//   - Loading flag, error message and payload, guarded by sync.RWMutex
//   - Issues an increasing sequence token per load (Begin)
//   - Settles only with the newest token (Succeed, Fail)
//
// Snapshot:
//   - Value copy of the state handed to the UI
//   - Err and Payload are never both set
//
// Loader:
//   - Begin, fetch, settle; every failure becomes error state
//   - Logs through hclog and wraps each load in a "birds.load" span
//
// # Overlapping Loads
//
// Refresh can fire while a request is still in flight and nothing cancels
// the older request. Each load therefore carries the token it was issued:
//
//	first := store.Begin()   // seq 1
//	second := store.Begin()  // seq 2, Loading stays true
//	store.Succeed(second, p) // applied
//	store.Succeed(first, q)  // dropped, returns false
//
// The newest refresh wins regardless of which response arrives last, and
// Loading stays set until that newest request settles.
//
// # Failure Messages
//
// Fail stores the error's message, or DefaultFailureMessage when the error is
// nil or its message is empty. The two cases are deliberately not told apart.
package state
