// Package birds provides the HTTP client for the birds API and the shape
// sniffing that turns its payload into something renderable.
//
// # Overview
//
// The API exposes a single resource, GET /api/birds, whose body has no fixed
// schema. Fledgling accepts three forms and falls back for anything else:
//
//   - an array of strings, listed as-is
//   - a non-empty array of objects carrying "name" or "species", listed with a
//     primary label and the remaining fields as KEY: value fragments
//   - any other JSON value, pretty-printed with two-space indentation
//
// # Files
//
//   - client.go: Client, request options, error mapping
//   - errors.go: RequestError and TransportError
//   - payload.go: order-preserving JSON decode (Value, Payload)
//   - pretty.go: JSON.stringify-compatible indentation
//   - classify.go: Shape, Listing and Classify
//
// # Errors
//
// A response with a non-2xx status becomes a *RequestError whose message
// carries the status code and the response body, or the status text when the
// body is empty. A failed round trip or an undecodable body becomes a
// *TransportError that reports the underlying cause's message.
//
//	payload, err := client.FetchBirds(ctx)
//	var reqErr *birds.RequestError
//	if errors.As(err, &reqErr) {
//		log.Printf("api returned %d", reqErr.Status)
//	}
//
// # Ordering
//
// Payloads are decoded into Value trees instead of map[string]any. Object
// members follow JavaScript property order: array-index keys such as "2" and
// "10" come first in ascending numeric order, then the remaining keys in the
// order the server sent them. Record fields and the fallback text use this
// order, and the fallback is stable across renders of the same payload.
package birds
