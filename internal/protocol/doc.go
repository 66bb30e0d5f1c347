// Package protocol owns the wire format and parsing primitives.
//
// Ownership boundary:
// - packet framing and checksum
// - request construction
// - resumable response decoding
//
// Everything here is transport-agnostic; timeouts, retries and command
// dispatch live in internal/device.
package protocol
