// Package grf250 is the typed command catalog for the GRF-250 ranging
// sensor. It encodes parameters into requests, decodes results from
// verified responses, and owns all application-level range validation.
// Protocol mechanics (framing, checksums, timeouts, retries) live in
// internal/protocol and internal/device.
package grf250
