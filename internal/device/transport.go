package device

import "time"

// Transport is the capability set the engine needs from a platform serial
// layer. Implementations live outside the engine (see internal/serialport
// for the desktop one); the engine never stores transport state beyond the
// reference handed to New.
type Transport interface {
	// Sleep blocks for roughly d. Early return is tolerated; the engine
	// only uses sleep as advisory, never to gate correctness.
	Sleep(d time.Duration)

	// Now returns a monotonically non-decreasing elapsed time. The epoch
	// is arbitrary; only differences within one blocking call matter.
	Now() time.Duration

	// Send writes the full buffer and returns the number of bytes sent.
	// A return of 0 signals an unrecoverable transport failure. Partial
	// writes are surfaced as 0 by well-behaved transports.
	Send(p []byte) int

	// Receive reads up to len(p) bytes. A zero timeout means a
	// non-blocking poll. Returns -1 on unrecoverable failure, 0 when no
	// data arrived within the timeout, otherwise the byte count.
	Receive(p []byte, timeout time.Duration) int
}
