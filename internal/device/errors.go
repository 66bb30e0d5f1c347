package device

import "errors"

var (
	// ErrTransport reports an unrecoverable transport failure. Never
	// retried; the link is considered dead.
	ErrTransport = errors.New("device: transport failure")

	// ErrAgain reports that a non-blocking wait found no complete
	// matching packet yet. Not an error condition; poll again later.
	ErrAgain = errors.New("device: response not ready")

	// ErrTimeout reports that the deadline elapsed before a matching
	// packet completed.
	ErrTimeout = errors.New("device: response timeout")

	// ErrRetriesExceeded reports that every send/wait attempt timed out.
	ErrRetriesExceeded = errors.New("device: request retries exceeded")

	// ErrInvalidParameter reports a caller-supplied value outside the
	// protocol-defined bounds for a command.
	ErrInvalidParameter = errors.New("device: invalid parameter")

	// ErrWrongCommandID reports a verified response whose command id does
	// not match the one a parser expected.
	ErrWrongCommandID = errors.New("device: unexpected command id")
)
