package device

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/edgeoptics/rangelink/internal/observability"
	"github.com/edgeoptics/rangelink/internal/protocol"
)

// AnyCommand matches the next verified packet regardless of command id.
const AnyCommand byte = 255

// Config defines request/response reliability defaults.
type Config struct {
	// Name labels log lines and metrics, usually the port name.
	Name string

	// ResponseTimeout bounds each wait for a matching response.
	ResponseTimeout time.Duration

	// SendRetries is the total number of send attempts per request.
	SendRetries int
}

func DefaultConfig() Config {
	return Config{
		Name:            "grf250",
		ResponseTimeout: time.Second,
		SendRetries:     4,
	}
}

// Device is one protocol engine instance: a transport reference plus the
// single in-flight request and response accumulator. It assumes at most
// one outstanding request and is not safe for concurrent use.
type Device struct {
	transport Transport
	cfg       Config
	log       zerolog.Logger

	Request  protocol.Request
	Response protocol.Response

	// drops already forwarded to metrics
	reported uint64
}

func New(transport Transport, cfg Config, log zerolog.Logger) *Device {
	def := DefaultConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.ResponseTimeout <= 0 {
		cfg.ResponseTimeout = def.ResponseTimeout
	}
	if cfg.SendRetries <= 0 {
		cfg.SendRetries = def.SendRetries
	}

	d := &Device{
		transport: transport,
		cfg:       cfg,
		log:       log.With().Str("device", cfg.Name).Logger(),
	}
	d.Response.Reset()
	return d
}

// Transport exposes the underlying capability set for callers that need
// raw access, such as the serial wake sequence.
func (d *Device) Transport() Transport {
	return d.transport
}

// WaitForNextResponse pulls bytes from the transport until a verified
// packet with the wanted command id completes.
//
// With timeout zero the call is a non-blocking poll: it drains whatever
// bytes are already buffered and returns ErrAgain the moment one receive
// yields nothing. With a nonzero timeout it blocks, re-evaluating the
// deadline every iteration rather than trusting the transport to honor
// the hint exactly, and returns ErrTimeout once the deadline passes.
// Verified packets with a different command id are discarded in-loop.
func (d *Device) WaitForNextResponse(commandID byte, timeout time.Duration) error {
	defer d.flushDropped()

	var deadline time.Duration
	if timeout != 0 {
		deadline = d.transport.Now() + timeout
	}

	var buf [1]byte
	for {
		var remaining time.Duration
		if timeout != 0 {
			if now := d.transport.Now(); now < deadline {
				remaining = deadline - now
			}
		}

		n := d.transport.Receive(buf[:], remaining)
		switch {
		case n < 0:
			return ErrTransport

		case n > 0:
			if !d.Response.Feed(buf[0]) {
				continue
			}
			observability.RecordPacket(d.cfg.Name)
			if commandID == AnyCommand || d.Response.CommandID == commandID {
				d.log.Trace().Uint8("command", d.Response.CommandID).Msg("response complete")
				return nil
			}
			d.log.Trace().
				Uint8("command", d.Response.CommandID).
				Uint8("want", commandID).
				Msg("discarding unmatched response")

		case timeout == 0:
			return ErrAgain

		case remaining == 0:
			observability.RecordTimeout(d.cfg.Name)
			return ErrTimeout
		}
	}
}

// SendRequestGetResponse sends the staged request and waits for its
// response, re-sending on timeout up to the configured attempt count.
// A dropped request is indistinguishable from a dropped response, so
// recovery re-sends the whole request rather than just re-waiting. A
// failed send means a dead transport and is never retried.
func (d *Device) SendRequestGetResponse() error {
	for attempt := 0; attempt < d.cfg.SendRetries; attempt++ {
		if attempt > 0 {
			observability.RecordRetry(d.cfg.Name)
		}

		if d.transport.Send(d.Request.Bytes()) == 0 {
			return ErrTransport
		}

		err := d.WaitForNextResponse(d.Request.CommandID, d.cfg.ResponseTimeout)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrTransport) {
			return err
		}

		d.log.Debug().
			Uint8("command", d.Request.CommandID).
			Int("attempts_left", d.cfg.SendRetries-attempt-1).
			Msg("response timeout, resending request")
	}

	return ErrRetriesExceeded
}

// Do stages req as the in-flight request and runs the managed
// send/wait/retry cycle.
func (d *Device) Do(req protocol.Request) error {
	d.Request = req
	return d.SendRequestGetResponse()
}

func (d *Device) flushDropped() {
	if delta := d.Response.Dropped - d.reported; delta > 0 {
		d.reported = d.Response.Dropped
		observability.RecordDropped(d.cfg.Name, delta)
		d.log.Debug().Uint64("dropped", delta).Msg("decoder resynchronized")
	}
}
