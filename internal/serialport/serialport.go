// Package serialport implements the engine's transport capability set on
// top of a desktop serial port.
package serialport

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"

	"github.com/edgeoptics/rangelink/internal/device"
)

// Port adapts one open serial port to device.Transport. Its monotonic
// clock starts at Open.
type Port struct {
	name  string
	port  serial.Port
	start time.Time
	log   zerolog.Logger
}

var _ device.Transport = (*Port)(nil)

// Open opens a serial port, e.g. "/dev/ttyACM0" or "COM70".
func Open(name string, baud int, log zerolog.Logger) (*Port, error) {
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", name, err)
	}

	return &Port{
		name:  name,
		port:  p,
		start: time.Now(),
		log:   log.With().Str("port", name).Logger(),
	}, nil
}

func (p *Port) Name() string {
	return p.name
}

func (p *Port) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (p *Port) Now() time.Duration {
	return time.Since(p.start)
}

// Send writes the full buffer. Partial writes are reported as 0, which
// the engine treats as a dead transport.
func (p *Port) Send(buf []byte) int {
	n, err := p.port.Write(buf)
	if err != nil || n != len(buf) {
		p.log.Warn().Err(err).Int("wrote", n).Int("want", len(buf)).Msg("serial write failed")
		return 0
	}
	return n
}

// Receive reads up to len(buf) bytes. A zero timeout is a non-blocking
// poll; the port may return before the timeout with fewer bytes, which
// the engine tolerates by re-issuing the call.
func (p *Port) Receive(buf []byte, timeout time.Duration) int {
	if err := p.port.SetReadTimeout(timeout); err != nil {
		p.log.Warn().Err(err).Msg("serial read timeout setup failed")
		return -1
	}

	n, err := p.port.Read(buf)
	if err != nil {
		p.log.Warn().Err(err).Msg("serial read failed")
		return -1
	}
	return n
}

func (p *Port) Close() error {
	return p.port.Close()
}
