package protocol

import (
	"bytes"
	"encoding/binary"
)

// ParseState tracks decoder progress through one packet.
type ParseState uint8

const (
	StateStart ParseState = iota
	StateFlags1
	StateFlags2
	StatePayload
	StateDone
)

// Response is the mutable accumulator for one in-flight inbound packet.
// A single Response decodes an unbounded sequence of packets: the first
// byte fed after a completed packet implicitly begins the next one.
type Response struct {
	Data        [RecvPacketSize]byte
	Size        int
	PayloadSize int
	State       ParseState
	CommandID   byte

	// Dropped counts packets discarded by resynchronization, either for a
	// malformed length field or a checksum mismatch. Corruption on serial
	// links is expected and never surfaced as an error.
	Dropped uint64
}

// Reset returns the accumulator to its initial state. The drop counter
// survives so callers can observe link quality across packets.
func (r *Response) Reset() {
	r.Size = 0
	r.PayloadSize = 0
	r.State = StateStart
	r.CommandID = 0xFF
}

// Feed consumes one byte and reports whether a structurally valid,
// checksum-verified packet is now complete. Malformed input resyncs the
// decoder back to scanning for a start byte; Feed never fails.
func (r *Response) Feed(b byte) bool {
	if r.State == StateDone {
		r.Reset()
	}

	switch r.State {
	case StateStart:
		if b == StartByte {
			r.State = StateFlags1
			r.Data[0] = StartByte
		}

	case StateFlags1:
		r.State = StateFlags2
		r.Data[1] = b

	case StateFlags2:
		r.State = StatePayload
		r.Data[2] = b
		r.Size = headerSize
		r.PayloadSize = int(binary.LittleEndian.Uint16(r.Data[1:3]) >> 6)

		if r.PayloadSize < 1 || r.PayloadSize > RecvPacketSize-packetOverhead {
			r.State = StateStart
			r.Dropped++
		}

	case StatePayload:
		r.Data[r.Size] = b
		r.Size++

		if r.Size == r.PayloadSize+packetOverhead {
			crc := binary.LittleEndian.Uint16(r.Data[r.Size-2 : r.Size])
			if crc == Checksum(r.Data[:r.Size-2]) {
				r.State = StateDone
				r.CommandID = r.Data[3]
				return true
			}
			r.State = StateStart
			r.Dropped++
		}
	}

	return false
}

// Bytes returns the span of the last completed packet.
func (r *Response) Bytes() []byte {
	return r.Data[:r.Size]
}

func (r *Response) Uint8At(offset int) uint8 {
	return PacketData(r.Bytes(), 1, offset)[0]
}

func (r *Response) Uint16At(offset int) uint16 {
	return binary.LittleEndian.Uint16(PacketData(r.Bytes(), 2, offset))
}

func (r *Response) Uint32At(offset int) uint32 {
	return binary.LittleEndian.Uint32(PacketData(r.Bytes(), 4, offset))
}

func (r *Response) Int32At(offset int) int32 {
	return int32(r.Uint32At(offset))
}

// StringAt reads a fixed 16-byte NUL-padded string field.
func (r *Response) StringAt(offset int) string {
	raw := PacketData(r.Bytes(), 16, offset)
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}
