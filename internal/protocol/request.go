package protocol

import "encoding/binary"

// Request is one fully-built outgoing packet. It is immutable once built
// and read-only for the transport send path.
type Request struct {
	Data      [SendPacketSize]byte
	Size      int
	CommandID byte
}

// Bytes returns the built packet span.
func (r *Request) Bytes() []byte {
	return r.Data[:r.Size]
}

// NewReadRequest builds a read request. Read requests carry no data.
func NewReadRequest(commandID byte) Request {
	var r Request
	r.CommandID = commandID
	r.Size = BuildPacket(r.Data[:], commandID, false, nil)
	return r
}

// NewWriteRequest builds a write request carrying data.
func NewWriteRequest(commandID byte, data []byte) (Request, error) {
	if len(data) > MaxSendData {
		return Request{}, ErrDataTooLarge
	}
	var r Request
	r.CommandID = commandID
	r.Size = BuildPacket(r.Data[:], commandID, true, data)
	return r, nil
}

func NewWriteRequestUint8(commandID byte, value uint8) Request {
	r, _ := NewWriteRequest(commandID, []byte{value})
	return r
}

func NewWriteRequestUint16(commandID byte, value uint16) Request {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	r, _ := NewWriteRequest(commandID, buf[:])
	return r
}

func NewWriteRequestUint32(commandID byte, value uint32) Request {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	r, _ := NewWriteRequest(commandID, buf[:])
	return r
}

func NewWriteRequestInt8(commandID byte, value int8) Request {
	return NewWriteRequestUint8(commandID, uint8(value))
}

func NewWriteRequestInt16(commandID byte, value int16) Request {
	return NewWriteRequestUint16(commandID, uint16(value))
}

func NewWriteRequestInt32(commandID byte, value int32) Request {
	return NewWriteRequestUint32(commandID, uint32(value))
}

// NewWriteRequestString builds a write request carrying a fixed 16-byte
// string field, NUL padded.
func NewWriteRequestString(commandID byte, value string) Request {
	var buf [16]byte
	copy(buf[:], value)
	r, _ := NewWriteRequest(commandID, buf[:])
	return r
}
