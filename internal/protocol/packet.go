package protocol

import (
	"encoding/binary"
	"errors"
)

// Wire layout: [start:1][flags:2 LE][command-id:1][data:N][checksum:2 LE].
// The flags field carries the payload length (command-id byte included) in
// bits 6..15 and the read/write indicator in bit 0.
const (
	StartByte = 0xAA

	// SendPacketSize bounds outgoing packets, RecvPacketSize incoming ones.
	// These are buffer capacity choices, not protocol limits.
	SendPacketSize = 160
	RecvPacketSize = 1024

	// headerSize covers start byte and flags; the command id is the first
	// payload byte. packetOverhead adds the trailing checksum.
	headerSize     = 3
	packetOverhead = headerSize + 2

	// MaxSendData is the largest data span BuildPacket accepts.
	MaxSendData = SendPacketSize - packetOverhead - 1

	flagWrite = 0x1
)

var ErrDataTooLarge = errors.New("protocol: packet data exceeds buffer capacity")

// BuildPacket writes one complete packet into dst and returns the number of
// bytes written. dst must hold at least len(data)+6 bytes.
func BuildPacket(dst []byte, commandID byte, write bool, data []byte) int {
	payloadLen := uint16(len(data) + 1)
	flags := payloadLen << 6
	if write {
		flags |= flagWrite
	}

	dst[0] = StartByte
	binary.LittleEndian.PutUint16(dst[1:3], flags)
	dst[3] = commandID
	copy(dst[4:], data)

	crc := Checksum(dst[:4+len(data)])
	binary.LittleEndian.PutUint16(dst[4+len(data):], crc)

	return len(data) + 6
}

// PacketData copies size bytes from packet starting offset bytes after the
// 4-byte header. Bounds are the caller's responsibility; callers only ever
// pass verified, length-known packets.
func PacketData(packet []byte, size, offset int) []byte {
	out := make([]byte, size)
	copy(out, packet[4+offset:4+offset+size])
	return out
}
