package protocol

// Checksum computes the 16-bit packet checksum used by the sensor wire
// protocol. The algorithm is fixed by the device firmware and must stay
// bit-for-bit identical; do not replace it with a generic CRC library.
func Checksum(data []byte) uint16 {
	var crc uint16

	for _, b := range data {
		code := crc >> 8
		code ^= uint16(b)
		code ^= code >> 4
		crc = crc << 8
		crc ^= code
		code = code << 5
		crc ^= code
		code = code << 7
		crc ^= code
	}

	return crc
}
