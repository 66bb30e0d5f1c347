package protocol

import "testing"

func TestChecksumKnownVectors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint16
	}{
		{"empty", nil, 0x0000},
		{"check string", []byte("123456789"), 0x31C3},
		{"read command 5 header", []byte{0xAA, 0x40, 0x00, 0x05}, 0xCFD5},
	}

	for _, tc := range cases {
		if got := Checksum(tc.data); got != tc.want {
			t.Errorf("%s: checksum=0x%04X want 0x%04X", tc.name, got, tc.want)
		}
	}
}

func TestChecksumIsDeterministic(t *testing.T) {
	data := []byte{0xAA, 0x01, 0x02, 0x03, 0xFF, 0x7E}
	first := Checksum(data)
	for i := 0; i < 16; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("checksum changed between calls: 0x%04X vs 0x%04X", got, first)
		}
	}
}
