package device

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edgeoptics/rangelink/internal/protocol"
	"github.com/edgeoptics/rangelink/internal/testutil/devicetest"
)

func newTestDevice(fake *devicetest.Fake, cfg Config) *Device {
	return New(fake, cfg, zerolog.Nop())
}

func packetFor(commandID byte, data []byte) []byte {
	buf := make([]byte, protocol.SendPacketSize)
	n := protocol.BuildPacket(buf, commandID, false, data)
	return buf[:n]
}

func TestWaitForNextResponseNonBlockingReturnsAgain(t *testing.T) {
	fake := &devicetest.Fake{}
	dev := newTestDevice(fake, DefaultConfig())

	if err := dev.WaitForNextResponse(5, 0); !errors.Is(err, ErrAgain) {
		t.Fatalf("expected ErrAgain, got %v", err)
	}
	if fake.Now() != 0 {
		t.Fatalf("non-blocking poll advanced the clock by %v", fake.Now())
	}
}

func TestWaitForNextResponseNonBlockingDrainsThenYields(t *testing.T) {
	packet := packetFor(44, []byte{1, 0, 0, 0})
	fake := &devicetest.Fake{}
	fake.Queue(packet[:4])

	dev := newTestDevice(fake, DefaultConfig())

	// First poll consumes every buffered byte, then yields.
	if err := dev.WaitForNextResponse(44, 0); !errors.Is(err, ErrAgain) {
		t.Fatalf("expected ErrAgain, got %v", err)
	}
	if fake.Pending() != 0 {
		t.Fatalf("poll left %d bytes buffered", fake.Pending())
	}

	// The remainder completes the packet on a later poll.
	fake.Queue(packet[4:])
	if err := dev.WaitForNextResponse(44, 0); err != nil {
		t.Fatalf("expected completion, got %v", err)
	}
	if dev.Response.CommandID != 44 {
		t.Fatalf("command id=%d want 44", dev.Response.CommandID)
	}
}

func TestWaitForNextResponseTimesOutAtDeadline(t *testing.T) {
	fake := &devicetest.Fake{}
	dev := newTestDevice(fake, DefaultConfig())

	const timeout = 250 * time.Millisecond
	if err := dev.WaitForNextResponse(5, timeout); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if fake.Now() != timeout {
		t.Fatalf("timed out at %v want %v", fake.Now(), timeout)
	}
}

func TestWaitForNextResponseDiscardsMismatchedPackets(t *testing.T) {
	fake := &devicetest.Fake{}
	fake.Queue(packetFor(9, []byte{0xEE}))
	fake.Queue(packetFor(5, []byte{0x42}))

	dev := newTestDevice(fake, DefaultConfig())
	if err := dev.WaitForNextResponse(5, time.Second); err != nil {
		t.Fatalf("expected matching packet, got %v", err)
	}
	if dev.Response.CommandID != 5 {
		t.Fatalf("command id=%d want 5", dev.Response.CommandID)
	}
	if got := dev.Response.Uint8At(0); got != 0x42 {
		t.Fatalf("payload byte=0x%02X want 0x42", got)
	}
}

func TestWaitForNextResponseAnyCommandAcceptsFirstPacket(t *testing.T) {
	fake := &devicetest.Fake{}
	fake.Queue(packetFor(30, []byte{6, 0, 0, 0}))

	dev := newTestDevice(fake, DefaultConfig())
	if err := dev.WaitForNextResponse(AnyCommand, time.Second); err != nil {
		t.Fatalf("expected completion, got %v", err)
	}
	if dev.Response.CommandID != 30 {
		t.Fatalf("command id=%d want 30", dev.Response.CommandID)
	}
}

func TestWaitForNextResponseFatalReceive(t *testing.T) {
	fake := &devicetest.Fake{FailReceive: true}
	dev := newTestDevice(fake, DefaultConfig())

	if err := dev.WaitForNextResponse(5, time.Second); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if err := dev.WaitForNextResponse(5, 0); !errors.Is(err, ErrTransport) {
		t.Fatalf("non-blocking: expected ErrTransport, got %v", err)
	}
}

func TestSendRequestGetResponseSucceedsFirstAttempt(t *testing.T) {
	fake := &devicetest.Fake{}
	fake.OnSend = func(p []byte) {
		fake.Queue(packetFor(2, []byte{0x01, 0x02, 0x03, 0x00}))
	}

	dev := newTestDevice(fake, DefaultConfig())
	if err := dev.Do(protocol.NewReadRequest(2)); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(fake.Sends) != 1 {
		t.Fatalf("send count=%d want 1", len(fake.Sends))
	}
	if dev.Response.CommandID != 2 {
		t.Fatalf("command id=%d want 2", dev.Response.CommandID)
	}
}

func TestSendRequestGetResponseExhaustsRetries(t *testing.T) {
	fake := &devicetest.Fake{}
	cfg := DefaultConfig()
	cfg.SendRetries = 4

	dev := newTestDevice(fake, cfg)
	err := dev.Do(protocol.NewReadRequest(2))
	if !errors.Is(err, ErrRetriesExceeded) {
		t.Fatalf("expected ErrRetriesExceeded, got %v", err)
	}
	if len(fake.Sends) != 4 {
		t.Fatalf("send count=%d want 4", len(fake.Sends))
	}
}

func TestSendRequestGetResponseRecoversOnRetry(t *testing.T) {
	fake := &devicetest.Fake{}
	attempts := 0
	fake.OnSend = func(p []byte) {
		attempts++
		if attempts == 3 {
			fake.Queue(packetFor(55, []byte{0x10, 0x00, 0x00, 0x00}))
		}
	}

	dev := newTestDevice(fake, DefaultConfig())
	if err := dev.Do(protocol.NewReadRequest(55)); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(fake.Sends) != 3 {
		t.Fatalf("send count=%d want 3", len(fake.Sends))
	}
}

func TestSendRequestGetResponseDeadSendIsFatal(t *testing.T) {
	fake := &devicetest.Fake{FailSend: true}
	dev := newTestDevice(fake, DefaultConfig())

	err := dev.Do(protocol.NewReadRequest(2))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(fake.Sends) != 0 {
		t.Fatalf("dead send must not be retried, got %d sends", len(fake.Sends))
	}
}

func TestSendRequestGetResponseFatalReceiveNotRetried(t *testing.T) {
	fake := &devicetest.Fake{FailReceive: true}
	dev := newTestDevice(fake, DefaultConfig())

	err := dev.Do(protocol.NewReadRequest(2))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(fake.Sends) != 1 {
		t.Fatalf("send count=%d want 1", len(fake.Sends))
	}
}

func TestSendRequestGetResponseIgnoresCorruptedFirstResponse(t *testing.T) {
	fake := &devicetest.Fake{}
	attempts := 0
	fake.OnSend = func(p []byte) {
		attempts++
		packet := packetFor(70, []byte{1})
		if attempts == 1 {
			packet[len(packet)-1] ^= 0x01 // corrupt the checksum
		}
		fake.Queue(packet)
	}

	dev := newTestDevice(fake, DefaultConfig())
	if err := dev.Do(protocol.NewReadRequest(70)); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(fake.Sends) != 2 {
		t.Fatalf("send count=%d want 2", len(fake.Sends))
	}
	if dev.Response.Dropped != 1 {
		t.Fatalf("dropped=%d want 1", dev.Response.Dropped)
	}
}
