// Package devicetest provides a scripted, deterministic Transport for
// engine and catalog tests. Its clock is virtual: blocking receives with
// no queued data advance it by the full timeout.
package devicetest

import "time"

type Fake struct {
	// Sends records every buffer passed to Send, in order.
	Sends [][]byte

	// OnSend, when set, runs after each successful send; tests use it to
	// queue the scripted device response.
	OnSend func(p []byte)

	// FailSend makes Send report a dead transport. FailReceive makes
	// Receive report an unrecoverable failure.
	FailSend    bool
	FailReceive bool

	incoming []byte
	clock    time.Duration
}

// Queue appends bytes to the inbound stream served by Receive.
func (f *Fake) Queue(p []byte) {
	f.incoming = append(f.incoming, p...)
}

// Pending reports how many inbound bytes remain unread.
func (f *Fake) Pending() int {
	return len(f.incoming)
}

func (f *Fake) Sleep(d time.Duration) {
	f.clock += d
}

func (f *Fake) Now() time.Duration {
	return f.clock
}

func (f *Fake) Send(p []byte) int {
	if f.FailSend {
		return 0
	}
	sent := make([]byte, len(p))
	copy(sent, p)
	f.Sends = append(f.Sends, sent)
	if f.OnSend != nil {
		f.OnSend(sent)
	}
	return len(p)
}

func (f *Fake) Receive(buf []byte, timeout time.Duration) int {
	if f.FailReceive {
		return -1
	}
	if len(f.incoming) == 0 {
		f.clock += timeout
		return 0
	}
	n := copy(buf, f.incoming)
	f.incoming = f.incoming[n:]
	return n
}
