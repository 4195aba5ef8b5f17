package netif

import (
	"context"
	"testing"
	"time"

	"mavrelay/internal/mavlink"
)

// Property 5: FIFO transmission on a full-duplex sink.
func TestFullDuplexSendPreservesFIFOOrder(t *testing.T) {
	driver := newMockDriver("mock-fd", FullDuplex)
	iface, outbound, _ := New(driver, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- iface.Run(ctx) }()

	frames := make([]*mavlink.Frame, 5)
	for i := range frames {
		frames[i] = &mavlink.Frame{Sequence: byte(i), MessageID: 0}
		outbound <- frames[i]
	}

	deadline := time.After(time.Second)
	for len(driver.sentFrames()) < 5 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for 5 sends, got %d", len(driver.sentFrames()))
		case <-time.After(time.Millisecond):
		}
	}

	got := driver.sentFrames()
	for i, f := range got {
		if f.Sequence != byte(i) {
			t.Errorf("send order mismatch at index %d: got sequence %d, want %d", i, f.Sequence, i)
		}
	}

	cancel()
	<-done
}

// Property 8: backpressure on inbound overflow discards the newest frame
// and does not block subsequent receives from being serviced.
func TestFullDuplexInboundOverflowDropsAndContinues(t *testing.T) {
	driver := newMockDriver("mock-fd", FullDuplex)
	const capacity = 3
	iface, _, inbound := New(driver, capacity)

	for i := 0; i < capacity; i++ {
		driver.rx <- &mavlink.Frame{Sequence: byte(i)}
	}
	driver.rx <- &mavlink.Frame{Sequence: 99} // should be dropped once the channel saturates

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- iface.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)

	if got := len(inbound); got != capacity {
		t.Fatalf("inbound channel length = %d, want %d (saturated, overflow frame dropped)", got, capacity)
	}

	// Draining makes room for subsequent receives to be serviced again.
	<-inbound
	driver.rx <- &mavlink.Frame{Sequence: 7}
	time.Sleep(20 * time.Millisecond)
	if got := len(inbound); got != capacity {
		t.Errorf("inbound channel length after drain+receive = %d, want %d", got, capacity)
	}

	cancel()
	<-done
}
