package netif

import (
	"context"
	"testing"
	"time"

	"mavrelay/internal/mavlink"
)

// Property 6 / S3: burst cap. With 20 frames queued up front, no run of
// consecutive sends in the driver's call log exceeds BurstLimit.
func TestHalfDuplexBurstCap(t *testing.T) {
	driver := newMockDriver("mock-hd", HalfDuplex)
	iface, outbound, _ := New(driver, 32)

	for i := 0; i < 20; i++ {
		outbound <- &mavlink.Frame{Sequence: byte(i)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- iface.Run(ctx) }()

	deadline := time.After(time.Second)
	for len(driver.sentFrames()) < 20 {
		select {
		case <-deadline:
			t.Fatalf("timed out, only %d of 20 frames sent", len(driver.sentFrames()))
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done

	log := driver.callLog()
	run := 0
	maxRun := 0
	for _, call := range log {
		if call == "send" {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}
	if maxRun > BurstLimit {
		t.Errorf("observed a burst of %d consecutive sends, want at most %d", maxRun, BurstLimit)
	}
}

// Property 7: half-duplex yield. After a send completes with nothing
// outbound for BurstIdle, the next driver call is prepare_to_receive.
func TestHalfDuplexYieldsAfterIdleBurst(t *testing.T) {
	driver := newMockDriver("mock-hd", HalfDuplex)
	iface, outbound, _ := New(driver, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- iface.Run(ctx) }()

	outbound <- &mavlink.Frame{Sequence: 1}

	deadline := time.After(time.Second)
	for len(driver.sentFrames()) < 1 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for the single send")
		case <-time.After(time.Millisecond):
		}
	}

	// Allow the idle timeout to fire and the loop to re-arm.
	time.Sleep(4 * BurstIdle)

	cancel()
	<-done

	log := driver.callLog()
	sendIdx := -1
	for i, call := range log {
		if call == "send" {
			sendIdx = i
			break
		}
	}
	if sendIdx == -1 || sendIdx+1 >= len(log) {
		t.Fatalf("expected a prepare_to_receive call logged after the send, log: %v", log)
	}
	if log[sendIdx+1] != "prepare_to_receive" {
		t.Errorf("call after send = %q, want %q (log: %v)", log[sendIdx+1], "prepare_to_receive", log)
	}
}

// S6: idempotent re-arm. Calling prepare_to_receive twice with no
// intervening TX succeeds both times.
func TestHalfDuplexPrepareToReceiveIdempotent(t *testing.T) {
	driver := newMockDriver("mock-hd", HalfDuplex)

	if err := driver.PrepareToReceive(context.Background()); err != nil {
		t.Fatalf("first prepare_to_receive: %v", err)
	}
	if err := driver.PrepareToReceive(context.Background()); err != nil {
		t.Fatalf("second prepare_to_receive: %v", err)
	}

	log := driver.callLog()
	if len(log) != 2 || log[0] != "prepare_to_receive" || log[1] != "prepare_to_receive" {
		t.Errorf("call log = %v, want two consecutive prepare_to_receive calls", log)
	}
}
