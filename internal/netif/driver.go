// Package netif implements the uniform, duplex-aware packet-bridging loop
// shared by every link this node runs: one network interface per driver,
// wired together in pairs by a Bridge. Grounded on
// original_source/src/network/{mod,half_duplex_network,full_duplex_network}.rs
// and src/driver/mod.rs.
package netif

import (
	"context"

	"mavrelay/internal/mavlink"
)

// LinkRole distinguishes drivers that can send and receive simultaneously
// from ones that cannot.
type LinkRole int

const (
	FullDuplex LinkRole = iota
	HalfDuplex
)

// Driver is the capability set every link implementation exposes:
// {send, receive, prepare_to_send, prepare_to_receive, ready_to_receive,
// identity}, per spec §4.1. A half-duplex driver is internally exclusive
// between send and receive; the network loop above it never locks.
type Driver interface {
	// Identity is the stable log tag for this driver, e.g. "udp".
	Identity() string

	// LinkRole reports whether this driver can send and receive at once.
	LinkRole() LinkRole

	// Send transmits one frame. Failures are logged internally and never
	// surfaced to the caller.
	Send(ctx context.Context, f *mavlink.Frame)

	// Receive returns the next successfully parsed frame, or nil when the
	// driver currently has none (short read, CRC failure, bad parse).
	Receive(ctx context.Context) *mavlink.Frame

	// PrepareToSend arms TX mode on half-duplex drivers. No-op on
	// full-duplex drivers.
	PrepareToSend(ctx context.Context) error

	// PrepareToReceive arms RX-continuous mode on half-duplex drivers.
	// No-op on full-duplex drivers. Idempotent: calling it twice in a row
	// with no intervening send leaves the radio in RX-continuous (S6).
	PrepareToReceive(ctx context.Context) error

	// ReadyToReceive blocks until the RX-completion IRQ is asserted. No-op
	// (returns immediately) on full-duplex drivers.
	ReadyToReceive(ctx context.Context) error
}

// NoopHalfDuplex is embedded by full-duplex drivers to satisfy the
// half-duplex-only parts of the Driver contract as no-ops.
type NoopHalfDuplex struct{}

func (NoopHalfDuplex) PrepareToSend(ctx context.Context) error    { return nil }
func (NoopHalfDuplex) PrepareToReceive(ctx context.Context) error { return nil }
func (NoopHalfDuplex) ReadyToReceive(ctx context.Context) error   { return nil }
