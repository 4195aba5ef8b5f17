// Package udp implements the full-duplex UDP driver described in
// spec.md §4.1: a single broadcast-capable socket shared between the
// network interface's send and receive tasks, with v2-then-v1 MAVLink
// parsing and the redundant-telemetry filter applied on receive.
package udp

import (
	"context"
	"net"

	"golang.org/x/sys/unix"

	"mavrelay/internal/mavlink"
	"mavrelay/internal/netif"
	"mavrelay/internal/obslog"
)

const identity = "udp"
const maxDatagram = 256

// Driver is the full-duplex UDP implementation of netif.Driver.
type Driver struct {
	netif.NoopHalfDuplex

	conn *net.UDPConn
	peer *net.UDPAddr
}

// New opens a UDP socket bound to localAddress and configured to send to
// peerAddress. When broadcast is true the socket is enabled for sending to
// a broadcast address. Failure here is a driver-configuration failure per
// spec §7: fatal, propagated to the caller as a named error.
func New(localAddress, peerAddress string, broadcast bool) (*Driver, error) {
	localAddr, err := net.ResolveUDPAddr("udp", localAddress)
	if err != nil {
		return nil, err
	}
	peerAddr, err := net.ResolveUDPAddr("udp", peerAddress)
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp", localAddr)
	if err != nil {
		return nil, err
	}

	if broadcast {
		raw, err := conn.SyscallConn()
		if err != nil {
			conn.Close()
			return nil, err
		}
		var sockoptErr error
		if err := raw.Control(func(fd uintptr) {
			sockoptErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
		}); err != nil {
			conn.Close()
			return nil, err
		}
		if sockoptErr != nil {
			conn.Close()
			return nil, sockoptErr
		}
	}

	obslog.DriverCreated(identity)
	return &Driver{conn: conn, peer: peerAddr}, nil
}

func (d *Driver) Identity() string        { return identity }
func (d *Driver) LinkRole() netif.LinkRole { return netif.FullDuplex }

// Send serializes the frame to v2 wire bytes and writes it to the
// configured peer. Failures are logged, never surfaced.
func (d *Driver) Send(ctx context.Context, f *mavlink.Frame) {
	wire := mavlink.Serialize(f)
	if _, err := d.conn.WriteToUDP(wire, d.peer); err != nil {
		obslog.PacketSendFailed(identity, err)
		return
	}
	obslog.PacketSent(identity, f.MessageID, f.Sequence)
}

// Receive blocks on the socket for up to 256 bytes, attempts a v2-then-v1
// MAVLink parse, and drops frames on the redundant-telemetry ID set.
func (d *Driver) Receive(ctx context.Context) *mavlink.Frame {
	buf := make([]byte, maxDatagram)
	n, _, err := d.conn.ReadFromUDP(buf)
	if err != nil {
		obslog.PacketReceiveDropped(identity, "socket read error")
		return nil
	}

	frame, err := mavlink.Deserialize(buf[:n])
	if err != nil {
		obslog.ParseError(identity, buf[:n], err)
		return nil
	}

	if mavlink.IsRedundantTelemetry(frame.MessageID) {
		obslog.PacketReceiveDropped(identity, "redundant telemetry filter")
		return nil
	}

	return frame
}

// Close releases the underlying socket.
func (d *Driver) Close() error {
	return d.conn.Close()
}
