package netif

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mavrelay/internal/obslog"
)

// runFullDuplex spawns the two independent tasks described in spec §4.2.1:
// a receive task draining the driver into the inbound channel, and a send
// task draining the outbound channel into the driver. The two tasks share
// this interface's driver handle; the driver is responsible for any
// internal exclusion between concurrent send and receive.
func (i *Interface) runFullDuplex(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return i.fullDuplexReceiveLoop(ctx)
	})
	g.Go(func() error {
		return i.fullDuplexSendLoop(ctx)
	})

	return g.Wait()
}

func (i *Interface) fullDuplexReceiveLoop(ctx context.Context) error {
	identity := i.driver.Identity()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame := i.driver.Receive(ctx)
		if frame == nil {
			continue
		}

		select {
		case i.inbound <- frame:
			obslog.PacketReceived(identity, frame.MessageID, frame.Sequence)
		default:
			obslog.InboundChannelFull(identity)
		}
	}
}

// fullDuplexSendLoop drains the outbound channel in FIFO order (Property
// 5) and exits cleanly once the channel is closed and drained.
func (i *Interface) fullDuplexSendLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok := <-i.outbound:
			if !ok {
				return nil
			}
			i.driver.Send(ctx, frame)
		}
	}
}
