package netif

import (
	"context"
	"time"

	"mavrelay/internal/mavlink"
	"mavrelay/internal/obslog"
)

// BurstLimit caps the number of consecutive sends inside one TX excursion
// of the half-duplex loop, preventing RX starvation under a heavily loaded
// outbound channel (Property 6).
const BurstLimit = 5

// BurstIdle is how long a TX excursion waits for the next outbound frame
// before yielding back to listening (Property 7).
const BurstIdle = 2 * time.Millisecond

// runHalfDuplex implements the three-state time-share described in spec
// §4.2.2: armed-for-rx, TX burst, RX-done. It is a single task; the radio
// is either transmitting or listening, never both, and prepare_to_receive
// is re-invoked on every pass through armed-for-rx to guarantee RX state
// after a TX excursion.
func (i *Interface) runHalfDuplex(ctx context.Context) error {
	identity := i.driver.Identity()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := i.driver.PrepareToReceive(ctx); err != nil {
			obslog.HalfDuplexStateDesync(identity, err)
			return err
		}

		armCtx, cancelArm := context.WithCancel(ctx)
		irqResult := make(chan error, 1)
		go func() {
			irqResult <- i.driver.ReadyToReceive(armCtx)
		}()

		select {
		case <-ctx.Done():
			cancelArm()
			return ctx.Err()

		case frame := <-i.outbound:
			cancelArm() // IRQ wait is superseded; it may still be pending in hardware and is serviced next pass.
			if err := i.txBurst(ctx, frame); err != nil {
				obslog.HalfDuplexStateDesync(identity, err)
				return err
			}

		case err := <-irqResult:
			cancelArm()
			if err != nil {
				obslog.HalfDuplexStateDesync(identity, err)
				return err
			}
			i.rxDone(ctx)
		}
	}
}

// txBurst enters TX mode and drains the outbound channel, up to BurstLimit
// consecutive sends or BurstIdle of channel silence, whichever comes first
// (Properties 6 and 7).
func (i *Interface) txBurst(ctx context.Context, first *mavlink.Frame) error {
	if err := i.driver.PrepareToSend(ctx); err != nil {
		return err
	}
	i.driver.Send(ctx, first)

	for n := 1; n < BurstLimit; n++ {
		timer := time.NewTimer(BurstIdle)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case next := <-i.outbound:
			timer.Stop()
			i.driver.Send(ctx, next)
		case <-timer.C:
			return nil
		}
	}
	return nil
}

func (i *Interface) rxDone(ctx context.Context) {
	identity := i.driver.Identity()
	frame := i.driver.Receive(ctx)
	if frame == nil {
		return
	}

	select {
	case i.inbound <- frame:
		obslog.PacketReceived(identity, frame.MessageID, frame.Sequence)
	default:
		obslog.InboundChannelFull(identity)
	}
}
