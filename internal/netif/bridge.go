package netif

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mavrelay/internal/mavlink"
	"mavrelay/internal/obslog"
)

// Bridge wires two network interfaces together: frames arriving on A are
// forwarded to B's outbound side and vice versa, and each link gets its own
// heartbeat injector task. Per spec §4.4 this is a wiring pattern, not a
// standalone stateful component — it owns nothing but the forwarding and
// heartbeat goroutines themselves.
type Bridge struct {
	a, b              *Interface
	aOut, bOut        chan<- *mavlink.Frame
	aIn, bIn          <-chan *mavlink.Frame
	heartbeatInterval time.Duration
	headers           *mavlink.HeaderFactory
}

// NewBridge constructs an Interface pair for two drivers and a Bridge wiring them
// together, returning the Bridge and both interfaces so the caller can Run
// each interface alongside the bridge's own tasks.
func NewBridge(driverA, driverB Driver, bufferSize int, heartbeatInterval time.Duration) (*Bridge, *Interface, *Interface) {
	ifA, aOut, aIn := New(driverA, bufferSize)
	ifB, bOut, bIn := New(driverB, bufferSize)

	br := &Bridge{
		a:                 ifA,
		b:                 ifB,
		aOut:              aOut,
		aIn:               aIn,
		bOut:              bOut,
		bIn:               bIn,
		heartbeatInterval: heartbeatInterval,
		headers:           mavlink.NewHeaderFactory(),
	}
	return br, ifA, ifB
}

// Run spawns the two forwarding tasks (A-inbound -> B-outbound and
// B-inbound -> A-outbound) and the two heartbeat injectors, one per link.
// A failed forward is logged and the frame dropped; it never tears the
// bridge down.
func (br *Bridge) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return forward(ctx, br.a.Identity(), br.b.Identity(), br.aIn, br.bOut) })
	g.Go(func() error { return forward(ctx, br.b.Identity(), br.a.Identity(), br.bIn, br.aOut) })
	g.Go(func() error { return heartbeatInjector(ctx, br.headers, br.heartbeatInterval, br.aOut) })
	g.Go(func() error { return heartbeatInjector(ctx, br.headers, br.heartbeatInterval, br.bOut) })

	return g.Wait()
}

func forward(ctx context.Context, fromIdentity, toIdentity string, from <-chan *mavlink.Frame, to chan<- *mavlink.Frame) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok := <-from:
			if !ok {
				return nil
			}
			select {
			case to <- frame:
			default:
				obslog.BridgeForwardDropped(fromIdentity, toIdentity)
			}
		}
	}
}

func heartbeatInjector(ctx context.Context, headers *mavlink.HeaderFactory, interval time.Duration, out chan<- *mavlink.Frame) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			select {
			case out <- headers.Heartbeat():
			default:
				obslog.OutboundChannelFull("heartbeat-injector")
			}
		}
	}
}
