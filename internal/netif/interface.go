package netif

import (
	"context"
	"fmt"

	"mavrelay/internal/mavlink"
	"mavrelay/internal/obslog"
)

// Interface bridges one Driver to a ChannelPair. It owns the driver and the
// receiving end of the outbound channel plus the sending end of the inbound
// channel; the Bridge (or any other caller) owns the opposite ends.
type Interface struct {
	driver   Driver
	outbound chan *mavlink.Frame
	inbound  chan *mavlink.Frame
}

// New constructs an Interface with freshly made channels of the given
// capacity and returns it along with the two endpoints external callers
// use: a send-only handle to inject frames for transmission, and a
// receive-only handle to consume frames that arrived.
func New(driver Driver, bufferSize int) (*Interface, chan<- *mavlink.Frame, <-chan *mavlink.Frame) {
	outbound := make(chan *mavlink.Frame, bufferSize)
	inbound := make(chan *mavlink.Frame, bufferSize)
	obslog.NetworkInterfaceCreated(driver.Identity(), bufferSize)
	return &Interface{driver: driver, outbound: outbound, inbound: inbound}, outbound, inbound
}

// NewBarebone constructs an Interface over pre-made channel endpoints, used
// to cross-wire two interfaces in a Bridge without exposing an intermediate
// pair of channels to anything else.
func NewBarebone(driver Driver, outbound, inbound chan *mavlink.Frame) *Interface {
	return &Interface{driver: driver, outbound: outbound, inbound: inbound}
}

// Identity returns the underlying driver's log tag.
func (i *Interface) Identity() string {
	return i.driver.Identity()
}

// Run spawns the event loop appropriate to the driver's LinkRole and blocks
// until ctx is cancelled or the loop exits on its own (half-duplex state
// desynchronization). On full-duplex, closing the outbound channel ends only
// the send task; Run keeps blocking while the receive task runs.
func (i *Interface) Run(ctx context.Context) error {
	obslog.NetworkInterfaceRunning(i.driver.Identity())
	switch i.driver.LinkRole() {
	case FullDuplex:
		return i.runFullDuplex(ctx)
	case HalfDuplex:
		return i.runHalfDuplex(ctx)
	default:
		return fmt.Errorf("netif: driver %s reports unknown link role", i.driver.Identity())
	}
}
