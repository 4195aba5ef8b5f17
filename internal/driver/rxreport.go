// Package driver holds the receive-signal reporting type shared by the
// LoRa driver implementations (internal/driver/lorasx126x,
// internal/driver/lorasx127x, internal/driver/lorauart).
package driver

import "mavrelay/internal/mavlink"

// RxReport is what a LoRa driver's radio-level receive path actually
// produces (SPEC_FULL.md S7): the parsed frame plus whatever signal-quality
// bytes the modem handed back with it. SX126x/SX127x populate RSSI/SNR
// from a packet-status register read; the UART adapter populates RSSI and
// Noise from the two trailing bytes of the same UART read that carried the
// payload, when RSSI reporting is enabled. No separate RSSI-read command is
// sent to the UART adapter. netif.Driver.Receive logs these fields via obslog.RxSignal and
// returns only the Frame, since the Driver contract's Receive signature is
// fixed at *mavlink.Frame.
type RxReport struct {
	Frame *mavlink.Frame
	RSSI  int
	SNR   float64
	Noise int
}
