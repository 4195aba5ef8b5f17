// Package obslog collects the small, named per-event logging helpers this
// node uses around packet send/receive and driver lifecycle events,
// mirroring the one-helper-per-event-type shape of
// original_source/src/utils/logging_utils.rs but backed by log/slog, the
// library the teacher repo logs through everywhere else.
package obslog

import "log/slog"

func DriverCreated(identity string) {
	slog.Info("driver created", "identity", identity)
}

func DriverCreationFailed(identity string, err error) {
	slog.Error("driver creation failed", "identity", identity, "error", err)
}

func NetworkInterfaceCreated(identity string, bufferSize int) {
	slog.Info("network interface created", "identity", identity, "buffer_size", bufferSize)
}

func NetworkInterfaceRunning(identity string) {
	slog.Info("network interface running", "identity", identity)
}

func PacketSent(identity string, messageID uint32, seq byte) {
	slog.Debug("packet sent", "identity", identity, "message_id", messageID, "sequence", seq)
}

func PacketSendFailed(identity string, err error) {
	slog.Debug("packet send failed", "identity", identity, "error", err)
}

func PacketReceived(identity string, messageID uint32, seq byte) {
	slog.Debug("packet received", "identity", identity, "message_id", messageID, "sequence", seq)
}

func PacketReceiveDropped(identity string, reason string) {
	slog.Debug("packet receive dropped", "identity", identity, "reason", reason)
}

func ParseError(identity string, raw []byte, err error) {
	slog.Error("mavlink parse error", "identity", identity, "raw", raw, "error", err)
}

func InboundChannelFull(identity string) {
	slog.Error("inbound channel full, dropping packet", "identity", identity)
}

func OutboundChannelFull(identity string) {
	slog.Error("outbound channel full, dropping enqueue", "identity", identity)
}

func BridgeForwardDropped(from, to string) {
	slog.Error("bridge forward dropped, channel full", "from", from, "to", to)
}

func HalfDuplexStateDesync(identity string, err error) {
	slog.Error("half-duplex state desynchronization, task exiting", "identity", identity, "error", err)
}

func RxSignal(identity string, rssi int, snr float64) {
	slog.Debug("receive signal quality", "identity", identity, "rssi", rssi, "snr", snr)
}
