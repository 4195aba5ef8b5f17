package mavlink

// RedundantTelemetryIDs are high-rate attitude/battery/terrain message ids
// that would saturate the long-range link if relayed verbatim. The set is
// an unexplained tunable inherited from the source this node was
// distilled from; it is not derived from any documented policy.
var RedundantTelemetryIDs = map[uint32]bool{
	30:  true, // ATTITUDE
	74:  true, // VFR_HUD
	141: true, // ALTITUDE
	410: true, // high-rate terrain/battery telemetry
}

// IsRedundantTelemetry reports whether a message id belongs to the
// redundant-telemetry filter, applied on UDP receive only.
func IsRedundantTelemetry(messageID uint32) bool {
	return RedundantTelemetryIDs[messageID]
}
