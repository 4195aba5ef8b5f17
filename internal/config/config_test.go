package config

import "testing"

func TestLoadFallsBackToEnvWhenFileMissing(t *testing.T) {
	t.Setenv("NODE_TYPE", "Gateway")
	t.Setenv("UDP_PEER_ADDRESS", "192.168.1.255:14550")

	cfg, err := Load("/nonexistent/mavrelay.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Node.Role != "Gateway" {
		t.Errorf("Node.Role = %q, want %q", cfg.Node.Role, "Gateway")
	}
	if cfg.UDP.PeerAddress != "192.168.1.255:14550" {
		t.Errorf("UDP.PeerAddress = %q, want %q", cfg.UDP.PeerAddress, "192.168.1.255:14550")
	}
}

func TestBridgeHeartbeatInterval(t *testing.T) {
	b := Bridge{HeartbeatIntervalMs: 1000}
	if got := b.HeartbeatInterval(); got.Milliseconds() != 1000 {
		t.Errorf("HeartbeatInterval() = %v, want 1000ms", got)
	}
}
