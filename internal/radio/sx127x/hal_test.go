package sx127x

import "testing"

func newTestDevice() (*Device, *MockSPI) {
	mock := &MockSPI{}
	dev := &Device{
		SPI: mock,
		Config: &Config{
			Enable:          true,
			SpreadingFactor: 7,
			Bandwidth:       250000,
			CodingRate:      5,
			Frequency:       868100000,
			PreambleLength:  8,
			CRC:             true,
			SyncWord:        0x12,
			TxPowerDbm:      14,
		},
	}
	return dev, mock
}

func TestWriteRegisterSetsWriteBit(t *testing.T) {
	dev, mock := newTestDevice()

	if err := dev.WriteRegister(RegOpMode, byte(OpModeStandby)); err != nil {
		t.Fatalf("WriteRegister: %v", err)
	}
	if len(mock.TxData) < 2 || mock.TxData[0] != byte(RegOpMode)|writeBit {
		t.Errorf("expected address byte with write bit set, got % x", mock.TxData)
	}
	if mock.TxData[1] != byte(OpModeStandby) {
		t.Errorf("expected value byte %#x, got %#x", byte(OpModeStandby), mock.TxData[1])
	}
}

func TestReadRegisterClearsWriteBit(t *testing.T) {
	dev, mock := newTestDevice()
	mock.RxData = []byte{0x00, 0x42}

	got, err := dev.ReadRegister(RegVersion)
	if err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if got != 0x42 {
		t.Errorf("ReadRegister() = %#x, want 0x42", got)
	}
	if mock.TxData[0] != byte(RegVersion)&^writeBit {
		t.Errorf("expected address byte with write bit clear, got %#x", mock.TxData[0])
	}
}

func TestTransmitWritesPayloadLengthAndFifo(t *testing.T) {
	dev, mock := newTestDevice()
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	if err := dev.Transmit(payload); err != nil {
		t.Fatalf("Transmit: %v", err)
	}

	// RegFifoAddrPtr write (bytes 0-1), then RegPayloadLength, then the FIFO burst.
	if mock.TxData[2] != byte(RegPayloadLength)|writeBit || mock.TxData[3] != byte(len(payload)) {
		t.Errorf("expected a RegPayloadLength write of %d, got % x", len(payload), mock.TxData[2:4])
	}
	fifo := mock.TxData[4 : 5+len(payload)]
	if fifo[0] != byte(RegFifo)|writeBit || string(fifo[1:]) != string(payload) {
		t.Errorf("expected a FIFO write of % x, got % x", payload, fifo)
	}

	// The final register write switches into TX mode with the long-range bit set.
	last := mock.TxData[len(mock.TxData)-2:]
	if last[0] != byte(RegOpMode)|writeBit {
		t.Fatalf("expected last write to target RegOpMode, got % x", mock.TxData)
	}
	if last[1] != longRangeModeBit|byte(OpModeTx) {
		t.Errorf("expected OpModeTx with LongRangeMode set, got %#x", last[1])
	}
}

func TestReadPacketReturnsErrorWithoutRxDone(t *testing.T) {
	dev, mock := newTestDevice()
	mock.RxData = []byte{0x00, 0x00} // RegIrqFlags read: no bits set

	if _, _, err := dev.ReadPacket(); err == nil {
		t.Error("ReadPacket() = nil error, want error when RxDone is not asserted")
	}
}

func TestFrfRoundTripsNearConfiguredFrequency(t *testing.T) {
	msb, mid, lsb := frf(868100000)
	v := uint32(msb)<<16 | uint32(mid)<<8 | uint32(lsb)
	got := uint32(float64(v) * fstep)

	const tolerance = 100 // Hz, quantization of a ~61 Hz step
	diff := int64(got) - int64(868100000)
	if diff < -tolerance || diff > tolerance {
		t.Errorf("frf round-trip = %d Hz, want within %dHz of 868100000", got, tolerance)
	}
}
