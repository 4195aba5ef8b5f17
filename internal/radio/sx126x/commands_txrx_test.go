package sx126x

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
)

func init() {
	discardHandler := slog.NewTextHandler(io.Discard, nil)
	slog.SetDefault(slog.New(discardHandler))
}

// # 13.1.4 SetTx
func TestSetTx(t *testing.T) {
	tests := []struct {
		name          string
		desc          string
		timeout       uint32
		expectedBytes []uint8
	}{
		{
			name:          "TxSingle",
			desc:          "Verifies setting TX mode with a zero timeout (TxSingle), which transmits a single packet and automatically returns to Standby mode",
			timeout:       uint32(TxSingle),
			expectedBytes: []uint8{0x83, 0x00, 0x00, 0x00},
		},
		{
			name:          "TimeoutZero",
			desc:          "Verifies boundary condition: passing explicitly 0x000000 as timeout correctly configures single-packet TX mode",
			timeout:       0x000000,
			expectedBytes: []uint8{0x83, 0x00, 0x00, 0x00},
		},
		{
			name:          "TimeoutMax24bit",
			desc:          "Verifies boundary condition: setting the maximum allowed 24-bit timeout value (0xFFFFFF)",
			timeout:       0xFFFFFF,
			expectedBytes: []uint8{0x83, 0xFF, 0xFF, 0xFF},
		},
		{
			name:          "ShiftCheck",
			desc:          "Verifies correct bitwise shifting and byte order (Big-Endian) when packing a standard 24-bit timeout value into the SPI payload",
			timeout:       0x123456,
			expectedBytes: []uint8{0x83, 0x12, 0x34, 0x56},
		},
		{
			name:          "Overflow24bit",
			desc:          "Verifies that a 32-bit integer is safely truncated by masking out the highest byte, strictly enforcing the 24-bit limit of the register",
			timeout:       0xFF123456,
			expectedBytes: []uint8{0x83, 0x12, 0x34, 0x56},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spi := MockSPI{}
			dev := Device{SPI: &spi}

			err := dev.SetTx(tc.timeout)

			if err != nil {
				t.Fatalf("FAIL: %s\nSetTx returned: %v", tc.desc, err)
			}

			if !bytes.Equal(spi.TxData, tc.expectedBytes) {
				t.Errorf("FAIL: %s\nWrong bytes send to SPI!\nExpected: [%# x]\nSent:     [%# x]", tc.desc, tc.expectedBytes, spi.TxData)
			}
		})
	}
}

// # 13.1.5 SetRx
//
// The driver only calls this from PrepareToReceive, always with
// RxContinuous (S6), but the modem accepts the same 24-bit timeout encoding
// SetTx does.
func TestSetRx(t *testing.T) {
	tests := []struct {
		name          string
		desc          string
		timeout       uint32
		expectedBytes []uint8
	}{
		{
			name:          "RxSingle",
			desc:          "Verifies setting RX mode with a zero timeout (RxSingle), which configures the modem to receive a single packet and then return to Standby mode",
			timeout:       uint32(RxSingle),
			expectedBytes: []uint8{0x82, 0x00, 0x00, 0x00},
		},
		{
			name:          "RxContinuous",
			desc:          "Verifies setting RX mode with the maximum timeout (RxContinuous), which keeps the modem in continuous reception mode",
			timeout:       uint32(RxContinuous),
			expectedBytes: []uint8{0x82, 0xFF, 0xFF, 0xFF},
		},
		{
			name:          "TimeoutZero",
			desc:          "Verifies boundary condition: passing explicitly 0x000000 correctly configures single-packet RX mode",
			timeout:       0x000000,
			expectedBytes: []uint8{0x82, 0x00, 0x00, 0x00},
		},
		{
			name:          "TimeoutMax24bit",
			desc:          "Verifies boundary condition: setting the maximum allowed 24-bit timeout value (0xFFFFFF), which acts as continuous RX mode",
			timeout:       0xFFFFFF,
			expectedBytes: []uint8{0x82, 0xFF, 0xFF, 0xFF},
		},
		{
			name:          "ShiftCheck",
			desc:          "Verifies correct bitwise shifting and byte order (Big-Endian) when packing a standard 24-bit timeout value into the SPI payload",
			timeout:       0x123456,
			expectedBytes: []uint8{0x82, 0x12, 0x34, 0x56},
		},
		{
			name:          "Overflow24bit",
			desc:          "Verifies that a 32-bit integer is safely truncated by masking out the highest byte, strictly enforcing the 24-bit limit of the register",
			timeout:       0xFF123456,
			expectedBytes: []uint8{0x82, 0x12, 0x34, 0x56},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spi := MockSPI{}
			dev := Device{SPI: &spi}

			err := dev.SetRx(tc.timeout)

			if err != nil {
				t.Fatalf("FAIL: %s\nSetRx returned: %v", tc.desc, err)
			}

			if !bytes.Equal(spi.TxData, tc.expectedBytes) {
				t.Errorf("FAIL: %s\nWrong bytes send to SPI!\nExpected: [%# x]\nSent:     [%# x]", tc.desc, tc.expectedBytes, spi.TxData)
			}
		})
	}
}
