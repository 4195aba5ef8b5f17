package sx126x

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func init() {
	discardHandler := slog.NewTextHandler(io.Discard, nil)
	slog.SetDefault(slog.New(discardHandler))
}

// # 13.4.2 SetPacketType
func TestSetPacketType(t *testing.T) {
	tests := []struct {
		name          string
		desc          string
		packetType    PacketType
		expectedBytes []uint8
	}{
		{
			name:          "GFSK",
			desc:          "Verifies that the GFSK packet type opcode is correctly formatted into the SPI payload.",
			packetType:    PacketTypeGFSK,
			expectedBytes: []uint8{0x8A, 0x00},
		},
		{
			name:          "LoRa",
			desc:          "Verifies that the LoRa packet type opcode is correctly formatted into the SPI payload.",
			packetType:    PacketTypeLoRa,
			expectedBytes: []uint8{0x8A, 0x01},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spi := MockSPI{}
			dev := Device{SPI: &spi}

			err := dev.SetPacketType(tc.packetType)

			if err != nil {
				t.Fatalf("FAIL: %s\nSetPacketType returned: %v", tc.desc, err)
			}

			if !bytes.Equal(spi.TxData, tc.expectedBytes) {
				t.Errorf("FAIL: %s\nWrong bytes send to SPI!\nExpected: [%# x]\nSent:     [%# x]", tc.desc, tc.expectedBytes, spi.TxData)
			}
		})
	}
}

// # 13.4.5 SetModulationParams
func TestSetModulationParams(t *testing.T) {
	tests := []struct {
		name          string
		desc          string
		bw            uint64
		sf            uint8
		cr            uint8
		ldro          bool
		options       func(d *Device) []OptionsModulation
		expectedBytes []uint8
	}{
		{
			name:          "SF7_BW125_CR4_5_LDROOff",
			desc:          "Verifies the most common default LoRa configuration: SF7, 125 kHz bandwidth, coding rate 4/5, low data rate optimization disabled.",
			bw:            125000,
			sf:            7,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "SF7_BW125_CR4_5_LDROOn",
			desc:          "Verifies that enabling low data rate optimization correctly flips the final byte of the payload without disturbing the rest.",
			bw:            125000,
			sf:            7,
			cr:            5,
			ldro:          true,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x01},
		},
		{
			name:          "SpreadingFactorMinimum",
			desc:          "Verifies the lowest supported spreading factor is passed through unmodified.",
			bw:            125000,
			sf:            5,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x05, 0x04, 0x01, 0x00},
		},
		{
			name:          "SpreadingFactorMaximum",
			desc:          "Verifies the highest supported spreading factor is passed through unmodified.",
			bw:            125000,
			sf:            12,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x0C, 0x04, 0x01, 0x00},
		},
		{
			name:          "SpreadingFactorBelowRange_FallsBackTo7",
			desc:          "Verifies that a spreading factor below the valid range falls back to the standard default of 7.",
			bw:            125000,
			sf:            0,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "SpreadingFactorAboveRange_FallsBackTo7",
			desc:          "Verifies that a spreading factor above the valid range falls back to the standard default of 7.",
			bw:            125000,
			sf:            15,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "BandwidthZero_FallsBackTo125k",
			desc:          "Verifies that an unsupported bandwidth of zero falls back to the default 125 kHz setting.",
			bw:            0,
			sf:            7,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "BandwidthOutOfRange_FallsBackTo125k",
			desc:          "Verifies that a bandwidth value outside all known LoRa bands falls back to the default 125 kHz setting.",
			bw:            900000,
			sf:            7,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "BandwidthMinimum",
			desc:          "Verifies the narrowest supported LoRa bandwidth is correctly mapped.",
			bw:            7800,
			sf:            7,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x00, 0x01, 0x00},
		},
		{
			name:          "BandwidthMaximum",
			desc:          "Verifies the widest supported LoRa bandwidth is correctly mapped.",
			bw:            500000,
			sf:            7,
			cr:            5,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x06, 0x01, 0x00},
		},
		{
			name:          "CodingRateBelowRange_FallsBackTo4_5",
			desc:          "Verifies that a coding rate below the valid range falls back to the standard default of 4/5.",
			bw:            125000,
			sf:            7,
			cr:            0,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "CodingRateMaximum",
			desc:          "Verifies the highest supported coding rate is correctly mapped.",
			bw:            125000,
			sf:            7,
			cr:            8,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x04, 0x00},
		},
		{
			name:          "CodingRateAboveRange_FallsBackTo4_5",
			desc:          "Verifies that a coding rate above the valid range falls back to the standard default of 4/5.",
			bw:            125000,
			sf:            7,
			cr:            9,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "ExtremeCombination_SF12_BW7800_CR8_LDROOn",
			desc:          "Verifies all four parameters at their extremes are combined correctly into a single payload.",
			bw:            7800,
			sf:            12,
			cr:            8,
			ldro:          true,
			expectedBytes: []uint8{0x8B, 0x0C, 0x00, 0x04, 0x01},
		},
		{
			name:          "AllZero_FallsBackToDefaults",
			desc:          "Verifies that a fully zeroed configuration falls back to SF7, 125 kHz, and coding rate 4/5.",
			bw:            0,
			sf:            0,
			cr:            0,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "AbsurdValues_FallBackToDefaults",
			desc:          "Verifies that nonsensical, far out-of-range values are all individually clamped to their respective defaults.",
			bw:            999000,
			sf:            99,
			cr:            99,
			ldro:          false,
			expectedBytes: []uint8{0x8B, 0x07, 0x04, 0x01, 0x00},
		},
		{
			name:          "OptionsOverride_ModulationConfigLoRa",
			desc:          "Verifies that an explicit option built via ModulationConfigLoRa overrides whatever the device's own configuration would have produced.",
			bw:            125000,
			sf:            7,
			cr:            5,
			ldro:          false,
			options: func(d *Device) []OptionsModulation {
				return []OptionsModulation{d.ModulationConfigLoRa(9, 5, 125000*physic.Hertz, true)}
			},
			expectedBytes: []uint8{0x8B, 0x09, 0x04, 0x01, 0x01},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spi := MockSPI{}
			cfg := Config{
				Bandwidth:       tc.bw,
				SpreadingFactor: tc.sf,
				CodingRate:      tc.cr,
				LDRO:            tc.ldro,
			}
			dev := Device{SPI: &spi, Config: &cfg}

			var opts []OptionsModulation
			if tc.options != nil {
				opts = tc.options(&dev)
			}
			err := dev.SetModulationParams(opts...)

			if err != nil {
				t.Fatalf("FAIL: %s\nSetModulationParams returned: %v", tc.desc, err)
			}

			if !bytes.Equal(spi.TxData, tc.expectedBytes) {
				t.Errorf("FAIL: %s\nWrong bytes send to SPI!\nExpected: [%# x]\nSent:     [%# x]", tc.desc, tc.expectedBytes, spi.TxData)
			}
		})
	}
}

// # 13.4.6 SetPacketParams
func TestSetPacketParams(t *testing.T) {
	tests := []struct {
		name           string
		desc           string
		preamble       uint16
		payload        uint8
		headerImplicit bool
		invertedIQ     bool
		crc            bool
		options        func(d *Device) []OptionsPacket
		expectedBytes  []uint8
	}{
		{
			name:           "Preamble12_HeaderExplicit_Payload32_CRCOn_IQInverted",
			desc:           "Verifies the most common default LoRa packet configuration.",
			preamble:       12,
			payload:        32,
			headerImplicit: false,
			invertedIQ:     true,
			crc:            true,
			expectedBytes:  []uint8{0x8C, 0x00, 0x0C, 0x00, 0x20, 0x01, 0x01},
		},
		{
			name:           "Preamble0_HeaderImplicit_Payload0_CRCOff_IQStandard",
			desc:           "Verifies the minimum boundary configuration with every flag toggled off.",
			preamble:       0,
			payload:        0,
			headerImplicit: true,
			invertedIQ:     false,
			crc:            false,
			expectedBytes:  []uint8{0x8C, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00},
		},
		{
			name:           "PreambleMax16bit_PayloadMax8bit",
			desc:           "Verifies that the preamble length and payload length are correctly packed at their maximum boundaries.",
			preamble:       0xFFFF,
			payload:        0xFF,
			headerImplicit: false,
			invertedIQ:     false,
			crc:            true,
			expectedBytes:  []uint8{0x8C, 0xFF, 0xFF, 0x00, 0xFF, 0x01, 0x00},
		},
		{
			name:           "PreambleShift_PayloadShift",
			desc:           "Verifies correct byte ordering of the 16-bit preamble length using a recognizable hex pattern.",
			preamble:       0x1234,
			payload:        0x56,
			headerImplicit: false,
			invertedIQ:     false,
			crc:            false,
			expectedBytes:  []uint8{0x8C, 0x12, 0x34, 0x00, 0x56, 0x00, 0x00},
		},
		{
			name:           "Preamble8_HeaderExplicit_Payload64_CrcOff",
			desc:           "Verifies a cross-combination of non-default preamble, header mode and payload settings.",
			preamble:       8,
			payload:        64,
			headerImplicit: false,
			invertedIQ:     false,
			crc:            false,
			expectedBytes:  []uint8{0x8C, 0x00, 0x08, 0x00, 0x40, 0x00, 0x00},
		},
		{
			name:           "OptionsOverride_PacketLoRaConfig",
			desc:           "Verifies that an explicit option built via PacketLoRaConfig overrides whatever the device's own configuration would have produced.",
			preamble:       12,
			payload:        32,
			headerImplicit: false,
			invertedIQ:     false,
			crc:            false,
			options: func(d *Device) []OptionsPacket {
				return []OptionsPacket{d.PacketLoRaConfig(16, HeaderImplicit, 40, CrcOn, IqInverted)}
			},
			expectedBytes: []uint8{0x8C, 0x00, 0x10, 0x01, 0x28, 0x01, 0x01},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spi := MockSPI{}
			cfg := Config{
				PreambleLength: tc.preamble,
				PayloadLength:  tc.payload,
				HeaderImplicit: tc.headerImplicit,
				InvertedIQ:     tc.invertedIQ,
				CRC:            tc.crc,
			}
			dev := Device{SPI: &spi, Config: &cfg}

			var opts []OptionsPacket
			if tc.options != nil {
				opts = tc.options(&dev)
			}
			err := dev.SetPacketParams(opts...)

			if err != nil {
				t.Fatalf("FAIL: %s\nSetPacketParams returned: %v", tc.desc, err)
			}

			if !bytes.Equal(spi.TxData, tc.expectedBytes) {
				t.Errorf("FAIL: %s\nWrong bytes send to SPI!\nExpected: [%# x]\nSent:     [%# x]", tc.desc, tc.expectedBytes, spi.TxData)
			}
		})
	}
}
