package maint

import (
	"testing"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/wire"
)

func buildDatagram(tlvs ...[]byte) []byte {
	buf := []byte{0, 0, 0, 1, 0, 0} // codeStamp=1, spare=0, state=0
	for _, t := range tlvs {
		buf = append(buf, t...)
	}
	return buf
}

// tlv8 declares a 2-byte data region (padded with a trailing zero) so that
// a single TLV entry is already 4-byte aligned on its own: the parser only
// reads the first data byte but still skips the full declared length.
func tlv8(cmd, val uint8) []byte {
	return []byte{cmd, 2, val, 0}
}

func tlv16(cmd uint8, val uint16) []byte {
	return []byte{cmd, 2, byte(val >> 8), byte(val)}
}

func TestParseSetDemoMode(t *testing.T) {
	buf := buildDatagram(tlv8(cmdSetDemoMode, 1))
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !result.Update.HasDemo || !result.Update.Demo {
		t.Fatalf("Update = %+v, want Demo=true", result.Update)
	}
	if result.Header.CodeStamp != 1 {
		t.Fatalf("CodeStamp = %d, want 1", result.Header.CodeStamp)
	}
}

func TestParseUnknownCommandSkipped(t *testing.T) {
	buf := buildDatagram(tlv8(0xEE, 7), tlv8(cmdSetDemoMode, 0))
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.UnknownCommands) != 1 || result.UnknownCommands[0] != 0xEE {
		t.Fatalf("UnknownCommands = %v, want [0xEE]", result.UnknownCommands)
	}
	if !result.Update.HasDemo || result.Update.Demo {
		t.Fatalf("Update = %+v, want Demo=false present", result.Update)
	}
}

func TestParseRejectsShortBuffer(t *testing.T) {
	if _, err := Parse([]byte{1, 2, 3}); err != wire.ErrBadLength {
		t.Fatalf("Parse(short) err = %v, want ErrBadLength", err)
	}
}

func TestParseRejectsNilBuffer(t *testing.T) {
	if _, err := Parse(nil); err != wire.ErrNilBuffer {
		t.Fatalf("Parse(nil) err = %v, want ErrNilBuffer", err)
	}
}

func TestParseRejectsMisalignedLength(t *testing.T) {
	buf := append(buildDatagram(), 1, 2, 3) // 3 extra bytes, not a multiple of 4
	if _, err := Parse(buf); err != wire.ErrBadAlignment {
		t.Fatalf("Parse(misaligned) err = %v, want ErrBadAlignment", err)
	}
}

func TestParseScanRateAndChannelFormat(t *testing.T) {
	buf := buildDatagram(
		tlv16(cmdSetScanRate, 500),
		tlv16(cmdSetChFormat, wire.EncodeChanFormat(8, 9)),
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !result.Update.HasScanRate || result.Update.RawSpeedHz != 500 {
		t.Fatalf("Update = %+v, want RawSpeedHz=500", result.Update)
	}
	if !result.Update.HasChFormat || result.Update.Channels != 8 || result.Update.Gratings != 9 {
		t.Fatalf("Update = %+v, want Channels=8 Gratings=9", result.Update)
	}
}

func TestBuildProducesFixedSizeResponse(t *testing.T) {
	resp := Build(42, ConfigSnapshot{State: 1, Demo: true, RawSpeedHz: 10, ContSpeedCode: 25, ScanTimeUS: 400, Serial: 9})
	if len(resp) != responseSize {
		t.Fatalf("len(resp) = %d, want %d", len(resp), responseSize)
	}
}
