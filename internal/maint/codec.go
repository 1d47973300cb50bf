// Package maint implements the maintenance TLV protocol (spec.md §4.3):
// parsing an inbound command stream into a pending configuration update,
// and building the outbound response describing current configuration.
//
// Command code values are not present in the retrieved specification (they
// live in a header file outside the distillation); the values below are
// assigned internally and are therefore NOT guaranteed to match the real
// device's wire encoding for these specific commands — see DESIGN.md. The
// TLV framing, lengths, ordering, and recompute-on-update semantics are
// exact per spec.md.
package maint

import (
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/wire"
)

// Command codes recognized in an inbound maintenance datagram.
const (
	cmdSetState    = 0x01
	cmdSetDemoMode = 0x02
	cmdSetScanRate = 0x03
	cmdSetContRate = 0x04
	cmdSetChFormat = 0x05
	cmdSetScanBeg  = 0x06
	cmdSetScanSp   = 0x07
)

// Command codes used in the outbound response.
const (
	cmdRetState    = 0x81
	cmdRetDemoMode = 0x82
	cmdRetScanTx   = 0x83
	cmdRetDataCode = 0x84
	cmdRetScanCode = 0x85
	cmdRetSerial   = 0x86
)

// HeaderSize is the size of the fixed maintenance header: ulCodeStamp (4),
// ucSpare (1), ucState (1).
const HeaderSize = 6

// MaxSize bounds any single maintenance datagram, per spec.md's MTU limit.
const MaxSize = wire.MTULimit

// Header is the fixed 6-byte maintenance header. ulCodeStamp and ucSpare
// are read but not interpreted by the core, matching spec.md §4.3.
type Header struct {
	CodeStamp uint32
	Spare     uint8
	State     uint8
}

// Update is the set of board fields a maintenance datagram asked to
// change. Only fields with their Has* flag set were present in the
// datagram; Apply (internal/board) applies exactly those and no others.
// Scan-time and channel-format TLVs are decoded here (bit-field decode is
// pure and has no board dependency), so Update carries ready-to-apply
// values rather than raw wire codes.
type Update struct {
	HasState bool
	State    uint8

	HasDemo bool
	Demo    bool

	HasScanRate bool
	RawSpeedHz  uint16

	HasContRate   bool
	ContSpeedCode uint16

	HasChFormat bool
	Channels    uint8
	Gratings    uint8

	HasScanBeg bool
	FirstFr    uint16

	HasScanSp  bool
	ScanTimeUS uint16
}

// ParseResult is the outcome of a single maintenance datagram parse.
// UnknownCommands records command codes the parse encountered but did not
// recognize, for logging by the caller (spec.md: "unknown commands are
// logged and skipped without erroring the stream").
type ParseResult struct {
	Header          Header
	Update          Update
	UnknownCommands []uint8
}

// Parse validates and decodes a maintenance datagram in a single pass that
// never mutates shared state — only this function's local Update value is
// written to. The caller (internal/board) applies the result atomically,
// which is what makes a malformed datagram's rejection leave zero partial
// mutation, resolving the hazard flagged in spec.md §9.
//
// Rejected wholesale (returns an error, no Update fields set) when: buf is
// nil/empty, len(buf) is outside [HeaderSize, MaxSize], or the payload
// length is not a multiple of 4. A failure partway through the TLV stream
// still returns whatever Header and Update fields were decoded before the
// failing TLV, so a caller that replies unconditionally (spec.md §4.4 step
// 3) can echo the real code stamp instead of a zero value.
func Parse(buf []byte) (ParseResult, error) {
	var result ParseResult

	if len(buf) == 0 {
		return result, wire.ErrNilBuffer
	}
	if len(buf) < HeaderSize || len(buf) > MaxSize {
		return result, wire.ErrBadLength
	}
	if (len(buf)-HeaderSize)%4 != 0 {
		return result, wire.ErrBadAlignment
	}

	cur := wire.NewCursor(buf)
	codeStamp, _, err := cur.ReadUint32()
	if err != nil {
		return result, err
	}
	spare, _, err := cur.ReadUint8()
	if err != nil {
		return result, err
	}
	state, _, err := cur.ReadUint8()
	if err != nil {
		return result, err
	}
	result.Header = Header{CodeStamp: codeStamp, Spare: spare, State: state}

	for cur.Remaining() > 0 {
		cmd, _, err := cur.ReadUint8()
		if err != nil {
			return result, err
		}
		cmdLen, _, err := cur.ReadUint8()
		if err != nil {
			return result, err
		}
		if cur.Remaining() < int(cmdLen) {
			return result, wire.ErrBadLength
		}
		data := cur.Bytes()[cur.Pos() : cur.Pos()+int(cmdLen)]
		dataCur := wire.NewCursor(data)

		switch cmd {
		case cmdSetState:
			v, _, err := dataCur.ReadUint8()
			if err != nil {
				return result, err
			}
			result.Update.HasState = true
			result.Update.State = v
		case cmdSetDemoMode:
			v, _, err := dataCur.ReadUint8()
			if err != nil {
				return result, err
			}
			result.Update.HasDemo = true
			result.Update.Demo = v != 0
		case cmdSetScanRate:
			v, _, err := dataCur.ReadUint16()
			if err != nil {
				return result, err
			}
			result.Update.HasScanRate = true
			result.Update.RawSpeedHz = v
		case cmdSetContRate:
			v, _, err := dataCur.ReadUint16()
			if err != nil {
				return result, err
			}
			result.Update.HasContRate = true
			result.Update.ContSpeedCode = v
		case cmdSetChFormat:
			v, _, err := dataCur.ReadUint16()
			if err != nil {
				return result, err
			}
			result.Update.HasChFormat = true
			result.Update.Channels = wire.DecodeChannels(v)
			result.Update.Gratings = wire.DecodeGratings(v)
			if result.Update.Gratings == 0 {
				result.Update.Gratings = 16 // wire value 0 means 16 gratings
			}
		case cmdSetScanBeg:
			v, _, err := dataCur.ReadUint16()
			if err != nil {
				return result, err
			}
			result.Update.HasScanBeg = true
			result.Update.FirstFr = v
		case cmdSetScanSp:
			v, _, err := dataCur.ReadUint16()
			if err != nil {
				return result, err
			}
			result.Update.HasScanSp = true
			result.Update.ScanTimeUS = wire.DecodeScanTimeUS(v)
		default:
			result.UnknownCommands = append(result.UnknownCommands, cmd)
		}

		if _, err := cur.Skip(int(cmdLen)); err != nil {
			return result, err
		}
	}

	return result, nil
}
