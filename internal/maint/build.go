package maint

import "github.com/CARDIGANSPoliTo/photonext-emulator/internal/wire"

// ConfigSnapshot is the subset of board configuration the maintenance
// response TLV stream describes. It is a plain value type (not
// internal/board.Config) so this package has no dependency on board,
// keeping the Update -> Apply -> Build data flow a one-way street.
type ConfigSnapshot struct {
	State         uint8
	Demo          bool
	RawSpeedHz    uint16
	ContSpeedCode uint16
	ScanTimeUS    uint16
	Serial        uint32
}

// responseSize is the exact byte length Build always produces: header (6)
// + six TLVs (state 3, demo 3, scanTx 4, dataCode 4, scanCode 4, serial 6
// = 24 bytes) padded up to the next 4-byte boundary.
const responseSize = 32

// Build writes the maintenance response — current header fields followed
// by the fixed sequence of RET_* TLVs describing cfg — into a freshly
// zeroed buffer and returns it. The response is always padded to a 4-byte
// boundary per spec.md §4.3.
func Build(codeStamp uint32, cfg ConfigSnapshot) []byte {
	buf := make([]byte, responseSize)
	cur := wire.NewCursor(buf)

	cur.WriteUint32(codeStamp)
	cur.WriteUint8(0) // ucSpare
	cur.WriteUint8(cfg.State)

	writeTLV8(cur, cmdRetState, cfg.State)
	writeTLV8(cur, cmdRetDemoMode, boolToByte(cfg.Demo))
	writeTLV16(cur, cmdRetScanTx, cfg.RawSpeedHz)
	writeTLV16(cur, cmdRetDataCode, cfg.ContSpeedCode)
	writeTLV16(cur, cmdRetScanCode, wire.EncodeScanTimeUS(cfg.ScanTimeUS))
	writeTLV32(cur, cmdRetSerial, cfg.Serial)

	// Remaining bytes in buf are already zero (pad writer: 0-3 zero bytes
	// so total written length is a multiple of 4); responseSize was
	// chosen to already land on a 4-byte boundary, so no extra writes are
	// needed here beyond the zero-initialized tail.
	return buf
}

func writeTLV8(cur *wire.Cursor, cmd uint8, v uint8) {
	cur.WriteUint8(cmd)
	cur.WriteUint8(1)
	cur.WriteUint8(v)
}

func writeTLV16(cur *wire.Cursor, cmd uint8, v uint16) {
	cur.WriteUint8(cmd)
	cur.WriteUint8(2)
	cur.WriteUint16(v)
}

func writeTLV32(cur *wire.Cursor, cmd uint8, v uint32) {
	cur.WriteUint8(cmd)
	cur.WriteUint8(4)
	cur.WriteUint32(v)
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
