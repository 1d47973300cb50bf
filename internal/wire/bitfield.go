package wire

// stepsForCode and cycleForCode implement the two scan-time lookup tables.
// stepsForCode is used only by the enumerated encoding (explicit mode
// carries the step count directly); cycleForCode is shared by both
// encodings, which differ only in which bits of the scancode feed it.
func stepsForCode(code uint8) uint16 {
	switch code {
	case 0:
		return 400
	case 1:
		return 200
	case 2:
		return 100
	case 3:
		return 50
	default:
		return 400
	}
}

func cycleForCode(code uint8) uint16 {
	switch code {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 5
	case 3:
		return 10
	case 4:
		return 20
	case 5:
		return 50
	default:
		return 1
	}
}

// DecodeScanTimeUS decodes a 16-bit scancode into a scan-time duration in
// microseconds. Bit 15 clear selects enumerated mode (3-bit step code in
// bits 0-2, 3-bit cycle code in bits 3-5); bit 15 set selects explicit mode
// (9-bit step count in bits 0-8, 3-bit cycle code in bits 10-12).
func DecodeScanTimeUS(scancode uint16) uint16 {
	var steps, cycle uint16
	if scancode&0x8000 == 0 {
		steps = stepsForCode(uint8(scancode & 0x0007))
		cycle = cycleForCode(uint8((scancode & 0x0038) >> 3))
	} else {
		steps = scancode & 0x01ff
		cycle = cycleForCode(uint8((scancode & 0x1c00) >> 10))
	}
	return steps * cycle
}

// EncodeScanTimeUS is the inverse of DecodeScanTimeUS. The original
// firmware never implemented it; it always returned the literal 0x001A
// regardless of input. Preserved as-is for bit-level compatibility with
// existing observers of the maintenance response stream.
func EncodeScanTimeUS(uint16) uint16 {
	return 0x001a
}

// DecodeGratings extracts the 5-bit grating count from a channel-format
// word (bits 4-8).
func DecodeGratings(chanformat uint16) uint8 {
	return uint8((chanformat & 0x01F0) >> 4)
}

// DecodeChannels extracts the 4-bit channel count from a channel-format
// word (bits 0-3).
func DecodeChannels(chanformat uint16) uint8 {
	return uint8(chanformat & 0x000F)
}

// EncodeChanFormat packs channels and gratings into a channel-format word.
// Channels go in bits 0-3 and gratings in bits 4-7, the positions
// DecodeChannels and DecodeGratings read. Note the asymmetry with
// DecodeGratings: only the low 4 bits of gratings survive the round trip
// (gratings==16 encodes as 0) — this is documented wire behavior, not a
// bug to fix.
func EncodeChanFormat(channels, gratings uint8) uint16 {
	return 0x4000 | (uint16(gratings)&0xF)<<4 | (uint16(channels) & 0xF)
}
