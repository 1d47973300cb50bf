// Package frame assembles the two telemetry frame types the producers
// emit: raw scan frames and continuous multi-channel frames (spec.md
// §4.2). Both share a 36-byte header; field layout and synthetic payload
// generation follow original_source/src/smartscanemu.c's create_scan and
// create_cont exactly.
package frame

import (
	"math/rand"
	"time"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/wire"
)

const (
	headerSize = 36

	hdrSizeX4 = 9 // ucHdrSizex4: header is always 36 = 9*4 bytes

	scanFrameFormat = 0xFF
	scanSamples     = 400
	scanFrameSize   = headerSize + scanSamples*2 // 836
	timeIntervalUS  = 400

	// laserChannelMult scales the continuous payload's synthetic signal,
	// matching original_source's LASER_CHANNEL_MULT.
	laserChannelMult = 4
)

// BuildScan assembles one raw scan frame: 36-byte header plus exactly 400
// 16-bit big-endian samples (spec.md §4.2, §8 property 5). count is the
// per-stream monotonically increasing ulFrameCount value to stamp into
// this frame.
func BuildScan(count uint32) []byte {
	buf := make([]byte, scanFrameSize)
	cur := wire.NewCursor(buf)

	now := time.Now()

	cur.WriteUint16(scanFrameSize - 2) // usFrameSize
	cur.WriteUint8(hdrSizeX4)
	cur.WriteUint8(scanFrameFormat)
	cur.WriteUint32(count)
	cur.WriteUint32(uint32(now.Unix()))           // ulTimeStampH
	cur.WriteUint32(uint32(now.Nanosecond() / 1000)) // ulTimeStampL
	cur.WriteUint32(uint32(now.Unix()))           // ulTimeCodeH
	cur.WriteUint16(timeIntervalUS)
	cur.WriteUint16(400) // usNrSteps
	cur.WriteUint16(0)   // usMinChannel
	cur.WriteUint16(399) // usMaxChannel
	cur.WriteUint32(0)   // ulMinWaveFreq
	cur.WriteUint32(0)   // ulMaxWaveFreq

	for i := 0; i < scanSamples; i++ {
		cur.WriteUint16(uint16(rand.Intn(51199)))
	}

	return buf
}

// ContFrameSize returns the total byte length BuildCont will produce for
// the given channel/grating geometry: as many whole (gratings*channels)
// sample groups as fit under wire.MTULimit.
func ContFrameSize(channels, gratings int) int {
	_, payloadSize := contFrames(channels, gratings)
	return headerSize + payloadSize
}

func contFrames(channels, gratings int) (frames, payloadBytes int) {
	groupBytes := gratings * channels * 2
	if groupBytes <= 0 {
		return 0, 0
	}
	frames = (wire.MTULimit - headerSize) / groupBytes
	payloadBytes = frames * groupBytes
	return frames, payloadBytes
}

// BuildCont assembles one continuous multi-channel frame for the given
// channels/gratings geometry (spec.md §4.2, §8 property 6). count is the
// per-stream monotonically increasing ulFrameCount value.
func BuildCont(count uint32, channels, gratings int) []byte {
	_, payloadSize := contFrames(channels, gratings)
	total := headerSize + payloadSize
	buf := make([]byte, total)
	cur := wire.NewCursor(buf)

	now := time.Now()

	frameFormatGratings := gratings
	if frameFormatGratings == 16 {
		frameFormatGratings = 0
	}
	frameFormat := uint8((frameFormatGratings&0xF)<<4) | uint8(channels&0xF)

	cur.WriteUint16(uint16(total - 2)) // usFrameSize
	cur.WriteUint8(hdrSizeX4)
	cur.WriteUint8(frameFormat)
	cur.WriteUint32(count)
	cur.WriteUint32(uint32(now.Unix())) // ulTimeStampH
	cur.WriteUint32(rand.Uint32())      // ulTimeStampL: synthetic, matches original's rand()
	cur.WriteUint32(uint32(now.Unix())) // ulTimeCodeH
	cur.WriteUint16(timeIntervalUS)
	cur.WriteUint16(0) // usSpare
	cur.WriteUint16(0) // usMinChannel
	cur.WriteUint16(399)
	cur.WriteUint32(0) // ulMinWaveFreq
	cur.WriteUint32(0) // ulSpare

	for i := 0; i < payloadSize/2; i++ {
		sign := int32(1)
		if rand.Intn(2) == 1 {
			sign = -1
		}
		sample := int32(183+sign*int32(rand.Intn(50))) * laserChannelMult
		cur.WriteUint16(uint16(sample))
	}

	return buf
}
