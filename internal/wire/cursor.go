package wire

import "encoding/binary"

// Cursor is a bounds-checked big-endian read/write position into a byte
// buffer. It is the Go-native replacement for the source's read_N/write_N
// primitives (read_8/16/32, write_8/16/32): each call advances the cursor
// by exactly N/8 bytes and reports how many bytes it consumed, so callers
// can accumulate offsets the same way the C source does.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for sequential reads starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread/unwritten bytes left in the buffer.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return wrapErr("cursor out of range", ErrShortBuffer)
	}
	return nil
}

// ReadUint8 reads one byte and returns the number of bytes consumed (1).
func (c *Cursor) ReadUint8() (uint8, int, error) {
	if err := c.need(1); err != nil {
		return 0, 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, 1, nil
}

// ReadUint16 reads a 16-bit big-endian value, returning bytes consumed (2).
func (c *Cursor) ReadUint16() (uint16, int, error) {
	if err := c.need(2); err != nil {
		return 0, 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, 2, nil
}

// ReadUint32 reads a 32-bit big-endian value, returning bytes consumed (4).
func (c *Cursor) ReadUint32() (uint32, int, error) {
	if err := c.need(4); err != nil {
		return 0, 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, 4, nil
}

// WriteUint8 writes one byte, returning bytes written (1).
func (c *Cursor) WriteUint8(v uint8) (int, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	c.buf[c.pos] = v
	c.pos++
	return 1, nil
}

// WriteUint16 writes a 16-bit big-endian value, returning bytes written (2).
func (c *Cursor) WriteUint16(v uint16) (int, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(c.buf[c.pos:], v)
	c.pos += 2
	return 2, nil
}

// WriteUint32 writes a 32-bit big-endian value, returning bytes written (4).
func (c *Cursor) WriteUint32(v uint32) (int, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(c.buf[c.pos:], v)
	c.pos += 4
	return 4, nil
}

// Bytes returns the full backing buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

// Skip advances the cursor by n bytes without reading them, returning the
// number of bytes skipped. Used after a TLV payload has been read from a
// sub-cursor into the parent buffer.
func (c *Cursor) Skip(n int) (int, error) {
	if err := c.need(n); err != nil {
		return 0, err
	}
	c.pos += n
	return n, nil
}
