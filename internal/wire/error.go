// Package wire implements the sized big-endian codec primitives the SSI
// protocol is built from: a byte cursor with bounds-checked reads and
// writes of unsigned 8/16/32-bit integers.
package wire

// Error wraps a wire-format failure with an optional cause, mirroring the
// teacher library's value-error idiom (msg + wrapped err + Unwrap).
type Error struct {
	msg string
	err error
}

func (e Error) Error() string {
	if e.msg != "" {
		msg := e.msg
		if e.err != nil {
			msg += ": " + e.err.Error()
		}
		return msg
	}
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e Error) Unwrap() error {
	return e.err
}

func wrapErr(msg string, e error) error {
	if e == nil {
		return nil
	}
	return Error{msg: msg, err: e}
}

// ErrShortBuffer is returned when a read or write would run past the end
// of the cursor's backing buffer.
var ErrShortBuffer = Error{msg: "short buffer"}

// ErrNilBuffer is returned when a datagram buffer is nil or empty.
var ErrNilBuffer = Error{msg: "buffer is nil or empty"}

// ErrBadLength is returned when a datagram's length falls outside the
// protocol's valid [header, max] range.
var ErrBadLength = Error{msg: "buffer length is invalid"}

// ErrBadAlignment is returned when a datagram's payload length is not a
// multiple of 4 bytes.
var ErrBadAlignment = Error{msg: "payload is not correctly aligned"}

// MTULimit bounds the size of any single outbound or inbound datagram
// (spec.md's "MTU limit constant"): the conventional safe UDP payload size
// for a 1500-byte Ethernet MTU (1500 - 20 byte IPv4 header - 8 byte UDP
// header).
const MTULimit = 1472
