// Package diag implements the diagnostic-reply builder spec.md §6 lists as
// an external collaborator ("assumed to produce a fixed-size reply given
// the current state byte"). Its exact wire layout is not given by the
// retrieved specification; the one below is a minimal, internally
// consistent placeholder — see DESIGN.md.
package diag

// Size is the fixed length of every diagnostic reply (MSG_DIAGNOSTIC_SIZE
// in spec.md §4.4/§6).
const Size = 8

var magic = [4]byte{'S', 'S', 'I', 'D'}

// Build produces the fixed-size diagnostic reply carrying the current
// state byte.
func Build(state uint8) []byte {
	buf := make([]byte, Size)
	copy(buf[0:4], magic[:])
	buf[4] = state
	return buf
}
