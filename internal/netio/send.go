package netio

import (
	"log"
	"net"
	"sync"
)

// SharedSocket is the single transmit socket the reactor and both
// producers contend for. Spec.md §5: "Every send operation... must
// acquire it; duration is bounded by one datagram transmission." The
// mutex scope below is exactly one WriteToUDP call, per spec.md §9.
type SharedSocket struct {
	conn *net.UDPConn
	mu   sync.Mutex
	log  *log.Logger
}

// NewSharedSocket wraps an already-bound UDP connection.
func NewSharedSocket(conn *net.UDPConn, logger *log.Logger) *SharedSocket {
	return &SharedSocket{conn: conn, log: logger}
}

// SendTo transmits buf to addr under the shared mutex. Transient send
// failures are logged and the datagram is dropped (spec.md §7: "the
// device is best-effort telemetry"); they are not returned as fatal.
func (s *SharedSocket) SendTo(buf []byte, addr *net.UDPAddr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.conn.WriteToUDP(buf, addr)
	if err != nil {
		s.log.Printf("Unable to send message: %v", err)
		return
	}
	s.log.Printf("Sent packet of length %d from %s to %s.", n, s.conn.LocalAddr(), addr)
}

// Close closes the underlying connection.
func (s *SharedSocket) Close() error {
	return s.conn.Close()
}
