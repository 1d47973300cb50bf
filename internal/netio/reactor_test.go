package netio

import (
	"context"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/board"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/diag"
)

func mustListen(t *testing.T) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	return conn
}

func TestReactorDiagTransitionsToOperational(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	store := board.NewStore(logger)

	diagConn := mustListen(t)
	defer diagConn.Close()
	maintConn := mustListen(t)
	defer maintConn.Close()
	sendConn := mustListen(t)
	defer sendConn.Close()

	client, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP client: %v", err)
	}
	defer client.Close()

	send := NewSharedSocket(sendConn, logger)
	ep := Endpoints{
		DiagReply:  client.LocalAddr().(*net.UDPAddr),
		MaintReply: client.LocalAddr().(*net.UDPAddr),
	}
	r := NewReactor(diagConn, maintConn, send, store, ep, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	if _, err := client.WriteToUDP([]byte{0x01}, diagConn.LocalAddr().(*net.UDPAddr)); err != nil {
		t.Fatalf("WriteToUDP: %v", err)
	}

	buf := make([]byte, diag.Size)
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := client.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP: %v", err)
	}
	if n != diag.Size {
		t.Fatalf("reply size = %d, want %d", n, diag.Size)
	}
	if store.State() != board.StateOperational {
		t.Fatalf("store.State() = %v, want StateOperational after first diagnostic", store.State())
	}
}

func TestReactorMaintRepliesEvenOnMalformedDatagram(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	store := board.NewStore(logger)

	diagConn := mustListen(t)
	defer diagConn.Close()
	maintConn := mustListen(t)
	defer maintConn.Close()
	sendConn := mustListen(t)
	defer sendConn.Close()

	client, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP client: %v", err)
	}
	defer client.Close()

	send := NewSharedSocket(sendConn, logger)
	ep := Endpoints{
		DiagReply:  client.LocalAddr().(*net.UDPAddr),
		MaintReply: client.LocalAddr().(*net.UDPAddr),
	}
	r := NewReactor(diagConn, maintConn, send, store, ep, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// Too short to even contain the fixed header: Parse rejects it, but a
	// reply describing the unchanged configuration must still be sent.
	malformed := []byte{0x01, 0x02}
	if _, err := client.WriteToUDP(malformed, maintConn.LocalAddr().(*net.UDPAddr)); err != nil {
		t.Fatalf("WriteToUDP: %v", err)
	}

	buf := make([]byte, 128)
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := client.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("expected a maintenance reply even after a rejected datagram: %v", err)
	}
	if n == 0 {
		t.Fatal("reply was empty")
	}
	if store.Config().Demo {
		t.Fatal("malformed datagram must not have applied any update")
	}
}
