package netio

import (
	"context"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/board"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/maint"
)

func TestRunScanProducerPausedWhenRateZero(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	store := board.NewStore(logger) // RawSpeedHz defaults to 0: paused

	sendConn := mustListen(t)
	defer sendConn.Close()
	client := mustListen(t)
	defer client.Close()

	send := NewSharedSocket(sendConn, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go RunScanProducer(ctx, store, send, client.LocalAddr().(*net.UDPAddr), logger)
	defer cancel()

	client.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	buf := make([]byte, 16)
	if _, _, err := client.ReadFromUDP(buf); err == nil {
		t.Fatal("expected no scan frames while RawSpeedHz is 0 (paused)")
	}
}

func TestRunContProducerEmitsAtConfiguredPeriod(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	store := board.NewStore(logger)
	// Speed this up for the test: the default period is 25 * scanTimeUS(400)
	// = 10000us, so apply a 1us continuous period (1 * 1) directly.
	store.Apply(maint.Update{HasScanSp: true, ScanTimeUS: 1, HasContRate: true, ContSpeedCode: 1})

	sendConn := mustListen(t)
	defer sendConn.Close()
	client := mustListen(t)
	defer client.Close()

	send := NewSharedSocket(sendConn, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go RunContProducer(ctx, store, send, client.LocalAddr().(*net.UDPAddr), logger)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 4096)
	if _, _, err := client.ReadFromUDP(buf); err != nil {
		t.Fatalf("expected a continuous frame once the period elapsed: %v", err)
	}
}
