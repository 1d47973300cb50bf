package netio

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/board"
)

// Runtime owns every socket and goroutine the emulator runs once started,
// and the orderly shutdown sequence for all of them (C8). Closing the
// sockets is what unblocks the reader goroutines' pending ReadFromUDP
// calls and the producers' sleeps are unblocked by ctx cancellation, so
// Shutdown always completes without relying on a hard process exit —
// the fix spec.md §6 calls for over the original's signal-handler
// _exit(0).
type Runtime struct {
	diagConn  *net.UDPConn
	maintConn *net.UDPConn
	sendConn  *net.UDPConn

	send    *SharedSocket
	reactor *Reactor

	store *board.Store
	ep    Endpoints
	log   *log.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New opens the three UDP sockets named by ep (two listeners, one bound
// send socket) and wires the reactor and store together. The caller
// still must call Start to spawn the running goroutines.
func New(ep Endpoints, store *board.Store, logger *log.Logger) (*Runtime, error) {
	diagConn, err := net.ListenUDP("udp4", ep.DiagListen)
	if err != nil {
		return nil, fmt.Errorf("listen diagnostic socket: %w", err)
	}
	maintConn, err := net.ListenUDP("udp4", ep.MaintListen)
	if err != nil {
		diagConn.Close()
		return nil, fmt.Errorf("listen maintenance socket: %w", err)
	}
	sendConn, err := net.ListenUDP("udp4", ep.SendBind)
	if err != nil {
		diagConn.Close()
		maintConn.Close()
		return nil, fmt.Errorf("bind send socket: %w", err)
	}

	send := NewSharedSocket(sendConn, logger)
	reactor := NewReactor(diagConn, maintConn, send, store, ep, logger)

	return &Runtime{
		diagConn:  diagConn,
		maintConn: maintConn,
		sendConn:  sendConn,
		send:      send,
		reactor:   reactor,
		store:     store,
		ep:        ep,
		log:       logger,
	}, nil
}

// Start spawns the reactor and the two telemetry producers, all bound to
// a context derived from ctx. Shutdown cancels that derived context and
// closes every socket, then waits for all three goroutines to return.
func (r *Runtime) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(3)
	go func() {
		defer r.wg.Done()
		r.reactor.Run(runCtx)
	}()
	go func() {
		defer r.wg.Done()
		RunScanProducer(runCtx, r.store, r.send, r.ep.ScanDest, r.log)
	}()
	go func() {
		defer r.wg.Done()
		RunContProducer(runCtx, r.store, r.send, r.ep.ContDest, r.log)
	}()

	r.log.Println("SSI emulator started.")
}

// Shutdown cancels the running context, closes every socket to unblock
// any in-flight reads, and waits for all goroutines to exit before
// returning.
func (r *Runtime) Shutdown() {
	r.log.Println("SSI emulator shutting down.")
	if r.cancel != nil {
		r.cancel()
	}
	r.diagConn.Close()
	r.maintConn.Close()
	r.sendConn.Close()
	r.wg.Wait()
	r.log.Println("SSI emulator stopped.")
}
