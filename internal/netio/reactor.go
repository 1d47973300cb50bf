package netio

import (
	"context"
	"log"
	"net"
	"sync"
	"time"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/board"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/diag"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/maint"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/wire"
)

// selectTimeout is the reactor's per-socket read deadline (spec.md §4.4:
// "Wait for readability on either receive socket with a 20-second
// timeout. Timeout is benign (next iteration)."). Go has no single
// select() across two independently-bound UDP sockets, so each socket
// gets its own reader goroutine racing a deadline; the reactor loop below
// still serializes all handling onto one goroutine, matching the "one
// reactor thread" model of spec.md §5.
const selectTimeout = 20 * time.Second

type datagram struct {
	data []byte
	addr *net.UDPAddr
}

// Reactor owns the two receive sockets and dispatches each inbound
// datagram to its handler, replying via the shared send socket (C6).
type Reactor struct {
	diagConn  *net.UDPConn
	maintConn *net.UDPConn
	send      *SharedSocket
	store     *board.Store
	ep        Endpoints
	log       *log.Logger

	diagCount int
}

// NewReactor builds a Reactor over already-bound receive sockets.
func NewReactor(diagConn, maintConn *net.UDPConn, send *SharedSocket, store *board.Store, ep Endpoints, logger *log.Logger) *Reactor {
	return &Reactor{
		diagConn:  diagConn,
		maintConn: maintConn,
		send:      send,
		store:     store,
		ep:        ep,
		log:       logger,
	}
}

// Run services both receive sockets until ctx is canceled. It returns
// only after both reader goroutines have exited, which happens once ctx
// is canceled and the sockets are closed by the caller's shutdown
// sequence (spec.md §5: "pending blocking calls are interrupted by
// closure").
func (r *Reactor) Run(ctx context.Context) {
	diagCh := make(chan datagram)
	maintCh := make(chan datagram)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		readLoop(ctx, r.diagConn, diagCh, r.log, "diagnostic")
	}()
	go func() {
		defer wg.Done()
		readLoop(ctx, r.maintConn, maintCh, r.log, "maintenance")
	}()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case d := <-diagCh:
			r.handleDiag(d)
		case d := <-maintCh:
			r.handleMaint(d)
		}
	}
}

// readLoop blocks on ReadFromUDP with a repeating deadline, forwarding
// each successfully-received datagram to out. A timeout is benign and
// simply loops again; any other read error (including the socket being
// closed during shutdown) ends the loop.
func readLoop(ctx context.Context, conn *net.UDPConn, out chan<- datagram, logger *log.Logger, name string) {
	buf := make([]byte, wire.MTULimit)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(selectTimeout))
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-ctx.Done():
				return
			default:
				logger.Printf("Unable to read %s message: %v", name, err)
				return
			}
		}

		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case out <- datagram{data: data, addr: addr}:
		case <-ctx.Done():
			return
		}
	}
}

// handleDiag implements spec.md §4.4 step 2: on first successful receipt,
// transition to OPERATIONAL, then always reply with the current state.
func (r *Reactor) handleDiag(d datagram) {
	r.diagCount++
	r.log.Printf("Received packet of size %d from %s on diagnostic port.", len(d.data), d.addr)

	if r.store.MarkOperational() {
		r.log.Println("SSI state transitioned to OPERATIONAL.")
	}

	reply := diag.Build(uint8(r.store.State()))
	r.send.SendTo(reply, r.ep.DiagReply)
}

// handleMaint implements spec.md §4.4 step 3: parse, apply, and reply are
// unconditional — a malformed datagram is logged and its update skipped,
// but the reply is still built and sent from the store's current
// (unchanged) configuration, matching original_source/src/smartscanemu.c's
// main loop, which ignores parse_maintenance's return value and always
// calls create_maintenance+sendto afterward.
func (r *Reactor) handleMaint(d datagram) {
	r.log.Printf("Received packet of size %d from %s on maintenance port.", len(d.data), d.addr)
	r.log.Println("Parse maintenance message.")

	result, err := maint.Parse(d.data)
	if err != nil {
		r.log.Printf("Maintenance datagram rejected: %v", err)
	} else {
		for _, cmd := range result.UnknownCommands {
			r.log.Printf("Command not recognised: %d.", cmd)
		}
		r.store.Apply(result.Update)
		r.store.DumpConfig()
	}

	cfg := r.store.Config()
	snap := maint.ConfigSnapshot{
		State:         uint8(r.store.State()),
		Demo:          cfg.Demo,
		RawSpeedHz:    cfg.RawSpeedHz,
		ContSpeedCode: cfg.ContSpeedCode,
		ScanTimeUS:    cfg.ScanTimeUS,
		Serial:        cfg.Serial,
	}
	resp := maint.Build(result.Header.CodeStamp, snap)
	r.send.SendTo(resp, r.ep.MaintReply)
}
