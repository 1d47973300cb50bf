// Package netio is the concurrent I/O runtime: the reactor that services
// the diagnostic and maintenance receive sockets (C6), the two periodic
// telemetry producers (C7), and the socket bind/spawn/shutdown sequence
// that wires them together (C8).
package netio

import (
	"fmt"
	"net"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/config"
)

// Endpoints holds every resolved UDP address the emulator binds to or
// sends to (spec.md §6).
type Endpoints struct {
	DiagListen  *net.UDPAddr
	MaintListen *net.UDPAddr
	SendBind    *net.UDPAddr

	DiagReply  *net.UDPAddr
	MaintReply *net.UDPAddr
	ScanDest   *net.UDPAddr
	ContDest   *net.UDPAddr
}

// ResolveEndpoints builds Endpoints from a loaded network configuration.
func ResolveEndpoints(n config.Network) (Endpoints, error) {
	var ep Endpoints
	var err error

	resolve := func(ip string, port int) *net.UDPAddr {
		if err != nil {
			return nil
		}
		var a *net.UDPAddr
		a, err = net.ResolveUDPAddr("udp4", fmt.Sprintf("%s:%d", ip, port))
		return a
	}

	ep.DiagListen = resolve(n.ListenIP, n.PortDiag)
	ep.MaintListen = resolve(n.ListenIP, n.PortMain)
	ep.SendBind = resolve(n.ClientIP, n.PortSend)
	ep.DiagReply = resolve(n.ServerIP, n.ReplyPortDiag)
	ep.MaintReply = resolve(n.ServerIP, n.ReplyPortMain)
	ep.ScanDest = resolve(n.ServerIP, n.PortScan)
	ep.ContDest = resolve(n.ServerIP, n.PortCont)

	if err != nil {
		return Endpoints{}, fmt.Errorf("resolve endpoints: %w", err)
	}
	return ep, nil
}
