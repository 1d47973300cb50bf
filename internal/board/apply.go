package board

import "github.com/CARDIGANSPoliTo/photonext-emulator/internal/maint"

// Apply mutates the store from an already-validated maintenance update in
// one locked pass, then recomputes derived values in the order spec.md
// §4.3 requires: scan-time must land before the continuous period is
// recomputed, since the latter depends on it.
//
// Because maint.Parse never wrote to the store itself (see
// internal/maint.Parse's doc comment), a malformed datagram that failed
// parsing never reaches Apply at all — there is nothing here to roll
// back.
func (s *Store) Apply(u maint.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.HasState {
		s.state = State(u.State)
	}
	if u.HasDemo {
		s.cfg.Demo = u.Demo
	}
	if u.HasScanRate {
		s.cfg.RawSpeedHz = u.RawSpeedHz
	}
	if u.HasContRate {
		s.cfg.ContSpeedCode = u.ContSpeedCode
	}
	if u.HasChFormat {
		s.cfg.Channels = int(u.Channels)
		s.cfg.Gratings = int(u.Gratings)
	}
	if u.HasScanBeg {
		s.cfg.FirstFr = u.FirstFr
	}
	if u.HasScanSp {
		s.cfg.ScanTimeUS = u.ScanTimeUS
		s.log.Printf("Set scan time to %d us.", s.cfg.ScanTimeUS)
	}

	if u.HasScanSp || u.HasContRate {
		s.derived.ContTxPeriodUS = uint32(s.cfg.ContSpeedCode) * uint32(s.cfg.ScanTimeUS)
		s.log.Printf("Set continuous data speed tx to %d us.", s.derived.ContTxPeriodUS)
	}
	if u.HasScanRate {
		s.derived.RawTxRate = s.cfg.RawSpeedHz
		s.log.Printf("Set scan data speed tx to %d Hertz.", s.derived.RawTxRate)
	}
}
