package netio

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/board"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/frame"
)

// RunScanProducer implements C7's raw-scan telemetry loop: emit one scan
// frame, then sleep the period corresponding to the current configured
// rate, matching the original's scan_th (build+send before usleep) —
// unless the rate is zero, in which case the stream is paused and the
// loop just waits and rechecks (spec.md §4.2: "A raw speed of zero pauses
// the stream without stopping the goroutine").
func RunScanProducer(ctx context.Context, store *board.Store, send *SharedSocket, dest *net.UDPAddr, logger *log.Logger) {
	const idleRecheck = 200 * time.Millisecond

	for {
		rate := store.Derived().RawTxRate
		if rate == 0 {
			if !sleepCtx(ctx, idleRecheck) {
				return
			}
			continue
		}

		count := store.NextScanCount()
		buf := frame.BuildScan(count)
		send.SendTo(buf, dest)
		logger.Printf("Sent raw scan frame %d.", count)

		period := time.Second / time.Duration(rate)
		if !sleepCtx(ctx, period) {
			return
		}
	}
}

// RunContProducer implements C7's continuous-data telemetry loop: emit one
// continuous-data frame sized for the current channel/grating
// configuration, then sleep the configured period, matching the
// original's cont_th — unless the period is zero (paused).
func RunContProducer(ctx context.Context, store *board.Store, send *SharedSocket, dest *net.UDPAddr, logger *log.Logger) {
	const idleRecheck = 200 * time.Millisecond

	for {
		derived := store.Derived()
		if derived.ContTxPeriodUS == 0 {
			if !sleepCtx(ctx, idleRecheck) {
				return
			}
			continue
		}

		cfg := store.Config()
		count := store.NextContCount()
		buf := frame.BuildCont(count, cfg.Channels, cfg.Gratings)
		send.SendTo(buf, dest)
		logger.Printf("Sent continuous data frame %d.", count)

		period := time.Duration(derived.ContTxPeriodUS) * time.Microsecond
		if !sleepCtx(ctx, period) {
			return
		}
	}
}

// sleepCtx sleeps for d or returns early (reporting false) if ctx is
// canceled first, so both producer loops shut down promptly instead of
// riding out a multi-second sleep after cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
