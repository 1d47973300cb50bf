package board

import (
	"io"
	"log"
	"testing"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/maint"
)

func newTestStore() *Store {
	return NewStore(log.New(io.Discard, "", 0))
}

func TestNewStoreDefaultsMatchFirmwareBoardInit(t *testing.T) {
	s := newTestStore()
	cfg := s.Config()
	if cfg.Gratings != 16 || cfg.Channels != 4 {
		t.Fatalf("cfg = %+v, want Gratings=16 Channels=4", cfg)
	}
	if cfg.ContSpeedCode != 25 || cfg.ScanTimeUS != 400 {
		t.Fatalf("cfg = %+v, want ContSpeedCode=25 ScanTimeUS=400", cfg)
	}
	derived := s.Derived()
	if derived.ContTxPeriodUS != 10000 {
		t.Fatalf("derived.ContTxPeriodUS = %d, want 10000", derived.ContTxPeriodUS)
	}
	if s.State() != StateStandBy {
		t.Fatalf("State() = %v, want StateStandBy", s.State())
	}
}

func TestMarkOperationalOnlyTransitionsOnce(t *testing.T) {
	s := newTestStore()
	if !s.MarkOperational() {
		t.Fatal("first MarkOperational() = false, want true")
	}
	if s.MarkOperational() {
		t.Fatal("second MarkOperational() = true, want false (already operational)")
	}
	if s.State() != StateOperational {
		t.Fatalf("State() = %v, want StateOperational", s.State())
	}
}

func TestApplyRecomputesContPeriodAfterScanTime(t *testing.T) {
	s := newTestStore()
	s.Apply(maint.Update{
		HasScanSp:   true,
		ScanTimeUS:  100,
		HasContRate: true,
		ContSpeedCode: 10,
	})
	derived := s.Derived()
	if derived.ContTxPeriodUS != 1000 {
		t.Fatalf("derived.ContTxPeriodUS = %d, want 1000 (10 * 100)", derived.ContTxPeriodUS)
	}
}

func TestApplyOnlyTouchesFlaggedFields(t *testing.T) {
	s := newTestStore()
	before := s.Config()
	s.Apply(maint.Update{HasDemo: true, Demo: true})
	after := s.Config()
	if !after.Demo {
		t.Fatal("Demo not applied")
	}
	if after.Gratings != before.Gratings || after.Channels != before.Channels {
		t.Fatalf("unrelated fields changed: before=%+v after=%+v", before, after)
	}
}

func TestNextCountersIncrementIndependently(t *testing.T) {
	s := newTestStore()
	if v := s.NextScanCount(); v != 0 {
		t.Fatalf("NextScanCount() = %d, want 0", v)
	}
	if v := s.NextScanCount(); v != 1 {
		t.Fatalf("NextScanCount() = %d, want 1", v)
	}
	if v := s.NextContCount(); v != 0 {
		t.Fatalf("NextContCount() = %d, want 0 (independent counter)", v)
	}
}
