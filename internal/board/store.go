// Package board holds the SSI board's authoritative configuration record,
// its STAND_BY/OPERATIONAL state, and the two per-stream frame counters —
// the single "store" object the rest of the emulator reads and mutates
// (spec §9: "A re-architecture should wrap these in a single store object
// passed to both reactor and producers, with interior synchronization").
package board

import (
	"log"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/wire"
)

// State is the SSI board's operating mode.
type State uint8

const (
	StateStandBy    State = 0
	StateOperational State = 1
)

// Config is the authoritative, process-wide board configuration record
// (spec.md §3).
type Config struct {
	Demo          bool
	Gratings      int // [1, 31], wire value 0 means 16
	Channels      int // [1, 15]
	RawSpeedHz    uint16
	ContSpeedCode uint16
	ScanTimeUS    uint16
	FirstFr       uint16
	Serial        uint32

	Netif    string
	DeviceIP string
	HostIP   string
	Subnet   string
	Gateway  string
	LogLevel int
}

// Derived holds the timing values recomputed from Config whenever a
// relevant field changes (spec.md §3 "Derived runtime values").
type Derived struct {
	RawTxRate      uint16 // Hz
	ContTxPeriodUS uint32
}

// Store is the single authoritative, synchronized holder of board
// configuration, SSI state, and the two frame counters. Configuration and
// state are written only from the reactor goroutine (via maintenance
// parse and diagnostic handling); producers read snapshots through the
// RWMutex without ever mutating it, matching spec.md §5's "read-mostly"
// allowance.
type Store struct {
	mu      sync.RWMutex
	cfg     Config
	state   State
	derived Derived

	scanCount uint32
	contCount uint32

	log *log.Logger
}

// NewStore builds a store initialized to the firmware's literal startup
// defaults (original_source/src/smartscanemu.c board_init): demo mode off,
// 16 gratings, 4 channels, scan raw speed paused, continuous speed already
// running at code 25 against a 400us scan time.
func NewStore(logger *log.Logger) *Store {
	s := &Store{
		cfg: Config{
			Demo:          false,
			Gratings:      16,
			Channels:      4,
			RawSpeedHz:    0,
			ContSpeedCode: 25,
			ScanTimeUS:    wire.DecodeScanTimeUS(0),
			FirstFr:       0,
			Serial:        123456,
			Netif:         "eth0",
			DeviceIP:      "10.0.0.150",
			HostIP:        "10.0.0.2",
			Subnet:        "255.255.255.0",
			Gateway:       "10.0.0.2",
			LogLevel:      7,
		},
		state: StateStandBy,
		log:   logger,
	}
	s.recompute()
	s.log.Println("SSI board initalised.")
	return s
}

// recompute refreshes the derived timing values from the current config.
// Must be called with mu held for writing.
func (s *Store) recompute() {
	s.derived.RawTxRate = s.cfg.RawSpeedHz
	s.derived.ContTxPeriodUS = uint32(s.cfg.ContSpeedCode) * uint32(s.cfg.ScanTimeUS)
}

// Config returns a snapshot of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Derived returns a snapshot of the current derived timing values.
func (s *Store) Derived() Derived {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derived
}

// State returns the current SSI state byte.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState overwrites the SSI state byte directly (CMD_SET_STATE).
func (s *Store) SetState(v State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = v
}

// MarkOperational transitions STAND_BY -> OPERATIONAL. It is a no-op once
// already OPERATIONAL, so the reactor can call it unconditionally on every
// diagnostic receipt while still only logging the one real transition.
// Returns true exactly the first time it performs the transition.
func (s *Store) MarkOperational() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateOperational {
		return false
	}
	s.state = StateOperational
	return true
}

// NextScanCount returns the next scan-frame counter value and increments it.
// Each producer owns its counter exclusively (spec.md §5); the mutex here
// only protects against this store's own internal bookkeeping, not
// cross-producer sharing.
func (s *Store) NextScanCount() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.scanCount
	s.scanCount++
	return v
}

// NextContCount returns the next continuous-frame counter value and
// increments it.
func (s *Store) NextContCount() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.contCount
	s.contCount++
	return v
}

// DumpConfig is the pure side-effect config logger (spec.md §6 collaborator
// contract): it never mutates state, only logs a dump of the current
// configuration. Grounded on the dastard data source's use of
// github.com/davecgh/go-spew for exactly this kind of diagnostic struct
// dump.
func (s *Store) DumpConfig() {
	cfg := s.Config()
	s.log.Printf("board configuration:\n%s", spew.Sdump(cfg))
}

// Logger returns the store's logger for use by collaborators that need to
// log without otherwise touching board state.
func (s *Store) Logger() *log.Logger {
	return s.log
}
