// Command ssiemu runs the photoNEXT SSI board UDP emulator: it answers
// diagnostic polls, applies maintenance configuration updates, and
// streams synthetic raw-scan and continuous-data telemetry frames at the
// configured rates, all over the three UDP sockets described in spec.md
// §6.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/board"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/config"
	"github.com/CARDIGANSPoliTo/photonext-emulator/internal/netio"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML/TOML/JSON config file (optional; SSIEMU_ env vars always apply)")
	flag.Parse()

	logger := log.New(os.Stdout, "ssiemu: ", log.LstdFlags)

	if err := run(*configPath, logger); err != nil {
		logger.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *log.Logger) error {
	netCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ep, err := netio.ResolveEndpoints(netCfg)
	if err != nil {
		return err
	}

	store := board.NewStore(logger)

	rt, err := netio.New(ep, store, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down.", sig)
		cancel()
	}()

	rt.Start(ctx)
	<-ctx.Done()
	rt.Shutdown()

	return nil
}
