package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"lift-simulator/internal/aero"
	"lift-simulator/internal/api"
	"lift-simulator/internal/env"
	"lift-simulator/internal/recorder"
	"lift-simulator/internal/sim"
)

var (
	port       = flag.Int("port", 8080, "Port to listen on")
	tickHz     = flag.Float64("hz", 50, "Frame rate of the coefficient computation")
	configPath = flag.String("config", "", "JSON file overriding the aircraft constants")
	recordPath = flag.String("record", "", "Write every frame to this zstd-compressed JSON lines file")
	logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("invalid -log-level: %v", err)
	}
	log.SetLevel(level)

	// Tables and constants are checked once here; frames never fail.
	tables, err := aero.NewLiftTables()
	if err != nil {
		log.Fatalf("lift tables: %v", err)
	}

	cfg := aero.DefaultConfig()
	if *configPath != "" {
		if cfg, err = aero.LoadConfig(*configPath); err != nil {
			log.Fatalf("%v", err)
		}
		log.WithField("path", *configPath).Info("aircraft config loaded")
	}

	// The pitching moment model producing CmElev would run before lift.
	lift, err := aero.NewLift(tables, cfg)
	if err != nil {
		log.Fatalf("lift model: %v", err)
	}
	schedule, err := aero.NewSchedule(lift)
	if err != nil {
		log.Fatalf("schedule: %v", err)
	}

	// Setup environment
	terrain := env.DefaultTerrain()
	gust := env.Calm()
	icing := &env.Icing{
		AccretionPerSec: 0.01,
		SheddingPerSec:  0.005,
	}

	// Create environment chain
	envChain := &env.Chain{
		Effects: []env.Environment{terrain, gust, icing},
	}

	var rec *recorder.Recorder
	var frameRec sim.FrameRecorder
	if *recordPath != "" {
		if rec, err = recorder.Create(*recordPath); err != nil {
			log.Fatalf("%v", err)
		}
		frameRec = rec
		log.WithField("path", *recordPath).Info("recording frames")
	}

	// Level flight, clean, 3000 ft
	initial := aero.Snapshot{
		Flight: aero.FlightState{
			AlphaDeg:        2,
			AltitudeFt:      3000,
			TrueAirspeedKts: 160,
		},
		Coeff: aero.CoeffInputs{
			Tcx:  0.05,
			CHat: 0.006,
		},
	}

	// Create simulation engine
	simEngine := sim.New(sim.Config{
		TickHz:      *tickHz,
		Schedule:    schedule,
		Environment: envChain,
		Recorder:    frameRec,
		Initial:     initial,
		Logger:      log,
	})

	// Create API server
	server := api.NewServer(simEngine, log)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Handler(),
	}

	// Start simulation engine in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		if err := simEngine.Run(ctx); err != nil && err != context.Canceled {
			log.Errorf("simulation error: %v", err)
		}
	}()

	// Start HTTP server in background
	go func() {
		log.Infof("Starting HTTP server on :%d", *port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down...")

	// Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}

	// Cancel simulation context and wait for the last frame
	cancel()
	<-simDone

	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Errorf("closing recording: %v", err)
		} else {
			log.WithField("frames", rec.Count()).Info("recording closed")
		}
	}

	log.Info("Shutdown complete")
}
