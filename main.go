// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/neuragicus/spectrum-api/cmd"
	"github.com/neuragicus/spectrum-api/internal/log"
	"github.com/neuragicus/spectrum-api/internal/server"
	"github.com/neuragicus/spectrum-api/internal/spectrum"
	"github.com/neuragicus/spectrum-api/internal/wavio"
	"github.com/neuragicus/spectrum-api/pkg/build"
)

// main is the entry point for the spectrum analysis service.
// The program flow is divided into three distinct phases:
//
// 1. Startup Phase:
//   - Initialize build information
//   - Parse command line arguments and load configuration
//   - Execute one-off commands if requested
//
// 2. Serving Phase:
//   - Construct the long-lived analyzer and HTTP server
//   - Serve analysis requests until a termination signal arrives
//
// 3. Shutdown Phase:
//   - Drain in-flight requests
//   - Clear the analyzer's plan cache
func main() {
	// ==================== STARTUP PHASE ====================

	build.Initialize()
	buildInfo := build.GetBuildFlags()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if level, ok := log.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(level)
	}
	if cfg.Debug {
		log.SetLevel(log.LevelDebug)
	}

	// Handle one-off commands that don't require the server to be running.
	switch cfg.Command {
	case "version":
		fmt.Printf("%s v%s (commit %s, built %s)\n",
			buildInfo.Name, buildInfo.Version, buildInfo.Commit, buildInfo.Time)
		return
	case "wav":
		if err := analyzeWavFiles(cfg.CommandArgs); err != nil {
			log.Fatalf("%v", err)
		}
		return
	case "serve":
	default:
		// Help or version flag already handled by the CLI.
		return
	}

	// ==================== SERVING PHASE ====================

	analyzer := spectrum.NewAnalyzerWithCacheLimit(cfg.Spectrum.MaxCacheEntries)

	srv, err := server.New(cfg, analyzer)
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Infof("Starting %s v%s.", buildInfo.Name, buildInfo.Version)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	case <-done:
	}

	// ==================== SHUTDOWN PHASE ====================

	log.Infof("Shutting down %s v%s and clearing cache.", buildInfo.Name, buildInfo.Version)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}

	analyzer.ClearCache()
}

// analyzeWavFiles runs a one-shot analysis per file and prints the dominant
// spectral components.
func analyzeWavFiles(paths []string) error {
	analyzer := spectrum.NewAnalyzer()

	for _, path := range paths {
		samples, interval, err := wavio.ReadMono(path)
		if err != nil {
			return err
		}

		bins, err := analyzer.Analyze(samples, interval)
		if err != nil {
			return err
		}

		present := make([]spectrum.FrequencyBin, 0, len(bins))
		for _, bin := range bins {
			if bin.Magnitude > 0 {
				present = append(present, bin)
			}
		}
		sort.Slice(present, func(i, j int) bool {
			return present[i].Magnitude > present[j].Magnitude
		})
		if len(present) > 10 {
			present = present[:10]
		}

		fmt.Printf("%s: %d samples, %d bins\n", path, len(samples), len(bins))
		for _, bin := range present {
			fmt.Printf("  %10.2f Hz  magnitude %.4f  phase %+.3f rad\n",
				bin.Frequency, bin.Magnitude, bin.Phase)
		}
	}

	return nil
}
