// Package main provides the EPFO extractor application. It drives the
// employer portal through a single long-lived browser session, with an
// interactive TUI by default and a YAML-driven batch mode for scripted
// runs. Login is always manual; the tool never handles credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appconfig "github.com/epfokit/extractor/pkg/config"
	"github.com/epfokit/extractor/pkg/executor/batch"
	"github.com/epfokit/extractor/pkg/executor/tui"
	"github.com/epfokit/extractor/pkg/logging"
	"github.com/epfokit/extractor/pkg/tasks"
	"github.com/epfokit/extractor/pkg/worker"
)

const version = "0.1.0" // Version of the EPFO extractor

// Config holds the application configuration
type Config struct {
	ConfigPath  string
	BatchFile   string
	ShowVersion bool
}

func main() {
	_ = godotenv.Load() // Load .env

	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("epfo-extractor v%s\n", version)
		return
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Fatalf("Application error: %v", err)
	}
}

// parseFlags parses command line flags.
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.ConfigPath, "config", "", "Path to the settings file (default: ~/.epfo-extractor/config.json)")
	flag.StringVar(&config.BatchFile, "batch", "", "Path to a YAML job file; runs non-interactively")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "epfo-extractor - EPFO employer portal extraction tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: epfo-extractor [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Interactive mode (default)\n")
		fmt.Fprintf(os.Stderr, "  epfo-extractor\n")
		fmt.Fprintf(os.Stderr, "\n  # Batch mode\n")
		fmt.Fprintf(os.Stderr, "  epfo-extractor -batch jobs.yaml\n")
	}

	flag.Parse()
	return config
}

// run executes the main application logic.
func run(ctx context.Context, config *Config) error {
	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// NewLogger falls back to stderr when file logging is unavailable.
	logger, _ := logging.NewLogger("main")
	defer logger.Close()

	portalCfg := appconfig.GetPortal()
	extractionCfg := appconfig.GetExtraction()

	w := worker.New(
		worker.NewPortalDriver(portalCfg),
		worker.WithTaskConfig(tasks.ConfigFromSettings(extractionCfg, portalCfg, logger)),
		worker.WithLogger(logger),
		worker.WithBufferSize(extractionCfg.GetChannelBuffer()),
	)

	if config.BatchFile != "" {
		return runBatch(ctx, config.BatchFile, w, logger)
	}

	return tui.NewExecutor(w, "").Run(ctx)
}

// runBatch executes the batch mode.
func runBatch(ctx context.Context, jobFile string, w *worker.Worker, logger *logging.Logger) error {
	cfg, err := batch.LoadConfig(jobFile)
	if err != nil {
		return err
	}

	exec := batch.NewExecutor(w, cfg, logger)
	exec.SetProgress(func(line string) {
		fmt.Println(line)
	})

	results, err := exec.Run(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	fmt.Printf("\n%d of %d jobs succeeded.\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d job(s) failed", failed)
	}
	return nil
}
