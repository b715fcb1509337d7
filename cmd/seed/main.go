package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/mindlab/internal/seed"
	"github.com/okian/mindlab/pkg/logger"
)

// Default configuration constants.
const (
	defaultEntries    = 200
	defaultSpanDays   = 365
	defaultDuplicates = 20
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
	defaultTolerance  = 1e-9
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		entries    = flag.Int("entries", defaultEntries, "Number of entries to generate")
		span       = flag.Int("span", defaultSpanDays, "Spread entry dates over this many days")
		duplicates = flag.Int("duplicates", defaultDuplicates, "Entries resubmitted with the same id")
		workers    = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		passphrase = flag.String("passphrase", os.Getenv("MINDLAB_PASSPHRASE"), "Journal passphrase")
		periodTok  = flag.String("period", "all_time", "Period verified after seeding")
		outputFile = flag.String("output", "", "Write generated entries to this JSON file")
		verbose    = flag.Bool("verbose", false, "Log every failed submission")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:     *baseURL,
		NumEntries:  *entries,
		SpanDays:    *span,
		Duplicates:  *duplicates,
		Workers:     *workers,
		Timeout:     *timeout,
		Passphrase:  *passphrase,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
		Tolerance:   defaultTolerance,
		PeriodToken: *periodTok,
	}

	if _, err := seed.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seed failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
