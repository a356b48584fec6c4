package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eventure/rankd/internal/genevents"
	"github.com/eventure/rankd/pkg/logger"
)

const defaultGenTimeout = 5 * time.Minute

func main() {
	var (
		outDir      = flag.String("out", "content", "Output directory for generated batches")
		numEvents   = flag.Int("events", genevents.DefaultNumEvents, "Number of events per batch")
		numUsers    = flag.Int("users", genevents.DefaultNumUsers, "Number of user batches to generate")
		workers     = flag.Int("workers", genevents.DefaultWorkers, "Number of concurrent generation workers")
		missingRate = flag.Float64("missing-rate", genevents.DefaultMissingRate, "Fraction of events with a blanked field")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultGenTimeout)
	defer cancel()

	config := &genevents.Config{
		OutDir:      *outDir,
		NumEvents:   *numEvents,
		NumUsers:    *numUsers,
		Workers:     *workers,
		MissingRate: *missingRate,
		Verbose:     *verbose,
	}

	stats, err := genevents.Run(ctx, config)
	if err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("Generated %d files (%d events) in %s; user IDs: %v\n",
		stats.FilesWritten, stats.EventsGenerated, stats.Duration.Round(time.Millisecond), stats.UserIDs)
}
