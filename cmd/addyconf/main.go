package main

import (
	"addy/conformance"
	"addy/trace"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
)

func main() {
	dir := flag.String("dir", conformance.DefaultDir, "Directory of YAML conformance suites")
	filter := flag.String("filter", "", "Comma-separated globs on test or suite names (e.g., 'int_*,classes')")
	workers := flag.Int("workers", 0, "Suites run at once (0 = GOMAXPROCS)")
	verbose := flag.Bool("v", false, "Print every test, not only failures")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Trace member dispatch")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob on Class::member, e.g., 'Person::*')")

	flag.Parse()

	if *traceEnabled {
		trace.Init(true, splitList(*traceFilter), os.Stderr)
	} else {
		trace.Init(false, nil, nil)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	suites, err := conformance.LoadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to load suites: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := conformance.NewRunner(
		conformance.WithFilters(splitList(*filter)...),
		conformance.WithWorkers(*workers),
		conformance.WithLogger(logger),
	)
	results, err := runner.RunAll(ctx, suites)
	if err != nil {
		log.Fatalf("Run interrupted: %v", err)
	}

	for _, r := range results {
		switch {
		case r.Skipped:
			if *verbose {
				fmt.Printf("SKIP %s/%s: %s\n", r.File, r.Test.Name, r.SkipReason)
			}
		case r.Passed:
			if *verbose {
				fmt.Printf("PASS %s/%s\n", r.File, r.Test.Name)
			}
		default:
			fmt.Printf("FAIL %s/%s: %v\n", r.File, r.Test.Name, r.Error)
		}
	}

	stats := conformance.ComputeStats(results)
	fmt.Println(conformance.FormatStats(stats))
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

// splitList splits a comma-separated flag value, dropping empty entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
