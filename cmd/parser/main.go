// Package main provides the parser command-line tool that normalizes auction
// listing JSON files into Items, Users, Categories and Bids relations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"auctionload/internal/config"
	"auctionload/internal/loader"
	"auctionload/internal/logger"
	"auctionload/internal/pipeline"
	"auctionload/internal/sink"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	envPath := flag.String("env", ".env", "Path to .env file with overrides")
	sinkKind := flag.String("sink", "", "Output sink: dat, sqlite or postgres (overrides config)")
	outDir := flag.String("out", "", "Output directory for .dat files (overrides config)")
	preview := flag.Int("preview", -1, "Rows per relation to print after the run (overrides config)")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this YAML file and exit")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: parser [flags] <listing.json>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	envLoaded := config.LoadEnvFile(*envPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *sinkKind != "" {
		cfg.Parser.Output.Sink = *sinkKind
	}

	if *outDir != "" {
		cfg.Parser.Output.Dir = *outDir
	}

	if *preview >= 0 {
		cfg.Features.PreviewRows = *preview
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := cfg.SaveConfig(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}

		return
	}

	sources := flag.Args()
	if len(sources) == 0 {
		sources = cfg.Parser.Sources
	}

	if len(sources) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(os.Stderr, cfg.Parser.Logging.Level, cfg.Parser.Logging.Format)
	if envLoaded {
		log.Debug("environment file loaded", "path", *envPath)
	}

	log.Debug("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cfg.Parser.Output

	s, err := sink.Open(ctx, sink.Options{
		Kind:        out.Sink,
		Dir:         out.Dir,
		Delimiter:   out.Delimiter,
		SQLitePath:  out.SQLitePath,
		DatabaseURL: out.DatabaseURL,
	})
	if err != nil {
		log.Error("failed to open sink", "sink", out.Sink, "error", err)
		os.Exit(1)
	}
	defer s.Close()

	runner := pipeline.NewRunner(
		loader.NewLoader(cfg.Parser.Input.ItemsKey, cfg.Parser.Input.Extension),
		s,
		log,
		pipeline.Options{FailFast: cfg.Features.FailFast},
	)

	report, err := runner.Run(ctx, sources)

	for _, res := range report.Sources {
		if res.Status != pipeline.StatusSkipped {
			fmt.Println(pipeline.Describe(res))
		}
	}

	if err != nil {
		var swe *sink.SinkWriteError
		if errors.As(err, &swe) {
			log.Error("failed to write relation", "relation", swe.Relation, "error", swe.Err)
		} else {
			log.Error("run failed", "error", err)
		}

		s.Close()
		os.Exit(1)
	}

	fmt.Println()
	fmt.Print(report.RelationTable())

	if p := report.Preview(cfg.Features.PreviewRows); p != "" {
		fmt.Println()
		fmt.Print(p)
	}
}
