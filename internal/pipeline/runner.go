// Package pipeline runs a batch of listing sources through the loader and
// normalizer and hands the resulting relations to a sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"auctionload/internal/loader"
	"auctionload/internal/logger"
	"auctionload/internal/models"
	"auctionload/internal/normalizer"
	"auctionload/internal/sink"
)

// Source outcomes.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// SourceResult describes what happened to one source.
type SourceResult struct {
	Source string
	Status string
	Items  int
	Err    error
}

// Report summarizes a batch run.
type Report struct {
	RunID     string
	Sources   []SourceResult
	Relations []models.Relation
	Duration  time.Duration
}

// Failed returns the number of sources that failed.
func (r *Report) Failed() int {
	n := 0

	for _, s := range r.Sources {
		if s.Status == StatusFailed {
			n++
		}
	}

	return n
}

// Options tunes a Runner.
type Options struct {
	// FailFast stops the batch at the first failed source.
	FailFast bool
}

// Runner processes sources strictly in order against one Processor, so
// entities are deduplicated across the whole batch.
type Runner struct {
	loader    *loader.Loader
	processor *normalizer.Processor
	sink      sink.Sink
	log       *logger.Logger
	opts      Options
}

// NewRunner wires a runner. The processor starts with empty collections.
func NewRunner(l *loader.Loader, s sink.Sink, log *logger.Logger, opts Options) *Runner {
	return &Runner{
		loader:    l,
		processor: normalizer.NewProcessor(),
		sink:      s,
		log:       log,
		opts:      opts,
	}
}

// Processor exposes the runner's normalizer state.
func (r *Runner) Processor() *normalizer.Processor {
	return r.processor
}

// Run processes every source and writes the relations to the sink. Source
// failures are recorded in the report; only a sink failure is returned as an error.
func (r *Runner) Run(ctx context.Context, sources []string) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	log := r.log.With("run_id", report.RunID)

	r.processor.Reset()

	log.Info("batch started", "sources", len(sources))

	for _, src := range sources {
		if !r.loader.IsJSON(src) {
			log.Debug("skipping non-JSON source", "source", src)
			report.Sources = append(report.Sources, SourceResult{Source: src, Status: StatusSkipped})

			continue
		}

		res := r.runSource(src)
		report.Sources = append(report.Sources, res)

		if res.Status == StatusFailed {
			log.Error("source failed", "source", src, "items", res.Items, "error", res.Err)

			if res.Items > 0 {
				log.Warn("keeping items committed before failure", "source", src, "items", res.Items)
			}

			if r.opts.FailFast {
				break
			}

			continue
		}

		log.Info("source parsed", "source", src, "items", res.Items)
	}

	report.Relations = r.processor.State().Relations()

	for _, rel := range report.Relations {
		log.Debug("writing relation", "relation", rel.Name, "rows", rel.Len())
	}

	if err := sink.WriteAll(ctx, r.sink, report.Relations); err != nil {
		report.Duration = time.Since(start)
		return report, err
	}

	report.Duration = time.Since(start)
	log.Info("batch finished", "failed", report.Failed(), "duration", report.Duration)

	return report, nil
}

func (r *Runner) runSource(src string) SourceResult {
	items, err := r.loader.Load(src)
	if err != nil {
		return SourceResult{Source: src, Status: StatusFailed, Err: err}
	}

	n, err := r.processor.Process(items)
	if err != nil {
		return SourceResult{Source: src, Status: StatusFailed, Items: n, Err: err}
	}

	return SourceResult{Source: src, Status: StatusOK, Items: n}
}

// Describe renders a one-line status message for a source result.
func Describe(res SourceResult) string {
	var mie *loader.MalformedInputError

	var mfe *normalizer.MissingFieldError

	switch {
	case res.Status == StatusOK:
		return fmt.Sprintf("Success parsing %s (%d items)", res.Source, res.Items)
	case res.Status == StatusSkipped:
		return fmt.Sprintf("Skipped %s (not a JSON source)", res.Source)
	case errors.As(res.Err, &mie):
		return fmt.Sprintf("Failed parsing %s: malformed input: %v", res.Source, mie.Err)
	case errors.As(res.Err, &mfe):
		return fmt.Sprintf("Failed parsing %s after %d items: %v", res.Source, res.Items, mfe)
	default:
		return fmt.Sprintf("Failed parsing %s: %v", res.Source, res.Err)
	}
}
