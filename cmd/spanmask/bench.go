package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/samcharles93/spanmask/internal/dataset"
	"github.com/samcharles93/spanmask/internal/logger"
	"github.com/samcharles93/spanmask/internal/masking"
)

type benchOutcome struct {
	coverage float64
	masked   int
}

type benchJob func() (benchOutcome, error)

// maskJobs lazily turns every batch into a job that masks it with a private
// masker seeded from the batch, so results do not depend on scheduling.
func maskJobs(src dataset.Dataset[dataset.Batch], s masking.Strategy) dataset.Dataset[benchJob] {
	return dataset.Map(src, func(b dataset.Batch) benchJob {
		return func() (benchOutcome, error) {
			m, err := masking.NewMasker(masking.MaskerConfig{Strategy: s, Seed: b.Seed})
			if err != nil {
				return benchOutcome{}, err
			}
			mask, err := m.Compute(b.Shape, b.Lengths)
			if err != nil {
				return benchOutcome{}, err
			}
			return benchOutcome{
				coverage: masking.Coverage(mask, b.Lengths).Mean,
				masked:   mask.Count(),
			}, nil
		}
	})
}

// runBench runs every job with at most workers in flight.
func runBench(ctx context.Context, jobs dataset.Dataset[benchJob], workers int) ([]benchOutcome, error) {
	out := make([]benchOutcome, jobs.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs.Len() {
		job, ok := jobs.Get(i)
		if !ok {
			return nil, fmt.Errorf("batch %d unavailable", i)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := job()
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type benchResult struct {
	RunID        string    `json:"run_id"`
	Batches      int       `json:"batches"`
	Frames       int       `json:"frames"`
	Masked       int       `json:"masked"`
	MeanCoverage float64   `json:"mean_coverage"`
	StdCoverage  float64   `json:"std_coverage"`
	Coverage     []float64 `json:"coverage"`
	Elapsed      string    `json:"elapsed"`
}

func summarize(runID string, outcomes []benchOutcome, framesPerBatch int, elapsed time.Duration) benchResult {
	res := benchResult{
		RunID:    runID,
		Batches:  len(outcomes),
		Frames:   len(outcomes) * framesPerBatch,
		Coverage: make([]float64, len(outcomes)),
		Elapsed:  elapsed.String(),
	}
	for i, o := range outcomes {
		res.Masked += o.masked
		res.Coverage[i] = o.coverage
	}
	switch len(res.Coverage) {
	case 0:
	case 1:
		res.MeanCoverage = res.Coverage[0]
	default:
		res.MeanCoverage, res.StdCoverage = stat.MeanStdDev(res.Coverage, nil)
	}
	return res
}

func benchCmd() *cli.Command {
	var (
		batches int64
		workers int64
	)

	return &cli.Command{
		Name:  "bench",
		Usage: "Mask many synthetic batches concurrently and report coverage",
		Flags: concat(maskFlags(), batchFlags(), outputFlags(), []cli.Flag{
			&cli.Int64Flag{
				Name:        "batches",
				Aliases:     []string{"n"},
				Usage:       "number of batches",
				Value:       256,
				Destination: &batches,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Aliases:     []string{"j"},
				Usage:       "concurrent workers (0 = GOMAXPROCS)",
				Destination: &workers,
			},
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyMaskConfig(cmd, loadedConfig)
			runID := uuid.NewString()
			log := logger.FromContext(ctx).With("run_id", runID)

			s, err := strategy()
			if err != nil {
				return err
			}
			synth := syntheticSource(int(batches))
			if err := synth.Validate(); err != nil {
				return err
			}

			n := int(workers)
			if n <= 0 {
				n = runtime.GOMAXPROCS(0)
			}
			log.Info("bench started", "batches", batches, "workers", n, "strategy", s.Name())
			start := time.Now()
			outcomes, err := runBench(ctx, maskJobs(synth, s), n)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			res := summarize(runID, outcomes, int(batchSize)*int(maxSeqLen), elapsed)
			log.Info("bench finished", "elapsed", elapsed, "mean_coverage", res.MeanCoverage)

			if outputFormat == "json" {
				return writeJSON(os.Stdout, res)
			}
			table := newTable(os.Stdout, []string{"BATCHES", "FRAMES", "MASKED", "MEAN COVERAGE", "STD", "ELAPSED"})
			table.Append([]string{
				strconv.Itoa(res.Batches),
				strconv.Itoa(res.Frames),
				strconv.Itoa(res.Masked),
				formatPercent(res.MeanCoverage),
				formatPercent(res.StdCoverage),
				elapsed.Round(time.Microsecond).String(),
			})
			table.Render()
			return nil
		},
	}
}
