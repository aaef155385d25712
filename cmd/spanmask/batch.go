package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samcharles93/spanmask/internal/dataset"
	"github.com/samcharles93/spanmask/internal/masking"
)

func spanConfig() masking.SpanConfig {
	return masking.SpanConfig{
		MaskProb: maskProb,
		SpanLen:  int(spanLen),
		MinSpans: int(minSpans),
	}
}

func strategy() (masking.Strategy, error) {
	return masking.ParseStrategy(strategyName, spanConfig())
}

// parseLengths parses a comma separated list of positive lengths.
func parseLengths(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid length %q: %w", p, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("length must be positive, got %d", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no lengths in %q", s)
	}
	return out, nil
}

// resolveBatch returns the batch described by the flags: explicit --lengths
// when given, otherwise a synthetic batch derived from the seed.
func resolveBatch() (dataset.Batch, error) {
	if lengthsArg != "" {
		lengths, err := parseLengths(lengthsArg)
		if err != nil {
			return dataset.Batch{}, err
		}
		return dataset.Batch{
			Shape:   masking.BatchShape{Batch: len(lengths), SeqLen: int(maxSeqLen)},
			Lengths: lengths,
			Seed:    seed,
		}, nil
	}
	src := syntheticSource(1)
	if err := src.Validate(); err != nil {
		return dataset.Batch{}, err
	}
	b, _ := src.Get(0)
	return b, nil
}

func syntheticSource(n int) dataset.SyntheticBatches {
	return dataset.SyntheticBatches{
		N:         n,
		BatchSize: int(batchSize),
		SeqLen:    int(maxSeqLen),
		MinLen:    min(int(minLen), int(maxSeqLen)),
		Seed:      seed,
	}
}
