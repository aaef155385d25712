package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/spanmask/internal/logger"
	"github.com/samcharles93/spanmask/internal/masking"
	"github.com/samcharles93/spanmask/internal/tensor"
	"github.com/samcharles93/spanmask/internal/train"
)

type applyExample struct {
	Length     int     `json:"length"`
	Masked     int     `json:"masked"`
	Similarity float32 `json:"similarity"`
	NormBefore float32 `json:"norm_before"`
	NormAfter  float32 `json:"norm_after"`
}

// applyStats compares every example of hidden with its masked version.
func applyStats(hidden, masked *tensor.Tensor3, mask *masking.Mask, lengths []int) []applyExample {
	out := make([]applyExample, hidden.B)
	for b := range out {
		before, after := hidden.Example(b), masked.Example(b)
		out[b] = applyExample{
			Length:     lengths[b],
			Masked:     mask.CountRow(b),
			Similarity: tensor.CosineSimilarity(before.Data, after.Data),
			NormBefore: tensor.L2(before.Data),
			NormAfter:  tensor.L2(after.Data),
		}
	}
	return out
}

func applyCmd() *cli.Command {
	var features int64

	return &cli.Command{
		Name:  "apply",
		Usage: "Mask a random hidden-state batch with a learned mask embedding",
		Flags: concat(maskFlags(), batchFlags(), outputFlags(), []cli.Flag{
			&cli.Int64Flag{
				Name:        "features",
				Aliases:     []string{"f"},
				Usage:       "hidden size per frame",
				Value:       32,
				Destination: &features,
			},
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyMaskConfig(cmd, loadedConfig)
			if loadedConfig.Features != nil && !cmd.IsSet("features") {
				features = *loadedConfig.Features
			}
			if features <= 0 {
				return fmt.Errorf("features must be positive, got %d", features)
			}
			log := logger.FromContext(ctx)

			s, err := strategy()
			if err != nil {
				return err
			}
			batch, err := resolveBatch()
			if err != nil {
				return err
			}
			masker, err := masking.NewMasker(masking.MaskerConfig{Strategy: s, Seed: seed, Logger: log})
			if err != nil {
				return err
			}

			hidden := tensor.NewTensor3(batch.Shape.Batch, batch.Shape.SeqLen, int(features))
			hidden.FillRand(seed + 1)
			emb := train.NewMaskEmbedding(int(features), seed+2)

			masked, mask, err := masker.Mask(hidden, batch.Lengths, emb.Fill())
			if err != nil {
				return err
			}
			stats := applyStats(hidden, masked, mask, batch.Lengths)
			log.Info("applied mask", "masked", mask.Count(), "features", features)

			if outputFormat == "json" {
				return writeJSON(os.Stdout, stats)
			}
			table := newTable(os.Stdout, []string{"EXAMPLE", "LENGTH", "MASKED", "COSINE", "NORM BEFORE", "NORM AFTER"})
			for b, st := range stats {
				table.Append([]string{
					strconv.Itoa(b),
					strconv.Itoa(st.Length),
					strconv.Itoa(st.Masked),
					strconv.FormatFloat(float64(st.Similarity), 'f', 4, 32),
					strconv.FormatFloat(float64(st.NormBefore), 'f', 4, 32),
					strconv.FormatFloat(float64(st.NormAfter), 'f', 4, 32),
				})
			}
			table.Render()
			return nil
		},
	}
}
