package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/spanmask/internal/logger"
	"github.com/samcharles93/spanmask/internal/masking"
)

type sampleOutput struct {
	Strategy string                `json:"strategy"`
	Shape    masking.BatchShape    `json:"shape"`
	Lengths  []int                 `json:"lengths"`
	Seed     int64                 `json:"seed"`
	Rows     []string              `json:"rows"`
	Coverage masking.CoverageStats `json:"coverage"`
}

func sampleCmd() *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "Compute and print a mask for one batch",
		Flags: concat(maskFlags(), batchFlags(), outputFlags()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyMaskConfig(cmd, loadedConfig)
			log := logger.FromContext(ctx)

			s, err := strategy()
			if err != nil {
				return err
			}
			batch, err := resolveBatch()
			if err != nil {
				return err
			}
			masker, err := masking.NewMasker(masking.MaskerConfig{
				Strategy: s,
				Seed:     seed,
				Logger:   log,
			})
			if err != nil {
				return err
			}
			mask, err := masker.Compute(batch.Shape, batch.Lengths)
			if err != nil {
				return err
			}
			cs := masking.Coverage(mask, batch.Lengths)

			if outputFormat == "json" {
				return writeJSON(os.Stdout, sampleOutput{
					Strategy: s.Name(),
					Shape:    batch.Shape,
					Lengths:  batch.Lengths,
					Seed:     seed,
					Rows:     mask.Rows(),
					Coverage: cs,
				})
			}

			renderMask(os.Stdout, mask, batch.Lengths, terminalWidth(os.Stdout.Fd()))
			fmt.Println()
			renderCoverage(os.Stdout, cs, batch.Lengths)
			return nil
		},
	}
}
