package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/spanmask/internal/logger"
	"github.com/samcharles93/spanmask/internal/schedule"
)

type schedulePoint struct {
	Step int     `json:"step"`
	LR   float64 `json:"lr"`
}

// readRecord loads a schedule record; the extension picks the codec.
func readRecord(path string) (schedule.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.Record{}, err
	}
	var rec schedule.Record
	if isYAML(path) {
		err = yaml.Unmarshal(data, &rec)
	} else {
		err = json.Unmarshal(data, &rec)
	}
	if err != nil {
		return schedule.Record{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return rec, nil
}

func writeRecord(path string, rec schedule.Record) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(rec)
	} else {
		data, err = json.MarshalIndent(rec, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// walkSchedule advances s by steps, keeping every n-th rate and the last one.
func walkSchedule(s *schedule.PolynomialDecay, steps, every int) []schedulePoint {
	every = max(every, 1)
	var out []schedulePoint
	for i := range steps {
		step := s.Current()
		lr := s.Step()
		if i%every == 0 || i == steps-1 {
			out = append(out, schedulePoint{Step: step, LR: lr})
		}
	}
	return out
}

func scheduleCmd() *cli.Command {
	var (
		startLR     float64
		endLR       float64
		power       float64
		totalSteps  int64
		warmupSteps int64
		steps       int64
		every       int64
		recordPath  string
		resumePath  string
	)

	return &cli.Command{
		Name:  "schedule",
		Usage: "Print a polynomial-decay learning-rate schedule",
		Flags: concat(outputFlags(), []cli.Flag{
			&cli.Float64Flag{Name: "start-lr", Usage: "peak learning rate", Value: 5e-4, Destination: &startLR},
			&cli.Float64Flag{Name: "end-lr", Usage: "final learning rate", Value: 0, Destination: &endLR},
			&cli.Float64Flag{Name: "power", Usage: "decay exponent", Value: 1, Destination: &power},
			&cli.Int64Flag{Name: "total-steps", Usage: "steps until end-lr is reached", Value: 1000, Destination: &totalSteps},
			&cli.Int64Flag{Name: "warmup-steps", Usage: "linear warmup steps", Value: 100, Destination: &warmupSteps},
			&cli.Int64Flag{Name: "steps", Usage: "steps to print (0 = through total-steps)", Destination: &steps},
			&cli.Int64Flag{Name: "every", Usage: "print every n-th step", Value: 100, Destination: &every},
			&cli.StringFlag{Name: "record", Usage: "write the final state to this .json or .yaml file", Destination: &recordPath},
			&cli.StringFlag{Name: "resume", Usage: "resume from a state file written by --record", Destination: &resumePath},
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			var (
				s   *schedule.PolynomialDecay
				err error
			)
			if resumePath != "" {
				rec, rerr := readRecord(resumePath)
				if rerr != nil {
					return rerr
				}
				s, err = schedule.Load(rec)
				if err == nil {
					log.Info("resumed schedule", "path", resumePath, "step", s.Current())
				}
			} else {
				s, err = schedule.NewPolynomialDecay(startLR, endLR, power, int(totalSteps), int(warmupSteps))
			}
			if err != nil {
				return err
			}

			n := int(steps)
			if n <= 0 {
				n = max(s.Record().TotalSteps-s.Current()+1, 1)
			}
			points := walkSchedule(s, n, int(every))

			if recordPath != "" {
				if err := writeRecord(recordPath, s.Record()); err != nil {
					return err
				}
				log.Info("wrote schedule state", "path", recordPath, "step", s.Current())
			}

			if outputFormat == "json" {
				return writeJSON(os.Stdout, points)
			}
			table := newTable(os.Stdout, []string{"STEP", "LR"})
			for _, p := range points {
				table.Append([]string{strconv.Itoa(p.Step), strconv.FormatFloat(p.LR, 'g', 6, 64)})
			}
			table.Render()
			return nil
		},
	}
}
