package main

import "github.com/urfave/cli/v3"

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	strategyName string
	maskProb     float64
	spanLen      int64
	minSpans     int64
	seed         int64

	batchSize  int64
	maxSeqLen  int64
	minLen     int64
	lengthsArg string

	outputFormat string
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: user config dir)",
			Sources:     cli.EnvVars("SPANMASK_CONFIG"),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func maskFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "strategy",
			Aliases:     []string{"s"},
			Usage:       "masking strategy (none, all, span)",
			Value:       "span",
			Destination: &strategyName,
		},
		&cli.Float64Flag{
			Name:        "mask-prob",
			Aliases:     []string{"p"},
			Usage:       "expected fraction of masked frames, in (0, 1]",
			Value:       0.65,
			Destination: &maskProb,
		},
		&cli.Int64Flag{
			Name:        "span-len",
			Aliases:     []string{"l"},
			Usage:       "frames per span",
			Value:       10,
			Destination: &spanLen,
		},
		&cli.Int64Flag{
			Name:        "min-spans",
			Usage:       "minimum spans per example",
			Value:       2,
			Destination: &minSpans,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Usage:       "random seed",
			Value:       42,
			Sources:     cli.EnvVars("SPANMASK_SEED"),
			Destination: &seed,
		},
	}
}

func batchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "batch",
			Aliases:     []string{"b"},
			Usage:       "examples per batch (ignored when --lengths is set)",
			Value:       4,
			Destination: &batchSize,
		},
		&cli.Int64Flag{
			Name:        "max-seq-len",
			Aliases:     []string{"t"},
			Usage:       "padded sequence length",
			Value:       64,
			Destination: &maxSeqLen,
		},
		&cli.Int64Flag{
			Name:        "min-len",
			Usage:       "shortest generated valid length",
			Value:       16,
			Destination: &minLen,
		},
		&cli.StringFlag{
			Name:        "lengths",
			Usage:       "comma separated valid lengths, one per example",
			Destination: &lengthsArg,
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"o"},
			Usage:       "output format (table, json)",
			Value:       "table",
			Destination: &outputFormat,
		},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
