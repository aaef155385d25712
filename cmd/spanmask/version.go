package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/spanmask/internal/masking"
	"github.com/samcharles93/spanmask/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Flags: outputFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			if outputFormat == "json" {
				return writeJSON(os.Stdout, info)
			}
			fmt.Printf("version:    %s\n", info.Version)
			if info.Commit != "" {
				fmt.Printf("commit:     %s\n", info.Commit)
			}
			if info.Modified {
				fmt.Println("modified:   true")
			}
			if info.BuildTime != "" {
				fmt.Printf("build time: %s\n", info.BuildTime)
			}
			fmt.Printf("go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Printf("strategies: %v\n", masking.StrategyNames())
			return nil
		},
	}
}
