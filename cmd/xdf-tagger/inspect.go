package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/intheon/xdf-tagger/internal/tagger"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the metadata stream of XDF files as JSON",
		ArgsUsage: "FILE...",
		Flags:     loggingFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("inspect: at least one file is required")
			}
			for _, path := range cmd.Args().Slice() {
				info, err := tagger.Inspect(path)
				if err != nil {
					return fmt.Errorf("inspect %s: %w", path, err)
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				_, _ = os.Stdout.Write(append(out, '\n'))
			}
			return nil
		},
	}
}
