package main

import (
	"context"
	"fmt"

	"github.com/intheon/xdf-tagger/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println("xdf-tagger", version.String())
			return nil
		},
	}
}
