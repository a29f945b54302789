package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/intheon/xdf-tagger/internal/logger"
	"github.com/intheon/xdf-tagger/internal/metadata"
	"github.com/intheon/xdf-tagger/internal/tagger"
)

func main() {
	app := &cli.Command{
		Name:  "xdf-tagger",
		Usage: "Manage metadata tags in XDF files",
		Description: `Tags are written into a stream named Metadata, of type Metadata;
the stream is created if not already present.

--set, --clear and --show may each be given multiple times to edit
several tags in a single run:

   xdf-tagger --set subject.name="My Name" --set subject.id=subj001 \
       --clear subject.handedness --show subject.age *.xdf`,
		ArgsUsage: "PATTERN...",
		Flags:     slices.Concat(editFlags(), outputFlags(), loggingFlags()),
		Action:    runTag,
		Commands: []*cli.Command{
			inspectCmd(),
			serveCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTag(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return cli.ShowAppHelp(cmd)
	}

	cfg := LoadConfig()
	applyTagConfig(cmd, cfg)
	if debug {
		logLevel = "debug"
	}
	log := logger.Setup(os.Stderr, logLevel, logFormat)
	ctx = logger.WithContext(ctx, log)

	edit := metadata.Edit{
		Set:   cmd.StringSlice("set"),
		Clear: cmd.StringSlice("clear"),
		Show:  cmd.StringSlice("show"),
	}
	if err := edit.Validate(); err != nil {
		return err
	}

	inPaths, err := matchingPathnames(cmd.Args().Slice())
	if err != nil {
		return err
	}
	if len(inPaths) == 0 {
		return fmt.Errorf("no files match the given patterns")
	}

	jobs := buildJobs(inPaths, edit.Modifies(), suffix, inPlace, processSuffixed, log)
	transform := tagger.EditTransform(edit, os.Stdout)
	return tagger.Run(ctx, jobs, transform, tagger.Options{
		Overwrite: overwrite,
		Jobs:      int(numJobs),
	}, log)
}
