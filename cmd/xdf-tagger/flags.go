package main

import "github.com/urfave/cli/v3"

var (
	suffix          string
	inPlace         bool
	processSuffixed bool
	overwrite       bool
	numJobs         int64
	logLevel        string
	logFormat       string
	debug           bool
)

func editFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "set",
			Usage: "set or override a tag, given as name=value",
		},
		&cli.StringSliceFlag{
			Name:  "clear",
			Usage: "remove all tags with the given name",
		},
		&cli.StringSliceFlag{
			Name:  "show",
			Usage: "print the values of the given tag",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "suffix",
			Usage:       "suffix spliced in before the .xdf file ending; ignored with --inplace",
			Value:       ".processed",
			Destination: &suffix,
		},
		&cli.BoolFlag{
			Name:        "inplace",
			Usage:       "modify files in place instead of writing suffixed copies",
			Destination: &inPlace,
		},
		&cli.BoolFlag{
			Name:        "process-suffixed",
			Usage:       "also process files that already carry the output suffix",
			Destination: &processSuffixed,
		},
		&cli.BoolFlag{
			Name:        "overwrite",
			Usage:       "allow overwriting existing output files",
			Destination: &overwrite,
		},
		&cli.Int64Flag{
			Name:        "jobs",
			Aliases:     []string{"j"},
			Usage:       "number of files to process concurrently",
			Value:       1,
			Destination: &numJobs,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
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
			Usage:       "shortcut for --log-level=debug",
			Destination: &debug,
		},
	}
}
