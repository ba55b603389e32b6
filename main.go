package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"pagedump/internal/crawl"
	"pagedump/internal/history"
	"pagedump/internal/verify"
)

func main() {
	app := &cli.App{
		Name:  "pagedump",
		Usage: "fetch a numbered range of pages from one site and persist the raw markup",
		Commands: []*cli.Command{
			{
				Name:  "crawl",
				Usage: "Fetch pages --start..--end and append each success to the manifest",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "start",
						Usage:    "first page index (inclusive)",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "end",
						Usage:    "last page index (inclusive)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to YAML config file (default: config.yaml if present)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "json",
						Usage: "run summary format: json or yaml",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: crawl.CrawlAction,
			},
			{
				Name:  "runs",
				Usage: "List recorded crawl runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum runs to list",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to YAML config file",
					},
				},
				Action: history.RunsAction,
			},
			{
				Name:      "run",
				Usage:     "Show per-page results for a run (latest if omitted)",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to YAML config file",
					},
				},
				Action: history.RunAction,
			},
			{
				Name:  "verify",
				Usage: "Check that every manifest line has a matching output file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to YAML config file",
					},
				},
				Action: verify.VerifyAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
