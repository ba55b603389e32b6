package crawl

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"pagedump/models"
	"pagedump/pkg/db"
	"pagedump/pkg/fetcher"
	"pagedump/pkg/storage"
)

// CrawlAction is the `pagedump crawl` entry point. Configuration problems
// exit non-zero before any network activity; per-page failures do not
// affect the exit code.
func CrawlAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	start := c.Int("start")
	end := c.Int("end")
	if err := ValidateRange(start, end); err != nil {
		logger.Error("invalid range", "start", start, "end", end, "error", err)
		return cli.Exit("", 2)
	}

	cfg, err := models.ResolveConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return cli.Exit("", 2)
	}
	logger.Info("configuration loaded", "config", cfg.String())

	var history *db.DB
	if cfg.History.Enabled {
		history, err = db.Open(cfg.History.Path)
		if err != nil {
			// History is observability only, never a reason to skip the crawl.
			logger.Warn("failed to open history database", "error", err)
			history = nil
		} else {
			defer history.Close()
		}
	}

	f := fetcher.NewFetcher(time.Duration(cfg.TimeoutSec)*time.Second, cfg.UserAgent)
	runner := NewRunner(cfg, f, &storage.Storage{}, history, logger)

	results, runErr := runner.Run(start, end)
	if runErr != nil && len(results) == 0 {
		logger.Error("crawl aborted", "error", runErr)
		return cli.Exit("", 2)
	}

	finalOutput := &FinalOutput{Manifest: cfg.ManifestPath}
	for _, r := range results {
		finalOutput.Results = append(finalOutput.Results, BuildOutput(r))
		if r.Error != nil {
			finalOutput.Stats.Failed++
		} else {
			finalOutput.Stats.Successful++
		}
	}
	finalOutput.Stats.StartPage = start
	finalOutput.Stats.EndPage = end
	finalOutput.Stats.TotalPages = end - start + 1
	finalOutput.Stats.TotalTimeSeconds = time.Since(startTime).Seconds()

	switch {
	case runErr != nil:
		finalOutput.Status = "aborted"
	case finalOutput.Stats.Failed > 0:
		finalOutput.Status = "partial_failure"
	default:
		finalOutput.Status = "success"
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "yaml" {
		outputData, marshalErr = yaml.Marshal(finalOutput)
	} else {
		outputData, marshalErr = json.MarshalIndent(finalOutput, "", "  ")
	}
	if marshalErr != nil {
		logger.Error("failed to marshal final output", "error", marshalErr)
		return cli.Exit("", 2)
	}
	fmt.Println(string(outputData))

	logger.Info("crawl finished",
		"successful", finalOutput.Stats.Successful,
		"failed", finalOutput.Stats.Failed)

	if runErr != nil {
		// Manifest became unwritable mid-run; remaining pages were skipped.
		logger.Error("crawl aborted", "error", runErr)
		return cli.Exit("", 2)
	}

	return nil
}
