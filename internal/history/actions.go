// Package history implements the commands that inspect past crawl runs.
package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli/v2"

	"pagedump/models"
	"pagedump/pkg/db"
)

// RunsAction lists recorded runs, newest first.
func RunsAction(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No runs recorded in %s\n", database.Path())
		return nil
	}

	fmt.Printf("History: %s\n\n", database.Path())

	fmt.Printf("%-6s %-20s %-12s %-8s %-8s %-40s\n",
		"ID", "Created", "Range", "Success", "Failed", "Template")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-12s %-8d %-8d %-40s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d..%d", r.StartPage, r.EndPage),
			r.SuccessCount,
			r.FailedCount,
			runewidth.Truncate(r.URLTemplate, 40, "..."),
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'pagedump run <id>' to see per-page results\n")

	return nil
}

// RunAction shows per-page results for one run (the latest if no id given).
func RunAction(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := runIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	fetches, err := database.GetRunFetches(runID)
	if err != nil {
		return fmt.Errorf("failed to get run fetches: %w", err)
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Range:     %d..%d\n", run.StartPage, run.EndPage)
	fmt.Printf("Template:  %s\n", run.URLTemplate)
	fmt.Printf("Pages:     %d total (%d success, %d failed)\n",
		run.EndPage-run.StartPage+1, run.SuccessCount, run.FailedCount)

	if len(fetches) == 0 {
		return nil
	}

	fmt.Printf("\nPages (%d):\n", len(fetches))
	fmt.Println(strings.Repeat("-", 60))
	for _, f := range fetches {
		if f.Success {
			fmt.Printf("%6d  [success] %s\n", f.PageIndex, runewidth.Truncate(f.URL, 60, "..."))
			fmt.Printf("        File: %s | %d bytes | %dms\n", f.Filename, f.SizeBytes, f.DurationMs)
		} else {
			fmt.Printf("%6d  [failed]  %s\n", f.PageIndex, runewidth.Truncate(f.URL, 60, "..."))
			fmt.Printf("        Error: [%s] status=%d\n", f.ErrorType, f.StatusCode)
		}
	}

	return nil
}

func openHistory(c *cli.Context) (*db.DB, error) {
	cfg, err := models.ResolveConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return database, nil
}

func runIDOrLatest(c *cli.Context, database *db.DB) (int64, error) {
	arg := c.Args().First()
	if arg == "" {
		return database.GetLatestRunID()
	}

	runID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run id %q: %w", arg, err)
	}
	return runID, nil
}
