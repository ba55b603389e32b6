package crawl

import (
	"errors"
	"flag"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

func crawlContext(t *testing.T, start, end int, configPath string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("crawl", flag.ContinueOnError)
	set.Int("start", start, "")
	set.Int("end", end, "")
	set.String("config", configPath, "")
	set.String("format", "json", "")
	set.Bool("quiet", true, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestCrawlAction_InvalidRangeExitsTwo(t *testing.T) {
	err := CrawlAction(crawlContext(t, 5, 2, ""))
	if err == nil {
		t.Fatal("CrawlAction() should fail for a descending range")
	}

	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) {
		t.Fatalf("CrawlAction() error = %T, want cli.ExitCoder", err)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", exitErr.ExitCode())
	}
}

func TestCrawlAction_BadConfigExitsTwo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no_such_config.yaml")

	err := CrawlAction(crawlContext(t, 1, 2, missing))
	if err == nil {
		t.Fatal("CrawlAction() should fail for a missing config file")
	}

	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) {
		t.Fatalf("CrawlAction() error = %T, want cli.ExitCoder", err)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", exitErr.ExitCode())
	}
}
