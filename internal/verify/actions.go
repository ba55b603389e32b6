// Package verify checks the manifest invariant: every recorded filename
// must name a readable, non-empty file in the output directory.
package verify

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"pagedump/internal/common"
	"pagedump/models"
	"pagedump/pkg/manifest"
	"pagedump/pkg/storage"
)

// Violation is one manifest line whose output file is wrong or missing.
type Violation struct {
	Filename string
	URL      string
	Reason   string
}

// Violation reasons.
const (
	ReasonBadFilename = "filename does not match the page_<index>.html scheme"
	ReasonMissing     = "missing or unreadable file"
	ReasonEmpty       = "empty file"
)

// VerifyAction is the `pagedump verify` entry point.
func VerifyAction(c *cli.Context) error {
	cfg, err := models.ResolveConfig(c.String("config"))
	if err != nil {
		return err
	}

	records, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("No manifest at %s, nothing to verify\n", cfg.ManifestPath)
			return nil
		}
		return err
	}

	violations := Check(records, cfg.OutputDir, &storage.Storage{})

	fmt.Printf("Manifest: %s (%d lines)\n", cfg.ManifestPath, len(records))
	if len(violations) == 0 {
		fmt.Println("OK: every manifest line has a matching output file")
		return nil
	}

	fmt.Printf("FAIL: %d manifest line(s) without a matching file:\n", len(violations))
	for _, v := range violations {
		fmt.Printf("  %s\t%s (%s)\n", v.Filename, v.URL, v.Reason)
	}
	return cli.Exit("manifest verification failed", 1)
}

// Check validates each record: the filename must be one this tool
// produces, and the file must be readable with at least one byte (a fetch
// is only recorded after its body was written, so an empty file cannot be
// the last fetched content). Duplicate manifest lines for the same
// filename are checked once each; they all pass as long as the file is
// intact.
func Check(records []models.PageRecord, outputDir string, store *storage.Storage) []Violation {
	var violations []Violation
	for _, rec := range records {
		if _, ok := common.IndexForFilename(rec.Filename); !ok {
			violations = append(violations, Violation{Filename: rec.Filename, URL: rec.URL, Reason: ReasonBadFilename})
			continue
		}

		data, err := store.ReadFile(filepath.Join(outputDir, rec.Filename))
		if err != nil {
			violations = append(violations, Violation{Filename: rec.Filename, URL: rec.URL, Reason: ReasonMissing})
			continue
		}
		if len(data) == 0 {
			violations = append(violations, Violation{Filename: rec.Filename, URL: rec.URL, Reason: ReasonEmpty})
		}
	}
	return violations
}
