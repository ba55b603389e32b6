package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"pagedump/models"
)

// Load reads a manifest file into records, preserving order and
// duplicates. Blank lines are skipped; a line without the separator is a
// malformed manifest and an error.
func Load(path string) ([]models.PageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	var records []models.PageRecord

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		filename, url, ok := strings.Cut(line, Separator)
		if !ok || filename == "" || url == "" {
			return nil, fmt.Errorf("malformed manifest line %d: %q", lineNo, line)
		}

		records = append(records, models.PageRecord{Filename: filename, URL: url})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return records, nil
}
