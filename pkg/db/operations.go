package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// InsertPage inserts a page, returning the page_id. If the URL already
// exists, returns the existing page_id.
func (db *DB) InsertPage(pageIndex int, url, filename string) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT page_id FROM pages WHERE url = ?", url).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing page: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO pages (page_index, url, filename)
		VALUES (?, ?, ?)
	`, pageIndex, url, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}

	pageID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get page ID: %w", err)
	}

	return pageID, nil
}

// RecordFetch records one fetch attempt for a page within a run.
func (db *DB) RecordFetch(runID, pageID int64, statusCode int, errorType string, success bool, sizeBytes, durationMs int64) error {
	_, err := db.Exec(`
		INSERT INTO fetches (run_id, page_id, status_code, error_type, success, size_bytes, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, pageID, statusCode, errorType, success, sizeBytes, durationMs)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}
