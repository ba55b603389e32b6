package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run represents one crawl invocation.
type Run struct {
	RunID        int64
	CreatedAt    time.Time
	StartPage    int
	EndPage      int
	URLTemplate  string
	SuccessCount int
	FailedCount  int
}

// FetchRecord is one fetch attempt joined with its page.
type FetchRecord struct {
	PageIndex  int
	URL        string
	Filename   string
	StatusCode int
	ErrorType  string
	Success    bool
	SizeBytes  int64
	DurationMs int64
}

// CreateRun inserts a new run row and returns its ID.
func (db *DB) CreateRun(startPage, endPage int, urlTemplate string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (start_page, end_page, url_template)
		VALUES (?, ?, ?)
	`, startPage, endPage, urlTemplate)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

// UpdateRunStats sets the final success/failed counts for a run.
func (db *DB) UpdateRunStats(runID int64, successCount, failedCount int) error {
	_, err := db.Exec(`
		UPDATE runs SET success_count = ?, failed_count = ? WHERE run_id = ?
	`, successCount, failedCount, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, created_at, start_page, end_page, url_template, success_count, failed_count
		FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.StartPage, &r.EndPage, &r.URLTemplate, &r.SuccessCount, &r.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// GetRunByID returns a single run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, created_at, start_page, end_page, url_template, success_count, failed_count
		FROM runs WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.StartPage, &r.EndPage, &r.URLTemplate, &r.SuccessCount, &r.FailedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetLatestRunID returns the ID of the most recent run.
func (db *DB) GetLatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.New("no runs recorded yet")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// GetRunFetches returns the fetch attempts of a run in page order.
func (db *DB) GetRunFetches(runID int64) ([]FetchRecord, error) {
	rows, err := db.Query(`
		SELECT p.page_index, p.url, p.filename,
		       f.status_code, f.error_type, f.success, f.size_bytes, f.duration_ms
		FROM fetches f
		JOIN pages p ON p.page_id = f.page_id
		WHERE f.run_id = ?
		ORDER BY p.page_index ASC, f.fetch_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run fetches: %w", err)
	}
	defer rows.Close()

	var records []FetchRecord
	for rows.Next() {
		var rec FetchRecord
		var statusCode, sizeBytes, durationMs sql.NullInt64
		var errorType sql.NullString
		if err := rows.Scan(&rec.PageIndex, &rec.URL, &rec.Filename, &statusCode, &errorType, &rec.Success, &sizeBytes, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan fetch: %w", err)
		}
		rec.StatusCode = int(statusCode.Int64)
		rec.ErrorType = errorType.String
		rec.SizeBytes = sizeBytes.Int64
		rec.DurationMs = durationMs.Int64
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fetches: %w", err)
	}

	return records, nil
}
