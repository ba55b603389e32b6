package crawl

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"pagedump/internal/common"
	"pagedump/models"
	"pagedump/pkg/db"
	"pagedump/pkg/fetcher"
	"pagedump/pkg/manifest"
	"pagedump/pkg/storage"
)

// ErrInvalidRange marks a start/end pair that cannot form a crawl range.
var ErrInvalidRange = errors.New("invalid page range")

// ValidateRange rejects ranges before any network or filesystem activity.
func ValidateRange(start, end int) error {
	if start < 1 {
		return fmt.Errorf("%w: start must be at least 1, got %d", ErrInvalidRange, start)
	}
	if start > end {
		return fmt.Errorf("%w: start %d > end %d", ErrInvalidRange, start, end)
	}
	return nil
}

// Runner walks the page range one index at a time: build URL, GET, persist
// body, append manifest line. Per-page failures are logged and skipped; a
// manifest write failure aborts the run.
type Runner struct {
	cfg     *models.Config
	fetcher *fetcher.Fetcher
	store   *storage.Storage
	history *db.DB // nil when history is disabled
	logger  *slog.Logger
}

func NewRunner(cfg *models.Config, f *fetcher.Fetcher, s *storage.Storage, history *db.DB, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		fetcher: f,
		store:   s,
		history: history,
		logger:  logger,
	}
}

// Run fetches every index in [start, end] in ascending order, strictly one
// request in flight. It returns a result per attempted index. The returned
// error is non-nil only for failures that make further persistence
// unreliable (output directory or manifest).
func (r *Runner) Run(start, end int) ([]Result, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	if err := r.store.EnsureDir(r.cfg.OutputDir); err != nil {
		return nil, err
	}

	mw, err := manifest.OpenWriter(r.cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := mw.Close(); closeErr != nil {
			r.logger.Error("failed to close manifest", "error", closeErr)
		}
	}()

	var runID int64
	if r.history != nil {
		runID, err = r.history.CreateRun(start, end, r.cfg.URLTemplate)
		if err != nil {
			r.logger.Warn("failed to record run in history", "error", err)
			r.history = nil
		}
	}

	total := end - start + 1
	results := make([]Result, 0, total)

	for i := start; i <= end; i++ {
		req := models.PageRequest{
			Index: i,
			URL:   common.ExpandTemplate(r.cfg.URLTemplate, i),
		}
		result := r.fetchOne(req, mw)
		results = append(results, result)
		r.recordHistory(runID, result)

		if result.Error == nil {
			r.logger.Info("page saved",
				"index", result.Index,
				"filename", result.Filename,
				"size_bytes", result.SizeBytes)
			continue
		}

		if result.ErrorType == errorTypeManifest {
			// Subsequent records cannot be persisted reliably.
			r.finishHistory(runID, results)
			return results, result.Error
		}

		r.logger.Error("page failed",
			"index", result.Index,
			"url", result.URL,
			"error_type", result.ErrorType,
			"error", result.Error)
	}

	r.finishHistory(runID, results)
	return results, nil
}

// errorTypeManifest is internal to the runner: a manifest append failure is
// fatal, unlike the per-page error types.
const errorTypeManifest = "manifest_error"

func (r *Runner) fetchOne(req models.PageRequest, mw *manifest.Writer) Result {
	result := Result{
		Index:    req.Index,
		URL:      req.URL,
		Filename: common.FilenameForIndex(req.Index),
	}

	started := time.Now()
	resp, err := r.fetcher.Get(result.URL)
	result.DurationMs = time.Since(started).Milliseconds()

	if resp != nil {
		result.StatusCode = resp.StatusCode
	}
	if err != nil {
		result.Error = err
		result.ErrorType = classifyFetchError(err)
		return result
	}

	result.FilePath = filepath.Join(r.cfg.OutputDir, result.Filename)
	if err := r.store.SaveFile(result.FilePath, resp.Body); err != nil {
		result.Error = err
		result.ErrorType = ErrorTypeSave
		result.FilePath = ""
		return result
	}
	result.SizeBytes = int64(len(resp.Body))

	if err := mw.Append(result.Filename, result.URL); err != nil {
		result.Error = err
		result.ErrorType = errorTypeManifest
	}
	return result
}

func classifyFetchError(err error) string {
	switch {
	case errors.Is(err, fetcher.ErrUnexpectedStatus):
		return ErrorTypeHTTP
	case errors.Is(err, fetcher.ErrNotText):
		return ErrorTypeContentType
	default:
		return ErrorTypeNetwork
	}
}

func (r *Runner) recordHistory(runID int64, result Result) {
	if r.history == nil {
		return
	}

	pageID, err := r.history.InsertPage(result.Index, result.URL, result.Filename)
	if err != nil {
		r.logger.Warn("failed to record page in history", "url", result.URL, "error", err)
		return
	}

	success := result.Error == nil
	if err := r.history.RecordFetch(runID, pageID, result.StatusCode, result.ErrorType, success, result.SizeBytes, result.DurationMs); err != nil {
		r.logger.Warn("failed to record fetch in history", "url", result.URL, "error", err)
	}
}

func (r *Runner) finishHistory(runID int64, results []Result) {
	if r.history == nil {
		return
	}

	var success, failed int
	for _, res := range results {
		if res.Error != nil {
			failed++
		} else {
			success++
		}
	}

	if err := r.history.UpdateRunStats(runID, success, failed); err != nil {
		r.logger.Warn("failed to update run stats in history", "error", err)
	}
}
