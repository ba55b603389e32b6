package crawl

// Error type labels recorded per failed page.
const (
	ErrorTypeNetwork     = "network_error"
	ErrorTypeHTTP        = "http_error"
	ErrorTypeContentType = "content_type"
	ErrorTypeSave        = "save_error"
)

// Result holds the outcome of one page in the range.
type Result struct {
	Index      int
	URL        string
	Filename   string
	FilePath   string
	StatusCode int
	Error      error
	ErrorType  string
	SizeBytes  int64
	DurationMs int64
}

// ResultOutput is the per-page entry in the printed run summary.
type ResultOutput struct {
	Index      int    `json:"index" yaml:"index"`
	URL        string `json:"url" yaml:"url"`
	Filename   string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Status     string `json:"status" yaml:"status"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType  string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	StartPage        int     `json:"start_page" yaml:"start_page"`
	EndPage          int     `json:"end_page" yaml:"end_page"`
	TotalPages       int     `json:"total_pages" yaml:"total_pages"`
	Successful       int     `json:"successful" yaml:"successful"`
	Failed           int     `json:"failed" yaml:"failed"`
	TotalTimeSeconds float64 `json:"total_time_seconds" yaml:"total_time_seconds"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status   string         `json:"status" yaml:"status"`
	Manifest string         `json:"manifest" yaml:"manifest"`
	Results  []ResultOutput `json:"results" yaml:"results"`
	Stats    Stats          `json:"stats" yaml:"stats"`
}

// BuildOutput converts raw results into the printable summary.
func BuildOutput(r Result) ResultOutput {
	out := ResultOutput{
		Index:      r.Index,
		URL:        r.URL,
		StatusCode: r.StatusCode,
	}
	if r.Error != nil {
		out.Status = "failed"
		out.Error = r.Error.Error()
		out.ErrorType = r.ErrorType
	} else {
		out.Status = "success"
		out.Filename = r.Filename
		out.SizeBytes = r.SizeBytes
	}
	return out
}
