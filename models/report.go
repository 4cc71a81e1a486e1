package models

// PageFailure records one page that could not be downloaded.
type PageFailure struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// DownloadReport summarises one bounded download run.
type DownloadReport struct {
	RunID            string        `json:"run_id"`
	Attempted        int           `json:"attempted"`
	Succeeded        int           `json:"succeeded"`
	Failed           int           `json:"failed"`
	SkippedRedirects int           `json:"skipped_redirects"`
	Failures         []PageFailure `json:"failures,omitempty"`
	ElapsedMs        int64         `json:"elapsed_ms"`
}

// FileFailure records one file that could not be converted.
type FileFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ConvertReport summarises one batch conversion run.
type ConvertReport struct {
	RunID     string        `json:"run_id"`
	Converted int           `json:"converted"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Failures  []FileFailure `json:"failures,omitempty"`
	ElapsedMs int64         `json:"elapsed_ms"`
}

// ConversionUnit describes one source file to target file conversion.
// Title prefers the fragment's leading heading and falls back to the
// filename with underscores read as spaces.
type ConversionUnit struct {
	SourcePath string
	TargetPath string
	Title      string
}
