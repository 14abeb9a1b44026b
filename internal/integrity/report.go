package integrity

// Report is the structured outcome of one validation. Callers render it as
// text or JSON; the validator never retains it.
type Report struct {
	Path                 string   `json:"path,omitempty"`
	FormatDetected       string   `json:"format_detected,omitempty"`
	ExtractionSuccessful bool     `json:"extraction_successful"`
	SizeMatch            bool     `json:"size_match"`
	ChecksumMatch        bool     `json:"checksum_match"`
	DataIntegrityValid   bool     `json:"data_integrity_valid"`
	ExtractedSize        int      `json:"extracted_size"`
	OriginalSize         int      `json:"original_size,omitempty"`
	ExtractedChecksum    string   `json:"extracted_checksum,omitempty"`
	OriginalChecksum     string   `json:"original_checksum,omitempty"`
	Errors               []string `json:"errors"`
	Warnings             []string `json:"warnings"`
}

func (r *Report) addError(message string)   { r.Errors = append(r.Errors, message) }
func (r *Report) addWarning(message string) { r.Warnings = append(r.Warnings, message) }

// Totals summarize a batch run.
type Totals struct {
	Processed int `json:"processed"`
	Valid     int `json:"valid"`
	Errored   int `json:"errored"`
}

// BatchResult maps container filenames to their reports. Files preserves
// lexical filename order for deterministic iteration regardless of worker
// completion order.
type BatchResult struct {
	Files   []string          `json:"files"`
	Reports map[string]Report `json:"per_file"`
	Totals  Totals            `json:"totals"`
}
