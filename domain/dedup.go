package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the output format for reports
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// Document is anything that can expose its text. Adapters bridge
// caller-side document types onto the plain-text engine API.
type Document interface {
	Text() string
}

// TextDocument is the trivial Document over a plain string.
type TextDocument string

// Text implements Document.
func (d TextDocument) Text() string { return string(d) }

// DedupRequest describes one duplicate-detection run.
type DedupRequest struct {
	// Input
	Paths           []string
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	ConfigPath      string

	// Engine tuning
	SignatureSize int
	NumBands      int
	ShingleSize   int
	MinWords      int
	DefaultWeight float64
	Seed          *uint64
	ExpectedDocs  int

	// Detection
	Threshold float64

	// Output
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool
}

// Validate checks the request for structural errors.
func (req *DedupRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("no input paths specified")
	}
	if req.Threshold < 0 || req.Threshold > 1 {
		return NewValidationError("threshold must be between 0.0 and 1.0")
	}
	if req.NumBands > 0 && req.SignatureSize > 0 && req.SignatureSize%req.NumBands != 0 {
		return NewValidationError("signature size must be divisible by the number of bands")
	}
	return nil
}

// DuplicatePair is one reported near-duplicate file pair.
type DuplicatePair struct {
	File1      string  `json:"file1" yaml:"file1" csv:"file1"`
	File2      string  `json:"file2" yaml:"file2" csv:"file2"`
	Similarity float64 `json:"similarity" yaml:"similarity" csv:"similarity"`
}

// DedupSummary aggregates one run's results.
type DedupSummary struct {
	FilesScanned   int     `json:"files_scanned" yaml:"files_scanned"`
	FilesIndexed   int     `json:"files_indexed" yaml:"files_indexed"`
	FilesSkipped   int     `json:"files_skipped" yaml:"files_skipped"`
	DuplicatePairs int     `json:"duplicate_pairs" yaml:"duplicate_pairs"`
	Threshold      float64 `json:"threshold" yaml:"threshold"`
	MaxLoadFactor  float64 `json:"max_load_factor" yaml:"max_load_factor"`
}

// DedupResponse is the result of a duplicate-detection run.
type DedupResponse struct {
	Pairs       []DuplicatePair `json:"pairs" yaml:"pairs"`
	Summary     DedupSummary    `json:"summary" yaml:"summary"`
	Warnings    []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Duration    int64           `json:"duration_ms" yaml:"duration_ms"`
}

// QueryRequest asks for documents similar to one query text.
type QueryRequest struct {
	QueryText string
	DedupRequest
}

// QueryMatch is one scored query result.
type QueryMatch struct {
	File       string  `json:"file" yaml:"file" csv:"file"`
	Similarity float64 `json:"similarity" yaml:"similarity" csv:"similarity"`
}

// QueryResponse is the result of a similarity query.
type QueryResponse struct {
	Matches     []QueryMatch `json:"matches" yaml:"matches"`
	Summary     DedupSummary `json:"summary" yaml:"summary"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
}

// DedupService runs duplicate detection.
type DedupService interface {
	// DetectDuplicates indexes the request's files and reports all
	// pairs at or above the threshold.
	DetectDuplicates(ctx context.Context, req *DedupRequest) (*DedupResponse, error)

	// FindSimilar indexes the request's files and scores them against
	// the query text.
	FindSimilar(ctx context.Context, req *QueryRequest) (*QueryResponse, error)
}

// FileReader abstracts file collection and reading.
type FileReader interface {
	CollectTextFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	IsValidTextFile(path string) bool
}

// DedupFormatter formats dedup responses.
type DedupFormatter interface {
	Format(response *DedupResponse, format OutputFormat) (string, error)
	FormatQuery(response *QueryResponse, format OutputFormat) (string, error)
	Write(response *DedupResponse, format OutputFormat, writer io.Writer) error
}

// ProgressManager manages progress tracking for long runs.
type ProgressManager interface {
	Initialize(maxValue int)
	Start()
	Update(processed, total int)
	Complete(success bool)
	SetWriter(writer io.Writer)
	IsInteractive() bool
	Close()
}
