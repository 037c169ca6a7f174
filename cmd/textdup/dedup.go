package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/textdup/textdup/app"
	"github.com/textdup/textdup/domain"
	"github.com/textdup/textdup/service"
)

// DedupCommand handles the duplicate detection CLI command
type DedupCommand struct {
	// Input parameters
	recursive       bool
	configFile      string
	includePatterns []string
	excludePatterns []string

	// Engine configuration
	signatureSize int
	numBands      int
	shingleSize   int
	minWords      int
	seed          int64
	seedSet       bool
	expectedDocs  int

	// Detection
	threshold float64

	// Output format flags (only one should be true)
	json bool
	yaml bool
	csv  bool

	showDetails bool
}

// NewDedupCommand creates a new dedup command
func NewDedupCommand() *DedupCommand {
	return &DedupCommand{
		recursive: true,
		threshold: domain.DefaultSimilarityThreshold,
	}
}

// CreateCobraCommand creates the cobra command for duplicate detection
func (c *DedupCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedup [paths...]",
		Short: "Find near-duplicate text files",
		Long: `Find near-duplicate text files in the given paths.

Every file is shingled, MinHash-signed and indexed; pairs of files
whose estimated similarity meets the threshold are reported.

Examples:
  # Scan a directory with defaults
  textdup dedup ./articles

  # Stricter threshold, JSON output
  textdup dedup --threshold 0.7 --json ./articles

  # Reproducible signatures across runs
  textdup dedup --seed 42 ./articles`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runDedup,
	}

	flags := cmd.Flags()
	flags.BoolVarP(&c.recursive, "recursive", "r", true, "Recursively scan directories")
	flags.StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	flags.StringSliceVar(&c.includePatterns, "include", nil, "Include file patterns (doublestar globs)")
	flags.StringSliceVar(&c.excludePatterns, "exclude", nil, "Exclude file patterns (doublestar globs)")

	flags.IntVar(&c.signatureSize, "signature-size", 0, "Number of MinHash functions (default 100)")
	flags.IntVar(&c.numBands, "bands", 0, "Number of LSH bands (default 20)")
	flags.IntVar(&c.shingleSize, "shingle-size", 0, "Shingle window width in bytes (default 5)")
	flags.IntVar(&c.minWords, "min-words", 0, "Minimum word count per document (default 4)")
	flags.Int64Var(&c.seed, "seed", 0, "Deterministic coefficient seed")
	flags.IntVar(&c.expectedDocs, "expected-docs", 0, "Expected corpus size for table sizing (default 1024)")

	flags.Float64VarP(&c.threshold, "threshold", "t", domain.DefaultSimilarityThreshold,
		"Minimum similarity for a reported pair")

	flags.BoolVar(&c.json, "json", false, "Output as JSON")
	flags.BoolVar(&c.yaml, "yaml", false, "Output as YAML")
	flags.BoolVar(&c.csv, "csv", false, "Output as CSV")
	flags.BoolVar(&c.showDetails, "details", false, "Show per-pair details")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		c.seedSet = GetExplicitFlags(cmd)["seed"]
	}

	return cmd
}

func (c *DedupCommand) runDedup(cmd *cobra.Command, args []string) error {
	req, err := c.buildRequest(args)
	if err != nil {
		return err
	}

	useCase := app.NewDedupUseCase(service.NewProgressManager())
	response, err := useCase.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	if response.Summary.MaxLoadFactor > 0.9 {
		fmt.Fprintln(os.Stderr,
			"warning: bucket tables above 90% load; raise --expected-docs to avoid dropped inserts")
	}

	return nil
}

func (c *DedupCommand) buildRequest(paths []string) (*domain.DedupRequest, error) {
	format, err := resolveOutputFormat(c.json, c.yaml, c.csv)
	if err != nil {
		return nil, err
	}

	req := &domain.DedupRequest{
		Paths:           paths,
		Recursive:       c.recursive,
		ConfigPath:      c.configFile,
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
		SignatureSize:   c.signatureSize,
		NumBands:        c.numBands,
		ShingleSize:     c.shingleSize,
		MinWords:        c.minWords,
		ExpectedDocs:    c.expectedDocs,
		Threshold:       c.threshold,
		OutputFormat:    format,
		OutputWriter:    os.Stdout,
		ShowDetails:     c.showDetails,
	}
	if c.seedSet {
		seed := uint64(c.seed)
		req.Seed = &seed
	}
	return req, nil
}

// resolveOutputFormat maps the mutually exclusive format flags to one
// output format, defaulting to text.
func resolveOutputFormat(json, yaml, csv bool) (domain.OutputFormat, error) {
	count := 0
	format := domain.OutputFormatText
	if json {
		count++
		format = domain.OutputFormatJSON
	}
	if yaml {
		count++
		format = domain.OutputFormatYAML
	}
	if csv {
		count++
		format = domain.OutputFormatCSV
	}
	if count > 1 {
		return "", fmt.Errorf("only one of --json, --yaml, --csv may be set")
	}
	return format, nil
}

// NewDedupCmd creates the dedup cobra command
func NewDedupCmd() *cobra.Command {
	return NewDedupCommand().CreateCobraCommand()
}
