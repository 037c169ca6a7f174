package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/textdup/textdup/app"
	"github.com/textdup/textdup/domain"
	"github.com/textdup/textdup/service"
)

// QueryCommand handles the similarity query CLI command
type QueryCommand struct {
	recursive       bool
	configFile      string
	includePatterns []string
	excludePatterns []string

	queryFile string
	queryText string

	json bool
	yaml bool
	csv  bool
}

// NewQueryCommand creates a new query command
func NewQueryCommand() *QueryCommand {
	return &QueryCommand{recursive: true}
}

// CreateCobraCommand creates the cobra command for similarity queries
func (c *QueryCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [paths...]",
		Short: "Find files similar to a query document",
		Long: `Index the text files in the given paths and rank them by
similarity to a query document.

The query is read from --text, from --file, or from stdin when neither
is given.

Examples:
  # Query from a file
  textdup query --file breaking.txt ./articles

  # Query from the command line
  textdup query --text "bitcoin price surges to new record" ./articles

  # Query from stdin
  cat breaking.txt | textdup query ./articles`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runQuery,
	}

	flags := cmd.Flags()
	flags.BoolVarP(&c.recursive, "recursive", "r", true, "Recursively scan directories")
	flags.StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	flags.StringSliceVar(&c.includePatterns, "include", nil, "Include file patterns (doublestar globs)")
	flags.StringSliceVar(&c.excludePatterns, "exclude", nil, "Exclude file patterns (doublestar globs)")
	flags.StringVarP(&c.queryFile, "file", "f", "", "File containing the query text")
	flags.StringVar(&c.queryText, "text", "", "Query text")
	flags.BoolVar(&c.json, "json", false, "Output as JSON")
	flags.BoolVar(&c.yaml, "yaml", false, "Output as YAML")
	flags.BoolVar(&c.csv, "csv", false, "Output as CSV")

	return cmd
}

func (c *QueryCommand) runQuery(cmd *cobra.Command, args []string) error {
	queryText, err := c.resolveQueryText()
	if err != nil {
		return err
	}

	format, err := resolveOutputFormat(c.json, c.yaml, c.csv)
	if err != nil {
		return err
	}

	req := &domain.QueryRequest{
		QueryText: queryText,
		DedupRequest: domain.DedupRequest{
			Paths:           args,
			Recursive:       c.recursive,
			ConfigPath:      c.configFile,
			IncludePatterns: c.includePatterns,
			ExcludePatterns: c.excludePatterns,
			Threshold:       domain.DefaultSimilarityThreshold,
			OutputFormat:    format,
			OutputWriter:    os.Stdout,
		},
	}

	useCase := app.NewDedupUseCase(service.NewProgressManager())
	_, err = useCase.ExecuteQuery(context.Background(), req)
	return err
}

func (c *QueryCommand) resolveQueryText() (string, error) {
	if c.queryText != "" && c.queryFile != "" {
		return "", fmt.Errorf("only one of --text and --file may be set")
	}
	if c.queryText != "" {
		return c.queryText, nil
	}
	if c.queryFile != "" {
		content, err := os.ReadFile(c.queryFile)
		if err != nil {
			return "", fmt.Errorf("cannot read query file: %w", err)
		}
		return string(content), nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("cannot read query from stdin: %w", err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("no query text given; use --text, --file, or pipe to stdin")
	}
	return string(content), nil
}

// NewQueryCmd creates the query cobra command
func NewQueryCmd() *cobra.Command {
	return NewQueryCommand().CreateCobraCommand()
}
