package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/textdup/textdup/domain"
)

// OutputFormatterImpl implements the domain.DedupFormatter interface.
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Format formats the dedup response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.DedupResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return marshalJSON(response)
	case domain.OutputFormatYAML:
		return marshalYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatQuery formats a query response according to the specified format
func (f *OutputFormatterImpl) FormatQuery(response *domain.QueryResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatQueryText(response)
	case domain.OutputFormatJSON:
		return marshalJSON(response)
	case domain.OutputFormatYAML:
		return marshalYAML(response)
	case domain.OutputFormatCSV:
		return f.formatQueryCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.DedupResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

func (f *OutputFormatterImpl) formatText(response *domain.DedupResponse) (string, error) {
	var builder strings.Builder

	builder.WriteString("Near-Duplicate Detection Report\n")
	builder.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&builder, "Files scanned:    %d\n", response.Summary.FilesScanned)
	fmt.Fprintf(&builder, "Files indexed:    %d\n", response.Summary.FilesIndexed)
	fmt.Fprintf(&builder, "Files skipped:    %d\n", response.Summary.FilesSkipped)
	fmt.Fprintf(&builder, "Duplicate pairs:  %d\n", response.Summary.DuplicatePairs)
	fmt.Fprintf(&builder, "Threshold:        %.2f\n", response.Summary.Threshold)
	fmt.Fprintf(&builder, "Max load factor:  %.2f\n", response.Summary.MaxLoadFactor)
	builder.WriteString("\n")

	if len(response.Pairs) > 0 {
		builder.WriteString("DUPLICATE PAIRS\n")
		builder.WriteString(strings.Repeat("-", 60) + "\n")
		for _, pair := range response.Pairs {
			fmt.Fprintf(&builder, "%.3f  %s\n       %s\n", pair.Similarity, pair.File1, pair.File2)
		}
		builder.WriteString("\n")
	}

	for _, warning := range response.Warnings {
		fmt.Fprintf(&builder, "Warning: %s\n", warning)
	}

	return builder.String(), nil
}

func (f *OutputFormatterImpl) formatQueryText(response *domain.QueryResponse) (string, error) {
	var builder strings.Builder

	builder.WriteString("Similarity Query Report\n")
	builder.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&builder, "Files indexed:  %d\n", response.Summary.FilesIndexed)
	fmt.Fprintf(&builder, "Matches:        %d\n\n", len(response.Matches))

	for _, match := range response.Matches {
		fmt.Fprintf(&builder, "%.3f  %s\n", match.Similarity, match.File)
	}

	return builder.String(), nil
}

func (f *OutputFormatterImpl) formatCSV(response *domain.DedupResponse) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	if err := w.Write([]string{"file1", "file2", "similarity"}); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}
	for _, pair := range response.Pairs {
		record := []string{pair.File1, pair.File2, strconv.FormatFloat(pair.Similarity, 'f', 4, 64)}
		if err := w.Write(record); err != nil {
			return "", domain.NewOutputError("failed to write CSV record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV", err)
	}

	return builder.String(), nil
}

func (f *OutputFormatterImpl) formatQueryCSV(response *domain.QueryResponse) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	if err := w.Write([]string{"file", "similarity"}); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}
	for _, match := range response.Matches {
		record := []string{match.File, strconv.FormatFloat(match.Similarity, 'f', 4, 64)}
		if err := w.Write(record); err != nil {
			return "", domain.NewOutputError("failed to write CSV record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV", err)
	}

	return builder.String(), nil
}

func marshalJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data) + "\n", nil
}

func marshalYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}
