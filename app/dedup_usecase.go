package app

import (
	"context"
	"fmt"

	"github.com/textdup/textdup/domain"
	"github.com/textdup/textdup/service"
)

// DedupUseCase wires configuration loading, file collection, duplicate
// detection and output formatting behind one Execute call.
type DedupUseCase struct {
	configLoader *service.DedupConfigLoader
	fileReader   domain.FileReader
	dedupService domain.DedupService
	formatter    domain.DedupFormatter
}

// NewDedupUseCase creates a use case with the default service wiring.
func NewDedupUseCase(progress domain.ProgressManager) *DedupUseCase {
	reader := service.NewFileReader()
	return &DedupUseCase{
		configLoader: service.NewDedupConfigLoader(),
		fileReader:   reader,
		dedupService: service.NewDedupService(progress, reader),
		formatter:    service.NewOutputFormatter(),
	}
}

// Execute runs duplicate detection for the request and writes the
// formatted report to the request's output writer.
func (uc *DedupUseCase) Execute(ctx context.Context, req *domain.DedupRequest) (*domain.DedupResponse, error) {
	response, err := uc.Detect(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, err
		}
	}

	return response, nil
}

// Detect runs duplicate detection without writing a report.
func (uc *DedupUseCase) Detect(ctx context.Context, req *domain.DedupRequest) (*domain.DedupResponse, error) {
	if err := uc.prepare(req); err != nil {
		return nil, err
	}
	return uc.dedupService.DetectDuplicates(ctx, req)
}

// ExecuteQuery scores the request's files against the query text and
// writes the formatted report.
func (uc *DedupUseCase) ExecuteQuery(ctx context.Context, req *domain.QueryRequest) (*domain.QueryResponse, error) {
	if err := uc.prepare(&req.DedupRequest); err != nil {
		return nil, err
	}

	response, err := uc.dedupService.FindSimilar(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		output, err := uc.formatter.FormatQuery(response, req.OutputFormat)
		if err != nil {
			return nil, err
		}
		if _, err := req.OutputWriter.Write([]byte(output)); err != nil {
			return nil, domain.NewOutputError("failed to write output", err)
		}
	}

	return response, nil
}

// prepare merges file configuration and resolves the request's paths to
// concrete files.
func (uc *DedupUseCase) prepare(req *domain.DedupRequest) error {
	if err := uc.configLoader.LoadAndMerge(req); err != nil {
		return err
	}

	files, err := uc.fileReader.CollectTextFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return domain.NewInvalidInputError(
			fmt.Sprintf("no text files found in %v", req.Paths), nil)
	}
	req.Paths = files
	return nil
}
