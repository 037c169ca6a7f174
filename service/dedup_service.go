package service

import (
	"context"
	"fmt"
	"time"

	"github.com/textdup/textdup/domain"
	"github.com/textdup/textdup/internal/analyzer"
)

// DedupService implements the domain.DedupService interface.
type DedupService struct {
	progress domain.ProgressManager
	reader   domain.FileReader
}

// NewDedupService creates a new dedup service.
// progress can be nil - the service can work without progress reporting
func NewDedupService(progress domain.ProgressManager, reader domain.FileReader) *DedupService {
	if reader == nil {
		reader = NewFileReader()
	}
	return &DedupService{
		progress: progress,
		reader:   reader,
	}
}

// DetectDuplicates indexes every file in the request and reports all
// pairs at or above the similarity threshold. req.Paths must already
// contain resolved file paths (the use case layer collects them).
func (s *DedupService) DetectDuplicates(ctx context.Context, req *domain.DedupRequest) (*domain.DedupResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("dedup request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	index, files, warnings, err := s.buildIndex(ctx, req)
	if err != nil {
		return nil, err
	}

	threshold := req.Threshold
	pairs := index.FindSimilarPairs(threshold)

	response := &domain.DedupResponse{
		Pairs:       make([]domain.DuplicatePair, 0, len(pairs)),
		Warnings:    warnings,
		GeneratedAt: time.Now(),
	}
	for _, pair := range pairs {
		response.Pairs = append(response.Pairs, domain.DuplicatePair{
			File1:      files[pair.A],
			File2:      files[pair.B],
			Similarity: pair.Similarity,
		})
	}

	response.Summary = s.summarize(req, index, len(req.Paths), len(files))
	response.Summary.DuplicatePairs = len(response.Pairs)
	response.Duration = time.Since(startTime).Milliseconds()

	return response, nil
}

// FindSimilar indexes the request's files and scores them against the
// query text, best match first.
func (s *DedupService) FindSimilar(ctx context.Context, req *domain.QueryRequest) (*domain.QueryResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("query request cannot be nil")
	}
	if req.QueryText == "" {
		return nil, domain.NewValidationError("query text cannot be empty")
	}
	if err := req.DedupRequest.Validate(); err != nil {
		return nil, err
	}

	index, files, _, err := s.buildIndex(ctx, &req.DedupRequest)
	if err != nil {
		return nil, err
	}

	scores := index.QueryWithScores(req.QueryText)

	response := &domain.QueryResponse{
		Matches:     make([]domain.QueryMatch, 0, len(scores)),
		GeneratedAt: time.Now(),
	}
	for _, score := range scores {
		response.Matches = append(response.Matches, domain.QueryMatch{
			File:       files[score.DocID],
			Similarity: score.Similarity,
		})
	}
	response.Summary = s.summarize(&req.DedupRequest, index, len(req.Paths), len(files))

	return response, nil
}

// buildIndex reads every file and adds it to a fresh LSH index. The
// returned map resolves document ids back to file paths.
func (s *DedupService) buildIndex(ctx context.Context, req *domain.DedupRequest) (*analyzer.LSHIndex, map[int32]string, []string, error) {
	engine, err := analyzer.NewEngine(analyzer.Options{
		SignatureSize: req.SignatureSize,
		NumBands:      req.NumBands,
		ShingleSize:   req.ShingleSize,
		MinWords:      req.MinWords,
		DefaultWeight: req.DefaultWeight,
		Seed:          req.Seed,
	})
	if err != nil {
		return nil, nil, nil, domain.NewConfigError("invalid engine configuration", err)
	}

	expectedDocs := req.ExpectedDocs
	if expectedDocs <= 0 {
		expectedDocs = domain.DefaultExpectedDocs
	}
	index := analyzer.NewLSHIndex(engine, expectedDocs)

	if s.progress != nil {
		s.progress.Initialize(len(req.Paths))
		s.progress.Start()
		defer s.progress.Close()
	}

	files := make(map[int32]string, len(req.Paths))
	var warnings []string
	docID := int32(0)
	for i, path := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, nil, nil, domain.NewIndexError("indexing interrupted", ctx.Err())
		default:
		}

		content, err := s.reader.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped %s: %v", path, err))
			continue
		}

		index.Add(docID, string(content))
		files[docID] = path
		docID++

		if s.progress != nil {
			s.progress.Update(i+1, len(req.Paths))
		}
	}

	if s.progress != nil {
		s.progress.Complete(true)
	}

	return index, files, warnings, nil
}

func (s *DedupService) summarize(req *domain.DedupRequest, index *analyzer.LSHIndex, scanned, indexed int) domain.DedupSummary {
	maxLoad := 0.0
	for _, lf := range index.LoadFactors() {
		if lf > maxLoad {
			maxLoad = lf
		}
	}
	return domain.DedupSummary{
		FilesScanned:  scanned,
		FilesIndexed:  indexed,
		FilesSkipped:  scanned - indexed,
		Threshold:     req.Threshold,
		MaxLoadFactor: maxLoad,
	}
}
