package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textdup/textdup/domain"
)

func writeTextFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDedupUseCase_Execute(t *testing.T) {
	dir := t.TempDir()
	text := "bitcoin price surge continues amid market volatility today"
	writeTextFile(t, dir, "a.txt", text)
	writeTextFile(t, dir, "b.txt", text)
	writeTextFile(t, dir, "c.txt", "local football team wins championship after dramatic final match")

	var buf bytes.Buffer
	seed := uint64(0xfeed)
	req := &domain.DedupRequest{
		Paths:        []string{dir},
		Recursive:    true,
		Seed:         &seed,
		Threshold:    0.4,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &buf,
	}

	uc := NewDedupUseCase(nil)
	response, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, response.Pairs, 1)
	assert.Equal(t, 1.0, response.Pairs[0].Similarity)
	assert.Contains(t, buf.String(), "Near-Duplicate Detection Report")
	assert.Contains(t, buf.String(), "a.txt")

	// prepare resolved the directory into concrete files
	assert.Len(t, req.Paths, 3)
}

func TestDedupUseCase_Detect_NoWriterNeeded(t *testing.T) {
	dir := t.TempDir()
	writeTextFile(t, dir, "a.txt", "bitcoin price surge continues amid market volatility today")

	req := &domain.DedupRequest{Paths: []string{dir}, Recursive: true}
	response, err := NewDedupUseCase(nil).Detect(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, response.Pairs)
}

func TestDedupUseCase_ExecuteQuery(t *testing.T) {
	dir := t.TempDir()
	text := "bitcoin price surges to new record high amid strong demand"
	exact := writeTextFile(t, dir, "exact.txt", text)
	writeTextFile(t, dir, "other.txt", "local football team wins championship after dramatic final match")

	var buf bytes.Buffer
	seed := uint64(0xfeed)
	req := &domain.QueryRequest{
		QueryText: text,
		DedupRequest: domain.DedupRequest{
			Paths:        []string{dir},
			Recursive:    true,
			Seed:         &seed,
			OutputFormat: domain.OutputFormatText,
			OutputWriter: &buf,
		},
	}

	response, err := NewDedupUseCase(nil).ExecuteQuery(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, response.Matches)
	assert.Equal(t, exact, response.Matches[0].File)
	assert.Equal(t, 1.0, response.Matches[0].Similarity)
	assert.Contains(t, buf.String(), "Similarity Query Report")
}

func TestDedupUseCase_NoTextFilesFound(t *testing.T) {
	dir := t.TempDir()
	writeTextFile(t, dir, "binary.bin", "not a text extension")

	req := &domain.DedupRequest{Paths: []string{dir}, Recursive: true}
	_, err := NewDedupUseCase(nil).Execute(context.Background(), req)
	require.Error(t, err)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeInvalidInput, domainErr.Code)
}

func TestDedupUseCase_MissingPath(t *testing.T) {
	req := &domain.DedupRequest{Paths: []string{"/nonexistent/corpus"}}
	_, err := NewDedupUseCase(nil).Execute(context.Background(), req)
	assert.Error(t, err)
}
