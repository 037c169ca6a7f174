package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textdup/textdup/domain"
)

func seedPtr(s uint64) *uint64 { return &s }

func testDedupRequest(paths []string) *domain.DedupRequest {
	return &domain.DedupRequest{
		Paths:         paths,
		Recursive:     true,
		SignatureSize: 100,
		NumBands:      20,
		ShingleSize:   5,
		MinWords:      4,
		DefaultWeight: 1.0,
		Seed:          seedPtr(0xfeed),
		ExpectedDocs:  64,
		Threshold:     0.4,
		OutputFormat:  domain.OutputFormatText,
	}
}

func TestDetectDuplicates_FindsIdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	text := "bitcoin price surge continues amid market volatility today"
	a := writeFile(t, dir, "a.txt", text)
	b := writeFile(t, dir, "b.txt", text)
	c := writeFile(t, dir, "c.txt", "local football team wins championship after dramatic final match")

	svc := NewDedupService(nil, nil)
	response, err := svc.DetectDuplicates(context.Background(), testDedupRequest([]string{a, b, c}))
	require.NoError(t, err)

	require.Len(t, response.Pairs, 1)
	pair := response.Pairs[0]
	assert.ElementsMatch(t, []string{a, b}, []string{pair.File1, pair.File2})
	assert.Equal(t, 1.0, pair.Similarity)

	assert.Equal(t, 3, response.Summary.FilesScanned)
	assert.Equal(t, 3, response.Summary.FilesIndexed)
	assert.Equal(t, 1, response.Summary.DuplicatePairs)
	assert.Greater(t, response.Summary.MaxLoadFactor, 0.0)
}

func TestDetectDuplicates_NoDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "bitcoin price surge continues amid market volatility today")
	b := writeFile(t, dir, "b.txt", "local football team wins championship after dramatic final match")

	svc := NewDedupService(nil, nil)
	response, err := svc.DetectDuplicates(context.Background(), testDedupRequest([]string{a, b}))
	require.NoError(t, err)
	assert.Empty(t, response.Pairs)
}

func TestDetectDuplicates_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "bitcoin price surge continues amid market volatility today")

	req := testDedupRequest([]string{a, filepath.Join(dir, "missing.txt")})
	svc := NewDedupService(nil, nil)
	response, err := svc.DetectDuplicates(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, response.Summary.FilesScanned)
	assert.Equal(t, 1, response.Summary.FilesIndexed)
	assert.Equal(t, 1, response.Summary.FilesSkipped)
	assert.Len(t, response.Warnings, 1)
}

func TestDetectDuplicates_InvalidRequest(t *testing.T) {
	svc := NewDedupService(nil, nil)

	_, err := svc.DetectDuplicates(context.Background(), nil)
	assert.Error(t, err)

	req := testDedupRequest(nil)
	_, err = svc.DetectDuplicates(context.Background(), req)
	assert.Error(t, err)

	req = testDedupRequest([]string{"a.txt"})
	req.Threshold = 2.0
	_, err = svc.DetectDuplicates(context.Background(), req)
	assert.Error(t, err)
}

func TestDetectDuplicates_ZeroParametersUseDefaults(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "some text here for the corpus")

	req := testDedupRequest([]string{a})
	req.SignatureSize = 0
	req.NumBands = 0
	req.ShingleSize = 0
	_, err := NewDedupService(nil, nil).DetectDuplicates(context.Background(), req)
	assert.NoError(t, err)
}

func TestDetectDuplicates_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "bitcoin price surge continues amid market volatility today")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDedupService(nil, nil).DetectDuplicates(ctx, testDedupRequest([]string{a}))
	assert.ErrorIs(t, err, context.Canceled)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeIndexError, domainErr.Code)
}

func TestFindSimilar_RanksMatches(t *testing.T) {
	dir := t.TempDir()
	text := "bitcoin price surges to new record high amid strong demand"
	exact := writeFile(t, dir, "exact.txt", text)
	near := writeFile(t, dir, "near.txt", "bitcoin price surges to new record high amid heavy demand")
	far := writeFile(t, dir, "far.txt", "local football team wins championship after dramatic final match")

	req := &domain.QueryRequest{
		QueryText:    text,
		DedupRequest: *testDedupRequest([]string{exact, near, far}),
	}
	req.SignatureSize = 200
	req.NumBands = 40

	response, err := NewDedupService(nil, nil).FindSimilar(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, response.Matches)
	assert.Equal(t, exact, response.Matches[0].File)
	assert.Equal(t, 1.0, response.Matches[0].Similarity)
	for i := 1; i < len(response.Matches); i++ {
		assert.GreaterOrEqual(t, response.Matches[i-1].Similarity, response.Matches[i].Similarity)
	}
}

func TestFindSimilar_EmptyQuery(t *testing.T) {
	req := &domain.QueryRequest{DedupRequest: *testDedupRequest([]string{"x.txt"})}
	_, err := NewDedupService(nil, nil).FindSimilar(context.Background(), req)
	assert.Error(t, err)
}
