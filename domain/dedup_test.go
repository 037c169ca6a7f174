package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupRequest_Validate(t *testing.T) {
	req := &DedupRequest{Paths: []string{"./docs"}, Threshold: 0.5}
	assert.NoError(t, req.Validate())
}

func TestDedupRequest_Validate_NoPaths(t *testing.T) {
	req := &DedupRequest{Threshold: 0.5}
	assert.Error(t, req.Validate())
}

func TestDedupRequest_Validate_BadThreshold(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1.5} {
		req := &DedupRequest{Paths: []string{"."}, Threshold: threshold}
		assert.Error(t, req.Validate(), "threshold %f", threshold)
	}
}

func TestDedupRequest_Validate_IndivisibleBands(t *testing.T) {
	req := &DedupRequest{
		Paths:         []string{"."},
		Threshold:     0.5,
		SignatureSize: 100,
		NumBands:      33,
	}
	assert.Error(t, req.Validate())
}

func TestDomainError_Format(t *testing.T) {
	cause := errors.New("boom")
	err := NewConfigError("bad config", cause)

	assert.Contains(t, err.Error(), ErrCodeConfigError)
	assert.Contains(t, err.Error(), "bad config")
	assert.Contains(t, err.Error(), "boom")
	assert.ErrorIs(t, err, cause)
}

func TestDomainError_WithoutCause(t *testing.T) {
	err := NewValidationError("missing field")
	assert.Equal(t, "[INVALID_INPUT] missing field", err.Error())
}

func TestTextDocument_Adapter(t *testing.T) {
	var doc Document = TextDocument("breaking news headline")
	require.Equal(t, "breaking news headline", doc.Text())
}
