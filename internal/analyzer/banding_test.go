package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBands_CountAndIndices(t *testing.T) {
	cfg := newTestEngine(t, Options{SignatureSize: 100, NumBands: 20}).Config()
	sig := cfg.ComputeSignature("bitcoin price surge continues amid market volatility")

	bands := cfg.GenerateBands(sig)
	require.Len(t, bands, 20)

	seen := make(map[int]bool)
	for _, band := range bands {
		assert.GreaterOrEqual(t, band.Index, 0)
		assert.Less(t, band.Index, 20)
		assert.False(t, seen[band.Index], "band index %d appears twice", band.Index)
		seen[band.Index] = true
	}
}

func TestGenerateBands_WrongSignatureLength(t *testing.T) {
	cfg := newTestEngine(t, Options{SignatureSize: 100, NumBands: 20}).Config()
	assert.Nil(t, cfg.GenerateBands(make(Signature, 50)))
	assert.Nil(t, cfg.GenerateBands(nil))
}

func TestGenerateBands_FoldConsistency(t *testing.T) {
	cfg := newTestEngine(t, Options{SignatureSize: 100, NumBands: 20}).Config()
	sig := cfg.ComputeSignature("bitcoin price surge continues amid market volatility")

	// Equal content must fold identically whatever slice backs it.
	direct := cfg.GenerateBands(sig)
	viaClone := cfg.GenerateBands(sig.Clone())
	viaBytes, err := SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)

	assert.Equal(t, direct, viaClone)
	assert.Equal(t, direct, cfg.GenerateBands(viaBytes))
}

func TestGenerateBands_DifferentSignaturesDiffer(t *testing.T) {
	cfg := newTestEngine(t, Options{SignatureSize: 100, NumBands: 20}).Config()
	a := cfg.GenerateBands(cfg.ComputeSignature("bitcoin price surge continues amid market volatility"))
	b := cfg.GenerateBands(cfg.ComputeSignature("local football team wins championship after dramatic final"))
	assert.NotEqual(t, a, b)
}

func TestDetectionProbability_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, DetectionProbability(0.0, 5, 20))
	assert.InDelta(t, 1.0, DetectionProbability(1.0, 5, 20), 1e-12)
	assert.Equal(t, 0.0, DetectionProbability(-0.5, 5, 20))
}

func TestDetectionProbability_MonotonicInSimilarity(t *testing.T) {
	prev := 0.0
	for s := 0.0; s <= 1.0; s += 0.01 {
		p := DetectionProbability(s, 5, 20)
		assert.GreaterOrEqual(t, p, prev, "s=%f", s)
		assert.LessOrEqual(t, p, 1.0)
		prev = p
	}
}

func TestDetectionProbability_MoreBandsDetectMore(t *testing.T) {
	assert.Greater(t,
		DetectionProbability(0.5, 5, 40),
		DetectionProbability(0.5, 5, 10))
}
