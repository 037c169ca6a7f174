package analyzer

import "math"

// Band is one position-tagged slice hash of a signature. Two
// signatures that agree on every row of the same band collide on that
// band's hash, which is the AND-then-OR amplification LSH relies on.
type Band struct {
	Index int
	Hash  uint64
}

// GenerateBands partitions sig into NumBands contiguous row groups and
// folds each into one 64-bit hash. It returns nil when the signature
// was built under a different signature size.
func (c *EngineConfig) GenerateBands(sig Signature) []Band {
	if len(sig) != c.SignatureSize {
		return nil
	}
	bands := make([]Band, c.NumBands)
	r := c.RowsPerBand
	for i := 0; i < c.NumBands; i++ {
		bands[i] = Band{Index: i, Hash: foldBand(sig[i*r : (i+1)*r])}
	}
	return bands
}

// foldBand is the single band fold used everywhere: index insertion and
// querying must agree on it bit for bit, whatever storage backs the
// slice.
func foldBand(rows []uint32) uint64 {
	var h uint64
	for _, v := range rows {
		h = (h << 7) ^ uint64(v)
	}
	return h
}

// DetectionProbability returns the probability that two documents with
// true similarity s collide in at least one of bands bands of rows rows
// each: 1 - (1 - s^rows)^bands. Used for tuning, not per document.
func DetectionProbability(s float64, rows, bands int) float64 {
	if s <= 0 {
		return 0.0
	}
	if s > 1 {
		s = 1
	}
	perBand := math.Pow(s, float64(rows))
	return 1.0 - math.Pow(1.0-perBand, float64(bands))
}
