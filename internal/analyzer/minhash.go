package analyzer

import (
	"math"
	"strings"
)

// weightMode selects how the core loop resolves per-shingle weights.
// One shared loop serves all entry points so the plain, string-weighted
// and pre-hashed-weighted paths can never drift apart.
type weightMode int

const (
	modeUnweighted weightMode = iota
	modeStringWeights
	modeHashedWeights
)

type weightLookup struct {
	mode     weightMode
	byString map[string]float64
	byHash   map[uint64]float64
}

// ComputeSignature maps text to a MinHash signature approximating
// Jaccard similarity over the text's shingle set. Degenerate input
// (empty after folding, fewer than MinWords tokens, or shorter than the
// shingle width) yields an all-zero signature.
func (c *EngineConfig) ComputeSignature(text string) Signature {
	return c.computeText(text, weightLookup{mode: modeUnweighted})
}

// ComputeWeightedSignature is ComputeSignature with per-shingle
// importance. Shingles absent from weights receive DefaultWeight;
// weights clamped to zero (including negative input) exclude the
// shingle entirely, and an input whose every shingle is excluded yields
// the all-zero signature. Higher weight means the shingle is more
// likely to win minimum slots, so rare or important shingles dominate.
func (c *EngineConfig) ComputeWeightedSignature(text string, weights map[string]float64) Signature {
	return c.computeText(text, weightLookup{mode: modeStringWeights, byString: weights})
}

// ComputeSignatureHashedWeights is ComputeWeightedSignature for a
// weight map keyed by pre-computed shingle hashes (see PrehashWeights).
// It skips the window-reconstruction lookup of the string-keyed path.
func (c *EngineConfig) ComputeSignatureHashedWeights(text string, weights map[uint64]float64) Signature {
	return c.computeText(text, weightLookup{mode: modeHashedWeights, byHash: weights})
}

// ComputeSignatureFromHashes builds a signature directly from a stream
// of pre-computed shingle hashes. The text gates do not apply; an empty
// stream yields an all-zero signature.
func (c *EngineConfig) ComputeSignatureFromHashes(hashes []uint64) Signature {
	return c.computeHashes(hashes, weightLookup{mode: modeUnweighted})
}

// ComputeWeightedSignatureFromHashes is the weighted variant of
// ComputeSignatureFromHashes.
func (c *EngineConfig) ComputeWeightedSignatureFromHashes(hashes []uint64, weights map[uint64]float64) Signature {
	return c.computeHashes(hashes, weightLookup{mode: modeHashedWeights, byHash: weights})
}

// PrehashWeights converts a string-keyed weight map into a hash-keyed
// one, so repeated signature computation over many documents does not
// re-hash the weight keys per call. Keys are expected to be exactly one
// shingle wide; keys of any other width can never match an emitted
// window hash.
func PrehashWeights(weights map[string]float64) map[uint64]float64 {
	out := make(map[uint64]float64, len(weights))
	for k, w := range weights {
		out[HashShingle([]byte(k))] = w
	}
	return out
}

func (c *EngineConfig) computeText(text string, lookup weightLookup) Signature {
	sig := make(Signature, c.SignatureSize)

	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return sig
	}
	if len(strings.Fields(normalized)) < c.MinWords {
		return sig
	}
	if len(normalized) < c.ShingleSize {
		return sig
	}

	minima := newMinima(c.SignatureSize)
	contributed := false
	sh := NewRollingShingler(c.ShingleSize)
	var window []byte
	for i := 0; i < len(normalized); i++ {
		h, ok := sh.Push(normalized[i])
		if !ok {
			continue
		}
		switch lookup.mode {
		case modeUnweighted:
			c.updateMinima(minima, h)
			contributed = true
		case modeStringWeights:
			window = sh.Window(window[:0])
			w, found := lookup.byString[string(window)]
			if !found {
				w = c.DefaultWeight
			}
			contributed = c.updateWeightedMinima(minima, h, w) || contributed
		case modeHashedWeights:
			w, found := lookup.byHash[h]
			if !found {
				w = c.DefaultWeight
			}
			contributed = c.updateWeightedMinima(minima, h, w) || contributed
		}
	}
	if !contributed {
		return sig
	}
	copy(sig, minima)
	return sig
}

func (c *EngineConfig) computeHashes(hashes []uint64, lookup weightLookup) Signature {
	sig := make(Signature, c.SignatureSize)
	if len(hashes) == 0 {
		return sig
	}
	minima := newMinima(c.SignatureSize)
	contributed := false
	for _, h := range hashes {
		if lookup.mode == modeUnweighted {
			c.updateMinima(minima, h)
			contributed = true
			continue
		}
		w, found := lookup.byHash[h]
		if !found {
			w = c.DefaultWeight
		}
		contributed = c.updateWeightedMinima(minima, h, w) || contributed
	}
	if !contributed {
		return sig
	}
	copy(sig, minima)
	return sig
}

func newMinima(n int) []uint32 {
	minima := make([]uint32, n)
	for i := range minima {
		minima[i] = math.MaxUint32
	}
	return minima
}

// updateMinima folds one shingle hash into every slot's running
// minimum: the standard MinHash construction, with each of the k
// permutations simulated by a multiply-add-shift universal hash.
func (c *EngineConfig) updateMinima(minima []uint32, h uint64) {
	for i := range minima {
		combined := uint32((c.coeffA[i]*h + c.coeffB[i]) >> 32)
		if combined < minima[i] {
			minima[i] = combined
		}
	}
}

// updateWeightedMinima is updateMinima with the hash value divided by
// the effective weight before the minimum test. Weights are clamped at
// zero (exclusion); weights below 1 pass through ln(1+w) so the
// division stays numerically stable for small weights. Reports whether
// the shingle contributed, so a fully excluded input can fall back to
// the zero signature.
func (c *EngineConfig) updateWeightedMinima(minima []uint32, h uint64, weight float64) bool {
	if weight <= 0 {
		return false
	}
	if weight < 1.0 {
		weight = math.Log1p(weight)
	}
	for i := range minima {
		combined := uint32((c.coeffA[i]*h + c.coeffB[i]) >> 32)
		weighted := math.Mod(float64(combined)/weight, float64(math.MaxUint32))
		if v := uint32(weighted); v < minima[i] {
			minima[i] = v
		}
	}
	return true
}
