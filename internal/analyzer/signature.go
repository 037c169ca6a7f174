package analyzer

import (
	"encoding/binary"
	"fmt"
)

// Signature is a fixed-length MinHash signature. Two signatures are
// only comparable when built under the same signature size.
type Signature []uint32

// Clone returns an independent copy of the signature.
func (s Signature) Clone() Signature {
	out := make(Signature, len(s))
	copy(out, s)
	return out
}

// IsZero reports whether every slot is zero, the sentinel produced for
// degenerate input (empty text, too few words, text shorter than the
// shingle width). All-zero signatures compare as maximally similar to
// each other and should be treated as "no signal".
func (s Signature) IsZero() bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bytes serializes the signature to 4 bytes per entry, little-endian.
func (s Signature) Bytes() []byte {
	out := make([]byte, 4*len(s))
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

// SignatureFromBytes deserializes a signature produced by Bytes. A blob
// whose length is not a multiple of 4 is rejected as corrupted; an
// empty blob is a valid empty signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("signature blob length %d is not a multiple of 4", len(b))
	}
	out := make(Signature, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return out, nil
}

// Similarity estimates Jaccard similarity between two signatures as the
// fraction of slots that agree exactly. Empty signatures score 0.
func Similarity(a, b Signature) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0.0
	}
	match := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			match++
		}
	}
	return float64(match) / float64(n)
}

// OverlapCoefficient computes |A ∩ B| / min(|A|, |B|) over two sorted
// ascending hash sets with a single two-pointer pass.
func OverlapCoefficient(a, b []uint64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	i, j, shared := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			shared++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(shared) / float64(smaller)
}

// WeightedOverlap computes a weighted term-overlap coefficient: the
// shared mass (minimum weight per common term) over the smaller total
// mass. Non-positive weights contribute nothing.
func WeightedOverlap(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	var totalA, totalB, shared float64
	for term, wa := range a {
		if wa <= 0 {
			continue
		}
		totalA += wa
		if wb, ok := b[term]; ok && wb > 0 {
			if wb < wa {
				shared += wb
			} else {
				shared += wa
			}
		}
	}
	for _, wb := range b {
		if wb > 0 {
			totalB += wb
		}
	}
	smaller := totalA
	if totalB < smaller {
		smaller = totalB
	}
	if smaller == 0 {
		return 0.0
	}
	return shared / smaller
}
