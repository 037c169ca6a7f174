package domain

// MinHash engine defaults. 100 hash functions over 20 bands of 5 rows
// puts the LSH detection-probability curve's steep region around 0.55
// similarity, a reasonable operating point for near-duplicate news and
// article text.
const (
	// DefaultSignatureSize is the number of independent MinHash
	// functions per signature.
	DefaultSignatureSize = 100

	// DefaultNumBands is the number of LSH bands; it must evenly
	// divide the signature size.
	DefaultNumBands = 20

	// DefaultShingleSize is the rolling window width in bytes.
	// Five bytes is roughly one short word plus a separator, the
	// conventional width for headline-scale text.
	DefaultShingleSize = 5

	// DefaultMinWords is the minimum whitespace-delimited token count
	// below which a document is treated as having no signal.
	DefaultMinWords = 4

	// DefaultShingleWeight is the weight applied to shingles absent
	// from a supplied weight map.
	DefaultShingleWeight = 1.0
)

// Duplicate detection defaults.
const (
	// DefaultSimilarityThreshold is the minimum estimated similarity
	// for two documents to be reported as a duplicate pair.
	DefaultSimilarityThreshold = 0.4

	// DefaultExpectedDocs sizes the per-band bucket tables; each table
	// holds twice this many slots. The tables do not grow, so corpora
	// larger than this should raise it explicitly.
	DefaultExpectedDocs = 1024
)
