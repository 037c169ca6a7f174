package analyzer

import "sort"

// LSHIndex indexes document signatures for fast near-duplicate
// candidate retrieval: one fixed-capacity BucketTable per band, plus a
// docID -> signature map for exact rescoring of candidates.
//
// The index has no internal synchronization. Concurrent writers, or a
// writer concurrent with readers, need an external lock or a
// single-writer discipline; the engine configuration snapshot taken at
// each call is the only state safe to share freely.
//
// Re-adding a docID overwrites its stored signature but does not evict
// the band entries written by the earlier add, so queries may still
// surface the id through its stale bands. Callers that mutate
// documents should Clear and rebuild.
type LSHIndex struct {
	engine     *Engine
	numBands   int
	tables     []*BucketTable
	signatures map[int32]Signature
}

// DocumentScore is one scored query result.
type DocumentScore struct {
	DocID      int32
	Similarity float64
}

// SimilarPair is an unordered pair of similar documents; A is always
// the smaller id.
type SimilarPair struct {
	A          int32
	B          int32
	Similarity float64
}

// NewLSHIndex creates an index for roughly expectedDocs documents. Each
// band table is sized at twice that, which keeps probe runs short at
// the expected load. The band count is taken from the engine's current
// configuration.
func NewLSHIndex(engine *Engine, expectedDocs int) *LSHIndex {
	if expectedDocs < 1 {
		expectedDocs = 1
	}
	numBands := engine.Config().NumBands
	tables := make([]*BucketTable, numBands)
	for i := range tables {
		tables[i] = NewBucketTable(2 * expectedDocs)
	}
	return &LSHIndex{
		engine:     engine,
		numBands:   numBands,
		tables:     tables,
		signatures: make(map[int32]Signature),
	}
}

// Add computes the unweighted signature for text and indexes it under
// docID.
func (idx *LSHIndex) Add(docID int32, text string) {
	idx.AddSignature(docID, idx.engine.Config().ComputeSignature(text))
}

// AddWithWeights is Add with a TF-IDF style weight map. Queries against
// weighted documents must use the same weight map, or none at all for
// every document; weighted and unweighted signatures over the same text
// are not comparable under exact-match similarity.
func (idx *LSHIndex) AddWithWeights(docID int32, text string, weights map[string]float64) {
	idx.AddSignature(docID, idx.engine.Config().ComputeWeightedSignature(text, weights))
}

// AddSignature indexes a caller-provided signature under docID. The
// signature is copied; the caller keeps ownership of its slice.
func (idx *LSHIndex) AddSignature(docID int32, sig Signature) {
	sig = sig.Clone()
	idx.signatures[docID] = sig
	for _, band := range idx.engine.Config().GenerateBands(sig) {
		if band.Index < len(idx.tables) {
			idx.tables[band.Index].Insert(band.Hash, docID)
		}
	}
}

// Query returns every indexed document sharing at least one band with
// text's signature, in ascending id order. No ranking is applied.
func (idx *LSHIndex) Query(text string) []int32 {
	candidates := idx.candidatesFor(idx.engine.Config().ComputeSignature(text))
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates
}

// QueryWithWeights is Query with the weight map used at add time.
func (idx *LSHIndex) QueryWithWeights(text string, weights map[string]float64) []int32 {
	candidates := idx.candidatesFor(idx.engine.Config().ComputeWeightedSignature(text, weights))
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates
}

// QueryWithScores returns the candidates for text with their exact
// signature similarity to the query, sorted by descending similarity.
// The stable sort preserves candidate discovery order between equal
// scores.
func (idx *LSHIndex) QueryWithScores(text string) []DocumentScore {
	querySig := idx.engine.Config().ComputeSignature(text)
	candidates := idx.candidatesFor(querySig)

	scores := make([]DocumentScore, 0, len(candidates))
	for _, docID := range candidates {
		stored, ok := idx.signatures[docID]
		if !ok {
			continue
		}
		scores = append(scores, DocumentScore{
			DocID:      docID,
			Similarity: Similarity(querySig, stored),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Similarity > scores[j].Similarity
	})
	return scores
}

// FindSimilarPairs returns every unordered pair of indexed documents
// sharing at least one band and scoring at or above threshold, sorted
// by descending similarity. Each pair is checked once.
func (idx *LSHIndex) FindSimilarPairs(threshold float64) []SimilarPair {
	ids := make([]int32, 0, len(idx.signatures))
	for id := range idx.signatures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var pairs []SimilarPair
	checked := make(map[uint64]struct{})
	for _, id := range ids {
		sig := idx.signatures[id]
		for _, candidate := range idx.candidatesFor(sig) {
			if candidate == id {
				continue
			}
			a, b := id, candidate
			if b < a {
				a, b = b, a
			}
			pairKey := uint64(uint32(a))<<32 | uint64(uint32(b))
			if _, done := checked[pairKey]; done {
				continue
			}
			checked[pairKey] = struct{}{}

			other, ok := idx.signatures[candidate]
			if !ok {
				continue
			}
			if sim := Similarity(sig, other); sim >= threshold {
				pairs = append(pairs, SimilarPair{A: a, B: b, Similarity: sim})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Similarity > pairs[j].Similarity
	})
	return pairs
}

// GetSignature returns a copy of the stored signature for docID.
func (idx *LSHIndex) GetSignature(docID int32) (Signature, bool) {
	sig, ok := idx.signatures[docID]
	if !ok {
		return nil, false
	}
	return sig.Clone(), true
}

// Size returns the number of indexed documents.
func (idx *LSHIndex) Size() int { return len(idx.signatures) }

// LoadFactors returns the per-band table load factors, for capacity
// monitoring.
func (idx *LSHIndex) LoadFactors() []float64 {
	factors := make([]float64, len(idx.tables))
	for i, t := range idx.tables {
		factors[i] = t.LoadFactor()
	}
	return factors
}

// Clear empties every band table and the signature map without
// changing table capacity.
func (idx *LSHIndex) Clear() {
	for _, t := range idx.tables {
		t.Clear()
	}
	idx.signatures = make(map[int32]Signature)
}

// candidatesFor unions candidate ids across all bands of sig,
// preserving discovery order.
func (idx *LSHIndex) candidatesFor(sig Signature) []int32 {
	var candidates []int32
	seen := make(map[int32]struct{})
	for _, band := range idx.engine.Config().GenerateBands(sig) {
		if band.Index >= len(idx.tables) {
			continue
		}
		idx.tables[band.Index].FindCandidates(band.Hash, func(docID int32) {
			if _, dup := seen[docID]; dup {
				return
			}
			seen[docID] = struct{}{}
			candidates = append(candidates, docID)
		})
	}
	return candidates
}
