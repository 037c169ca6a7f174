package analyzer

// bucketEntry is one (band hash, document) slot of a BucketTable.
type bucketEntry struct {
	key      uint64
	docID    int32
	occupied bool
}

// BucketTable is a fixed-capacity open-addressing hash table with
// linear probing, mapping band hashes to document ids. Entries live in
// one flat array for scan locality. Capacity never changes: a full
// table silently drops further inserts, trading completeness for
// bounded memory and predictable latency. Callers watch LoadFactor to
// detect approach to capacity.
type BucketTable struct {
	entries []bucketEntry
	count   int
}

// NewBucketTable creates a table with the given fixed capacity
// (minimum 1).
func NewBucketTable(capacity int) *BucketTable {
	if capacity < 1 {
		capacity = 1
	}
	return &BucketTable{entries: make([]bucketEntry, capacity)}
}

// Insert stores (key, docID). It is a no-op when the table is full or
// the exact pair is already present.
func (t *BucketTable) Insert(key uint64, docID int32) {
	capacity := len(t.entries)
	if t.count == capacity {
		return
	}
	i := int(key % uint64(capacity))
	for {
		e := &t.entries[i]
		if !e.occupied {
			e.key = key
			e.docID = docID
			e.occupied = true
			t.count++
			return
		}
		if e.key == key && e.docID == docID {
			return
		}
		i++
		if i == capacity {
			i = 0
		}
	}
}

// FindCandidates invokes visit for every entry stored under key. The
// scan covers the contiguous occupied run starting at the key's home
// slot and is bounded by one full wraparound, so it terminates even
// when the table is completely full and has no empty stop slot.
func (t *BucketTable) FindCandidates(key uint64, visit func(docID int32)) {
	if t.count == 0 {
		return
	}
	capacity := len(t.entries)
	i := int(key % uint64(capacity))
	for scanned := 0; scanned < capacity; scanned++ {
		e := &t.entries[i]
		if !e.occupied {
			return
		}
		if e.key == key {
			visit(e.docID)
		}
		i++
		if i == capacity {
			i = 0
		}
	}
}

// Clear marks every slot empty without changing capacity.
func (t *BucketTable) Clear() {
	for i := range t.entries {
		t.entries[i] = bucketEntry{}
	}
	t.count = 0
}

// Len returns the number of occupied slots.
func (t *BucketTable) Len() int { return t.count }

// Cap returns the fixed capacity.
func (t *BucketTable) Cap() int { return len(t.entries) }

// LoadFactor returns count/capacity in [0, 1].
func (t *BucketTable) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.entries))
}
