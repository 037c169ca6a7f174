package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidatesOf(t *BucketTable, key uint64) []int32 {
	var out []int32
	t.FindCandidates(key, func(docID int32) { out = append(out, docID) })
	return out
}

func TestBucketTable_InsertAndFind(t *testing.T) {
	table := NewBucketTable(16)

	table.Insert(100, 1)
	table.Insert(100, 2)
	table.Insert(200, 3)

	assert.ElementsMatch(t, []int32{1, 2}, candidatesOf(table, 100))
	assert.Equal(t, []int32{3}, candidatesOf(table, 200))
	assert.Empty(t, candidatesOf(table, 300))
	assert.Equal(t, 3, table.Len())
}

func TestBucketTable_DuplicateInsertIsNoOp(t *testing.T) {
	table := NewBucketTable(8)

	table.Insert(42, 7)
	table.Insert(42, 7)
	table.Insert(42, 7)

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, []int32{7}, candidatesOf(table, 42))
}

func TestBucketTable_CapacityOverflowDropsInsert(t *testing.T) {
	table := NewBucketTable(2)

	table.Insert(1, 1)
	table.Insert(2, 2)
	table.Insert(3, 3) // table full: silently dropped

	assert.Equal(t, 2, table.Len())
	assert.Empty(t, candidatesOf(table, 3))
	assert.Equal(t, 1.0, table.LoadFactor())
}

func TestBucketTable_FullTableScanTerminates(t *testing.T) {
	table := NewBucketTable(4)
	for i := int32(0); i < 4; i++ {
		table.Insert(uint64(i), i)
	}

	// No empty stop slot exists; the scan must bound itself at one
	// full wraparound.
	assert.Equal(t, []int32{2}, candidatesOf(table, 2))
	assert.Empty(t, candidatesOf(table, 99))
}

func TestBucketTable_CollidingKeysProbeForward(t *testing.T) {
	table := NewBucketTable(4)

	// Keys 1 and 5 share home slot 1 mod 4.
	table.Insert(1, 10)
	table.Insert(5, 50)

	assert.Equal(t, []int32{10}, candidatesOf(table, 1))
	assert.Equal(t, []int32{50}, candidatesOf(table, 5))
}

func TestBucketTable_Clear(t *testing.T) {
	table := NewBucketTable(8)
	table.Insert(1, 1)
	table.Insert(2, 2)

	table.Clear()

	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 8, table.Cap())
	assert.Equal(t, 0.0, table.LoadFactor())
	assert.Empty(t, candidatesOf(table, 1))

	table.Insert(1, 1)
	assert.Equal(t, []int32{1}, candidatesOf(table, 1))
}

func TestBucketTable_LoadFactor(t *testing.T) {
	table := NewBucketTable(10)
	assert.Equal(t, 0.0, table.LoadFactor())

	table.Insert(1, 1)
	table.Insert(2, 2)
	assert.InDelta(t, 0.2, table.LoadFactor(), 1e-9)
}

func TestBucketTable_MinimumCapacity(t *testing.T) {
	table := NewBucketTable(0)
	assert.Equal(t, 1, table.Cap())
	table.Insert(5, 1)
	table.Insert(6, 2) // dropped
	assert.Equal(t, 1, table.Len())
}
