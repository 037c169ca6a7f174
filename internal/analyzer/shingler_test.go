package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectShingles(text string, size int) []uint64 {
	sh := NewRollingShingler(size)
	var out []uint64
	for i := 0; i < len(text); i++ {
		if h, ok := sh.Push(text[i]); ok {
			out = append(out, h)
		}
	}
	return out
}

func TestRollingShingler_MatchesDirectHash(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	size := 5

	hashes := collectShingles(text, size)
	require.Len(t, hashes, len(text)-size+1)

	// Every rolling hash must equal the direct polynomial hash of the
	// corresponding window.
	for i, h := range hashes {
		assert.Equal(t, HashShingle([]byte(text[i:i+size])), h, "window %d", i)
	}
}

func TestRollingShingler_InputShorterThanWindow(t *testing.T) {
	assert.Empty(t, collectShingles("abcd", 5))
	assert.Empty(t, collectShingles("", 5))
}

func TestRollingShingler_ExactWindowLength(t *testing.T) {
	hashes := collectShingles("abcde", 5)
	require.Len(t, hashes, 1)
	assert.Equal(t, HashShingle([]byte("abcde")), hashes[0])
}

func TestRollingShingler_Window(t *testing.T) {
	sh := NewRollingShingler(3)
	text := "abcdef"
	for i := 0; i < len(text); i++ {
		_, ok := sh.Push(text[i])
		if i < 2 {
			assert.False(t, ok)
			assert.Empty(t, sh.Window(nil))
			continue
		}
		assert.True(t, ok)
		assert.Equal(t, text[i-2:i+1], string(sh.Window(nil)))
	}
}

func TestRollingShingler_Reset(t *testing.T) {
	sh := NewRollingShingler(3)
	for _, c := range []byte("abcdef") {
		sh.Push(c)
	}
	sh.Reset()

	_, ok := sh.Push('x')
	assert.False(t, ok, "window should be empty after reset")

	sh2 := NewRollingShingler(3)
	for _, c := range []byte("xyz") {
		sh.Push(c)
		sh2.Push(c)
	}
	h1, ok1 := sh.Push('w')
	h2, ok2 := sh2.Push('w')
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, h2, h1, "reset shingler must behave like a fresh one")
}

func TestRollingShingler_InvalidSizeDefaults(t *testing.T) {
	sh := NewRollingShingler(0)
	assert.Equal(t, 5, sh.Size())
}
