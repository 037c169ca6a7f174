package analyzer

// shingleBase is the polynomial base for the rolling hash. Small odd
// constant; all arithmetic wraps at 2^64.
const shingleBase uint64 = 257

// RollingShingler emits a 64-bit polynomial hash for every contiguous
// byte window of a fixed width, in O(1) amortized per byte. No window
// substring is ever materialized; the bytes live in a fixed ring buffer.
type RollingShingler struct {
	size    int
	buf     []byte
	head    int
	count   int
	hash    uint64
	highPow uint64 // shingleBase^(size-1), precomputed once
}

// NewRollingShingler creates a shingler for windows of the given width
// (default 5 if invalid).
func NewRollingShingler(size int) *RollingShingler {
	if size <= 0 {
		size = 5
	}
	highPow := uint64(1)
	for i := 1; i < size; i++ {
		highPow *= shingleBase
	}
	return &RollingShingler{
		size:    size,
		buf:     make([]byte, size),
		highPow: highPow,
	}
}

// Size returns the window width in bytes.
func (s *RollingShingler) Size() int { return s.size }

// Push feeds one byte into the window. Once at least size bytes have
// been pushed, it returns the hash of the current window and true;
// until then it returns (0, false).
func (s *RollingShingler) Push(c byte) (uint64, bool) {
	if s.count == s.size {
		// Evict the oldest byte before it slides out of the window.
		oldest := s.buf[s.head]
		s.hash -= uint64(oldest) * s.highPow
		s.buf[s.head] = c
		s.head++
		if s.head == s.size {
			s.head = 0
		}
	} else {
		i := s.head + s.count
		if i >= s.size {
			i -= s.size
		}
		s.buf[i] = c
		s.count++
	}
	s.hash = s.hash*shingleBase + uint64(c)
	if s.count == s.size {
		return s.hash, true
	}
	return 0, false
}

// Window appends the bytes of the current window, oldest first, to dst
// and returns the result. It returns dst unchanged when the window is
// not yet full. Only the weighted signature path needs this, to look up
// string-keyed weights.
func (s *RollingShingler) Window(dst []byte) []byte {
	if s.count < s.size {
		return dst
	}
	for i := 0; i < s.size; i++ {
		j := s.head + i
		if j >= s.size {
			j -= s.size
		}
		dst = append(dst, s.buf[j])
	}
	return dst
}

// Reset clears the window and running hash without reallocating.
func (s *RollingShingler) Reset() {
	s.head = 0
	s.count = 0
	s.hash = 0
}

// HashShingle computes the polynomial hash of a full byte slice using
// the same base as the rolling window. For a slice exactly one window
// wide this equals the hash Push would emit for that window, which is
// what lets string-keyed weight maps be pre-hashed once.
func HashShingle(b []byte) uint64 {
	var h uint64
	for _, c := range b {
		h = h*shingleBase + uint64(c)
	}
	return h
}
