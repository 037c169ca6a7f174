package analyzer

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"
)

// Default engine parameters.
const (
	DefaultSignatureSize = 100
	DefaultNumBands      = 20
	DefaultShingleSize   = 5
	DefaultMinWords      = 4
	DefaultWeight        = 1.0
)

// EngineConfig is an immutable snapshot of the signature engine tuning.
// All signature and banding computations take their parameters from one
// snapshot, so a reconfiguration never affects a call already in flight.
type EngineConfig struct {
	SignatureSize int     // number of independent hash functions (k)
	NumBands      int     // must evenly divide SignatureSize
	RowsPerBand   int     // SignatureSize / NumBands
	ShingleSize   int     // rolling window width in bytes
	MinWords      int     // below this token count the signature is all zero
	DefaultWeight float64 // weight for shingles absent from a weight map

	// Per-hash-function multiplier and offset for the multiply-add-shift
	// universal hash. coeffA entries are always odd.
	coeffA []uint64
	coeffB []uint64
}

// Options configures an Engine. Zero fields fall back to the defaults
// above. A non-nil Seed makes coefficient generation deterministic.
type Options struct {
	SignatureSize int
	NumBands      int
	ShingleSize   int
	MinWords      int
	DefaultWeight float64
	Seed          *uint64
}

// Engine owns the current EngineConfig snapshot. Reads are lock-free;
// Configure validates, then swaps in a fresh snapshot, so readers never
// observe a half-updated coefficient array.
type Engine struct {
	mu  sync.Mutex
	cfg atomic.Pointer[EngineConfig]
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) (*Engine, error) {
	e := &Engine{}
	if err := e.Configure(opts); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure replaces the engine configuration atomically. On error the
// prior configuration remains active.
func (e *Engine) Configure(opts Options) error {
	cfg, err := newEngineConfig(opts)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.Store(cfg)
	return nil
}

// Config returns the current configuration snapshot. Callers hold the
// snapshot for the duration of one logical operation so that multi-step
// work (signature then bands) sees consistent parameters.
func (e *Engine) Config() *EngineConfig {
	return e.cfg.Load()
}

func newEngineConfig(opts Options) (*EngineConfig, error) {
	if opts.SignatureSize <= 0 {
		opts.SignatureSize = DefaultSignatureSize
	}
	if opts.NumBands <= 0 {
		opts.NumBands = DefaultNumBands
	}
	if opts.ShingleSize <= 0 {
		opts.ShingleSize = DefaultShingleSize
	}
	if opts.MinWords <= 0 {
		opts.MinWords = DefaultMinWords
	}
	if opts.DefaultWeight <= 0 {
		opts.DefaultWeight = DefaultWeight
	}

	if opts.SignatureSize%opts.NumBands != 0 {
		return nil, fmt.Errorf("signature size %d is not divisible by %d bands",
			opts.SignatureSize, opts.NumBands)
	}

	a, b, err := generateCoefficients(opts.SignatureSize, opts.Seed)
	if err != nil {
		return nil, err
	}

	return &EngineConfig{
		SignatureSize: opts.SignatureSize,
		NumBands:      opts.NumBands,
		RowsPerBand:   opts.SignatureSize / opts.NumBands,
		ShingleSize:   opts.ShingleSize,
		MinWords:      opts.MinWords,
		DefaultWeight: opts.DefaultWeight,
		coeffA:        a,
		coeffB:        b,
	}, nil
}

// generateCoefficients produces the per-hash-function multiplier and
// offset arrays, either from the crypto random source or deterministic
// from a seed via a linear-congruential expansion. Multipliers are
// forced odd so the multiply-shift hash never degenerates.
func generateCoefficients(n int, seed *uint64) (a, b []uint64, err error) {
	a = make([]uint64, n)
	b = make([]uint64, n)

	if seed != nil {
		state := *seed
		next := func() uint64 {
			state = state*6364136223846793005 + 1442695040888963407
			return state
		}
		for i := 0; i < n; i++ {
			a[i] = next() | 1
			b[i] = next()
		}
		return a, b, nil
	}

	buf := make([]byte, 16*n)
	if _, err := cryptorand.Read(buf); err != nil {
		return nil, nil, fmt.Errorf("coefficient generation: %w", err)
	}
	for i := 0; i < n; i++ {
		a[i] = binary.LittleEndian.Uint64(buf[16*i:]) | 1
		b[i] = binary.LittleEndian.Uint64(buf[16*i+8:])
	}
	return a, b, nil
}
