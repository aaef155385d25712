package masking

import (
	"fmt"

	"github.com/samcharles93/spanmask/internal/logger"
	"github.com/samcharles93/spanmask/internal/tensor"
)

// MaskerConfig configures a Masker.
type MaskerConfig struct {
	Strategy Strategy
	// Seed seeds the private source when Source is nil.
	Seed int64
	// Source overrides the seeded source.
	Source Source
	Logger logger.Logger
}

// Masker binds a strategy to a random source. Successive calls advance the
// source, so a Masker built from a fixed seed replays the same sequence of
// masks. A Masker is not safe for concurrent use; give every goroutine its
// own.
type Masker struct {
	strategy Strategy
	src      Source
	log      logger.Logger
}

// NewMasker returns a new masker with the provided configuration.
func NewMasker(cfg MaskerConfig) (*Masker, error) {
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("%w: no strategy", ErrInvalidConfig)
	}
	switch cfg.Strategy.(type) {
	case InverseSpanMask, RandomMask:
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, cfg.Strategy.Name())
	}
	src := cfg.Source
	if src == nil {
		src = NewSource(cfg.Seed)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Masker{
		strategy: cfg.Strategy,
		src:      src,
		log:      log.With("strategy", cfg.Strategy.Name()),
	}, nil
}

// Strategy returns the configured strategy.
func (m *Masker) Strategy() Strategy { return m.strategy }

// Compute builds the mask for one batch.
func (m *Masker) Compute(shape BatchShape, lengths []int) (*Mask, error) {
	mask, err := ComputeMask(shape, lengths, m.strategy, m.src)
	if err != nil {
		return nil, err
	}
	m.log.Debug("computed mask",
		"batch", shape.Batch,
		"max_seq_len", shape.SeqLen,
		"masked", mask.Count(),
	)
	return mask, nil
}

// Apply blends fill into hidden wherever mask is set.
func (m *Masker) Apply(hidden *tensor.Tensor3, mask *Mask, fill []float32) (*tensor.Tensor3, error) {
	return Apply(hidden, mask, fill)
}

// Mask computes the mask for hidden's batch and applies it in one step. The
// batch shape is taken from hidden's leading two axes.
func (m *Masker) Mask(hidden *tensor.Tensor3, lengths []int, fill []float32) (*tensor.Tensor3, *Mask, error) {
	mask, err := m.Compute(BatchShape{Batch: hidden.B, SeqLen: hidden.T}, lengths)
	if err != nil {
		return nil, nil, err
	}
	out, err := Apply(hidden, mask, fill)
	if err != nil {
		return nil, nil, err
	}
	return out, mask, nil
}
