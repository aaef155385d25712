package masking

import "fmt"

// BatchShape is the padded rectangular extent of a batch.
type BatchShape struct {
	Batch  int `json:"batch" yaml:"batch"`
	SeqLen int `json:"max_seq_len" yaml:"max_seq_len"`
}

// SpanConfig configures span masking.
//
// MaskProb is the expected fraction of frames to mask, SpanLen the width of
// a single span and MinSpans the lower bound on spans per example (subject to
// the length caps applied by the sampler).
type SpanConfig struct {
	MaskProb float64 `json:"mask_prob" yaml:"mask_prob"`
	SpanLen  int     `json:"span_len" yaml:"span_len"`
	MinSpans int     `json:"min_spans" yaml:"min_spans"`
}

// DefaultSpanConfig matches the usual wav2vec-style pretraining setup.
func DefaultSpanConfig() SpanConfig {
	return SpanConfig{MaskProb: 0.65, SpanLen: 10, MinSpans: 2}
}

// Validate checks the config against the padded sequence length.
func (c SpanConfig) Validate(maxSeqLen int) error {
	if !(c.MaskProb > 0 && c.MaskProb <= 1) {
		return fmt.Errorf("%w: mask_prob %v outside (0, 1]", ErrInvalidConfig, c.MaskProb)
	}
	if c.SpanLen <= 0 {
		return fmt.Errorf("%w: span_len must be positive, got %d", ErrInvalidConfig, c.SpanLen)
	}
	if c.MinSpans < 0 {
		return fmt.Errorf("%w: min_spans must be non-negative, got %d", ErrInvalidConfig, c.MinSpans)
	}
	if c.SpanLen >= maxSeqLen {
		return fmt.Errorf("%w: span_len %d must be smaller than max_seq_len %d", ErrInvalidConfig, c.SpanLen, maxSeqLen)
	}
	return nil
}

func (s BatchShape) validate() error {
	if s.Batch < 0 {
		return fmt.Errorf("%w: negative batch size %d", ErrShapeMismatch, s.Batch)
	}
	if s.SeqLen <= 0 {
		return fmt.Errorf("%w: max_seq_len must be positive, got %d", ErrShapeMismatch, s.SeqLen)
	}
	return nil
}

// validateLengths checks that there is one valid length per example and
// that every length lies in (0, SeqLen].
func (s BatchShape) validateLengths(lengths []int) error {
	if len(lengths) != s.Batch {
		return fmt.Errorf("%w: %d sequence lengths for batch of %d", ErrShapeMismatch, len(lengths), s.Batch)
	}
	for b, l := range lengths {
		if l <= 0 || l > s.SeqLen {
			return fmt.Errorf("%w: example %d has length %d, want (0, %d]", ErrShapeMismatch, b, l, s.SeqLen)
		}
	}
	return nil
}
