package masking

import "errors"

var (
	// ErrInvalidConfig is returned when a span configuration cannot be used
	// with the requested batch shape (span_len >= max_seq_len, mask_prob
	// outside (0, 1], negative counts) or when a strategy name is unknown.
	ErrInvalidConfig = errors.New("invalid mask config")

	// ErrShapeMismatch is returned when batch, sequence or feature extents of
	// the inputs disagree with each other.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNotImplemented is returned for the reserved strategies.
	ErrNotImplemented = errors.New("masking strategy not implemented")
)
