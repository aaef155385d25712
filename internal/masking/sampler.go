package masking

import (
	"math"
	"math/rand"
)

// Source is the uniform random source consumed by span sampling. Float64
// must return values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded source. Two sources built from the same seed
// produce identical masks for identical inputs.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SpanSampler decides how many spans each example receives and where they
// start. One sampler serves a single call: eps is the jitter shared by every
// example of the batch.
type SpanSampler struct {
	cfg       SpanConfig
	maxSeqLen int
	eps       float64
}

// NewSpanSampler builds a sampler for a batch padded to maxSeqLen using the
// given shared jitter.
func NewSpanSampler(cfg SpanConfig, maxSeqLen int, eps float64) (*SpanSampler, error) {
	if err := cfg.Validate(maxSeqLen); err != nil {
		return nil, err
	}
	return &SpanSampler{
		cfg:       cfg,
		maxSeqLen: maxSeqLen,
		eps:       eps,
	}, nil
}

// Eps returns the shared jitter.
func (s *SpanSampler) Eps() float64 { return s.eps }

// Config returns the span configuration.
func (s *SpanSampler) Config() SpanConfig { return s.cfg }

// NumSpans returns the span count for an example of the given valid length.
//
// The overflow guard caps by the batch-wide maxSeqLen while the availability
// guard caps by the example's own length. Short examples in a batch with a
// long maximum therefore never benefit from the tighter per-example bound.
func (s *SpanSampler) NumSpans(length int) int {
	raw := s.cfg.MaskProb*float64(length)/float64(s.cfg.SpanLen) + s.eps
	n := int(math.Floor(raw))
	n = max(n, s.cfg.MinSpans)

	if n*s.cfg.SpanLen > s.maxSeqLen {
		n = s.maxSeqLen / s.cfg.SpanLen
	}

	if avail := length - (s.cfg.SpanLen - 1); avail < n {
		n = max(avail, 0)
	}
	return n
}

// MaxSpans is the span budget every example is padded or truncated to: the
// count for a sequence occupying the full padded width.
func (s *SpanSampler) MaxSpans() int {
	return s.NumSpans(s.maxSeqLen)
}

// Placement holds span starts as a row-major [Batch x MaxSpans] matrix.
// Real[b] is the number of sampled spans of example b; the remaining entries
// of its row are padding copies of the dummy start.
type Placement struct {
	Batch    int
	MaxSpans int
	Starts   []int
	Real     []int
}

// Row returns the starts of example b.
func (p *Placement) Row(b int) []int {
	if b < 0 || b >= p.Batch {
		panic("placement row index out of range")
	}
	start := b * p.MaxSpans
	return p.Starts[start : start+p.MaxSpans]
}

// Place draws span starts for every example. Starts are drawn uniformly from
// [0, len-SpanLen-1) and truncated to integers. Examples with fewer than
// MaxSpans spans are padded with their first start, or with maxSeqLen-1 when
// they received no span at all.
func (s *SpanSampler) Place(lengths []int, src Source) *Placement {
	maxSpans := s.MaxSpans()
	p := &Placement{
		Batch:    len(lengths),
		MaxSpans: maxSpans,
		Starts:   make([]int, len(lengths)*maxSpans),
		Real:     make([]int, len(lengths)),
	}
	for b, l := range lengths {
		n := min(s.NumSpans(l), maxSpans)
		row := p.Row(b)
		hi := float64(l - s.cfg.SpanLen - 1)
		for i := range n {
			row[i] = drawStart(src, hi)
		}

		dummy := s.maxSeqLen - 1
		if n > 0 {
			dummy = row[0]
		}
		for i := n; i < maxSpans; i++ {
			row[i] = dummy
		}
		p.Real[b] = n
	}
	return p
}

// drawStart maps a uniform draw onto [0, hi). A draw is consumed even when
// the range is empty so the source advances the same way for every example.
func drawStart(src Source, hi float64) int {
	u := src.Float64()
	if hi <= 0 {
		return 0
	}
	return int(u * hi)
}

// SampleSpans validates the inputs, draws the shared jitter once and places
// spans for the whole batch.
func SampleSpans(shape BatchShape, lengths []int, cfg SpanConfig, src Source) (*SpanSampler, *Placement, error) {
	if err := shape.validate(); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(shape.SeqLen); err != nil {
		return nil, nil, err
	}
	if err := shape.validateLengths(lengths); err != nil {
		return nil, nil, err
	}
	s, err := NewSpanSampler(cfg, shape.SeqLen, src.Float64())
	if err != nil {
		return nil, nil, err
	}
	return s, s.Place(lengths, src), nil
}
