package masking

import (
	"fmt"
	"strings"
)

// Strategy is the closed set of masking variants: NoneMask, AllMask,
// SpanMask and the reserved InverseSpanMask and RandomMask. Dispatch happens
// in ComputeMask.
type Strategy interface {
	Name() string
	strategy()
}

// NoneMask masks nothing.
type NoneMask struct{}

// AllMask masks every frame, padding included.
type AllMask struct{}

// SpanMask masks contiguous spans of Config.SpanLen frames.
type SpanMask struct {
	Config SpanConfig
}

// InverseSpanMask is reserved: it keeps the sampled spans and masks the rest.
type InverseSpanMask struct {
	Config SpanConfig
}

// RandomMask is reserved: it masks independent frames with probability Prob.
type RandomMask struct {
	Prob float64
}

func (NoneMask) Name() string        { return "none" }
func (AllMask) Name() string         { return "all" }
func (SpanMask) Name() string        { return "span" }
func (InverseSpanMask) Name() string { return "inverse-span" }
func (RandomMask) Name() string      { return "random" }

func (NoneMask) strategy()        {}
func (AllMask) strategy()         {}
func (SpanMask) strategy()        {}
func (InverseSpanMask) strategy() {}
func (RandomMask) strategy()      {}

// StrategyNames lists the names accepted by ParseStrategy, reserved ones last.
func StrategyNames() []string {
	return []string{"none", "all", "span", "inverse-span", "random"}
}

// ParseStrategy maps a strategy name to its variant. cfg is attached to
// span-based variants. Reserved variants fail with ErrNotImplemented.
func ParseStrategy(name string, cfg SpanConfig) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return NoneMask{}, nil
	case "all":
		return AllMask{}, nil
	case "span", "block", "":
		return SpanMask{Config: cfg}, nil
	case "inverse-span", "inverse_span", "inverse-block":
		return nil, fmt.Errorf("%w: inverse-span", ErrNotImplemented)
	case "random":
		return nil, fmt.Errorf("%w: random", ErrNotImplemented)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, name)
	}
}

// ComputeMask produces the [shape.Batch x shape.SeqLen] mask for s.
//
// lengths holds the valid length of every example. NoneMask and AllMask
// ignore it. src is only consumed by SpanMask: one draw for the shared
// jitter, then one draw per real span.
func ComputeMask(shape BatchShape, lengths []int, s Strategy, src Source) (*Mask, error) {
	switch s := s.(type) {
	case NoneMask:
		if err := shape.validate(); err != nil {
			return nil, err
		}
		return NewMask(shape.Batch, shape.SeqLen), nil
	case AllMask:
		if err := shape.validate(); err != nil {
			return nil, err
		}
		m := NewMask(shape.Batch, shape.SeqLen)
		m.Fill(true)
		return m, nil
	case SpanMask:
		if src == nil {
			return nil, fmt.Errorf("%w: span masking needs a random source", ErrInvalidConfig)
		}
		_, p, err := SampleSpans(shape, lengths, s.Config, src)
		if err != nil {
			return nil, err
		}
		return BuildMask(p, s.Config.SpanLen, shape.SeqLen), nil
	case InverseSpanMask, RandomMask:
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, s.Name())
	case nil:
		return nil, fmt.Errorf("%w: no strategy", ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %T", ErrInvalidConfig, s)
	}
}
