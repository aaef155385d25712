package masking

import "gonum.org/v1/gonum/stat"

// CoverageStats summarises how much of each example a mask covers.
type CoverageStats struct {
	// Masked is the number of masked frames per example, padding included.
	Masked []int `json:"masked"`
	// Fraction is the share of each example's valid frames that are masked.
	Fraction []float64 `json:"fraction"`
	Mean     float64   `json:"mean"`
	StdDev   float64   `json:"std_dev"`
}

// Coverage computes per-example coverage. A nil lengths slice treats every
// example as occupying the full padded width.
func Coverage(m *Mask, lengths []int) CoverageStats {
	cs := CoverageStats{
		Masked:   make([]int, m.Batch),
		Fraction: make([]float64, m.Batch),
	}
	for b := 0; b < m.Batch; b++ {
		valid := m.SeqLen
		if lengths != nil && b < len(lengths) {
			valid = min(lengths[b], m.SeqLen)
		}
		row := m.Row(b)
		inside := 0
		for t, v := range row {
			if !v {
				continue
			}
			cs.Masked[b]++
			if t < valid {
				inside++
			}
		}
		if valid > 0 {
			cs.Fraction[b] = float64(inside) / float64(valid)
		}
	}

	switch len(cs.Fraction) {
	case 0:
	case 1:
		cs.Mean = cs.Fraction[0]
	default:
		cs.Mean, cs.StdDev = stat.MeanStdDev(cs.Fraction, nil)
	}
	return cs
}
