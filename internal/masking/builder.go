package masking

// expandIndices turns a placement into a row-major [Batch x MaxSpans*spanLen]
// matrix of frame indices: index[b, s*spanLen+k] = start[b, s] + k.
func expandIndices(p *Placement, spanLen int) []int {
	width := p.MaxSpans * spanLen
	idx := make([]int, p.Batch*width)
	for b := 0; b < p.Batch; b++ {
		out := idx[b*width : (b+1)*width]
		for s, start := range p.Row(b) {
			for k := range spanLen {
				out[s*spanLen+k] = start + k
			}
		}
	}
	return idx
}

// clampIndex bounds a scatter column to [0, n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// BuildMask scatters every span of the placement into a [Batch x seqLen]
// mask. Columns falling outside the mask are clamped to the last frame;
// duplicate columns from padding or overlapping spans are written again.
func BuildMask(p *Placement, spanLen, seqLen int) *Mask {
	width := p.MaxSpans * spanLen
	idx := expandIndices(p, spanLen)

	hits := make([]uint8, p.Batch*seqLen)
	for b := 0; b < p.Batch; b++ {
		row := hits[b*seqLen : (b+1)*seqLen]
		for _, col := range idx[b*width : (b+1)*width] {
			row[clampIndex(col, seqLen)] = 1
		}
	}

	m := NewMask(p.Batch, seqLen)
	for i, h := range hits {
		m.Data[i] = h != 0
	}
	return m
}
