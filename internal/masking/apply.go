package masking

import (
	"fmt"

	"github.com/samcharles93/spanmask/internal/tensor"
)

// Apply returns a copy of hidden where every masked frame is replaced by
// fill. fill holds either one value per feature or a single value broadcast
// over all features. hidden and fill are not modified.
func Apply(hidden *tensor.Tensor3, mask *Mask, fill []float32) (*tensor.Tensor3, error) {
	if hidden.B != mask.Batch || hidden.T != mask.SeqLen {
		return nil, fmt.Errorf("%w: hidden is [%d %d %d], mask is [%d %d]",
			ErrShapeMismatch, hidden.B, hidden.T, hidden.F, mask.Batch, mask.SeqLen)
	}
	if len(fill) != hidden.F && len(fill) != 1 {
		return nil, fmt.Errorf("%w: fill has %d values for %d features", ErrShapeMismatch, len(fill), hidden.F)
	}

	out := hidden.Clone()
	for b := 0; b < out.B; b++ {
		row := mask.Row(b)
		for t, masked := range row {
			if !masked {
				continue
			}
			vec := out.Vec(b, t)
			if len(fill) == 1 {
				for i := range vec {
					vec[i] = fill[0]
				}
				continue
			}
			copy(vec, fill)
		}
	}
	return out, nil
}
