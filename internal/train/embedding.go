package train

import "github.com/samcharles93/spanmask/internal/tensor"

// MaskEmbedding is the learned vector written into masked frames.
type MaskEmbedding struct {
	Param
}

// NewMaskEmbedding initialises a features-wide embedding from seed, using
// the same small-range fill as the tensor package.
func NewMaskEmbedding(features int, seed int64) *MaskEmbedding {
	m := tensor.NewMat(1, features)
	tensor.FillRand(&m, seed)
	return &MaskEmbedding{Param: Param{Name: "mask_embedding", Value: m.Data}}
}

// Fill returns the vector to pass as the fill value when applying a mask.
func (e *MaskEmbedding) Fill() []float32 { return e.Value }

func (e *MaskEmbedding) VisitParams(fn func(p *Param)) { fn(&e.Param) }
