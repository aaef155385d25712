package tensor

// Tensor3 is a dense [B x T x F] float32 tensor laid out batch-major, used for
// padded hidden-state batches: B examples, T frames, F features per frame.
type Tensor3 struct {
	B, T, F int
	Data    []float32
}

// NewTensor3 allocates a zeroed tensor.
func NewTensor3(b, t, f int) *Tensor3 {
	if b < 0 || t < 0 || f < 0 {
		panic("negative dimension for tensor")
	}
	return &Tensor3{B: b, T: t, F: f, Data: make([]float32, b*t*f)}
}

// NewTensor3FromData wraps existing data. It checks that len(data) == b*t*f.
func NewTensor3FromData(b, t, f int, data []float32) *Tensor3 {
	if b*t*f != len(data) {
		panic("data length mismatch")
	}
	return &Tensor3{B: b, T: t, F: f, Data: data}
}

// Vec returns the feature vector of frame t in example b as a view.
func (x *Tensor3) Vec(b, t int) []float32 {
	if b < 0 || b >= x.B || t < 0 || t >= x.T {
		panic("tensor index out of range")
	}
	start := (b*x.T + t) * x.F
	return x.Data[start : start+x.F]
}

// Example returns example b as a [T x F] matrix view.
func (x *Tensor3) Example(b int) Mat {
	if b < 0 || b >= x.B {
		panic("tensor index out of range")
	}
	size := x.T * x.F
	return NewMatFromData(x.T, x.F, x.Data[b*size:(b+1)*size])
}

// Clone returns a deep copy.
func (x *Tensor3) Clone() *Tensor3 {
	out := &Tensor3{B: x.B, T: x.T, F: x.F, Data: make([]float32, len(x.Data))}
	copy(out.Data, x.Data)
	return out
}

// FillRand fills the tensor with the same reproducible values FillRand
// produces for matrices.
func (x *Tensor3) FillRand(seed int64) {
	fillRand(x.Data, seed)
}
