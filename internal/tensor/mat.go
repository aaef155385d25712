package tensor

import "math/rand"

// Mat is a dense row-major [R x C] float32 matrix. Data may be a view into a
// larger buffer, e.g. one example of a Tensor3.
type Mat struct {
	R, C int
	Data []float32
}

// NewMat allocates a zeroed matrix.
func NewMat(r, c int) Mat {
	if r < 0 || c < 0 {
		panic("negative dimension for matrix")
	}
	return Mat{R: r, C: c, Data: make([]float32, r*c)}
}

// NewMatFromData wraps data without copying. It checks that len(data) == r*c.
func NewMatFromData(r, c int, data []float32) Mat {
	if r*c != len(data) {
		panic("data length mismatch")
	}
	return Mat{R: r, C: c, Data: data}
}

// Row returns row i as a view into Data.
func (m *Mat) Row(i int) []float32 {
	if i < 0 || i >= m.R {
		panic("row index out of range")
	}
	start := i * m.C
	return m.Data[start : start+m.C]
}

// FillRand fills m with values in [-0.01, 0.01) drawn from seed. Equal
// seeds give equal matrices.
func FillRand(m *Mat, seed int64) {
	fillRand(m.Data, seed)
}

func fillRand(dst []float32, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range dst {
		dst[i] = (rng.Float32() - 0.5) * 0.02
	}
}
