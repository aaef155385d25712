package tensor

import (
	"math"
	"testing"
)

func TestL2(t *testing.T) {
	if got := L2([]float32{3, 4}); got != 5 {
		t.Fatalf("L2: got %v want 5", got)
	}
	if got := L2(nil); got != 0 {
		t.Fatalf("L2(nil): got %v want 0", got)
	}
}

func TestDot(t *testing.T) {
	if got := Dot([]float32{1, 2, 3}, []float32{4, -5, 6}); got != 12 {
		t.Fatalf("Dot: got %v want 12", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, -1}, []float32{-1, 1}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.IsNaN(float64(got)) || math.Abs(float64(got-tc.want)) > 1e-6 {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestTensor3Views(t *testing.T) {
	x := NewTensor3(2, 3, 4)
	x.FillRand(9)

	y := NewTensor3(2, 3, 4)
	y.FillRand(9)
	for i := range x.Data {
		if x.Data[i] != y.Data[i] {
			t.Fatalf("FillRand not reproducible at %d", i)
		}
	}

	x.Vec(1, 2)[3] = 42
	ex := x.Example(1)
	if ex.R != 3 || ex.C != 4 {
		t.Fatalf("unexpected example shape [%d %d]", ex.R, ex.C)
	}
	if ex.Row(2)[3] != 42 {
		t.Fatalf("example view does not alias tensor data")
	}

	c := x.Clone()
	c.Vec(0, 0)[0] = -1
	if x.Vec(0, 0)[0] == -1 {
		t.Fatalf("Clone shares data with the original")
	}
}

func TestMatFillRandRange(t *testing.T) {
	m := NewMat(8, 8)
	FillRand(&m, 1)
	for _, v := range m.Data {
		if v < -0.01 || v > 0.01 {
			t.Fatalf("value %v outside [-0.01, 0.01]", v)
		}
	}
}
