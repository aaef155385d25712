package train

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMultiplyGradients(t *testing.T) {
	t.Parallel()

	withGrad := &Param{Name: "encoder.w", Value: []float32{1, 2}, Grad: []float32{0.5, -4}}
	noGrad := &Param{Name: "encoder.b", Value: []float32{3}}

	MultiplyGradients(Params{withGrad, noGrad}, 0.1)

	if diff := cmp.Diff([]float32{0.05, -0.4}, withGrad.Grad); diff != "" {
		t.Fatalf("unexpected gradient (-want +got):\n%s", diff)
	}
	if noGrad.Grad != nil {
		t.Fatalf("expected missing gradient to stay nil, got %v", noGrad.Grad)
	}
	if diff := cmp.Diff([]float32{1, 2}, withGrad.Value); diff != "" {
		t.Fatalf("values must not change (-want +got):\n%s", diff)
	}
}

func TestMaskEmbedding(t *testing.T) {
	t.Parallel()

	a := NewMaskEmbedding(16, 3)
	b := NewMaskEmbedding(16, 3)
	if len(a.Fill()) != 16 {
		t.Fatalf("unexpected embedding width %d", len(a.Fill()))
	}
	if diff := cmp.Diff(a.Fill(), b.Fill()); diff != "" {
		t.Fatalf("same seed produced different embeddings (-a +b):\n%s", diff)
	}

	a.Grad = make([]float32, 16)
	for i := range a.Grad {
		a.Grad[i] = 1
	}
	visited := 0
	a.VisitParams(func(p *Param) { visited++ })
	MultiplyGradients(a, 2)
	if visited != 1 || a.Grad[0] != 2 {
		t.Fatalf("expected one visited param with doubled grad, got visited=%d grad=%v", visited, a.Grad[0])
	}
}
