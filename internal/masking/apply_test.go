package masking

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/samcharles93/spanmask/internal/tensor"
)

func TestApplyNoneMaskIsIdentity(t *testing.T) {
	t.Parallel()

	hidden := tensor.NewTensor3(3, 7, 5)
	hidden.FillRand(11)
	mask := NewMask(3, 7)

	out, err := Apply(hidden, mask, []float32{9, 9, 9, 9, 9})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if diff := cmp.Diff(hidden.Data, out.Data); diff != "" {
		t.Fatalf("all-false mask changed hidden (-want +got):\n%s", diff)
	}
	if &out.Data[0] == &hidden.Data[0] {
		t.Fatalf("expected Apply to return a copy")
	}
}

func TestApplySelectsFill(t *testing.T) {
	t.Parallel()

	hidden := tensor.NewTensor3FromData(1, 3, 2, []float32{1, 2, 3, 4, 5, 6})
	mask := NewMask(1, 3)
	mask.Row(0)[1] = true
	before := append([]float32(nil), hidden.Data...)

	out, err := Apply(hidden, mask, []float32{-1, -2})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if diff := cmp.Diff([]float32{1, 2, -1, -2, 5, 6}, out.Data); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, hidden.Data); diff != "" {
		t.Fatalf("Apply modified its input (-want +got):\n%s", diff)
	}

	out, err = Apply(hidden, mask, []float32{0})
	if err != nil {
		t.Fatalf("Apply with scalar fill returned error: %v", err)
	}
	if diff := cmp.Diff([]float32{1, 2, 0, 0, 5, 6}, out.Data); diff != "" {
		t.Fatalf("unexpected scalar-fill output (-want +got):\n%s", diff)
	}
}

func TestApplyAllMask(t *testing.T) {
	t.Parallel()

	hidden := tensor.NewTensor3(2, 4, 3)
	hidden.FillRand(5)
	mask, err := ComputeMask(BatchShape{Batch: 2, SeqLen: 4}, nil, AllMask{}, nil)
	if err != nil {
		t.Fatalf("ComputeMask returned error: %v", err)
	}
	fill := []float32{0.5, 0.25, 0.125}
	out, err := Apply(hidden, mask, fill)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	for b := range 2 {
		for tt := range 4 {
			if diff := cmp.Diff(fill, out.Vec(b, tt)); diff != "" {
				t.Fatalf("frame (%d,%d) not filled (-want +got):\n%s", b, tt, diff)
			}
		}
	}
}

func TestApplyShapeMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		hidden *tensor.Tensor3
		mask   *Mask
		fill   []float32
	}{
		{"batch", tensor.NewTensor3(2, 4, 3), NewMask(3, 4), []float32{0, 0, 0}},
		{"sequence", tensor.NewTensor3(2, 4, 3), NewMask(2, 5), []float32{0, 0, 0}},
		{"features", tensor.NewTensor3(2, 4, 3), NewMask(2, 4), []float32{0, 0}},
		{"empty fill", tensor.NewTensor3(2, 4, 3), NewMask(2, 4), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Apply(tc.hidden, tc.mask, tc.fill); !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("expected ErrShapeMismatch, got %v", err)
			}
		})
	}
}
