package masking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClampIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		i, n, want int
	}{
		{-3, 10, 0},
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 9},
		{27, 10, 9},
	}
	for _, tc := range tests {
		if got := clampIndex(tc.i, tc.n); got != tc.want {
			t.Errorf("clampIndex(%d, %d): got %d want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestExpandIndices(t *testing.T) {
	t.Parallel()

	p := &Placement{Batch: 2, MaxSpans: 2, Starts: []int{0, 5, 7, 7}, Real: []int{2, 1}}
	got := expandIndices(p, 3)
	want := []int{
		0, 1, 2, 5, 6, 7,
		7, 8, 9, 7, 8, 9,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected indices (-want +got):\n%s", diff)
	}
}

func TestBuildMaskClampsTrailingDummy(t *testing.T) {
	t.Parallel()

	// The second example received no spans and is padded with max_seq_len-1.
	p := &Placement{Batch: 2, MaxSpans: 1, Starts: []int{2, 9}, Real: []int{1, 0}}
	m := BuildMask(p, 3, 10)

	want := []string{"0011100000", "0000000001"}
	if diff := cmp.Diff(want, m.Rows()); diff != "" {
		t.Fatalf("unexpected mask (-want +got):\n%s", diff)
	}
}

func TestBuildMaskOverlapsWriteOnce(t *testing.T) {
	t.Parallel()

	p := &Placement{Batch: 1, MaxSpans: 3, Starts: []int{1, 2, 1}, Real: []int{2}}
	m := BuildMask(p, 2, 6)
	if got := m.RowString(0); got != "011100" {
		t.Fatalf("unexpected mask row: %s", got)
	}
	if got := m.CountRow(0); got > p.MaxSpans*2 {
		t.Fatalf("masked %d frames, more than %d", got, p.MaxSpans*2)
	}
}

func TestBuildMaskEmptyPlacement(t *testing.T) {
	t.Parallel()

	p := &Placement{Batch: 3, MaxSpans: 0, Starts: nil, Real: make([]int, 3)}
	m := BuildMask(p, 4, 8)
	if m.Batch != 3 || m.SeqLen != 8 {
		t.Fatalf("unexpected mask shape [%d %d]", m.Batch, m.SeqLen)
	}
	if m.Count() != 0 {
		t.Fatalf("expected empty mask, got %d masked frames", m.Count())
	}
}
