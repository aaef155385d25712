package dataset

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMap(t *testing.T) {
	t.Parallel()

	calls := 0
	d := Map(Slice[int]{1, 2, 3}, func(v int) string {
		calls++
		return strconv.Itoa(v * 10)
	})
	if d.Len() != 3 {
		t.Fatalf("unexpected length %d", d.Len())
	}
	if calls != 0 {
		t.Fatalf("Map must be lazy, mapper ran %d times", calls)
	}
	got, ok := d.Get(1)
	if !ok || got != "20" {
		t.Fatalf("Get(1): got %q, %v", got, ok)
	}
	if _, ok := d.Get(3); ok {
		t.Fatalf("expected out-of-range Get to fail")
	}
	if diff := cmp.Diff([]string{"10", "20", "30"}, Collect(d)); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestMapComposes(t *testing.T) {
	t.Parallel()

	d := Map(Map(Slice[int]{1, 2}, func(v int) int { return v + 1 }), func(v int) int { return v * v })
	if diff := cmp.Diff([]int{4, 9}, Collect(d)); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestSyntheticBatches(t *testing.T) {
	t.Parallel()

	src := SyntheticBatches{N: 4, BatchSize: 8, SeqLen: 30, MinLen: 12, Seed: 5}
	if err := src.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	for i := range src.Len() {
		a, ok := src.Get(i)
		if !ok {
			t.Fatalf("Get(%d) failed", i)
		}
		b, _ := src.Get(i)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("Get(%d) not reproducible (-a +b):\n%s", i, diff)
		}
		if a.Shape.Batch != 8 || a.Shape.SeqLen != 30 || len(a.Lengths) != 8 {
			t.Fatalf("unexpected batch %+v", a)
		}
		if a.Seed != 5+int64(i) {
			t.Fatalf("unexpected batch seed %d", a.Seed)
		}
		if a.Lengths[0] != 30 {
			t.Fatalf("expected first example at full width, got %d", a.Lengths[0])
		}
		for _, l := range a.Lengths {
			if l < 12 || l > 30 {
				t.Fatalf("length %d outside [12, 30]", l)
			}
		}
	}
	if _, ok := src.Get(4); ok {
		t.Fatalf("expected Get past N to fail")
	}
}

func TestSyntheticBatchesValidate(t *testing.T) {
	t.Parallel()

	for _, s := range []SyntheticBatches{
		{N: 1, BatchSize: 1, SeqLen: 0, MinLen: 1},
		{N: 1, BatchSize: 1, SeqLen: 10, MinLen: 0},
		{N: 1, BatchSize: 1, SeqLen: 10, MinLen: 11},
		{N: -1, BatchSize: 1, SeqLen: 10, MinLen: 1},
	} {
		if err := s.Validate(); err == nil {
			t.Fatalf("expected %+v to be rejected", s)
		}
	}
}
