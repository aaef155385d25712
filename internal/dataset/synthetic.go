package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samcharles93/spanmask/internal/masking"
)

// Batch is the padding metadata of one batch: its padded shape and the valid
// length of every example. Seed is the seed the batch was generated from and
// doubles as the seed for masking it.
type Batch struct {
	Shape   masking.BatchShape `json:"shape"`
	Lengths []int              `json:"lengths"`
	Seed    int64              `json:"seed"`
}

// SyntheticBatches generates padded batches with lengths drawn uniformly
// from [MinLen, SeqLen]. Item i is derived from Seed+i only, so items can
// be fetched in any order and from any goroutine.
type SyntheticBatches struct {
	N         int
	BatchSize int
	SeqLen    int
	MinLen    int
	Seed      int64
}

// Validate reports whether the generator parameters are usable.
func (s SyntheticBatches) Validate() error {
	if s.N < 0 || s.BatchSize < 0 {
		return errors.New("negative batch count or size")
	}
	if s.SeqLen <= 0 {
		return fmt.Errorf("sequence length must be positive, got %d", s.SeqLen)
	}
	if s.MinLen <= 0 || s.MinLen > s.SeqLen {
		return fmt.Errorf("minimum length %d outside [1, %d]", s.MinLen, s.SeqLen)
	}
	return nil
}

func (s SyntheticBatches) Get(i int) (Batch, bool) {
	if i < 0 || i >= s.N {
		return Batch{}, false
	}
	seed := s.Seed + int64(i)
	rng := rand.New(rand.NewSource(seed))
	lengths := make([]int, s.BatchSize)
	for b := range lengths {
		lengths[b] = s.MinLen + rng.Intn(s.SeqLen-s.MinLen+1)
	}
	// The longest example defines the padded width in real loaders; keep
	// the first example at full width so the batch is tight.
	if len(lengths) > 0 {
		lengths[0] = s.SeqLen
	}
	return Batch{
		Shape:   masking.BatchShape{Batch: s.BatchSize, SeqLen: s.SeqLen},
		Lengths: lengths,
		Seed:    seed,
	}, true
}

func (s SyntheticBatches) Len() int { return s.N }
