package masking

import "strings"

// Mask is a dense row-major [Batch x SeqLen] boolean matrix. A true entry
// marks a masked frame.
type Mask struct {
	Batch  int
	SeqLen int
	Data   []bool
}

// NewMask allocates an all-false mask.
func NewMask(batch, seqLen int) *Mask {
	if batch < 0 || seqLen < 0 {
		panic("negative dimension for mask")
	}
	return &Mask{
		Batch:  batch,
		SeqLen: seqLen,
		Data:   make([]bool, batch*seqLen),
	}
}

// At reports whether frame t of example b is masked.
func (m *Mask) At(b, t int) bool {
	return m.Data[b*m.SeqLen+t]
}

// Row returns a view of example b. Writes go through to the mask.
func (m *Mask) Row(b int) []bool {
	if b < 0 || b >= m.Batch {
		panic("mask row index out of range")
	}
	start := b * m.SeqLen
	return m.Data[start : start+m.SeqLen]
}

// Fill sets every entry to v.
func (m *Mask) Fill(v bool) {
	for i := range m.Data {
		m.Data[i] = v
	}
}

// Count returns the number of masked frames in the whole batch.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Data {
		if v {
			n++
		}
	}
	return n
}

// CountRow returns the number of masked frames in example b.
func (m *Mask) CountRow(b int) int {
	n := 0
	for _, v := range m.Row(b) {
		if v {
			n++
		}
	}
	return n
}

// RowString renders example b as a string of '1' (masked) and '0'.
func (m *Mask) RowString(b int) string {
	var sb strings.Builder
	sb.Grow(m.SeqLen)
	for _, v := range m.Row(b) {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Rows renders every example with RowString.
func (m *Mask) Rows() []string {
	rows := make([]string, m.Batch)
	for b := range rows {
		rows[b] = m.RowString(b)
	}
	return rows
}

func (m *Mask) String() string {
	return strings.Join(m.Rows(), "\n")
}
