// Package dataset holds indexable item sources and combinators over them.
package dataset

// Dataset is a finite, randomly indexable sequence of items.
type Dataset[T any] interface {
	// Get returns item i, or false when i is out of range.
	Get(i int) (T, bool)
	Len() int
}

// Slice adapts a slice to a Dataset.
type Slice[T any] []T

func (s Slice[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(s) {
		var zero T
		return zero, false
	}
	return s[i], true
}

func (s Slice[T]) Len() int { return len(s) }

type mapped[I, O any] struct {
	inner Dataset[I]
	fn    func(I) O
}

// Map returns a dataset that applies fn to every item of d on access.
// Nothing is precomputed; fn runs once per Get.
func Map[I, O any](d Dataset[I], fn func(I) O) Dataset[O] {
	return mapped[I, O]{inner: d, fn: fn}
}

func (m mapped[I, O]) Get(i int) (O, bool) {
	item, ok := m.inner.Get(i)
	if !ok {
		var zero O
		return zero, false
	}
	return m.fn(item), true
}

func (m mapped[I, O]) Len() int { return m.inner.Len() }

// Collect materialises every item of d.
func Collect[T any](d Dataset[T]) []T {
	out := make([]T, 0, d.Len())
	for i := range d.Len() {
		item, ok := d.Get(i)
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out
}
