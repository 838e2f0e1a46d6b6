package bench

import (
	"math"
)

// vacant marks an unoccupied slot. It compares greater than any real sample,
// so the next Insert always fills it.
const vacant = math.MaxUint64

// Window holds the k smallest samples seen so far, sorted ascending.
//
// It is not a ring of the most recent samples: a new sample only enters a full
// window if it beats the current largest value.
type Window struct {
	values []uint64
	// occupied is the length of the sorted prefix of values.
	occupied int
}

// NewWindow returns an empty window of capacity k.
func NewWindow(k int) *Window {
	values := make([]uint64, k)
	for i := range values {
		values[i] = vacant
	}
	return &Window{values: values}
}

// Insert folds a sample into the window.
func (w *Window) Insert(sample uint64) {
	var i int
	switch last := len(w.values) - 1; {
	case w.occupied < len(w.values):
		i = w.occupied
		w.occupied++
	case sample < w.values[last]:
		i = last
	default:
		return
	}
	w.values[i] = sample

	// Bubble down from the insertion point. The rest of the prefix is already sorted.
	for ; i > 0 && w.values[i] < w.values[i-1]; i-- {
		w.values[i], w.values[i-1] = w.values[i-1], w.values[i]
	}
}

// EvictMinimum drops the smallest sample and vacates the last slot.
func (w *Window) EvictMinimum() {
	if w.occupied == 0 {
		return
	}
	copy(w.values, w.values[1:w.occupied])
	w.occupied--
	w.values[w.occupied] = vacant
}

// Spread returns the window's minimum, its maximum (the last slot, which is
// only meaningful once the window is full) and the convergence threshold
// min/denom + base. Integer division truncates.
func (w *Window) Spread(denom, base uint64) (minimum, maximum, threshold uint64) {
	minimum = w.values[0]
	maximum = w.values[len(w.values)-1]
	return minimum, maximum, minimum/denom + base
}

// Min returns the smallest sample.
func (w *Window) Min() uint64 {
	return w.values[0]
}

// Len returns the number of occupied slots.
func (w *Window) Len() int {
	return w.occupied
}

// Full reports whether every slot is occupied.
func (w *Window) Full() bool {
	return w.occupied == len(w.values)
}

// Values returns a copy of the occupied prefix.
func (w *Window) Values() []uint64 {
	out := make([]uint64, w.occupied)
	copy(out, w.values[:w.occupied])
	return out
}
