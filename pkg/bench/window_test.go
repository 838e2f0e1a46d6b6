package bench_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shivanshkc/mountain/pkg/bench"
)

func TestWindow_Insert(t *testing.T) {
	testCases := []struct {
		name     string
		k        int
		inserts  []uint64
		expected []uint64
	}{
		{name: "Partial Fill Is Sorted", k: 3, inserts: []uint64{100, 90}, expected: []uint64{90, 100}},
		{name: "Full Window Is Sorted", k: 3, inserts: []uint64{100, 90, 95}, expected: []uint64{90, 95, 100}},
		{name: "Larger Sample Is Ignored", k: 3, inserts: []uint64{100, 90, 95, 120}, expected: []uint64{90, 95, 100}},
		{name: "Equal To Largest Is Ignored", k: 3, inserts: []uint64{100, 90, 95, 100}, expected: []uint64{90, 95, 100}},
		{name: "Smaller Sample Replaces Largest", k: 3, inserts: []uint64{100, 90, 95, 10}, expected: []uint64{10, 90, 95}},
		{name: "Reaches Converged State", k: 3, inserts: []uint64{100, 90, 95, 10, 10, 11}, expected: []uint64{10, 10, 11}},
		{name: "Single Slot", k: 1, inserts: []uint64{7, 9, 3, 5}, expected: []uint64{3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			window := bench.NewWindow(tc.k)
			for _, v := range tc.inserts {
				window.Insert(v)
			}
			assert.Equal(t, tc.expected, window.Values())
			assert.Equal(t, len(tc.expected), window.Len())
		})
	}
}

// TestWindow_KeepsSmallest feeds random samples and checks the window against
// a full sort after every insertion.
func TestWindow_KeepsSmallest(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for _, k := range []int{1, 2, 3, 5, 10} {
		window := bench.NewWindow(k)
		var seen []uint64

		for range 500 {
			v := rng.Uint64N(1000)
			window.Insert(v)
			seen = append(seen, v)

			values := window.Values()
			assert.LessOrEqual(t, len(values), k)
			assert.True(t, slices.IsSorted(values), "window must stay sorted: %v", values)

			reference := slices.Clone(seen)
			slices.Sort(reference)
			assert.Equal(t, reference[:min(k, len(reference))], values)
		}
	}
}

func TestWindow_EvictMinimum(t *testing.T) {
	window := bench.NewWindow(3)
	for _, v := range []uint64{30, 10, 20} {
		window.Insert(v)
	}
	assert.True(t, window.Full())

	window.EvictMinimum()
	assert.Equal(t, []uint64{20, 30}, window.Values())
	assert.False(t, window.Full())

	// The vacated slot is filled by the next sample, even a large one.
	window.Insert(1000)
	assert.Equal(t, []uint64{20, 30, 1000}, window.Values())
	assert.True(t, window.Full())

	t.Run("Empty Window", func(t *testing.T) {
		empty := bench.NewWindow(2)
		empty.EvictMinimum()
		assert.Zero(t, empty.Len())
	})
}

func TestWindow_Spread(t *testing.T) {
	t.Run("Not Converged", func(t *testing.T) {
		window := bench.NewWindow(3)
		for _, v := range []uint64{100, 90, 95} {
			window.Insert(v)
		}
		minimum, maximum, threshold := window.Spread(100, 2)
		assert.Equal(t, uint64(90), minimum)
		assert.Equal(t, uint64(100), maximum)
		// 90/100 truncates to 0.
		assert.Equal(t, uint64(2), threshold)
	})

	t.Run("Converged", func(t *testing.T) {
		window := bench.NewWindow(3)
		for _, v := range []uint64{10, 11, 10} {
			window.Insert(v)
		}
		minimum, maximum, threshold := window.Spread(100, 2)
		assert.Less(t, maximum-minimum, threshold)
	})

	t.Run("Large Minimum", func(t *testing.T) {
		window := bench.NewWindow(1)
		window.Insert(12_345)
		_, _, threshold := window.Spread(100, 2)
		assert.Equal(t, uint64(125), threshold)
	})
}
