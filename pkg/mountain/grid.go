// Package mountain sweeps the working-set size and stride grid and reports one
// latency per point, producing the data for a memory mountain plot.
package mountain

// Grid describes the points of a sweep. It is assumed to be validated:
// MinSizeP2 <= MaxSizeP2, StrideInterval >= 1 and StartStride <= EndStride.
type Grid struct {
	// MinSizeP2 and MaxSizeP2 bound the working-set size in bytes as powers of two.
	MinSizeP2, MaxSizeP2 uint8
	// StartStride, EndStride and StrideInterval describe the inclusive stride range.
	StartStride, EndStride, StrideInterval uint
}

// Point is a single (size, stride) measurement site.
type Point struct {
	Size   uint64
	Stride uint
}

// Sizes returns the working-set sizes in bytes, from largest to smallest,
// halving each step. Both ends are included.
func (g Grid) Sizes() []uint64 {
	sizes := make([]uint64, 0, int(g.MaxSizeP2)-int(g.MinSizeP2)+1)
	for p := int(g.MaxSizeP2); p >= int(g.MinSizeP2); p-- {
		sizes = append(sizes, uint64(1)<<p)
	}
	return sizes
}

// Strides returns the strides from start to end, stepping by the interval.
// The end is included only if the interval lands on it.
func (g Grid) Strides() []uint {
	strides := make([]uint, 0, (g.EndStride-g.StartStride)/g.StrideInterval+1)
	for s := g.StartStride; s <= g.EndStride; s += g.StrideInterval {
		strides = append(strides, s)
	}
	return strides
}

// Points returns every point in sweep order: sizes descending, then strides ascending.
func (g Grid) Points() []Point {
	sizes, strides := g.Sizes(), g.Strides()
	points := make([]Point, 0, len(sizes)*len(strides))
	for _, size := range sizes {
		for _, stride := range strides {
			points = append(points, Point{Size: size, Stride: stride})
		}
	}
	return points
}

// MaxBytes returns the size of the buffer needed for the largest point.
func (g Grid) MaxBytes() uint64 {
	return uint64(1) << g.MaxSizeP2
}
