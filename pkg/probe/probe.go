// Package probe contains the memory access kernels timed by the sampler.
//
// Every kernel walks a buffer of int32 elements at a fixed stride and is
// guaranteed to perform its loads: sink kernels accumulate into Args.Sink,
// the others publish their last read to a package-level escape variable.
package probe

import (
	"fmt"
	"strings"
)

// Kernel selects a memory access pattern.
type Kernel uint8

const (
	// Scalar reads one element per step.
	Scalar Kernel = iota
	// ScalarSink reads one element per step and sums them into Args.Sink.
	ScalarSink
	// Vector reads four adjacent elements per step.
	Vector
	// VectorSink reads four adjacent elements per step and sums them into Args.Sink.
	VectorSink
)

// lanes is the number of elements a vector kernel reads per step.
const lanes = 4

var kernelNames = [...]string{
	Scalar:     "scalar",
	ScalarSink: "scalar-sink",
	Vector:     "vector",
	VectorSink: "vector-sink",
}

// String implements fmt.Stringer.
func (k Kernel) String() string {
	if int(k) < len(kernelNames) {
		return kernelNames[k]
	}
	return fmt.Sprintf("Kernel(%d)", k)
}

// Kernels lists every kernel in declaration order.
func Kernels() []Kernel {
	return []Kernel{Scalar, ScalarSink, Vector, VectorSink}
}

// ParseKernel converts a kernel name to a Kernel. Matching is case-insensitive.
func ParseKernel(name string) (Kernel, error) {
	for _, k := range Kernels() {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kernel %q, expected one of %s", name, strings.Join(kernelNames[:], ", "))
}

// Args is the argument record handed to a Probe.
type Args struct {
	// Data is the buffer being walked. Only the first Count elements are read.
	Data []int32
	// Count is the number of elements in the working set.
	Count int
	// Stride is the distance between successive reads, in elements for scalar
	// kernels and in four-element vectors for vector kernels.
	Stride int
	// Sink receives the accumulated reads of sink kernels.
	Sink int64
}

// Probe is a unit of memory work whose duration is measured.
type Probe interface {
	Run(args *Args)
}

// New returns the Probe for the kernel. Unknown kernels fall back to ScalarSink.
func New(k Kernel) Probe {
	switch k {
	case Scalar:
		return scalar{}
	case Vector:
		return vector{}
	case VectorSink:
		return vectorSink{}
	default:
		return scalarSink{}
	}
}

// Invocation binds a Probe to its arguments.
type Invocation struct {
	Probe Probe
	Args  *Args
}

// Invoke runs the probe once.
func (inv Invocation) Invoke() {
	inv.Probe.Run(inv.Args)
}
