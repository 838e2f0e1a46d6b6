package probe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivanshkc/mountain/pkg/probe"
)

func TestParseKernel(t *testing.T) {
	for _, k := range probe.Kernels() {
		parsed, err := probe.ParseKernel(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	parsed, err := probe.ParseKernel("Vector-Sink")
	require.NoError(t, err)
	assert.Equal(t, probe.VectorSink, parsed)

	_, err = probe.ParseKernel("avx512")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scalar, scalar-sink, vector, vector-sink")

	assert.Equal(t, "Kernel(9)", probe.Kernel(9).String())
}

func TestSinkKernels(t *testing.T) {
	data := probe.NewBuffer(64) // 16 elements: 0..15

	testCases := []struct {
		name     string
		kernel   probe.Kernel
		count    int
		stride   int
		expected int64
	}{
		{name: "Scalar Stride 1", kernel: probe.ScalarSink, count: 16, stride: 1, expected: 120},
		{name: "Scalar Stride 3", kernel: probe.ScalarSink, count: 10, stride: 3, expected: 0 + 3 + 6 + 9},
		{name: "Scalar Stride Beyond Count", kernel: probe.ScalarSink, count: 4, stride: 8, expected: 0},
		{name: "Vector Stride 1", kernel: probe.VectorSink, count: 16, stride: 1, expected: 120},
		{name: "Vector Stride 2", kernel: probe.VectorSink, count: 16, stride: 2, expected: (0 + 1 + 2 + 3) + (8 + 9 + 10 + 11)},
		{name: "Vector Skips Partial Tail", kernel: probe.VectorSink, count: 10, stride: 1, expected: 28},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := &probe.Args{Data: data, Count: tc.count, Stride: tc.stride, Sink: -1}
			probe.Invocation{Probe: probe.New(tc.kernel), Args: args}.Invoke()
			assert.Equal(t, tc.expected, args.Sink)
		})
	}
}

func TestPlainKernels(t *testing.T) {
	data := probe.NewBuffer(1 << 12)

	// Non-sink kernels leave the argument record alone.
	for _, k := range []probe.Kernel{probe.Scalar, probe.Vector} {
		args := &probe.Args{Data: data, Count: len(data), Stride: 5, Sink: 7}
		assert.NotPanics(t, func() { probe.New(k).Run(args) })
		assert.Equal(t, int64(7), args.Sink)
	}
}

func TestNewBuffer(t *testing.T) {
	data := probe.NewBuffer(1 << 10)
	require.Len(t, data, 256)
	for i, v := range data {
		require.Equal(t, int32(i), v)
	}
}
