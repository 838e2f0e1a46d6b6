package mountain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shivanshkc/mountain/pkg/bench"
	"github.com/shivanshkc/mountain/pkg/probe"
)

// Measurer produces one latency estimate for a probe. *bench.Sampler implements it.
type Measurer interface {
	Measure(run bench.ProbeFunc) (bench.Result, error)
}

// Row is one line of sweep output.
type Row struct {
	Stride      uint
	Size        uint64
	Nanoseconds uint64
	Attempts    int
	Converged   bool
}

// Driver walks a Grid and writes one Row per point.
type Driver struct {
	grid     Grid
	probe    probe.Probe
	buffer   []int32
	measurer Measurer
	writer   RowWriter
	logger   *slog.Logger
}

// NewDriver creates a Driver. The buffer must hold at least grid.MaxBytes()
// bytes and is only ever read. A nil logger means slog.Default().
func NewDriver(grid Grid, p probe.Probe, buffer []int32, measurer Measurer, writer RowWriter, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{grid: grid, probe: p, buffer: buffer, measurer: measurer, writer: writer, logger: logger}
}

// Run measures every point in the grid.
//
// The context is checked between points only; a measurement in progress is
// never interrupted. On any error the sweep is abandoned and the writer is not
// flushed, so no partial size group is emitted.
func (d *Driver) Run(ctx context.Context) error {
	if need := d.grid.MaxBytes() / probe.ElementSize; uint64(len(d.buffer)) < need {
		return fmt.Errorf("buffer holds %d elements, the grid needs %d", len(d.buffer), need)
	}

	strides := d.grid.Strides()
	for _, size := range d.grid.Sizes() {
		count := int(size / probe.ElementSize)
		args := &probe.Args{Data: d.buffer[:count], Count: count}
		invocation := probe.Invocation{Probe: d.probe, Args: args}

		for _, stride := range strides {
			if err := ctx.Err(); err != nil {
				return err
			}

			args.Stride = int(stride)
			args.Sink = 0

			result, err := d.measurer.Measure(invocation.Invoke)
			if err != nil {
				return fmt.Errorf("error measuring size %d stride %d: %w", size, stride, err)
			}

			if !result.Converged {
				d.logger.Debug("measurement did not converge",
					"size", size, "stride", stride, "attempts", result.Attempts)
			}

			row := Row{
				Stride:      stride,
				Size:        size,
				Nanoseconds: result.Nanoseconds,
				Attempts:    result.Attempts,
				Converged:   result.Converged,
			}
			if err := d.writer.WriteRow(row); err != nil {
				return fmt.Errorf("error writing row: %w", err)
			}
		}

		if err := d.writer.EndGroup(); err != nil {
			return fmt.Errorf("error ending size group: %w", err)
		}
	}

	return d.writer.Flush()
}
