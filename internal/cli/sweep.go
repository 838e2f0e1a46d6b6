package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shivanshkc/mountain/pkg/bench"
	"github.com/shivanshkc/mountain/pkg/mountain"
	"github.com/shivanshkc/mountain/pkg/probe"
	"github.com/shivanshkc/mountain/pkg/sysinfo"
	"github.com/shivanshkc/mountain/pkg/timer"
	"github.com/shivanshkc/mountain/pkg/utils/miscutils"
)

// errInvalidConfig is returned after the validation message and usage were printed.
var errInvalidConfig = errors.New("invalid configuration")

// runSweep measures every point of the configured grid and prints the rows.
func runSweep(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd.Flags(), rootConfigPath, &cfg); err != nil {
		return err
	}

	logger := slog.Default()
	logger.Debug("args", "sweep", cfg.Sweep, "sampler", cfg.Sampler, "output", cfg.Output)

	if message := validateSweepConfig(cfg); message != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), text.FgRed.Sprint(message))
		_ = cmd.Usage()
		return errInvalidConfig
	}

	// Validated above.
	kernel, _ := probe.ParseKernel(cfg.Sweep.Kernel)
	grid := cfg.Grid()

	warnIfBufferTooLarge(cmd, logger, grid.MaxBytes())
	if logger.Enabled(cmd.Context(), slog.LevelDebug) {
		logHost(cmd, logger)
	}

	writer, err := mountain.NewRowWriter(cfg.Output.Format, cmd.OutOrStdout(), terminalWidth(os.Stdout))
	if err != nil {
		return err
	}

	t := timer.New(cfg.Sampler.RDTSC)
	sampler := bench.NewSampler(cfg.Params(), t, logger)
	buffer := probe.NewBuffer(grid.MaxBytes())

	logger.Debug("starting sweep",
		"timer", t.Name(),
		"kernel", kernel,
		"points", len(grid.Points()),
		"buffer", miscutils.FormatBytes(grid.MaxBytes()))

	driver := mountain.NewDriver(grid, probe.New(kernel), buffer, sampler, writer, logger)
	return driver.Run(cmd.Context())
}

// warnIfBufferTooLarge warns when the probe buffer will not fit in free memory.
func warnIfBufferTooLarge(cmd *cobra.Command, logger *slog.Logger, size uint64) {
	available, err := sysinfo.AvailableMemory(cmd.Context())
	if err != nil {
		logger.Debug("could not read available memory", "err", err)
		return
	}
	if size > available {
		logger.Warn("buffer is larger than available memory",
			"buffer", miscutils.FormatBytes(size),
			"available", miscutils.FormatBytes(available))
	}
}

// logHost records the processor and cache sizes next to the trace.
func logHost(cmd *cobra.Command, logger *slog.Logger) {
	info, err := sysinfo.Collect(cmd.Context())
	if err != nil {
		logger.Debug("could not describe host", "err", err)
		return
	}

	attrs := []any{"cpu", info.Brand, "base_mhz", info.BaseMHz}
	for _, c := range info.Caches {
		attrs = append(attrs, c.Level, miscutils.FormatBytes(c.Bytes))
	}
	logger.Debug("host", attrs...)
}

// terminalWidth returns the width of f if it is a terminal, zero otherwise.
func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
