package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shivanshkc/mountain/pkg/bench"
	"github.com/shivanshkc/mountain/pkg/timer"
	"github.com/shivanshkc/mountain/pkg/utils/miscutils"
)

var (
	calibrateDuration time.Duration
	calibrateReads    int
)

// calibrateCmd checks both timers before they are trusted with a sweep.
//
// It compares the base frequency CPUID reports, which the cycle counter uses
// to convert cycles to nanoseconds, with the rate the counter actually ticks
// at, and measures the cost of reading each timer.
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Check the cycle counter frequency and measure timer overhead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if calibrateReads < 1 {
			return errors.New("reads must be at least 1")
		}

		clock := timer.NewMonotonic()
		counter := timer.NewCycleCounter()

		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Check", "Result"})

		// The cycle counter may be unusable on this machine; report instead of failing.
		if mhz, err := counter.BaseFrequencyMHz(); err != nil {
			tw.AppendRow(table.Row{"CPUID base frequency", text.FgRed.Sprint(err.Error())})
		} else {
			tw.AppendRow(table.Row{"CPUID base frequency", fmt.Sprintf("%d MHz", mhz)})
		}

		if rate, err := timer.MeasureCycleRate(cmd.Context(), counter, clock, calibrateDuration); err != nil {
			tw.AppendRow(table.Row{"Measured cycle rate", text.FgRed.Sprint(err.Error())})
		} else {
			tw.AppendRow(table.Row{"Measured cycle rate", fmt.Sprintf("%.1f MHz", rate)})
		}
		tw.AppendSeparator()

		for _, t := range []timer.Timer{clock, counter} {
			overhead, err := bench.TimerOverhead(t, calibrateReads)
			if err != nil {
				tw.AppendRow(table.Row{t.Name() + " overhead", text.FgRed.Sprint(err.Error())})
				continue
			}

			s := overhead.Summary()
			tw.AppendRow(table.Row{
				t.Name() + " overhead",
				fmt.Sprintf("min %s, median %s, p99 %s, max %s",
					miscutils.FormatDuration(s.Min),
					miscutils.FormatDuration(s.Median),
					miscutils.FormatDuration(s.P99),
					miscutils.FormatDuration(s.Max)),
			})
		}

		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calibrateCmd)

	calibrateCmd.Flags().DurationVarP(&calibrateDuration, "duration", "d",
		2*time.Second, "How long to count cycles for.")

	calibrateCmd.Flags().IntVarP(&calibrateReads, "reads", "r",
		1000, "Number of back-to-back timer reads used to measure overhead.")
}
