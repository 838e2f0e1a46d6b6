package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shivanshkc/mountain/pkg/sysinfo"
	"github.com/shivanshkc/mountain/pkg/utils/miscutils"
)

// infoCmd prints the host description. Cache sizes mark where the plateaus of
// a mountain are expected.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the processor, caches and memory of this host.",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := sysinfo.Collect(cmd.Context())
		if err != nil {
			return err
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.SetStyle(table.StyleLight)

		tw.AppendRow(table.Row{"CPU", info.Brand})
		tw.AppendRow(table.Row{"Vendor", info.Vendor})
		tw.AppendRow(table.Row{"Cores", fmt.Sprintf("%d physical, %d logical", info.PhysicalCores, info.LogicalCores)})
		tw.AppendRow(table.Row{"Base frequency", formatMHz(info.BaseMHz)})
		tw.AppendRow(table.Row{"Boost frequency", formatMHz(info.BoostMHz)})
		tw.AppendRow(table.Row{"Reported frequency", fmt.Sprintf("%.0f MHz", info.ReportedMHz)})
		tw.AppendSeparator()

		tw.AppendRow(table.Row{"Cache line", miscutils.FormatBytes(uint64(max(info.CacheLine, 0)))})
		for _, c := range info.Caches {
			tw.AppendRow(table.Row{c.Level + " cache", miscutils.FormatBytes(c.Bytes)})
		}
		tw.AppendSeparator()

		tw.AppendRow(table.Row{"Total memory", miscutils.FormatBytes(info.TotalMemory)})
		tw.AppendRow(table.Row{"Available memory", miscutils.FormatBytes(info.AvailableMemory)})

		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// formatMHz prints a CPUID frequency, which is zero when unreported.
func formatMHz(mhz int64) string {
	if mhz <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d MHz", mhz)
}
