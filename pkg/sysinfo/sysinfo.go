// Package sysinfo describes the host a mountain is measured on. Cache sizes
// mark where the plateaus of the mountain are expected to fall.
package sysinfo

import (
	"context"
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Cache is one level of the data cache hierarchy.
type Cache struct {
	Level string
	Bytes uint64
}

// Info is a snapshot of the host's processor and memory.
type Info struct {
	Brand  string
	Vendor string

	PhysicalCores int
	LogicalCores  int

	// BaseMHz and BoostMHz come from CPUID; zero when not reported.
	BaseMHz  int64
	BoostMHz int64
	// ReportedMHz is the operating system's view of the current clock.
	ReportedMHz float64

	CacheLine int
	Caches    []Cache

	TotalMemory     uint64
	AvailableMemory uint64
}

// Collect gathers the host description.
func Collect(ctx context.Context) (Info, error) {
	info := Info{
		Brand:         cpuid.CPU.BrandName,
		Vendor:        cpuid.CPU.VendorString,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		BaseMHz:       cpuid.CPU.Hz / 1_000_000,
		BoostMHz:      cpuid.CPU.BoostFreq / 1_000_000,
		CacheLine:     cpuid.CPU.CacheLine,
		Caches:        caches(),
	}

	// CPUID is only meaningful on x86; the OS fills the gaps elsewhere.
	if stats, err := cpu.InfoWithContext(ctx); err == nil && len(stats) > 0 {
		info.ReportedMHz = stats[0].Mhz
		if info.Brand == "" {
			info.Brand = stats[0].ModelName
		}
		if info.Vendor == "" {
			info.Vendor = stats[0].VendorID
		}
	}
	if info.LogicalCores == 0 {
		if n, err := cpu.CountsWithContext(ctx, true); err == nil {
			info.LogicalCores = n
		}
	}
	if info.PhysicalCores == 0 {
		if n, err := cpu.CountsWithContext(ctx, false); err == nil {
			info.PhysicalCores = n
		}
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("error reading memory statistics: %w", err)
	}
	info.TotalMemory = vm.Total
	info.AvailableMemory = vm.Available

	return info, nil
}

// AvailableMemory returns the memory that can be allocated without swapping.
func AvailableMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("error reading memory statistics: %w", err)
	}
	return vm.Available, nil
}

// caches lists the data cache levels CPUID reports, smallest first.
func caches() []Cache {
	levels := []struct {
		name  string
		bytes int
	}{
		{"L1d", cpuid.CPU.Cache.L1D},
		{"L2", cpuid.CPU.Cache.L2},
		{"L3", cpuid.CPU.Cache.L3},
	}

	var out []Cache
	for _, l := range levels {
		// cpuid reports -1 for unknown levels.
		if l.bytes > 0 {
			out = append(out, Cache{Level: l.name, Bytes: uint64(l.bytes)})
		}
	}
	return out
}
