package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/shivanshkc/mountain/pkg/bench"
	"github.com/shivanshkc/mountain/pkg/mountain"
	"github.com/shivanshkc/mountain/pkg/probe"
)

// Config is everything the sweep needs. It can be loaded from a YAML file and
// is overridden by explicitly set flags.
type Config struct {
	Sweep   SweepConfig   `yaml:"sweep"`
	Sampler SamplerConfig `yaml:"sampler"`
	Output  OutputConfig  `yaml:"output"`
}

// SweepConfig describes the size by stride grid and the kernel walking it.
type SweepConfig struct {
	StrideInterval uint   `yaml:"stride_interval"`
	StartStride    uint   `yaml:"start_stride"`
	EndStride      uint   `yaml:"end_stride"`
	MinSizeP2      uint8  `yaml:"min_size"`
	MaxSizeP2      uint8  `yaml:"max_size"`
	Kernel         string `yaml:"kernel"`
}

// SamplerConfig controls the convergence sampler and its timer.
type SamplerConfig struct {
	Samples      int    `yaml:"samples"`
	MaxSamples   int    `yaml:"max_samples"`
	ShiftSamples int    `yaml:"shift_samples"`
	Denom        uint64 `yaml:"denom"`
	BaseSpread   uint64 `yaml:"base_spread"`
	PrimeCache   bool   `yaml:"prime_cache"`
	RDTSC        bool   `yaml:"rdtsc"`
}

// OutputConfig selects how rows are printed.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// defaultConfig sweeps 1 KB to 128 MB with strides 1 to 32.
func defaultConfig() Config {
	params := bench.DefaultParams()
	return Config{
		Sweep: SweepConfig{
			StrideInterval: 2,
			StartStride:    1,
			EndStride:      32,
			MinSizeP2:      10,
			MaxSizeP2:      27,
			Kernel:         probe.ScalarSink.String(),
		},
		Sampler: SamplerConfig{
			Samples:      params.K,
			MaxSamples:   params.MaxSamples,
			ShiftSamples: params.ShiftSamples,
			Denom:        params.Denom,
			BaseSpread:   params.BaseSpread,
			PrimeCache:   params.PrimeCache,
		},
		Output: OutputConfig{Format: mountain.FormatPlain},
	}
}

// Params converts the sampler section to bench.Params.
func (c Config) Params() bench.Params {
	return bench.Params{
		K:            c.Sampler.Samples,
		MaxSamples:   c.Sampler.MaxSamples,
		ShiftSamples: c.Sampler.ShiftSamples,
		Denom:        c.Sampler.Denom,
		BaseSpread:   c.Sampler.BaseSpread,
		PrimeCache:   c.Sampler.PrimeCache,
	}
}

// Grid converts the sweep section to mountain.Grid.
func (c Config) Grid() mountain.Grid {
	return mountain.Grid{
		MinSizeP2:      c.Sweep.MinSizeP2,
		MaxSizeP2:      c.Sweep.MaxSizeP2,
		StartStride:    c.Sweep.StartStride,
		EndStride:      c.Sweep.EndStride,
		StrideInterval: c.Sweep.StrideInterval,
	}
}

// bindSweepFlags registers the sweep flags on fs, writing into c.
// Short flags follow the classic mountain tool.
func bindSweepFlags(fs *pflag.FlagSet, c *Config) {
	fs.UintVarP(&c.Sweep.StrideInterval, "stride-interval", "n", c.Sweep.StrideInterval, "Interval to increase the stride by.")
	fs.UintVarP(&c.Sweep.StartStride, "start-stride", "s", c.Sweep.StartStride, "Starting stride.")
	fs.UintVarP(&c.Sweep.EndStride, "end-stride", "e", c.Sweep.EndStride, "Ending stride.")
	fs.Uint8VarP(&c.Sweep.MinSizeP2, "min-size", "i", c.Sweep.MinSizeP2, "Minimum size as a power of two (2^n bytes).")
	fs.Uint8VarP(&c.Sweep.MaxSizeP2, "max-size", "a", c.Sweep.MaxSizeP2, "Maximum size as a power of two (2^n bytes).")
	fs.StringVarP(&c.Sweep.Kernel, "kernel", "b", c.Sweep.Kernel, "Probe kernel: scalar, scalar-sink, vector or vector-sink.")

	fs.IntVarP(&c.Sampler.Samples, "samples", "k", c.Sampler.Samples, "Number of smallest samples that must agree.")
	fs.IntVar(&c.Sampler.MaxSamples, "max-samples", c.Sampler.MaxSamples, "Maximum timed attempts per point.")
	fs.IntVar(&c.Sampler.ShiftSamples, "shift-samples", c.Sampler.ShiftSamples, "Evict the window minimum every n samples (0 disables).")
	fs.Uint64Var(&c.Sampler.Denom, "denom", c.Sampler.Denom, "Relative spread divisor: converged when max-min < min/denom + base-spread.")
	fs.Uint64Var(&c.Sampler.BaseSpread, "base-spread", c.Sampler.BaseSpread, "Absolute spread allowance in nanoseconds.")
	fs.BoolVar(&c.Sampler.PrimeCache, "prime-cache", c.Sampler.PrimeCache, "Run each probe once untimed before measuring.")
	fs.BoolVar(&c.Sampler.RDTSC, "rdtsc", c.Sampler.RDTSC, "Time with the CPU cycle counter instead of the monotonic clock.")

	fs.StringVarP(&c.Output.Format, "format", "f", c.Output.Format, "Output format: plain, table, csv or markdown.")
}

// loadConfigFile reads a YAML config on top of the defaults. Unknown keys are rejected.
func loadConfigFile(path string) (Config, error) {
	c := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open the config file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	// An empty file leaves the defaults in place.
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return c, nil
}

// applyConfigFile replaces c with the file's values, then re-applies every
// flag that was set explicitly, so flags always win over the file.
func applyConfigFile(fs *pflag.FlagSet, path string, c *Config) error {
	if path == "" {
		return nil
	}

	loaded, err := loadConfigFile(path)
	if err != nil {
		return err
	}

	changed := map[string]string{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = f.Value.String() })

	*c = loaded
	for name, value := range changed {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("failed to re-apply flag --%s: %w", name, err)
		}
	}
	return nil
}
