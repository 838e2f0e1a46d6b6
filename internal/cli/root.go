// Package cli contains all the command-line interface logic for the application,
// powered by the cobra library. It defines the root command, which runs the
// memory mountain sweep, its subcommands and their flags.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is reported by --version.
const version = "1.0.0"

var (
	// cfg is filled by the sweep flags and, optionally, a config file.
	cfg = defaultConfig()

	// rootConfigPath and rootDebug hold the values of the persistent flags shared by every subcommand.
	rootConfigPath string
	rootDebug      bool
)

// rootCmd generates a memory mountain: the access latency of every working-set
// size and stride in the configured grid.
var rootCmd = &cobra.Command{
	Use:   "mountain",
	Short: "Generate a memory mountain.",
	Long: `Generate a memory mountain.
Measures memory access latency across a sweep of working-set sizes and strides,
printing "<stride> <size> <nanoseconds>" rows with a blank line after each size.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(os.Stderr, debugEnabled()))
	},
	RunE: runSweep,
}

// Execute is the primary entry point for the CLI application, called by main.go.
//
// It sets up a single, root cancellable context and wires it up to respond
// to OS interruption signals (like Ctrl+C or SIGTERM). The sweep checks it
// between points, so an interrupted run stops after the current measurement.
func Execute() error {
	// Create a root context that can be canceled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up a channel to listen for specific OS signals.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	// Launch a goroutine to cancel the context upon receiving a signal.
	go func() {
		<-signals
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	// Validation failures were already reported together with the usage.
	if err != nil && !errors.Is(err, errInvalidConfig) {
		slog.Error("mountain failed", "err", err)
	}
	return err
}

// init configures the application's flags.
func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "",
		"Path to a YAML config file. Explicit flags override it.")

	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false,
		"Trace sampler windows and convergence checks (also enabled by the DEBUG environment variable).")

	bindSweepFlags(rootCmd.Flags(), &cfg)
}
