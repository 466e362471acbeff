// Command ctrlc waits for interrupt-style signals and exits once it has seen
// enough of them.
//
//	ctrlc                         # wait for one Ctrl-C
//	ctrlc --signal TERM --count 2 # wait for two SIGTERMs
//	ctrlc --mode waiter           # drive the wait loop by hand
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/srozzo/go-ctrlc"
	"github.com/srozzo/go-ctrlc/internal/config"
	"github.com/srozzo/go-ctrlc/internal/logger"
)

// pollInterval is how often handler mode checks the shared counter.
const pollInterval = 10 * time.Millisecond

// bridgeFactory builds the Bridge for a run. Tests swap it to inject signals.
type bridgeFactory func(log *slog.Logger) *ctrlc.Bridge

func defaultBridge(log *slog.Logger) *ctrlc.Bridge {
	return ctrlc.New(ctrlc.WithLogger(log))
}

func main() {
	if err := newRootCmd(defaultBridge).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(newBridge bridgeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ctrlc",
		Short:         "Wait for Ctrl-C (or other termination signals) and exit",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg, newBridge)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "Config file (.toml, .yaml or .yml)")
	f.StringSlice("signal", nil, "Signal to wait for; repeatable (default SIGINT)")
	f.String("mode", config.ModeHandler, "handler: callback loop; waiter: manual wait loop")
	f.Int("count", 1, "Number of notifications to observe before exiting")
	f.String("log-level", "warn", "trace, debug, info, warn, error or fail")
	f.String("log-file", "", "Write logs to a rotating file instead of stderr")

	cmd.AddCommand(newSignalsCmd())
	return cmd
}

func newSignalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signals",
		Short: "List the termination signals this platform can deliver",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, s := range ctrlc.TerminationSignals() {
				fmt.Fprintln(cmd.OutOrStdout(), ctrlc.SignalName(s))
			}
		},
	}
}

// loadConfig reads --config and lets explicitly set flags override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f.Changed("signal") {
		cfg.Signals, _ = f.GetStringSlice("signal")
	}
	if f.Changed("mode") {
		cfg.Mode, _ = f.GetString("mode")
	}
	if f.Changed("count") {
		cfg.Count, _ = f.GetInt("count")
	}
	if f.Changed("log-level") {
		cfg.Log.Level, _ = f.GetString("log-level")
	}
	if f.Changed("log-file") {
		cfg.Log.File, _ = f.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// nopCloser stands in for the log file closer when logging to stderr.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLogger(cfg config.Log) (*slog.Logger, io.Closer) {
	level, _ := logger.ParseLevel(cfg.Level)
	if cfg.File == "" {
		return logger.Stderr(level), nopCloser{}
	}
	return logger.NewFileLogger(cfg.File, level, cfg.MaxSizeMB)
}

func run(out io.Writer, cfg *config.Config, newBridge bridgeFactory) error {
	sigs, err := ctrlc.ParseSignals(cfg.Signals)
	if err != nil {
		return err
	}
	if err := ctrlc.Validate(sigs...); err != nil {
		return err
	}

	log, closer := newLogger(cfg.Log)
	defer closer.Close()
	b := newBridge(log)

	switch cfg.Mode {
	case config.ModeWaiter:
		wait := b.GetWaiter(sigs...)
		fmt.Fprintln(out, "Waiting for Ctrl-C...")
		for i := 1; i <= cfg.Count; i++ {
			wait()
			log.Info("notification", "n", i)
		}
	default:
		// Only the dispatch loop writes seen. It goes quiet once the count
		// is reached because the loop outlives run and the logger.
		var seen atomic.Int64
		count := int64(cfg.Count)
		b.SetHandler(func() {
			n := seen.Load() + 1
			if n > count {
				return
			}
			log.Info("notification", "n", n)
			seen.Store(n)
		}, sigs...)
		fmt.Fprintln(out, "Waiting for Ctrl-C...")
		for seen.Load() < count {
			time.Sleep(pollInterval)
		}
	}

	fmt.Fprintln(out, "Got it! Exiting...")
	return nil
}
